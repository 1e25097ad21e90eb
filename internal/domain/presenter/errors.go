package presenter

import "errors"

var (
	ErrSlotNotFound  = errors.New("presenter slot not found")
	ErrNotPresenter  = errors.New("only the scheduled presenter may submit the topic")
	ErrTopicRequired = errors.New("topic title is required")
)
