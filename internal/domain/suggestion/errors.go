package suggestion

import "errors"

var (
	ErrSuggestionNotFound = errors.New("suggestion not found")
	ErrAlreadyReviewed    = errors.New("suggestion already reviewed")
)
