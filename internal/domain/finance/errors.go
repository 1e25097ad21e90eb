package finance

import "errors"

var (
	ErrAccountNotFound    = errors.New("financial account not found")
	ErrAccountExists      = errors.New("financial account already exists")
	ErrNonPositiveAmount  = errors.New("amount must be positive")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
)
