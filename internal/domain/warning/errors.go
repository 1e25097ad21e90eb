package warning

import "errors"

var (
	ErrWarningNotFound = errors.New("warning not found")
	ErrInvalidType     = errors.New("invalid warning type")
	ErrAlreadyResolved = errors.New("warning already resolved")
)
