package member

import "errors"

var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidTier        = errors.New("invalid honor tier")
	ErrInvalidStatus      = errors.New("invalid member status")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
