package location

import "errors"

var (
	ErrLocationNotFound   = errors.New("location not found")
	ErrNameTaken          = errors.New("location name already exists")
	ErrInvalidTimezone    = errors.New("invalid timezone")
	ErrInvalidMeetingTime = errors.New("meeting time must be HH:MM")
)
