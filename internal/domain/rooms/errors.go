package rooms

import "errors"

var (
	ErrAssignmentNotFound = errors.New("room assignment not found")
	ErrNoMembers          = errors.New("no members to assign")
	ErrInvalidRoomCount   = errors.New("room count must be positive")
)
