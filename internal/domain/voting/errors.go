package voting

import "errors"

var (
	ErrVoteNotFound           = errors.New("vote not found")
	ErrVoteClosed             = errors.New("vote is closed")
	ErrResponseNotFound       = errors.New("vote response not found")
	ErrDuplicateResponse      = errors.New("member already responded to this vote")
	ErrInvalidChoice          = errors.New("invalid vote choice")
	ErrWeeklyLocationConflict = errors.New("already responded to another location's vote this week")
)
