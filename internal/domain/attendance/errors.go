package attendance

import "errors"

var (
	ErrPendingNotFound      = errors.New("pending attendance record not found")
	ErrRecordNotFound       = errors.New("attendance record not found")
	ErrNotPending           = errors.New("pending record is no longer editable")
	ErrNotSubmittingLeader  = errors.New("only the submitting leader may modify this record")
	ErrNotRoomLeader        = errors.New("member is not the leader of this room")
	ErrIncompleteBatch      = errors.New("batch must cover every assigned member")
	ErrUnknownBatchMember   = errors.New("batch contains a member not in the room assignment")
	ErrDuplicateBatchMember = errors.New("batch lists a member twice")
	ErrMissingArrivalTime   = errors.New("LATE entries require an arrival time")
	ErrInvalidArrivalTime   = errors.New("arrival time must be HH:MM")
	ErrInvalidStatus        = errors.New("invalid attendance status")
)
