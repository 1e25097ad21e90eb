package attendance

import "time"

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusLate    Status = "LATE"
	StatusNoShow  Status = "NO_SHOW"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusNoShow:
		return true
	}
	return false
}

// Attended reports whether the status counts as having shown up (and
// therefore owes the room fee).
func (s Status) Attended() bool {
	return s == StatusPresent || s == StatusLate
}

// Record is an immutable attendance fact. Corrections happen through
// adjustment transactions, never by editing a record.
type Record struct {
	ID                string     `gorm:"type:uuid;primaryKey"`
	MemberID          string     `gorm:"type:uuid;index;not null"`
	MeetingDate       time.Time  `gorm:"not null;index"`
	Status            Status     `gorm:"type:text;not null"`
	ArrivalTime       *time.Time
	LocationID        *string    `gorm:"type:uuid"`
	RecordedByAdminID *string    `gorm:"type:uuid"`
	Notes             string
	CreatedAt         time.Time  `gorm:"autoCreateTime"`
}

func (Record) TableName() string {
	return "attendance_records"
}

type PendingStatus string

const (
	PendingStatusPending  PendingStatus = "PENDING"
	PendingStatusApproved PendingStatus = "APPROVED"
	PendingStatusRejected PendingStatus = "REJECTED"
)

// Entry is one member's line in a leader-submitted batch. ArrivalTime is
// HH:MM wall time at the meeting location and is required for LATE.
type Entry struct {
	MemberID    string `json:"memberId"`
	Status      Status `json:"status"`
	ArrivalTime string `json:"arrivalTime,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// PendingRecord is a leader-submitted attendance batch awaiting admin
// review. PENDING → APPROVED | REJECTED, both terminal.
type PendingRecord struct {
	ID                  string        `gorm:"type:uuid;primaryKey"`
	RoomAssignmentID    string        `gorm:"type:uuid;index;not null"`
	SubmittedByLeaderID string        `gorm:"type:uuid;not null"`
	MeetingDate         time.Time     `gorm:"not null"`
	Entries             []Entry       `gorm:"serializer:json;not null"`
	Status              PendingStatus `gorm:"type:text;not null;default:PENDING"`
	ReviewedByAdminID   *string       `gorm:"type:uuid"`
	ReviewedAt          *time.Time
	RejectReason        string
	SubmittedAt         time.Time     `gorm:"autoCreateTime"`
}

func (PendingRecord) TableName() string {
	return "pending_attendance_records"
}

// EffectFailure records one dependent side effect that was skipped during
// approval. The attendance record itself is never skipped.
type EffectFailure struct {
	MemberID string `json:"memberId"`
	Effect   string `json:"effect"`
	Reason   string `json:"reason"`
}

// ApprovalResult summarizes a processed batch.
type ApprovalResult struct {
	PendingID string          `json:"pendingId"`
	RecordIDs []string        `json:"recordIds"`
	Skipped   []EffectFailure `json:"skipped,omitempty"`
}

type DirectEntryInput struct {
	MemberID    string
	MeetingDate time.Time
	Status      Status
	ArrivalTime string
	LocationID  string
	Notes       string
}
