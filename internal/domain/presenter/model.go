package presenter

import "time"

// Slot schedules one member to present at a meeting. The topic must be
// submitted before TopicDeadline; missing it costs the flat presenter
// penalty, applied at most once per slot.
type Slot struct {
	ID               string     `gorm:"type:uuid;primaryKey"`
	MemberID         string     `gorm:"type:uuid;index;not null"`
	MeetingDate      time.Time  `gorm:"not null;index"`
	TopicTitle       *string
	TopicDescription string
	TopicDeadline    time.Time  `gorm:"not null"`
	SubmittedAt      *time.Time
	Penalized        bool       `gorm:"not null;default:false"`
	CreatedByAdminID *string    `gorm:"type:uuid"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
}

func (Slot) TableName() string {
	return "presenter_slots"
}

type ScheduleInput struct {
	MemberID         string
	MeetingDate      time.Time
	TopicDeadline    time.Time
	CreatedByAdminID string
}
