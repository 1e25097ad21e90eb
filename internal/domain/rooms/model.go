package rooms

import "time"

// Assignment is one room for one meeting date: a leader plus the members who
// report attendance through that leader. It is both the unit pending
// attendance is submitted against and the history input for the
// pairing-avoidance allocator.
type Assignment struct {
	ID                string    `gorm:"type:uuid;primaryKey"`
	MeetingDate       time.Time `gorm:"not null;index"`
	LocationID        string    `gorm:"type:uuid;index;not null"`
	RoomNumber        string    `gorm:"not null"`
	RoomName          string    `gorm:"not null"`
	LeaderID          string    `gorm:"type:uuid;not null"`
	AssignedMemberIDs []string  `gorm:"serializer:json;not null"`
	CreatedByAdminID  *string   `gorm:"type:uuid"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
}

func (Assignment) TableName() string {
	return "room_assignments"
}

type CreateInput struct {
	MeetingDate       time.Time
	LocationID        string
	RoomNumber        string
	RoomName          string
	LeaderID          string
	AssignedMemberIDs []string
	CreatedByAdminID  string
}

// RoomPlan is one proposed room from the allocator.
type RoomPlan struct {
	MemberIDs []string
}
