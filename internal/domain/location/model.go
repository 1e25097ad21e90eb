package location

import "time"

// Location is a meeting venue. Its timezone anchors every time-tiered rule
// (late fees, cancellation windows, the Sunday-starting club week) for
// meetings held there.
type Location struct {
	ID                 string    `gorm:"type:uuid;primaryKey"`
	Name               string    `gorm:"not null;uniqueIndex"`
	Address            string    `gorm:"not null"`
	Timezone           string    `gorm:"not null;default:Asia/Seoul"`
	DefaultMeetingDay  int       `gorm:"not null;default:0"`     // 0 = Sunday
	DefaultMeetingTime string    `gorm:"not null;default:10:00"` // HH:MM local
	IsActive           bool      `gorm:"not null;default:true"`
	CreatedByAdminID   *string   `gorm:"type:uuid"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (Location) TableName() string {
	return "locations"
}

type CreateInput struct {
	Name               string
	Address            string
	Timezone           string
	DefaultMeetingDay  int
	DefaultMeetingTime string
	CreatedByAdminID   string
}

type UpdateInput struct {
	Name               *string
	Address            *string
	Timezone           *string
	DefaultMeetingDay  *int
	DefaultMeetingTime *string
	IsActive           *bool
}
