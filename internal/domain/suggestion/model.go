package suggestion

import "time"

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusReviewed Status = "REVIEWED"
)

type Suggestion struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	MemberID  string    `gorm:"type:uuid;index;not null"`
	Title     string    `gorm:"not null"`
	Content   string    `gorm:"not null"`
	ImageURL  string    `gorm:"column:image_url"`
	Status    Status    `gorm:"type:text;not null;default:PENDING"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Suggestion) TableName() string {
	return "suggestions"
}
