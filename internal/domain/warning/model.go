package warning

import "time"

type Type string

const (
	TypeLowBalance          Type = "LOW_BALANCE"
	TypeCancellationPenalty Type = "CANCELLATION_PENALTY"
	TypeLatePenalty         Type = "LATE_PENALTY"
	TypeAbsence             Type = "ABSENCE_WARNING"
	TypeOther               Type = "OTHER"
)

func (t Type) Valid() bool {
	switch t {
	case TypeLowBalance, TypeCancellationPenalty, TypeLatePenalty, TypeAbsence, TypeOther:
		return true
	}
	return false
}

type Warning struct {
	ID                string     `gorm:"type:uuid;primaryKey"`
	MemberID          string     `gorm:"type:uuid;index;not null"`
	Type              Type       `gorm:"column:warning_type;type:text;not null"`
	Reason            string     `gorm:"not null"`
	IssuedByAdminID   *string    `gorm:"type:uuid"`
	IsResolved        bool       `gorm:"not null;default:false;index"`
	ResolvedDate      *time.Time
	ResolvedByAdminID *string    `gorm:"type:uuid"`
	CreatedAt         time.Time  `gorm:"autoCreateTime"`
}

func (Warning) TableName() string {
	return "warnings"
}
