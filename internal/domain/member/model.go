package member

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

type Role string

const (
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
)

// HonorTier is the four-level membership rank. HONOR_I is the entry level,
// HONOR_IV the highest; higher tiers get more slack before an absence streak
// suspends them.
type HonorTier string

const (
	HonorI   HonorTier = "HONOR_I"
	HonorII  HonorTier = "HONOR_II"
	HonorIII HonorTier = "HONOR_III"
	HonorIV  HonorTier = "HONOR_IV"
)

func (t HonorTier) Valid() bool {
	switch t {
	case HonorI, HonorII, HonorIII, HonorIV:
		return true
	}
	return false
}

type Industry string

const (
	IndustryFinance       Industry = "FINANCE"
	IndustryIT            Industry = "IT"
	IndustryManufacturing Industry = "MANUFACTURING"
	IndustryHealthcare    Industry = "HEALTHCARE"
	IndustryEducation     Industry = "EDUCATION"
	IndustryConsulting    Industry = "CONSULTING"
	IndustryOther         Industry = "OTHER"
)

type Member struct {
	ID                  string     `gorm:"type:uuid;primaryKey"`
	Username            string     `gorm:"uniqueIndex;not null"`
	PasswordHash        string     `gorm:"not null"`
	KoreanName          string     `gorm:"column:korean_name"`
	EnglishName         string     `gorm:"column:english_name"`
	PhoneNumber         string
	Industry            Industry        `gorm:"type:text"`
	LinkedinURL         string          `gorm:"column:linkedin_url"`
	WebsiteURL          string          `gorm:"column:website_url"`
	Email               string
	HonorTier           HonorTier       `gorm:"type:text;not null;default:HONOR_I"`
	Role                Role            `gorm:"type:text;not null;default:MEMBER"`
	Status              Status          `gorm:"type:text;not null;default:ACTIVE"`
	InactiveReason      string
	IsLead              bool            `gorm:"not null;default:false"`
	IsSubLead           bool            `gorm:"not null;default:false"`
	LastAttendanceDate  *time.Time
	ConsecutiveAbsences int             `gorm:"not null;default:0"`
	AttendanceRate      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	MustChangePassword  bool            `gorm:"not null;default:false"`
	CreatedAt           time.Time       `gorm:"autoCreateTime"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime"`
}

func (Member) TableName() string {
	return "members"
}

type CreateInput struct {
	Username    string
	KoreanName  string
	EnglishName string
	PhoneNumber string
	Industry    Industry
	LinkedinURL string
	WebsiteURL  string
	Email       string
	HonorTier   HonorTier
	Role        Role
	IsLead      bool
	IsSubLead   bool
}

// UpdateInput carries optional field updates. Nil means leave untouched.
type UpdateInput struct {
	KoreanName  *string
	EnglishName *string
	PhoneNumber *string
	Industry    *Industry
	LinkedinURL *string
	WebsiteURL  *string
	Email       *string
	HonorTier   *HonorTier
	Role        *Role
	IsLead      *bool
	IsSubLead   *bool
}

type Ranking struct {
	MemberID       string
	Username       string
	EnglishName    string
	KoreanName     string
	HonorTier      HonorTier
	AttendanceRate decimal.Decimal
}

type Stats struct {
	TotalMembers         int64
	ConsecutiveAbsentees int64
}
