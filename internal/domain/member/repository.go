package member

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id string) (*Member, error)
	GetByUsername(ctx context.Context, username string) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, m *Member) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetStatus(ctx context.Context, id string, status Status, reason string) error
	SetAttendanceRate(ctx context.Context, id string, rate decimal.Decimal) error
	ResetAbsenceStreak(ctx context.Context, id string, attendedAt time.Time) error
	IncrementAbsenceStreak(ctx context.Context, id string) (int, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	CountAbsenceStreaksAtLeast(ctx context.Context, min int) (int64, error)
	AttendanceCounts(ctx context.Context, id string) (present int64, total int64, err error)
}
