package rooms

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a *Assignment) error
	GetByID(ctx context.Context, id string) (*Assignment, error)
	ListByDate(ctx context.Context, dayStart, dayEnd time.Time) ([]Assignment, error)
	ListRecent(ctx context.Context, limit int) ([]Assignment, error)
}
