package presenter

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s *Slot) error
	GetByID(ctx context.Context, id string) (*Slot, error)
	List(ctx context.Context) ([]Slot, error)
	Update(ctx context.Context, s *Slot) error
	// ListOverdueUnpenalized returns slots whose topic deadline is past,
	// with no topic submitted and no penalty applied yet.
	ListOverdueUnpenalized(ctx context.Context, now time.Time) ([]Slot, error)
}
