package suggestion

import "context"

type Repository interface {
	Create(ctx context.Context, s *Suggestion) error
	GetByID(ctx context.Context, id string) (*Suggestion, error)
	List(ctx context.Context) ([]Suggestion, error)
	SetStatus(ctx context.Context, id string, status Status) error
}
