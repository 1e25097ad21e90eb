package warning

import "context"

type Repository interface {
	Create(ctx context.Context, w *Warning) error
	GetByID(ctx context.Context, id string) (*Warning, error)
	ListByMember(ctx context.Context, memberID string) ([]Warning, error)
	ListUnresolved(ctx context.Context) ([]Warning, error)
	CountUnresolved(ctx context.Context, memberID string) (int64, error)
	HasUnresolvedOfType(ctx context.Context, memberID string, t Type) (bool, error)
	Resolve(ctx context.Context, id, resolvedByAdminID string) error
	ResolveAllForMember(ctx context.Context, memberID, resolvedByAdminID string) (int64, error)
	ResolveAll(ctx context.Context) (int64, error)
}
