package attendance

import (
	"context"
	"time"
)

type Repository interface {
	CreateRecord(ctx context.Context, r *Record) error
	ListRecordsByMember(ctx context.Context, memberID string) ([]Record, error)
	ListRecordsByDate(ctx context.Context, dayStart, dayEnd time.Time) ([]Record, error)
	CountRecordsSince(ctx context.Context, since time.Time) (total int64, present int64, err error)

	CreatePending(ctx context.Context, p *PendingRecord) error
	GetPending(ctx context.Context, id string) (*PendingRecord, error)
	ListPending(ctx context.Context, status PendingStatus) ([]PendingRecord, error)
	UpdatePending(ctx context.Context, p *PendingRecord) error
	DeletePending(ctx context.Context, id string) (bool, error)
}
