package rooms

import (
	"context"
	"errors"
	"time"

	roomsdomain "club-app-go/internal/domain/rooms"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, a *roomsdomain.Assignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*roomsdomain.Assignment, error) {
	var a roomsdomain.Assignment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, roomsdomain.ErrAssignmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PostgresRepository) ListByDate(ctx context.Context, dayStart, dayEnd time.Time) ([]roomsdomain.Assignment, error) {
	var assignments []roomsdomain.Assignment
	err := r.db.WithContext(ctx).
		Where("meeting_date >= ? AND meeting_date < ?", dayStart, dayEnd).
		Order("room_number asc").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]roomsdomain.Assignment, error) {
	var assignments []roomsdomain.Assignment
	query := r.db.WithContext(ctx).Order("meeting_date desc, room_number asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}
