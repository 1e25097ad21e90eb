package presenter

import (
	"context"
	"errors"
	"time"

	presenterdomain "club-app-go/internal/domain/presenter"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *presenterdomain.Slot) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*presenterdomain.Slot, error) {
	var s presenterdomain.Slot
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, presenterdomain.ErrSlotNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]presenterdomain.Slot, error) {
	var slots []presenterdomain.Slot
	if err := r.db.WithContext(ctx).Order("meeting_date desc").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s *presenterdomain.Slot) error {
	result := r.db.WithContext(ctx).Save(s)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return presenterdomain.ErrSlotNotFound
	}
	return nil
}

func (r *PostgresRepository) ListOverdueUnpenalized(ctx context.Context, now time.Time) ([]presenterdomain.Slot, error) {
	var slots []presenterdomain.Slot
	err := r.db.WithContext(ctx).
		Where("topic_deadline <= ? AND submitted_at IS NULL AND penalized = false", now).
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}
