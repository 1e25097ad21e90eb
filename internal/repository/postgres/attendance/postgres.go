package attendance

import (
	"context"
	"errors"
	"time"

	attendancedomain "club-app-go/internal/domain/attendance"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateRecord(ctx context.Context, rec *attendancedomain.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *PostgresRepository) ListRecordsByMember(ctx context.Context, memberID string) ([]attendancedomain.Record, error) {
	var records []attendancedomain.Record
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("meeting_date desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) ListRecordsByDate(ctx context.Context, dayStart, dayEnd time.Time) ([]attendancedomain.Record, error) {
	var records []attendancedomain.Record
	err := r.db.WithContext(ctx).
		Where("meeting_date >= ? AND meeting_date < ?", dayStart, dayEnd).
		Order("created_at asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) CountRecordsSince(ctx context.Context, since time.Time) (int64, int64, error) {
	var total, present int64
	err := r.db.WithContext(ctx).
		Model(&attendancedomain.Record{}).
		Where("meeting_date >= ?", since).
		Count(&total).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).
		Model(&attendancedomain.Record{}).
		Where("meeting_date >= ? AND status = ?", since, attendancedomain.StatusPresent).
		Count(&present).Error
	if err != nil {
		return 0, 0, err
	}
	return total, present, nil
}

func (r *PostgresRepository) CreatePending(ctx context.Context, p *attendancedomain.PendingRecord) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostgresRepository) GetPending(ctx context.Context, id string) (*attendancedomain.PendingRecord, error) {
	var p attendancedomain.PendingRecord
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendancedomain.ErrPendingNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) ListPending(ctx context.Context, status attendancedomain.PendingStatus) ([]attendancedomain.PendingRecord, error) {
	var pending []attendancedomain.PendingRecord
	query := r.db.WithContext(ctx).Order("submitted_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&pending).Error; err != nil {
		return nil, err
	}
	return pending, nil
}

func (r *PostgresRepository) UpdatePending(ctx context.Context, p *attendancedomain.PendingRecord) error {
	result := r.db.WithContext(ctx).Save(p)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return attendancedomain.ErrPendingNotFound
	}
	return nil
}

func (r *PostgresRepository) DeletePending(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&attendancedomain.PendingRecord{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
