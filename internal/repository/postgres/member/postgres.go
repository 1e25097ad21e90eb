package member

import (
	"context"
	"errors"
	"time"

	memberdomain "club-app-go/internal/domain/member"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(memberdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) Create(ctx context.Context, m *memberdomain.Member) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return memberdomain.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*memberdomain.Member, error) {
	var m memberdomain.Member
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*memberdomain.Member, error) {
	var m memberdomain.Member
	if err := r.db.WithContext(ctx).First(&m, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]memberdomain.Member, error) {
	var members []memberdomain.Member
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("status = ?", memberdomain.StatusActive).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PostgresRepository) Update(ctx context.Context, m *memberdomain.Member) error {
	result := r.db.WithContext(ctx).Save(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return memberdomain.ErrMemberNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash":        passwordHash,
			"must_change_password": false,
		}).Error
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status memberdomain.Status, reason string) error {
	result := r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          status,
			"inactive_reason": reason,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return memberdomain.ErrMemberNotFound
	}
	return nil
}

func (r *PostgresRepository) SetAttendanceRate(ctx context.Context, id string, rate decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("id = ?", id).
		Update("attendance_rate", rate).Error
}

func (r *PostgresRepository) ResetAbsenceStreak(ctx context.Context, id string, attendedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"consecutive_absences": 0,
			"last_attendance_date": attendedAt,
		}).Error
}

func (r *PostgresRepository) IncrementAbsenceStreak(ctx context.Context, id string) (int, error) {
	var streak int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&memberdomain.Member{}).
			Where("id = ?", id).
			Update("consecutive_absences", gorm.Expr("consecutive_absences + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return memberdomain.ErrMemberNotFound
		}
		return tx.Model(&memberdomain.Member{}).
			Select("consecutive_absences").
			Where("id = ?", id).
			Scan(&streak).Error
	})
	if err != nil {
		return 0, err
	}
	return streak, nil
}

func (r *PostgresRepository) CountByStatus(ctx context.Context, status memberdomain.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) CountAbsenceStreaksAtLeast(ctx context.Context, min int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("status = ? AND consecutive_absences >= ?", memberdomain.StatusActive, min).
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) AttendanceCounts(ctx context.Context, id string) (int64, int64, error) {
	var present, total int64
	if err := r.db.WithContext(ctx).
		Table("attendance_records").
		Where("member_id = ?", id).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).
		Table("attendance_records").
		Where("member_id = ? AND status = ?", id, "PRESENT").
		Count(&present).Error; err != nil {
		return 0, 0, err
	}
	return present, total, nil
}
