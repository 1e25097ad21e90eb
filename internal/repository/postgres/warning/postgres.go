package warning

import (
	"context"
	"errors"
	"time"

	warningdomain "club-app-go/internal/domain/warning"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, w *warningdomain.Warning) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*warningdomain.Warning, error) {
	var w warningdomain.Warning
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, warningdomain.ErrWarningNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *PostgresRepository) ListByMember(ctx context.Context, memberID string) ([]warningdomain.Warning, error) {
	var warnings []warningdomain.Warning
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at desc").
		Find(&warnings).Error
	if err != nil {
		return nil, err
	}
	return warnings, nil
}

func (r *PostgresRepository) ListUnresolved(ctx context.Context) ([]warningdomain.Warning, error) {
	var warnings []warningdomain.Warning
	err := r.db.WithContext(ctx).
		Where("is_resolved = false").
		Order("created_at desc").
		Find(&warnings).Error
	if err != nil {
		return nil, err
	}
	return warnings, nil
}

func (r *PostgresRepository) CountUnresolved(ctx context.Context, memberID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&warningdomain.Warning{}).
		Where("member_id = ? AND is_resolved = false", memberID).
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) HasUnresolvedOfType(ctx context.Context, memberID string, t warningdomain.Type) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&warningdomain.Warning{}).
		Where("member_id = ? AND warning_type = ? AND is_resolved = false", memberID, t).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) Resolve(ctx context.Context, id, resolvedByAdminID string) error {
	result := r.db.WithContext(ctx).
		Model(&warningdomain.Warning{}).
		Where("id = ? AND is_resolved = false", id).
		Updates(map[string]interface{}{
			"is_resolved":          true,
			"resolved_date":        time.Now().UTC(),
			"resolved_by_admin_id": resolvedByAdminID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return warningdomain.ErrAlreadyResolved
	}
	return nil
}

func (r *PostgresRepository) ResolveAllForMember(ctx context.Context, memberID, resolvedByAdminID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&warningdomain.Warning{}).
		Where("member_id = ? AND is_resolved = false", memberID).
		Updates(map[string]interface{}{
			"is_resolved":          true,
			"resolved_date":        time.Now().UTC(),
			"resolved_by_admin_id": resolvedByAdminID,
		})
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) ResolveAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&warningdomain.Warning{}).
		Where("is_resolved = false").
		Updates(map[string]interface{}{
			"is_resolved":   true,
			"resolved_date": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}
