package suggestion

import (
	"context"
	"errors"

	suggestiondomain "club-app-go/internal/domain/suggestion"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *suggestiondomain.Suggestion) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*suggestiondomain.Suggestion, error) {
	var s suggestiondomain.Suggestion
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, suggestiondomain.ErrSuggestionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]suggestiondomain.Suggestion, error) {
	var suggestions []suggestiondomain.Suggestion
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&suggestions).Error; err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status suggestiondomain.Status) error {
	result := r.db.WithContext(ctx).
		Model(&suggestiondomain.Suggestion{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return suggestiondomain.ErrSuggestionNotFound
	}
	return nil
}
