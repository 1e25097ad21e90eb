package location

import (
	"context"
	"errors"

	locationdomain "club-app-go/internal/domain/location"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, l *locationdomain.Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*locationdomain.Location, error) {
	var l locationdomain.Location
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, locationdomain.ErrLocationNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]locationdomain.Location, error) {
	var locations []locationdomain.Location
	if err := r.db.WithContext(ctx).Order("name asc").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *PostgresRepository) Update(ctx context.Context, l *locationdomain.Location) error {
	result := r.db.WithContext(ctx).Save(l)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return locationdomain.ErrLocationNotFound
	}
	return nil
}
