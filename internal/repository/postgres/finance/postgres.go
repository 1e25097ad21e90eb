package finance

import (
	"context"
	"errors"

	financedomain "club-app-go/internal/domain/finance"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(financedomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetAccountForUpdate(ctx context.Context, memberID string) (*financedomain.Account, error) {
	var account financedomain.Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, "member_id = ?", memberID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, financedomain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *PostgresRepository) GetAccountByMemberID(ctx context.Context, memberID string) (*financedomain.Account, error) {
	var account financedomain.Account
	err := r.db.WithContext(ctx).First(&account, "member_id = ?", memberID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, financedomain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *PostgresRepository) CreateAccount(ctx context.Context, account *financedomain.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return financedomain.ErrAccountExists
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) UpdateAccount(ctx context.Context, account *financedomain.Account) error {
	result := r.db.WithContext(ctx).Save(account)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return financedomain.ErrAccountNotFound
	}
	return nil
}

func (r *PostgresRepository) ListAccounts(ctx context.Context) ([]financedomain.Account, error) {
	var accounts []financedomain.Account
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *PostgresRepository) CreateTransaction(ctx context.Context, txn *financedomain.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *PostgresRepository) ListTransactions(ctx context.Context, memberID string) ([]financedomain.Transaction, error) {
	var txns []financedomain.Transaction
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at desc").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}
