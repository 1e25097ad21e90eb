package finance

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	// GetAccountForUpdate locks the account row for the duration of the
	// surrounding transaction so balance updates serialize per account.
	GetAccountForUpdate(ctx context.Context, memberID string) (*Account, error)
	GetAccountByMemberID(ctx context.Context, memberID string) (*Account, error)
	CreateAccount(ctx context.Context, account *Account) error
	UpdateAccount(ctx context.Context, account *Account) error
	ListAccounts(ctx context.Context) ([]Account, error)
	CreateTransaction(ctx context.Context, txn *Transaction) error
	ListTransactions(ctx context.Context, memberID string) ([]Transaction, error)
}
