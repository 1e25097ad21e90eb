package finance

import (
	"context"
	"errors"
	"strings"

	"club-app-go/pkg/clock"
	"club-app-go/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceAlerter re-evaluates the low-balance warning rule after a balance
// change. Implemented by the warning engine.
type BalanceAlerter interface {
	CheckLowBalance(ctx context.Context, memberID string, balance decimal.Decimal) error
}

type Service struct {
	repo    Repository
	alerter BalanceAlerter
	clk     clock.Clock
	log     logger.Logger
}

func NewService(repo Repository, alerter BalanceAlerter, clk clock.Clock, log logger.Logger) *Service {
	return &Service{repo: repo, alerter: alerter, clk: clk, log: log}
}

// Credit adds amount to the member's balance. Amount must be strictly
// positive; the credit sign is applied internally.
func (s *Service) Credit(ctx context.Context, memberID string, amount decimal.Decimal, txType TransactionType, description string, opts EntryOptions) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	return s.post(ctx, memberID, amount, txType, description, opts)
}

// Debit subtracts amount from the member's balance. Amount must be strictly
// positive; the ledger stores it negated. The balance may go negative.
func (s *Service) Debit(ctx context.Context, memberID string, amount decimal.Decimal, txType TransactionType, description string, opts EntryOptions) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	return s.post(ctx, memberID, amount.Neg(), txType, description, opts)
}

// post applies one signed ledger entry as a single atomic unit: lock the
// account row, move the cached balance, append the transaction with the
// post-move balance. The signed parameter carries the direction; callers hand
// in a strictly positive magnitude.
func (s *Service) post(ctx context.Context, memberID string, signed decimal.Decimal, txType TransactionType, description string, opts EntryOptions) (*Transaction, error) {
	if !txType.Valid() {
		return nil, ErrInvalidTransactionType
	}
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return nil, errors.New("member id is required")
	}

	var result Transaction
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		account, err := s.lockOrCreateAccount(ctx, tx, memberID)
		if err != nil {
			return err
		}

		account.DepositBalance = account.DepositBalance.Add(signed)
		if txType == TypeDeposit && signed.IsPositive() {
			now := s.clk.Now()
			account.LastDepositDate = &now
		}
		if err := tx.UpdateAccount(ctx, account); err != nil {
			return err
		}

		result = Transaction{
			ID:           uuid.NewString(),
			MemberID:     memberID,
			AccountID:    account.ID,
			Type:         txType,
			Amount:       signed,
			BalanceAfter: account.DepositBalance,
			Description:  description,
		}
		if opts.RelatedAttendanceID != "" {
			result.RelatedAttendanceID = &opts.RelatedAttendanceID
		}
		if opts.ProcessedByAdminID != "" {
			result.ProcessedByAdminID = &opts.ProcessedByAdminID
		}

		return tx.CreateTransaction(ctx, &result)
	})
	if err != nil {
		return nil, err
	}

	// The low-balance rule runs on every balance change. A failure here must
	// not undo the already-committed ledger entry; it is logged for follow-up.
	if s.alerter != nil {
		if err := s.alerter.CheckLowBalance(ctx, memberID, result.BalanceAfter); err != nil {
			s.log.InternalError("ledger: low-balance check failed", err, "member_id", memberID, "balance", result.BalanceAfter.String())
		}
	}

	return &result, nil
}

// lockOrCreateAccount implements get-or-create under the member_id unique
// index: a concurrent create loses the race, surfaces ErrAccountExists, and
// re-reads the winner's row.
func (s *Service) lockOrCreateAccount(ctx context.Context, tx Repository, memberID string) (*Account, error) {
	account, err := tx.GetAccountForUpdate(ctx, memberID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	created := Account{
		ID:             uuid.NewString(),
		MemberID:       memberID,
		DepositBalance: decimal.Zero,
	}
	if err := tx.CreateAccount(ctx, &created); err != nil {
		if errors.Is(err, ErrAccountExists) {
			return tx.GetAccountForUpdate(ctx, memberID)
		}
		return nil, err
	}
	return &created, nil
}

// GetOrCreateAccount returns the member's account, creating an empty one on
// first access.
func (s *Service) GetOrCreateAccount(ctx context.Context, memberID string) (*Account, error) {
	account, err := s.repo.GetAccountByMemberID(ctx, memberID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	var result *Account
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		account, err := s.lockOrCreateAccount(ctx, tx, memberID)
		if err != nil {
			return err
		}
		result = account
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) Balance(ctx context.Context, memberID string) (decimal.Decimal, error) {
	account, err := s.GetOrCreateAccount(ctx, memberID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.DepositBalance, nil
}

// History returns the member's ledger entries in creation order.
func (s *Service) History(ctx context.Context, memberID string) ([]Transaction, error) {
	return s.repo.ListTransactions(ctx, memberID)
}

func (s *Service) ListAccounts(ctx context.Context) ([]Account, error) {
	return s.repo.ListAccounts(ctx)
}

// MarkAnnualFee toggles the annual-fee flag on the member's account.
func (s *Service) MarkAnnualFee(ctx context.Context, memberID string, paid bool) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		account, err := s.lockOrCreateAccount(ctx, tx, memberID)
		if err != nil {
			return err
		}
		account.AnnualFeePaid = paid
		if paid {
			now := s.clk.Now()
			account.AnnualFeeDate = &now
		} else {
			account.AnnualFeeDate = nil
		}
		return tx.UpdateAccount(ctx, account)
	})
}
