package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"club-app-go/pkg/clock"
	"club-app-go/pkg/logger"
	"github.com/shopspring/decimal"
)

type fakeFinanceRepo struct {
	accounts     map[string]*Account // keyed by member id
	transactions []Transaction
}

func newFakeFinanceRepo() *fakeFinanceRepo {
	return &fakeFinanceRepo{accounts: make(map[string]*Account)}
}

func (r *fakeFinanceRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeFinanceRepo) GetAccountForUpdate(ctx context.Context, memberID string) (*Account, error) {
	account, ok := r.accounts[memberID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

func (r *fakeFinanceRepo) GetAccountByMemberID(ctx context.Context, memberID string) (*Account, error) {
	return r.GetAccountForUpdate(ctx, memberID)
}

func (r *fakeFinanceRepo) CreateAccount(ctx context.Context, account *Account) error {
	if _, ok := r.accounts[account.MemberID]; ok {
		return ErrAccountExists
	}
	r.accounts[account.MemberID] = account
	return nil
}

func (r *fakeFinanceRepo) UpdateAccount(ctx context.Context, account *Account) error {
	if _, ok := r.accounts[account.MemberID]; !ok {
		return ErrAccountNotFound
	}
	r.accounts[account.MemberID] = account
	return nil
}

func (r *fakeFinanceRepo) ListAccounts(ctx context.Context) ([]Account, error) {
	result := make([]Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		result = append(result, *account)
	}
	return result, nil
}

func (r *fakeFinanceRepo) CreateTransaction(ctx context.Context, txn *Transaction) error {
	r.transactions = append(r.transactions, *txn)
	return nil
}

func (r *fakeFinanceRepo) ListTransactions(ctx context.Context, memberID string) ([]Transaction, error) {
	result := make([]Transaction, 0)
	for _, txn := range r.transactions {
		if txn.MemberID == memberID {
			result = append(result, txn)
		}
	}
	return result, nil
}

type fakeAlerter struct {
	calls    []decimal.Decimal
	memberID string
	err      error
}

func (a *fakeAlerter) CheckLowBalance(ctx context.Context, memberID string, balance decimal.Decimal) error {
	a.memberID = memberID
	a.calls = append(a.calls, balance)
	return a.err
}

func newFinanceService(repo *fakeFinanceRepo, alerter BalanceAlerter) *Service {
	clk := &clock.Fixed{Instant: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	return NewService(repo, alerter, clk, logger.Discard())
}

func TestCreditCreatesAccountLazily(t *testing.T) {
	repo := newFakeFinanceRepo()
	svc := newFinanceService(repo, nil)

	txn, err := svc.Credit(context.Background(), "m1", decimal.NewFromInt(20000), TypeDeposit, "initial deposit", EntryOptions{})
	if err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if !txn.Amount.Equal(decimal.NewFromInt(20000)) {
		t.Fatalf("amount = %s, want 20000", txn.Amount)
	}
	if !txn.BalanceAfter.Equal(decimal.NewFromInt(20000)) {
		t.Fatalf("balance after = %s, want 20000", txn.BalanceAfter)
	}

	account := repo.accounts["m1"]
	if account == nil {
		t.Fatal("account was not created")
	}
	if account.LastDepositDate == nil {
		t.Fatal("deposit did not stamp last deposit date")
	}
}

func TestDebitStoresNegativeAmount(t *testing.T) {
	repo := newFakeFinanceRepo()
	svc := newFinanceService(repo, nil)

	if _, err := svc.Credit(context.Background(), "m1", decimal.NewFromInt(10000), TypeDeposit, "", EntryOptions{}); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	txn, err := svc.Debit(context.Background(), "m1", decimal.NewFromInt(5000), TypeRoomFee, "room fee", EntryOptions{})
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if !txn.Amount.Equal(decimal.NewFromInt(-5000)) {
		t.Fatalf("stored amount = %s, want -5000", txn.Amount)
	}
	if !txn.BalanceAfter.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("balance after = %s, want 5000", txn.BalanceAfter)
	}
}

func TestNonPositiveAmountsRejected(t *testing.T) {
	repo := newFakeFinanceRepo()
	svc := newFinanceService(repo, nil)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		if _, err := svc.Credit(context.Background(), "m1", amount, TypeDeposit, "", EntryOptions{}); !errors.Is(err, ErrNonPositiveAmount) {
			t.Errorf("Credit(%s) err = %v, want ErrNonPositiveAmount", amount, err)
		}
		if _, err := svc.Debit(context.Background(), "m1", amount, TypeRoomFee, "", EntryOptions{}); !errors.Is(err, ErrNonPositiveAmount) {
			t.Errorf("Debit(%s) err = %v, want ErrNonPositiveAmount", amount, err)
		}
	}
	if len(repo.transactions) != 0 {
		t.Fatalf("rejected entries still recorded %d transactions", len(repo.transactions))
	}
}

func TestInvalidTransactionTypeRejected(t *testing.T) {
	repo := newFakeFinanceRepo()
	svc := newFinanceService(repo, nil)

	if _, err := svc.Credit(context.Background(), "m1", decimal.NewFromInt(100), TransactionType("BOGUS"), "", EntryOptions{}); !errors.Is(err, ErrInvalidTransactionType) {
		t.Fatalf("err = %v, want ErrInvalidTransactionType", err)
	}
}

func TestBalanceAllowedNegative(t *testing.T) {
	repo := newFakeFinanceRepo()
	svc := newFinanceService(repo, nil)

	txn, err := svc.Debit(context.Background(), "m1", decimal.NewFromInt(10000), TypeLateFee, "", EntryOptions{})
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if !txn.BalanceAfter.Equal(decimal.NewFromInt(-10000)) {
		t.Fatalf("balance after = %s, want -10000", txn.BalanceAfter)
	}
}

// Replaying the ledger in order must reproduce every BalanceAfter snapshot
// and end at the account's cached balance.
func TestLedgerReplay(t *testing.T) {
	repo := newFakeFinanceRepo()
	svc := newFinanceService(repo, nil)
	ctx := context.Background()

	steps := []struct {
		credit bool
		amount int64
		txType TransactionType
	}{
		{true, 50000, TypeDeposit},
		{false, 5000, TypeRoomFee},
		{false, 7000, TypeLateFee},
		{true, 3000, TypeRefund},
		{false, 10000, TypeCancellationPenalty},
	}
	for _, step := range steps {
		var err error
		if step.credit {
			_, err = svc.Credit(ctx, "m1", decimal.NewFromInt(step.amount), step.txType, "", EntryOptions{})
		} else {
			_, err = svc.Debit(ctx, "m1", decimal.NewFromInt(step.amount), step.txType, "", EntryOptions{})
		}
		if err != nil {
			t.Fatalf("step %+v failed: %v", step, err)
		}
	}

	history, err := svc.History(ctx, "m1")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	running := decimal.Zero
	for i, txn := range history {
		running = running.Add(txn.Amount)
		if !txn.BalanceAfter.Equal(running) {
			t.Fatalf("entry %d: balance after = %s, replay = %s", i, txn.BalanceAfter, running)
		}
	}

	balance, err := svc.Balance(ctx, "m1")
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if !balance.Equal(running) {
		t.Fatalf("cached balance %s != replayed %s", balance, running)
	}
	if !balance.Equal(decimal.NewFromInt(31000)) {
		t.Fatalf("balance = %s, want 31000", balance)
	}
}

func TestLowBalanceHookRunsAfterEveryEntry(t *testing.T) {
	repo := newFakeFinanceRepo()
	alerter := &fakeAlerter{}
	svc := newFinanceService(repo, alerter)
	ctx := context.Background()

	if _, err := svc.Credit(ctx, "m1", decimal.NewFromInt(20000), TypeDeposit, "", EntryOptions{}); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if _, err := svc.Debit(ctx, "m1", decimal.NewFromInt(5000), TypeRoomFee, "", EntryOptions{}); err != nil {
		t.Fatalf("debit failed: %v", err)
	}

	if len(alerter.calls) != 2 {
		t.Fatalf("alerter ran %d times, want 2", len(alerter.calls))
	}
	if !alerter.calls[1].Equal(decimal.NewFromInt(15000)) {
		t.Fatalf("second check saw balance %s, want 15000", alerter.calls[1])
	}
	if alerter.memberID != "m1" {
		t.Fatalf("alerter member = %q, want m1", alerter.memberID)
	}
}

func TestAlerterFailureDoesNotFailEntry(t *testing.T) {
	repo := newFakeFinanceRepo()
	alerter := &fakeAlerter{err: errors.New("warning store down")}
	svc := newFinanceService(repo, alerter)

	txn, err := svc.Debit(context.Background(), "m1", decimal.NewFromInt(5000), TypeRoomFee, "", EntryOptions{})
	if err != nil {
		t.Fatalf("entry failed on alerter error: %v", err)
	}
	if txn == nil {
		t.Fatal("entry not returned")
	}
	if len(repo.transactions) != 1 {
		t.Fatalf("ledger has %d entries, want 1", len(repo.transactions))
	}
}

func TestMarkAnnualFee(t *testing.T) {
	repo := newFakeFinanceRepo()
	svc := newFinanceService(repo, nil)
	ctx := context.Background()

	if err := svc.MarkAnnualFee(ctx, "m1", true); err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	account := repo.accounts["m1"]
	if account == nil || !account.AnnualFeePaid || account.AnnualFeeDate == nil {
		t.Fatal("annual fee not marked paid")
	}

	if err := svc.MarkAnnualFee(ctx, "m1", false); err != nil {
		t.Fatalf("mark unpaid failed: %v", err)
	}
	if account := repo.accounts["m1"]; account.AnnualFeePaid || account.AnnualFeeDate != nil {
		t.Fatal("annual fee not cleared")
	}
}
