package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeAnnualFee           TransactionType = "ANNUAL_FEE"
	TypeDeposit             TransactionType = "DEPOSIT"
	TypeRoomFee             TransactionType = "ROOM_FEE"
	TypeLateFee             TransactionType = "LATE_FEE"
	TypeCancellationPenalty TransactionType = "CANCELLATION_PENALTY"
	TypePresenterPenalty    TransactionType = "PRESENTER_PENALTY"
	TypeRefund              TransactionType = "REFUND"
	TypeAdjustment          TransactionType = "ADJUSTMENT"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeAnnualFee, TypeDeposit, TypeRoomFee, TypeLateFee,
		TypeCancellationPenalty, TypePresenterPenalty, TypeRefund, TypeAdjustment:
		return true
	}
	return false
}

// Account holds a member's deposit balance. Exactly one account exists per
// member, created lazily on the first financial interaction. The balance has
// no floor; negative balances are allowed and feed the low-balance rule.
type Account struct {
	ID              string          `gorm:"type:uuid;primaryKey"`
	MemberID        string          `gorm:"type:uuid;uniqueIndex;not null"`
	AnnualFeePaid   bool            `gorm:"not null;default:false"`
	AnnualFeeDate   *time.Time
	DepositBalance  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	LastDepositDate *time.Time
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime"`
}

func (Account) TableName() string {
	return "financial_accounts"
}

// Transaction is an immutable ledger entry. Amount is signed: credits are
// positive, debits negative. BalanceAfter snapshots the account balance
// immediately after this entry, so the full balance is always derivable by
// replaying entries in creation order.
type Transaction struct {
	ID                  string          `gorm:"type:uuid;primaryKey"`
	MemberID            string          `gorm:"type:uuid;index;not null"`
	AccountID           string          `gorm:"type:uuid;index;not null"`
	Type                TransactionType `gorm:"column:transaction_type;type:text;not null"`
	Amount              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BalanceAfter        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description         string
	RelatedAttendanceID *string         `gorm:"type:uuid"`
	ProcessedByAdminID  *string         `gorm:"type:uuid"`
	CreatedAt           time.Time       `gorm:"autoCreateTime"`
}

func (Transaction) TableName() string {
	return "financial_transactions"
}

// EntryOptions carries the optional bookkeeping references for a ledger entry.
type EntryOptions struct {
	RelatedAttendanceID string
	ProcessedByAdminID  string
}
