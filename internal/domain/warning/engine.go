package warning

import (
	"context"
	"fmt"
	"time"

	"club-app-go/internal/domain/member"
	"club-app-go/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const suspensionThreshold = 3

var lowBalanceThreshold = decimal.NewFromInt(15000)

// absenceThreshold returns the consecutive-absence count at which a member is
// auto-suspended. Room leads are exempt entirely; sub-leads and higher honor
// tiers get progressively more slack.
func absenceThreshold(m *member.Member) int {
	if m.IsLead {
		return 0 // never
	}
	if m.IsSubLead {
		return 6
	}
	switch m.HonorTier {
	case member.HonorIV:
		return 8
	case member.HonorIII:
		return 7
	case member.HonorII:
		return 6
	default:
		return 5
	}
}

// MemberDirectory is the slice of the member service the engine drives.
type MemberDirectory interface {
	Get(ctx context.Context, id string) (*member.Member, error)
	Suspend(ctx context.Context, id, reason string) error
	Activate(ctx context.Context, id string) error
	ResetAbsenceStreak(ctx context.Context, id string, attendedAt time.Time) error
	IncrementAbsenceStreak(ctx context.Context, id string) (int, error)
}

// Engine owns warning creation and the suspension policy that cascades from
// it: every new warning re-counts the member's unresolved warnings and
// suspends at the threshold, no overrides.
type Engine struct {
	repo    Repository
	members MemberDirectory
	log     logger.Logger
}

func NewEngine(repo Repository, members MemberDirectory, log logger.Logger) *Engine {
	return &Engine{repo: repo, members: members, log: log}
}

// Issue creates a warning and runs the suspension check.
func (e *Engine) Issue(ctx context.Context, memberID string, t Type, reason, issuedByAdminID string) (*Warning, error) {
	if !t.Valid() {
		return nil, ErrInvalidType
	}

	w := Warning{
		ID:       uuid.NewString(),
		MemberID: memberID,
		Type:     t,
		Reason:   reason,
	}
	if issuedByAdminID != "" {
		w.IssuedByAdminID = &issuedByAdminID
	}
	if err := e.repo.Create(ctx, &w); err != nil {
		return nil, err
	}

	if err := e.checkAndSuspend(ctx, memberID); err != nil {
		return nil, fmt.Errorf("suspension check: %w", err)
	}
	return &w, nil
}

// CheckLowBalance issues a LOW_BALANCE warning when the balance is at or
// below the threshold and none is already open for the member. Idempotent:
// repeated checks at a low balance never stack duplicates.
func (e *Engine) CheckLowBalance(ctx context.Context, memberID string, balance decimal.Decimal) error {
	if balance.GreaterThan(lowBalanceThreshold) {
		return nil
	}

	open, err := e.repo.HasUnresolvedOfType(ctx, memberID, TypeLowBalance)
	if err != nil {
		return err
	}
	if open {
		return nil
	}

	reason := fmt.Sprintf("Deposit balance %s is at or below %s", balance.StringFixed(0), lowBalanceThreshold.StringFixed(0))
	_, err = e.Issue(ctx, memberID, TypeLowBalance, reason, "")
	return err
}

func (e *Engine) checkAndSuspend(ctx context.Context, memberID string) error {
	count, err := e.repo.CountUnresolved(ctx, memberID)
	if err != nil {
		return err
	}
	if count < suspensionThreshold {
		return nil
	}

	reason := fmt.Sprintf("Suspended automatically: %d unresolved warnings", count)
	if err := e.members.Suspend(ctx, memberID, reason); err != nil {
		return err
	}
	e.log.Warn("warnings: member suspended", "member_id", memberID, "unresolved", count)
	return nil
}

// RecordAttendanceOutcome updates the member's consecutive-absence streak.
// Attending (PRESENT or LATE) resets the streak and stamps the attendance
// date; an absence increments it and suspends once the tiered threshold is
// reached.
func (e *Engine) RecordAttendanceOutcome(ctx context.Context, memberID string, attended bool, at time.Time) error {
	if attended {
		return e.members.ResetAbsenceStreak(ctx, memberID, at)
	}

	streak, err := e.members.IncrementAbsenceStreak(ctx, memberID)
	if err != nil {
		return err
	}

	m, err := e.members.Get(ctx, memberID)
	if err != nil {
		return err
	}

	threshold := absenceThreshold(m)
	if threshold == 0 || streak < threshold {
		return nil
	}

	reason := fmt.Sprintf("Suspended automatically: %d consecutive absences", streak)
	if err := e.members.Suspend(ctx, memberID, reason); err != nil {
		return err
	}
	e.log.Warn("warnings: member suspended for absence streak", "member_id", memberID, "streak", streak)
	return nil
}

// Resolve marks a single warning resolved. Resolving warnings never
// reactivates a suspended member; use Restore for that.
func (e *Engine) Resolve(ctx context.Context, warningID, adminID string) error {
	w, err := e.repo.GetByID(ctx, warningID)
	if err != nil {
		return err
	}
	if w.IsResolved {
		return ErrAlreadyResolved
	}
	return e.repo.Resolve(ctx, warningID, adminID)
}

// Restore resolves every unresolved warning for the member and sets them back
// to ACTIVE. This is the only automated path out of SUSPENDED.
func (e *Engine) Restore(ctx context.Context, memberID, adminID string) error {
	resolved, err := e.repo.ResolveAllForMember(ctx, memberID, adminID)
	if err != nil {
		return err
	}
	if err := e.members.Activate(ctx, memberID); err != nil {
		return err
	}
	e.log.Info("warnings: member restored", "member_id", memberID, "resolved", resolved, "admin_id", adminID)
	return nil
}

// ResetAll bulk-resolves every unresolved warning system-wide. It does not
// touch suspension status: a suspended member stays suspended until restored.
func (e *Engine) ResetAll(ctx context.Context) (int64, error) {
	return e.repo.ResolveAll(ctx)
}

func (e *Engine) ListForMember(ctx context.Context, memberID string) ([]Warning, error) {
	return e.repo.ListByMember(ctx, memberID)
}

func (e *Engine) ListUnresolved(ctx context.Context) ([]Warning, error) {
	return e.repo.ListUnresolved(ctx)
}
