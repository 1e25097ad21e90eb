package presenter

import (
	"context"
	"fmt"
	"strings"

	"club-app-go/internal/domain/finance"
	"club-app-go/pkg/clock"
	"club-app-go/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Ledger interface {
	Debit(ctx context.Context, memberID string, amount decimal.Decimal, txType finance.TransactionType, description string, opts finance.EntryOptions) (*finance.Transaction, error)
}

type Service struct {
	repo   Repository
	ledger Ledger
	clk    clock.Clock
	log    logger.Logger
}

func NewService(repo Repository, ledger Ledger, clk clock.Clock, log logger.Logger) *Service {
	return &Service{repo: repo, ledger: ledger, clk: clk, log: log}
}

func (s *Service) Schedule(ctx context.Context, input ScheduleInput) (*Slot, error) {
	if input.MemberID == "" {
		return nil, fmt.Errorf("member id is required")
	}
	if input.MeetingDate.IsZero() || input.TopicDeadline.IsZero() {
		return nil, fmt.Errorf("meeting date and topic deadline are required")
	}

	slot := Slot{
		ID:            uuid.NewString(),
		MemberID:      input.MemberID,
		MeetingDate:   input.MeetingDate,
		TopicDeadline: input.TopicDeadline,
	}
	if input.CreatedByAdminID != "" {
		slot.CreatedByAdminID = &input.CreatedByAdminID
	}

	if err := s.repo.Create(ctx, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (s *Service) List(ctx context.Context) ([]Slot, error) {
	return s.repo.List(ctx)
}

// SubmitTopic records the presenter's topic. Late submissions are accepted;
// the deadline penalty, if already applied, stands.
func (s *Service) SubmitTopic(ctx context.Context, memberID, slotID, title, description string) (*Slot, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTopicRequired
	}

	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.MemberID != memberID {
		return nil, ErrNotPresenter
	}

	now := s.clk.Now()
	slot.TopicTitle = &title
	slot.TopicDescription = strings.TrimSpace(description)
	slot.SubmittedAt = &now
	if err := s.repo.Update(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// PenalizeOverdue debits the flat presenter penalty for every slot whose
// topic deadline passed without a submission. The penalized flag makes the
// operation idempotent; individual debit failures are logged and the rest of
// the slots still process.
func (s *Service) PenalizeOverdue(ctx context.Context) (int, error) {
	overdue, err := s.repo.ListOverdueUnpenalized(ctx, s.clk.Now())
	if err != nil {
		return 0, err
	}

	penalized := 0
	for i := range overdue {
		slot := &overdue[i]
		description := fmt.Sprintf("Presenter topic missed deadline for %s", slot.MeetingDate.Format("2006-01-02"))
		if _, err := s.ledger.Debit(ctx, slot.MemberID, finance.PresenterLatePenalty(), finance.TypePresenterPenalty, description, finance.EntryOptions{}); err != nil {
			s.log.InternalError("presenter: penalty debit failed", err, "slot_id", slot.ID, "member_id", slot.MemberID)
			continue
		}

		slot.Penalized = true
		if err := s.repo.Update(ctx, slot); err != nil {
			s.log.InternalError("presenter: penalty flag update failed", err, "slot_id", slot.ID)
			continue
		}
		penalized++
	}

	return penalized, nil
}
