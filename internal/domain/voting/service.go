package voting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"club-app-go/internal/domain/finance"
	"club-app-go/internal/domain/warning"
	"club-app-go/pkg/clock"
	"club-app-go/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const voteHistoryLimit = 50

// Ledger is the slice of the finance service the vote lifecycle needs.
type Ledger interface {
	Debit(ctx context.Context, memberID string, amount decimal.Decimal, txType finance.TransactionType, description string, opts finance.EntryOptions) (*finance.Transaction, error)
}

// Warnings issues rule-triggered warnings (which run the suspension check).
type Warnings interface {
	Issue(ctx context.Context, memberID string, t warning.Type, reason, issuedByAdminID string) (*warning.Warning, error)
}

// MemberRoster lists members eligible for non-voter penalties.
type MemberRoster interface {
	ListActiveIDs(ctx context.Context) ([]string, error)
}

// LocationDirectory resolves a location's timezone for week-boundary math.
type LocationDirectory interface {
	TZ(ctx context.Context, id string) (*time.Location, error)
}

type Service struct {
	repo      Repository
	ledger    Ledger
	warnings  Warnings
	members   MemberRoster
	locations LocationDirectory
	clk       clock.Clock
	log       logger.Logger
}

func NewService(repo Repository, ledger Ledger, warnings Warnings, members MemberRoster, locations LocationDirectory, clk clock.Clock, log logger.Logger) *Service {
	return &Service{
		repo:      repo,
		ledger:    ledger,
		warnings:  warnings,
		members:   members,
		locations: locations,
		clk:       clk,
		log:       log,
	}
}

func (s *Service) CreateVote(ctx context.Context, input CreateVoteInput) (*Vote, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if input.LocationID == "" {
		return nil, fmt.Errorf("location id is required")
	}
	if input.MeetingDate.IsZero() || input.Deadline.IsZero() {
		return nil, fmt.Errorf("meeting date and deadline are required")
	}
	if _, err := s.locations.TZ(ctx, input.LocationID); err != nil {
		return nil, err
	}

	v := Vote{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		LocationID:  input.LocationID,
		MeetingDate: input.MeetingDate,
		Deadline:    input.Deadline,
		Status:      VoteActive,
	}
	if input.CreatedByAdminID != "" {
		v.CreatedByAdminID = &input.CreatedByAdminID
	}

	if err := s.repo.CreateVote(ctx, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Vote, error) {
	return s.repo.GetVote(ctx, id)
}

func (s *Service) ListActive(ctx context.Context) ([]Vote, error) {
	return s.repo.ListActiveVotes(ctx)
}

func (s *Service) History(ctx context.Context) ([]Vote, error) {
	return s.repo.ListVoteHistory(ctx, voteHistoryLimit)
}

func (s *Service) Responses(ctx context.Context, voteID string) ([]Response, error) {
	return s.repo.ListResponses(ctx, voteID)
}

// Respond records or updates a member's answer to a vote.
//
// First responses are subject to the one-location-per-week policy: a member
// who already responded this club week (Sunday-starting, in the meeting
// location's timezone) to a vote for a different location is rejected.
//
// Updates are free in the NO→YES direction; YES→NO applies the tiered
// cancellation penalty against the current clock, and the meeting-day tier
// additionally opens a cancellation warning.
func (s *Service) Respond(ctx context.Context, memberID, voteID string, choice Choice) (*Response, error) {
	if !choice.Valid() {
		return nil, ErrInvalidChoice
	}

	vote, err := s.repo.GetVote(ctx, voteID)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	if vote.Status != VoteActive || now.After(vote.Deadline) {
		return nil, ErrVoteClosed
	}

	tz, err := s.locations.TZ(ctx, vote.LocationID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetResponse(ctx, voteID, memberID)
	if err != nil && !errors.Is(err, ErrResponseNotFound) {
		return nil, err
	}

	if existing == nil {
		if err := s.checkWeeklyExclusivity(ctx, memberID, vote, tz); err != nil {
			return nil, err
		}

		r := Response{
			ID:       uuid.NewString(),
			VoteID:   voteID,
			MemberID: memberID,
			Choice:   choice,
		}
		if err := s.repo.CreateResponse(ctx, &r); err != nil {
			return nil, err
		}
		return &r, nil
	}

	if existing.Choice == ChoiceYes && choice == ChoiceNo {
		if err := s.applyFlipPenalty(ctx, memberID, vote, tz, now); err != nil {
			return nil, err
		}
	}

	existing.Choice = choice
	if err := s.repo.UpdateResponse(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// checkWeeklyExclusivity enforces one meeting location per club week: the
// member's existing responses are scanned for any vote whose meeting date
// shares the Sunday-starting week with this vote but targets another
// location.
func (s *Service) checkWeeklyExclusivity(ctx context.Context, memberID string, vote *Vote, tz *time.Location) error {
	weekStart := clock.WeekStart(vote.MeetingDate, tz)
	weekEnd := weekStart.AddDate(0, 0, 7)

	others, err := s.repo.ListMemberResponsesBetween(ctx, memberID, weekStart, weekEnd)
	if err != nil {
		return err
	}
	for _, other := range others {
		if other.Vote.LocationID != vote.LocationID {
			return ErrWeeklyLocationConflict
		}
	}
	return nil
}

func (s *Service) applyFlipPenalty(ctx context.Context, memberID string, vote *Vote, tz *time.Location, now time.Time) error {
	amount, escalate := finance.FlipPenalty(now, vote.MeetingDate, tz)
	if amount.IsZero() {
		return nil
	}

	description := fmt.Sprintf("Cancellation penalty for %s", vote.MeetingDate.In(tz).Format("2006-01-02"))
	if _, err := s.ledger.Debit(ctx, memberID, amount, finance.TypeCancellationPenalty, description, finance.EntryOptions{}); err != nil {
		return fmt.Errorf("cancellation penalty debit: %w", err)
	}

	if escalate {
		reason := fmt.Sprintf("Cancelled attendance on meeting day %s", vote.MeetingDate.In(tz).Format("2006-01-02"))
		if _, err := s.warnings.Issue(ctx, memberID, warning.TypeCancellationPenalty, reason, ""); err != nil {
			// The penalty is already booked; a failed warning must not undo it.
			s.log.InternalError("voting: cancellation warning failed", err, "member_id", memberID, "vote_id", vote.ID)
		}
	}
	return nil
}

// HadYesVote reports whether the member held a YES response for any vote
// whose meeting falls on the given calendar day in tz. The attendance
// approval cascade uses this to detect an ABSENT despite a prior YES.
func (s *Service) HadYesVote(ctx context.Context, memberID string, meetingDate time.Time, tz *time.Location) (bool, error) {
	dayStart := clock.DayStart(meetingDate, tz)
	return s.repo.HasYesResponseOn(ctx, memberID, dayStart, dayStart.AddDate(0, 0, 1))
}

// CloseExpiredVotes is the deadline sweep: every ACTIVE vote past its
// deadline penalizes currently-ACTIVE members who never responded with an
// absence warning, then moves to CLOSED. CLOSED votes are never reprocessed,
// which makes an accidental double fire harmless.
func (s *Service) CloseExpiredVotes(ctx context.Context) ([]SweepResult, error) {
	now := s.clk.Now()
	expired, err := s.repo.ListExpiredActiveVotes(ctx, now)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, len(expired))
	for _, vote := range expired {
		result := SweepResult{VoteID: vote.ID}

		responses, err := s.repo.ListResponses(ctx, vote.ID)
		if err != nil {
			s.log.InternalError("voting: sweep list responses failed", err, "vote_id", vote.ID)
			continue
		}
		responded := make(map[string]struct{}, len(responses))
		for _, r := range responses {
			responded[r.MemberID] = struct{}{}
		}

		activeIDs, err := s.members.ListActiveIDs(ctx)
		if err != nil {
			s.log.InternalError("voting: sweep list members failed", err, "vote_id", vote.ID)
			continue
		}

		for _, memberID := range activeIDs {
			if _, ok := responded[memberID]; ok {
				continue
			}
			result.NonVoters++
			reason := fmt.Sprintf("Did not respond to vote %q before the deadline", vote.Title)
			if _, err := s.warnings.Issue(ctx, memberID, warning.TypeAbsence, reason, ""); err != nil {
				s.log.InternalError("voting: sweep warning failed", err, "vote_id", vote.ID, "member_id", memberID)
				continue
			}
			result.Warned++
		}

		if err := s.repo.UpdateVoteStatus(ctx, vote.ID, VoteClosed); err != nil {
			s.log.InternalError("voting: sweep close failed", err, "vote_id", vote.ID)
			continue
		}

		s.log.Info("voting: vote closed by sweep", "vote_id", vote.ID, "non_voters", result.NonVoters, "warned", result.Warned)
		results = append(results, result)
	}

	return results, nil
}

func (s *Service) CountActive(ctx context.Context) (int64, error) {
	votes, err := s.repo.ListActiveVotes(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(votes)), nil
}
