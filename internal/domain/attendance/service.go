package attendance

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"club-app-go/internal/domain/finance"
	"club-app-go/internal/domain/location"
	"club-app-go/internal/domain/rooms"
	"club-app-go/internal/domain/warning"
	"club-app-go/pkg/clock"
	"club-app-go/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var arrivalTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Ledger is the slice of the finance service the approval cascade needs.
type Ledger interface {
	Debit(ctx context.Context, memberID string, amount decimal.Decimal, txType finance.TransactionType, description string, opts finance.EntryOptions) (*finance.Transaction, error)
}

// Warnings covers the warning-engine operations the cascade drives.
type Warnings interface {
	Issue(ctx context.Context, memberID string, t warning.Type, reason, issuedByAdminID string) (*warning.Warning, error)
	RecordAttendanceOutcome(ctx context.Context, memberID string, attended bool, at time.Time) error
}

// VoteChecker detects a prior YES vote for a meeting day.
type VoteChecker interface {
	HadYesVote(ctx context.Context, memberID string, meetingDate time.Time, tz *time.Location) (bool, error)
}

// RoomDirectory resolves the room assignment a batch reports against.
type RoomDirectory interface {
	Get(ctx context.Context, id string) (*rooms.Assignment, error)
}

// LocationDirectory resolves meeting-local time for late-fee math.
type LocationDirectory interface {
	TZ(ctx context.Context, id string) (*time.Location, error)
	MeetingStart(ctx context.Context, id string, meetingDate time.Time) (time.Time, error)
}

// RateTracker recomputes a member's cached attendance percentage.
type RateTracker interface {
	RecalculateAttendanceRate(ctx context.Context, memberID string) (decimal.Decimal, error)
}

type Service struct {
	repo      Repository
	ledger    Ledger
	warnings  Warnings
	votes     VoteChecker
	rooms     RoomDirectory
	locations LocationDirectory
	rates     RateTracker
	clk       clock.Clock
	log       logger.Logger
}

func NewService(repo Repository, ledger Ledger, warnings Warnings, votes VoteChecker, rooms RoomDirectory, locations LocationDirectory, rates RateTracker, clk clock.Clock, log logger.Logger) *Service {
	return &Service{
		repo:      repo,
		ledger:    ledger,
		warnings:  warnings,
		votes:     votes,
		rooms:     rooms,
		locations: locations,
		rates:     rates,
		clk:       clk,
		log:       log,
	}
}

// SubmitPending creates a leader's attendance batch for admin review. The
// batch must cover every member of the room assignment exactly once, and
// LATE entries must carry an HH:MM arrival time.
func (s *Service) SubmitPending(ctx context.Context, leaderID, roomAssignmentID string, entries []Entry) (*PendingRecord, error) {
	assignment, err := s.rooms.Get(ctx, roomAssignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.LeaderID != leaderID {
		return nil, ErrNotRoomLeader
	}
	if err := validateEntries(assignment, entries); err != nil {
		return nil, err
	}

	p := PendingRecord{
		ID:                  uuid.NewString(),
		RoomAssignmentID:    roomAssignmentID,
		SubmittedByLeaderID: leaderID,
		MeetingDate:         assignment.MeetingDate,
		Entries:             entries,
		Status:              PendingStatusPending,
	}
	if err := s.repo.CreatePending(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePending replaces the batch entries. Only the submitting leader may
// edit, and only while the batch is still PENDING.
func (s *Service) UpdatePending(ctx context.Context, leaderID, pendingID string, entries []Entry) (*PendingRecord, error) {
	p, err := s.repo.GetPending(ctx, pendingID)
	if err != nil {
		return nil, err
	}
	if p.SubmittedByLeaderID != leaderID {
		return nil, ErrNotSubmittingLeader
	}
	if p.Status != PendingStatusPending {
		return nil, ErrNotPending
	}

	assignment, err := s.rooms.Get(ctx, p.RoomAssignmentID)
	if err != nil {
		return nil, err
	}
	if err := validateEntries(assignment, entries); err != nil {
		return nil, err
	}

	p.Entries = entries
	if err := s.repo.UpdatePending(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePending(ctx context.Context, leaderID, pendingID string) error {
	p, err := s.repo.GetPending(ctx, pendingID)
	if err != nil {
		return err
	}
	if p.SubmittedByLeaderID != leaderID {
		return ErrNotSubmittingLeader
	}
	if p.Status != PendingStatusPending {
		return ErrNotPending
	}

	deleted, err := s.repo.DeletePending(ctx, pendingID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPendingNotFound
	}
	return nil
}

func (s *Service) GetPending(ctx context.Context, id string) (*PendingRecord, error) {
	return s.repo.GetPending(ctx, id)
}

func (s *Service) ListPending(ctx context.Context, status PendingStatus) ([]PendingRecord, error) {
	return s.repo.ListPending(ctx, status)
}

// Approve processes a PENDING batch. Each member's effects run in order:
// record creation, room fee, late fee, absent-after-YES penalty, absence
// streak, attendance rate. The effects are independent: one member's fee
// failure is logged and collected without blocking the rest of the batch,
// and the batch is marked APPROVED once the loop completes.
func (s *Service) Approve(ctx context.Context, adminID, pendingID string) (*ApprovalResult, error) {
	p, err := s.repo.GetPending(ctx, pendingID)
	if err != nil {
		return nil, err
	}
	if p.Status != PendingStatusPending {
		return nil, ErrNotPending
	}

	assignment, err := s.rooms.Get(ctx, p.RoomAssignmentID)
	if err != nil {
		return nil, err
	}

	result := &ApprovalResult{PendingID: p.ID}
	for _, entry := range p.Entries {
		s.applyEntry(ctx, adminID, assignment.LocationID, p.MeetingDate, entry, result)
	}

	now := s.clk.Now()
	p.Status = PendingStatusApproved
	p.ReviewedByAdminID = &adminID
	p.ReviewedAt = &now
	if err := s.repo.UpdatePending(ctx, p); err != nil {
		return nil, fmt.Errorf("mark approved: %w", err)
	}

	if len(result.Skipped) > 0 {
		s.log.Warn("attendance: approval completed with skipped effects", "pending_id", p.ID, "skipped", len(result.Skipped))
	}
	return result, nil
}

// Reject closes a PENDING batch with a reason. No financial or attendance
// side effects occur.
func (s *Service) Reject(ctx context.Context, adminID, pendingID, reason string) (*PendingRecord, error) {
	p, err := s.repo.GetPending(ctx, pendingID)
	if err != nil {
		return nil, err
	}
	if p.Status != PendingStatusPending {
		return nil, ErrNotPending
	}

	now := s.clk.Now()
	p.Status = PendingStatusRejected
	p.ReviewedByAdminID = &adminID
	p.ReviewedAt = &now
	p.RejectReason = reason
	if err := s.repo.UpdatePending(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RecordDirect is the admin path around the review queue: it creates one
// attendance record and runs the same effect pipeline as batch approval.
func (s *Service) RecordDirect(ctx context.Context, adminID string, input DirectEntryInput) (*ApprovalResult, error) {
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	entry := Entry{
		MemberID:    input.MemberID,
		Status:      input.Status,
		ArrivalTime: input.ArrivalTime,
		Notes:       input.Notes,
	}
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	result := &ApprovalResult{}
	s.applyEntry(ctx, adminID, input.LocationID, input.MeetingDate, entry, result)
	if len(result.RecordIDs) == 0 {
		return nil, fmt.Errorf("attendance record creation failed")
	}
	return result, nil
}

// applyEntry runs one member's effect sequence. Only the record creation is
// load-bearing: if it fails the dependent effects are skipped for that
// member, otherwise each later failure is logged and collected while the
// sequence continues.
func (s *Service) applyEntry(ctx context.Context, adminID, locationID string, meetingDate time.Time, entry Entry, result *ApprovalResult) {
	skip := func(effect string, err error) {
		s.log.InternalError("attendance: effect skipped", err, "member_id", entry.MemberID, "effect", effect)
		result.Skipped = append(result.Skipped, EffectFailure{
			MemberID: entry.MemberID,
			Effect:   effect,
			Reason:   err.Error(),
		})
	}

	tz := time.UTC
	if locationID != "" {
		if loaded, err := s.locations.TZ(ctx, locationID); err == nil {
			tz = loaded
		} else {
			skip("location", err)
		}
	}

	var arrival *time.Time
	if entry.Status == StatusLate {
		at, err := location.CombineDayAndTime(meetingDate, entry.ArrivalTime, tz)
		if err != nil {
			skip("arrival_time", err)
		} else {
			arrival = &at
		}
	}

	record := Record{
		ID:          uuid.NewString(),
		MemberID:    entry.MemberID,
		MeetingDate: meetingDate,
		Status:      entry.Status,
		ArrivalTime: arrival,
		Notes:       entry.Notes,
	}
	if locationID != "" {
		record.LocationID = &locationID
	}
	if adminID != "" {
		record.RecordedByAdminID = &adminID
	}
	if err := s.repo.CreateRecord(ctx, &record); err != nil {
		skip("record", err)
		return
	}
	result.RecordIDs = append(result.RecordIDs, record.ID)

	opts := finance.EntryOptions{RelatedAttendanceID: record.ID, ProcessedByAdminID: adminID}
	day := meetingDate.In(tz).Format("2006-01-02")

	if entry.Status.Attended() {
		if _, err := s.ledger.Debit(ctx, entry.MemberID, finance.RoomFee(true), finance.TypeRoomFee, fmt.Sprintf("Room fee for %s", day), opts); err != nil {
			skip("room_fee", err)
		}
	}

	if entry.Status == StatusLate && arrival != nil {
		start, err := s.locations.MeetingStart(ctx, locationID, meetingDate)
		if err != nil {
			skip("late_fee", err)
		} else if fee := finance.LateFee(start, *arrival); fee.IsPositive() {
			if _, err := s.ledger.Debit(ctx, entry.MemberID, fee, finance.TypeLateFee, fmt.Sprintf("Late fee for %s (arrived %s)", day, entry.ArrivalTime), opts); err != nil {
				skip("late_fee", err)
			}
		}
	}

	if entry.Status == StatusAbsent {
		hadYes, err := s.votes.HadYesVote(ctx, entry.MemberID, meetingDate, tz)
		if err != nil {
			skip("yes_vote_check", err)
		} else if hadYes {
			if _, err := s.ledger.Debit(ctx, entry.MemberID, finance.AbsenceAfterYesPenalty(), finance.TypeCancellationPenalty, fmt.Sprintf("Absent despite YES vote for %s", day), opts); err != nil {
				skip("cancellation_penalty", err)
			}
			reason := fmt.Sprintf("Absent on %s despite a YES vote", day)
			if _, err := s.warnings.Issue(ctx, entry.MemberID, warning.TypeCancellationPenalty, reason, adminID); err != nil {
				skip("cancellation_warning", err)
			}
		}
	}

	if err := s.warnings.RecordAttendanceOutcome(ctx, entry.MemberID, entry.Status.Attended(), meetingDate); err != nil {
		skip("absence_streak", err)
	}

	if _, err := s.rates.RecalculateAttendanceRate(ctx, entry.MemberID); err != nil {
		skip("attendance_rate", err)
	}
}

func (s *Service) HistoryByMember(ctx context.Context, memberID string) ([]Record, error) {
	return s.repo.ListRecordsByMember(ctx, memberID)
}

func (s *Service) ByDate(ctx context.Context, date time.Time) ([]Record, error) {
	dayStart := clock.DayStart(date, time.UTC)
	return s.repo.ListRecordsByDate(ctx, dayStart, dayStart.AddDate(0, 0, 1))
}

// WeeklyRate is the share of PRESENT records over the last seven days, as a
// whole percentage.
func (s *Service) WeeklyRate(ctx context.Context) (int64, error) {
	since := s.clk.Now().AddDate(0, 0, -7)
	total, present, err := s.repo.CountRecordsSince(ctx, since)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	return present * 100 / total, nil
}

func validateEntries(assignment *rooms.Assignment, entries []Entry) error {
	assigned := make(map[string]struct{}, len(assignment.AssignedMemberIDs))
	for _, id := range assignment.AssignedMemberIDs {
		assigned[id] = struct{}{}
	}

	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if _, ok := assigned[entry.MemberID]; !ok {
			return ErrUnknownBatchMember
		}
		if _, dup := seen[entry.MemberID]; dup {
			return ErrDuplicateBatchMember
		}
		seen[entry.MemberID] = struct{}{}

		if err := validateEntry(entry); err != nil {
			return err
		}
	}

	if len(seen) != len(assigned) {
		return ErrIncompleteBatch
	}
	return nil
}

func validateEntry(entry Entry) error {
	if !entry.Status.Valid() {
		return ErrInvalidStatus
	}
	if entry.Status == StatusLate {
		if entry.ArrivalTime == "" {
			return ErrMissingArrivalTime
		}
		if !arrivalTimePattern.MatchString(entry.ArrivalTime) {
			return ErrInvalidArrivalTime
		}
	}
	return nil
}
