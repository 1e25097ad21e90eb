package warning

import (
	"context"
	"errors"
	"testing"
	"time"

	"club-app-go/internal/domain/member"
	"club-app-go/pkg/logger"
	"github.com/shopspring/decimal"
)

type fakeWarningRepo struct {
	warnings map[string]*Warning
	order    []string
}

func newFakeWarningRepo() *fakeWarningRepo {
	return &fakeWarningRepo{warnings: make(map[string]*Warning)}
}

func (r *fakeWarningRepo) Create(ctx context.Context, w *Warning) error {
	r.warnings[w.ID] = w
	r.order = append(r.order, w.ID)
	return nil
}

func (r *fakeWarningRepo) GetByID(ctx context.Context, id string) (*Warning, error) {
	w, ok := r.warnings[id]
	if !ok {
		return nil, ErrWarningNotFound
	}
	return w, nil
}

func (r *fakeWarningRepo) ListByMember(ctx context.Context, memberID string) ([]Warning, error) {
	result := make([]Warning, 0)
	for _, id := range r.order {
		if w := r.warnings[id]; w.MemberID == memberID {
			result = append(result, *w)
		}
	}
	return result, nil
}

func (r *fakeWarningRepo) ListUnresolved(ctx context.Context) ([]Warning, error) {
	result := make([]Warning, 0)
	for _, id := range r.order {
		if w := r.warnings[id]; !w.IsResolved {
			result = append(result, *w)
		}
	}
	return result, nil
}

func (r *fakeWarningRepo) CountUnresolved(ctx context.Context, memberID string) (int64, error) {
	var count int64
	for _, w := range r.warnings {
		if w.MemberID == memberID && !w.IsResolved {
			count++
		}
	}
	return count, nil
}

func (r *fakeWarningRepo) HasUnresolvedOfType(ctx context.Context, memberID string, t Type) (bool, error) {
	for _, w := range r.warnings {
		if w.MemberID == memberID && w.Type == t && !w.IsResolved {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeWarningRepo) Resolve(ctx context.Context, id, resolvedByAdminID string) error {
	w, ok := r.warnings[id]
	if !ok {
		return ErrWarningNotFound
	}
	now := time.Now()
	w.IsResolved = true
	w.ResolvedDate = &now
	w.ResolvedByAdminID = &resolvedByAdminID
	return nil
}

func (r *fakeWarningRepo) ResolveAllForMember(ctx context.Context, memberID, resolvedByAdminID string) (int64, error) {
	var count int64
	for id, w := range r.warnings {
		if w.MemberID == memberID && !w.IsResolved {
			if err := r.Resolve(ctx, id, resolvedByAdminID); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func (r *fakeWarningRepo) ResolveAll(ctx context.Context) (int64, error) {
	var count int64
	for id, w := range r.warnings {
		if !w.IsResolved {
			if err := r.Resolve(ctx, id, ""); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

type fakeMemberDirectory struct {
	members map[string]*member.Member
}

func newFakeMemberDirectory(members ...*member.Member) *fakeMemberDirectory {
	d := &fakeMemberDirectory{members: make(map[string]*member.Member)}
	for _, m := range members {
		d.members[m.ID] = m
	}
	return d
}

func (d *fakeMemberDirectory) Get(ctx context.Context, id string) (*member.Member, error) {
	m, ok := d.members[id]
	if !ok {
		return nil, member.ErrMemberNotFound
	}
	return m, nil
}

func (d *fakeMemberDirectory) Suspend(ctx context.Context, id, reason string) error {
	m, err := d.Get(ctx, id)
	if err != nil {
		return err
	}
	m.Status = member.StatusSuspended
	m.InactiveReason = reason
	return nil
}

func (d *fakeMemberDirectory) Activate(ctx context.Context, id string) error {
	m, err := d.Get(ctx, id)
	if err != nil {
		return err
	}
	m.Status = member.StatusActive
	m.InactiveReason = ""
	return nil
}

func (d *fakeMemberDirectory) ResetAbsenceStreak(ctx context.Context, id string, attendedAt time.Time) error {
	m, err := d.Get(ctx, id)
	if err != nil {
		return err
	}
	m.ConsecutiveAbsences = 0
	m.LastAttendanceDate = &attendedAt
	return nil
}

func (d *fakeMemberDirectory) IncrementAbsenceStreak(ctx context.Context, id string) (int, error) {
	m, err := d.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	m.ConsecutiveAbsences++
	return m.ConsecutiveAbsences, nil
}

func activeMember(id string) *member.Member {
	return &member.Member{ID: id, Status: member.StatusActive, HonorTier: member.HonorI}
}

func TestIssueInvalidType(t *testing.T) {
	engine := NewEngine(newFakeWarningRepo(), newFakeMemberDirectory(), logger.Discard())
	if _, err := engine.Issue(context.Background(), "m1", Type("BOGUS"), "", ""); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("err = %v, want ErrInvalidType", err)
	}
}

func TestSuspensionAtThreeUnresolved(t *testing.T) {
	repo := newFakeWarningRepo()
	m := activeMember("m1")
	engine := NewEngine(repo, newFakeMemberDirectory(m), logger.Discard())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := engine.Issue(ctx, "m1", TypeOther, "strike", "admin"); err != nil {
			t.Fatalf("issue %d failed: %v", i, err)
		}
	}
	if m.Status != member.StatusActive {
		t.Fatal("suspended below the threshold")
	}

	if _, err := engine.Issue(ctx, "m1", TypeOther, "strike", "admin"); err != nil {
		t.Fatalf("third issue failed: %v", err)
	}
	if m.Status != member.StatusSuspended {
		t.Fatal("third unresolved warning did not suspend")
	}
}

func TestResolveDoesNotUnsuspend(t *testing.T) {
	repo := newFakeWarningRepo()
	m := activeMember("m1")
	engine := NewEngine(repo, newFakeMemberDirectory(m), logger.Discard())
	ctx := context.Background()

	var lastID string
	for i := 0; i < 3; i++ {
		w, err := engine.Issue(ctx, "m1", TypeOther, "strike", "admin")
		if err != nil {
			t.Fatalf("issue failed: %v", err)
		}
		lastID = w.ID
	}
	if m.Status != member.StatusSuspended {
		t.Fatal("not suspended")
	}

	if err := engine.Resolve(ctx, lastID, "admin"); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if m.Status != member.StatusSuspended {
		t.Fatal("resolving a warning reactivated the member")
	}

	if err := engine.Resolve(ctx, lastID, "admin"); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("second resolve err = %v, want ErrAlreadyResolved", err)
	}
}

func TestRestoreResolvesAllAndActivates(t *testing.T) {
	repo := newFakeWarningRepo()
	m := activeMember("m1")
	engine := NewEngine(repo, newFakeMemberDirectory(m), logger.Discard())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := engine.Issue(ctx, "m1", TypeOther, "strike", "admin"); err != nil {
			t.Fatalf("issue failed: %v", err)
		}
	}

	if err := engine.Restore(ctx, "m1", "admin"); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if m.Status != member.StatusActive {
		t.Fatal("restore did not reactivate")
	}
	count, _ := repo.CountUnresolved(ctx, "m1")
	if count != 0 {
		t.Fatalf("restore left %d open warnings", count)
	}
}

func TestCheckLowBalanceIdempotent(t *testing.T) {
	repo := newFakeWarningRepo()
	engine := NewEngine(repo, newFakeMemberDirectory(activeMember("m1")), logger.Discard())
	ctx := context.Background()

	low := decimal.NewFromInt(15000)
	if err := engine.CheckLowBalance(ctx, "m1", low); err != nil {
		t.Fatalf("first check failed: %v", err)
	}
	if err := engine.CheckLowBalance(ctx, "m1", decimal.NewFromInt(12000)); err != nil {
		t.Fatalf("second check failed: %v", err)
	}

	count, _ := repo.CountUnresolved(ctx, "m1")
	if count != 1 {
		t.Fatalf("low-balance warnings = %d, want 1", count)
	}
}

func TestCheckLowBalanceAboveThresholdNoWarning(t *testing.T) {
	repo := newFakeWarningRepo()
	engine := NewEngine(repo, newFakeMemberDirectory(activeMember("m1")), logger.Discard())

	if err := engine.CheckLowBalance(context.Background(), "m1", decimal.NewFromInt(15001)); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if len(repo.warnings) != 0 {
		t.Fatal("warning issued above the threshold")
	}
}

func TestCheckLowBalanceReissuesAfterResolve(t *testing.T) {
	repo := newFakeWarningRepo()
	engine := NewEngine(repo, newFakeMemberDirectory(activeMember("m1")), logger.Discard())
	ctx := context.Background()

	if err := engine.CheckLowBalance(ctx, "m1", decimal.NewFromInt(10000)); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if _, err := repo.ResolveAllForMember(ctx, "m1", "admin"); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if err := engine.CheckLowBalance(ctx, "m1", decimal.NewFromInt(10000)); err != nil {
		t.Fatalf("recheck failed: %v", err)
	}

	count, _ := repo.CountUnresolved(ctx, "m1")
	if count != 1 {
		t.Fatalf("open warnings after re-check = %d, want 1", count)
	}
}

func TestAbsenceStreakThresholds(t *testing.T) {
	cases := []struct {
		name      string
		configure func(*member.Member)
		threshold int
	}{
		{"honor I", func(m *member.Member) { m.HonorTier = member.HonorI }, 5},
		{"honor II", func(m *member.Member) { m.HonorTier = member.HonorII }, 6},
		{"honor III", func(m *member.Member) { m.HonorTier = member.HonorIII }, 7},
		{"honor IV", func(m *member.Member) { m.HonorTier = member.HonorIV }, 8},
		{"sub-lead", func(m *member.Member) { m.HonorTier = member.HonorIV; m.IsSubLead = true }, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := activeMember("m1")
			tc.configure(m)
			engine := NewEngine(newFakeWarningRepo(), newFakeMemberDirectory(m), logger.Discard())
			ctx := context.Background()

			for i := 0; i < tc.threshold-1; i++ {
				if err := engine.RecordAttendanceOutcome(ctx, "m1", false, time.Now()); err != nil {
					t.Fatalf("absence %d failed: %v", i, err)
				}
			}
			if m.Status != member.StatusActive {
				t.Fatalf("suspended at streak %d, threshold %d", m.ConsecutiveAbsences, tc.threshold)
			}

			if err := engine.RecordAttendanceOutcome(ctx, "m1", false, time.Now()); err != nil {
				t.Fatalf("threshold absence failed: %v", err)
			}
			if m.Status != member.StatusSuspended {
				t.Fatalf("not suspended at streak %d", m.ConsecutiveAbsences)
			}
		})
	}
}

func TestLeadNeverSuspendedForAbsences(t *testing.T) {
	m := activeMember("m1")
	m.IsLead = true
	engine := NewEngine(newFakeWarningRepo(), newFakeMemberDirectory(m), logger.Discard())
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		if err := engine.RecordAttendanceOutcome(ctx, "m1", false, time.Now()); err != nil {
			t.Fatalf("absence failed: %v", err)
		}
	}
	if m.Status != member.StatusActive {
		t.Fatal("lead suspended for absence streak")
	}
}

func TestAttendanceResetsStreak(t *testing.T) {
	m := activeMember("m1")
	m.ConsecutiveAbsences = 4
	engine := NewEngine(newFakeWarningRepo(), newFakeMemberDirectory(m), logger.Discard())

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if err := engine.RecordAttendanceOutcome(context.Background(), "m1", true, at); err != nil {
		t.Fatalf("attendance failed: %v", err)
	}
	if m.ConsecutiveAbsences != 0 {
		t.Fatalf("streak = %d, want 0", m.ConsecutiveAbsences)
	}
	if m.LastAttendanceDate == nil || !m.LastAttendanceDate.Equal(at) {
		t.Fatal("attendance date not stamped")
	}
}

func TestResetAllLeavesSuspensions(t *testing.T) {
	repo := newFakeWarningRepo()
	m := activeMember("m1")
	engine := NewEngine(repo, newFakeMemberDirectory(m), logger.Discard())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := engine.Issue(ctx, "m1", TypeOther, "strike", "admin"); err != nil {
			t.Fatalf("issue failed: %v", err)
		}
	}

	resolved, err := engine.ResetAll(ctx)
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if resolved != 3 {
		t.Fatalf("resolved = %d, want 3", resolved)
	}
	if m.Status != member.StatusSuspended {
		t.Fatal("reset reactivated a suspended member")
	}
}
