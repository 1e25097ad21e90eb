package member

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type fakeMemberRepo struct {
	members map[string]*Member

	presentCount int64
	totalCount   int64
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]*Member)}
}

func (f *fakeMemberRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(f)
}

func (f *fakeMemberRepo) Create(_ context.Context, m *Member) error {
	for _, existing := range f.members {
		if existing.Username == m.Username {
			return ErrUsernameTaken
		}
	}
	cp := *m
	f.members[m.ID] = &cp
	return nil
}

func (f *fakeMemberRepo) GetByID(_ context.Context, id string) (*Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, ErrMemberNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMemberRepo) GetByUsername(_ context.Context, username string) (*Member, error) {
	for _, m := range f.members {
		if m.Username == username {
			cp := *m
			return &cp, nil
		}
	}
	return nil, ErrMemberNotFound
}

func (f *fakeMemberRepo) List(_ context.Context) ([]Member, error) {
	out := make([]Member, 0, len(f.members))
	for _, m := range f.members {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMemberRepo) ListActiveIDs(_ context.Context) ([]string, error) {
	var out []string
	for _, m := range f.members {
		if m.Status == StatusActive {
			out = append(out, m.ID)
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) Update(_ context.Context, m *Member) error {
	if _, ok := f.members[m.ID]; !ok {
		return ErrMemberNotFound
	}
	cp := *m
	f.members[m.ID] = &cp
	return nil
}

func (f *fakeMemberRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	m, ok := f.members[id]
	if !ok {
		return ErrMemberNotFound
	}
	m.PasswordHash = passwordHash
	m.MustChangePassword = false
	return nil
}

func (f *fakeMemberRepo) SetStatus(_ context.Context, id string, status Status, reason string) error {
	m, ok := f.members[id]
	if !ok {
		return ErrMemberNotFound
	}
	m.Status = status
	m.InactiveReason = reason
	return nil
}

func (f *fakeMemberRepo) SetAttendanceRate(_ context.Context, id string, rate decimal.Decimal) error {
	m, ok := f.members[id]
	if !ok {
		return ErrMemberNotFound
	}
	m.AttendanceRate = rate
	return nil
}

func (f *fakeMemberRepo) ResetAbsenceStreak(_ context.Context, id string, attendedAt time.Time) error {
	m, ok := f.members[id]
	if !ok {
		return ErrMemberNotFound
	}
	m.ConsecutiveAbsences = 0
	m.LastAttendanceDate = &attendedAt
	return nil
}

func (f *fakeMemberRepo) IncrementAbsenceStreak(_ context.Context, id string) (int, error) {
	m, ok := f.members[id]
	if !ok {
		return 0, ErrMemberNotFound
	}
	m.ConsecutiveAbsences++
	return m.ConsecutiveAbsences, nil
}

func (f *fakeMemberRepo) CountByStatus(_ context.Context, status Status) (int64, error) {
	var n int64
	for _, m := range f.members {
		if m.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeMemberRepo) CountAbsenceStreaksAtLeast(_ context.Context, min int) (int64, error) {
	var n int64
	for _, m := range f.members {
		if m.Status == StatusActive && m.ConsecutiveAbsences >= min {
			n++
		}
	}
	return n, nil
}

func (f *fakeMemberRepo) AttendanceCounts(_ context.Context, _ string) (int64, int64, error) {
	return f.presentCount, f.totalCount, nil
}

func TestCreateGeneratesOneTimePassword(t *testing.T) {
	repo := newFakeMemberRepo()
	svc := NewService(repo)

	m, password, err := svc.Create(context.Background(), CreateInput{Username: "  hana  "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.Username != "hana" {
		t.Fatalf("username = %q, want trimmed %q", m.Username, "hana")
	}
	if len(password) != generatedPasswordLength {
		t.Fatalf("password length = %d, want %d", len(password), generatedPasswordLength)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)); err != nil {
		t.Fatalf("stored hash does not match generated password: %v", err)
	}
	if !m.MustChangePassword {
		t.Fatal("new member must be flagged for a password change")
	}
	if m.HonorTier != HonorI {
		t.Fatalf("tier = %s, want default HONOR_I", m.HonorTier)
	}
	if m.Role != RoleMember || m.Status != StatusActive {
		t.Fatalf("role/status = %s/%s, want MEMBER/ACTIVE", m.Role, m.Status)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := NewService(newFakeMemberRepo())

	if _, _, err := svc.Create(context.Background(), CreateInput{Username: "   "}); err == nil {
		t.Fatal("blank username accepted")
	}
	_, _, err := svc.Create(context.Background(), CreateInput{Username: "hana", HonorTier: HonorTier("HONOR_X")})
	if !errors.Is(err, ErrInvalidTier) {
		t.Fatalf("err = %v, want ErrInvalidTier", err)
	}
}

func TestCreateDuplicateUsername(t *testing.T) {
	svc := NewService(newFakeMemberRepo())

	if _, _, err := svc.Create(context.Background(), CreateInput{Username: "hana"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, _, err := svc.Create(context.Background(), CreateInput{Username: "hana"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestUpdateAppliesPartialInput(t *testing.T) {
	repo := newFakeMemberRepo()
	svc := NewService(repo)

	m, _, err := svc.Create(context.Background(), CreateInput{Username: "hana", EnglishName: "Hana"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	email := " hana@example.com "
	tier := HonorIII
	lead := true
	updated, err := svc.Update(context.Background(), m.ID, UpdateInput{
		Email:     &email,
		HonorTier: &tier,
		IsLead:    &lead,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Email != "hana@example.com" {
		t.Fatalf("email = %q, want trimmed", updated.Email)
	}
	if updated.HonorTier != HonorIII || !updated.IsLead {
		t.Fatalf("tier/lead = %s/%v, want HONOR_III/true", updated.HonorTier, updated.IsLead)
	}
	if updated.EnglishName != "Hana" {
		t.Fatalf("untouched field changed: english name = %q", updated.EnglishName)
	}

	badTier := HonorTier("HONOR_X")
	if _, err := svc.Update(context.Background(), m.ID, UpdateInput{HonorTier: &badTier}); !errors.Is(err, ErrInvalidTier) {
		t.Fatalf("err = %v, want ErrInvalidTier", err)
	}
}

func TestChangePassword(t *testing.T) {
	repo := newFakeMemberRepo()
	svc := NewService(repo)

	m, password, err := svc.Create(context.Background(), CreateInput{Username: "hana"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), m.ID, "wrong", "next-secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}

	if err := svc.ChangePassword(context.Background(), m.ID, password, "next-secret"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	stored, _ := repo.GetByID(context.Background(), m.ID)
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("next-secret")); err != nil {
		t.Fatalf("new password not stored: %v", err)
	}
	if stored.MustChangePassword {
		t.Fatal("password change must clear the first-login flag")
	}
}

func TestRecalculateAttendanceRate(t *testing.T) {
	repo := newFakeMemberRepo()
	svc := NewService(repo)

	m, _, err := svc.Create(context.Background(), CreateInput{Username: "hana"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	rate, err := svc.RecalculateAttendanceRate(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("RecalculateAttendanceRate: %v", err)
	}
	if !rate.IsZero() {
		t.Fatalf("rate with no history = %s, want 0", rate)
	}

	repo.presentCount = 2
	repo.totalCount = 3
	rate, err = svc.RecalculateAttendanceRate(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("RecalculateAttendanceRate: %v", err)
	}
	want := decimal.NewFromFloat(66.67)
	if !rate.Equal(want) {
		t.Fatalf("rate = %s, want %s", rate, want)
	}
	stored, _ := repo.GetByID(context.Background(), m.ID)
	if !stored.AttendanceRate.Equal(want) {
		t.Fatalf("stored rate = %s, want %s", stored.AttendanceRate, want)
	}
}

func TestRankingsOrderAndFiltering(t *testing.T) {
	repo := newFakeMemberRepo()
	svc := NewService(repo)

	seed := func(username string, rate float64, status Status) {
		m, _, err := svc.Create(context.Background(), CreateInput{Username: username})
		if err != nil {
			t.Fatalf("Create %s: %v", username, err)
		}
		repo.members[m.ID].AttendanceRate = decimal.NewFromFloat(rate)
		repo.members[m.ID].Status = status
	}
	seed("casey", 80, StatusActive)
	seed("alex", 95, StatusActive)
	seed("blake", 80, StatusActive)
	seed("drew", 99, StatusSuspended)

	rankings, err := svc.Rankings(context.Background())
	if err != nil {
		t.Fatalf("Rankings: %v", err)
	}
	if len(rankings) != 3 {
		t.Fatalf("got %d rankings, want 3 active members", len(rankings))
	}
	got := []string{rankings[0].Username, rankings[1].Username, rankings[2].Username}
	want := []string{"alex", "blake", "casey"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestStats(t *testing.T) {
	repo := newFakeMemberRepo()
	svc := NewService(repo)

	for i, username := range []string{"a", "b", "c", "d"} {
		m, _, err := svc.Create(context.Background(), CreateInput{Username: username})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		repo.members[m.ID].ConsecutiveAbsences = i
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalMembers != 4 {
		t.Fatalf("total = %d, want 4", stats.TotalMembers)
	}
	if stats.ConsecutiveAbsentees != 1 {
		t.Fatalf("absentees = %d, want 1 (streak >= 3)", stats.ConsecutiveAbsentees)
	}
}
