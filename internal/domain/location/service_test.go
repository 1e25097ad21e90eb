package location

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeLocationRepo struct {
	locations map[string]*Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: make(map[string]*Location)}
}

func (f *fakeLocationRepo) Create(_ context.Context, l *Location) error {
	for _, existing := range f.locations {
		if existing.Name == l.Name {
			return ErrNameTaken
		}
	}
	cp := *l
	f.locations[l.ID] = &cp
	return nil
}

func (f *fakeLocationRepo) GetByID(_ context.Context, id string) (*Location, error) {
	l, ok := f.locations[id]
	if !ok {
		return nil, ErrLocationNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLocationRepo) List(_ context.Context) ([]Location, error) {
	out := make([]Location, 0, len(f.locations))
	for _, l := range f.locations {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeLocationRepo) Update(_ context.Context, l *Location) error {
	if _, ok := f.locations[l.ID]; !ok {
		return ErrLocationNotFound
	}
	cp := *l
	f.locations[l.ID] = &cp
	return nil
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc := NewService(newFakeLocationRepo())

	l, err := svc.Create(context.Background(), CreateInput{Name: " Gangnam ", Address: "123 Teheran-ro"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.Name != "Gangnam" {
		t.Fatalf("name = %q, want trimmed", l.Name)
	}
	if l.Timezone != "Asia/Seoul" {
		t.Fatalf("timezone = %q, want default Asia/Seoul", l.Timezone)
	}
	if l.DefaultMeetingTime != "10:00" || l.DefaultMeetingDay != 0 {
		t.Fatalf("meeting defaults = %s day %d, want 10:00 day 0", l.DefaultMeetingTime, l.DefaultMeetingDay)
	}
	if !l.IsActive {
		t.Fatal("new location must start active")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeLocationRepo())

	if _, err := svc.Create(context.Background(), CreateInput{Name: "  ", Address: "somewhere"}); err == nil {
		t.Fatal("blank name accepted")
	}
	_, err := svc.Create(context.Background(), CreateInput{Name: "A", Address: "somewhere", Timezone: "Mars/Olympus"})
	if !errors.Is(err, ErrInvalidTimezone) {
		t.Fatalf("err = %v, want ErrInvalidTimezone", err)
	}
	_, err = svc.Create(context.Background(), CreateInput{Name: "A", Address: "somewhere", DefaultMeetingTime: "25:99"})
	if !errors.Is(err, ErrInvalidMeetingTime) {
		t.Fatalf("err = %v, want ErrInvalidMeetingTime", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{Name: "A", Address: "somewhere", DefaultMeetingDay: 7}); err == nil {
		t.Fatal("meeting day 7 accepted")
	}
}

func TestUpdateValidatesNewTimezone(t *testing.T) {
	svc := NewService(newFakeLocationRepo())

	l, err := svc.Create(context.Background(), CreateInput{Name: "Gangnam", Address: "123 Teheran-ro"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	bad := "Nowhere/Nothing"
	if _, err := svc.Update(context.Background(), l.ID, UpdateInput{Timezone: &bad}); !errors.Is(err, ErrInvalidTimezone) {
		t.Fatalf("err = %v, want ErrInvalidTimezone", err)
	}

	good := "America/New_York"
	active := false
	updated, err := svc.Update(context.Background(), l.ID, UpdateInput{Timezone: &good, IsActive: &active})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Timezone != good || updated.IsActive {
		t.Fatalf("updated = %q active %v, want %q inactive", updated.Timezone, updated.IsActive, good)
	}
}

func TestMeetingStart(t *testing.T) {
	repo := newFakeLocationRepo()
	svc := NewService(repo)

	start := "19:30"
	l, err := svc.Create(context.Background(), CreateInput{Name: "Gangnam", Address: "123 Teheran-ro", DefaultMeetingTime: start})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Midnight UTC on March 1 is already March 1 09:00 in Seoul, so the
	// meeting lands on the same local calendar day.
	day := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	got, err := svc.MeetingStart(context.Background(), l.ID, day)
	if err != nil {
		t.Fatalf("MeetingStart: %v", err)
	}

	seoul, _ := time.LoadLocation("Asia/Seoul")
	want := time.Date(2026, time.March, 1, 19, 30, 0, 0, seoul)
	if !got.Equal(want) {
		t.Fatalf("start = %v, want %v", got, want)
	}
}

func TestCombineDayAndTime(t *testing.T) {
	seoul, _ := time.LoadLocation("Asia/Seoul")

	// 23:00 UTC on Feb 28 is already March 1 in Seoul.
	day := time.Date(2026, time.February, 28, 23, 0, 0, 0, time.UTC)
	got, err := CombineDayAndTime(day, "10:00", seoul)
	if err != nil {
		t.Fatalf("CombineDayAndTime: %v", err)
	}
	want := time.Date(2026, time.March, 1, 10, 0, 0, 0, seoul)
	if !got.Equal(want) {
		t.Fatalf("combined = %v, want %v", got, want)
	}

	if _, err := CombineDayAndTime(day, "10am", seoul); !errors.Is(err, ErrInvalidMeetingTime) {
		t.Fatalf("err = %v, want ErrInvalidMeetingTime", err)
	}
}
