package location

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var meetingTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Location, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	address := strings.TrimSpace(input.Address)
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}

	tz := strings.TrimSpace(input.Timezone)
	if tz == "" {
		tz = "Asia/Seoul"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, ErrInvalidTimezone
	}

	meetingTime := input.DefaultMeetingTime
	if meetingTime == "" {
		meetingTime = "10:00"
	}
	if !meetingTimePattern.MatchString(meetingTime) {
		return nil, ErrInvalidMeetingTime
	}
	if input.DefaultMeetingDay < 0 || input.DefaultMeetingDay > 6 {
		return nil, fmt.Errorf("meeting day must be 0-6")
	}

	l := Location{
		ID:                 uuid.NewString(),
		Name:               name,
		Address:            address,
		Timezone:           tz,
		DefaultMeetingDay:  input.DefaultMeetingDay,
		DefaultMeetingTime: meetingTime,
		IsActive:           true,
	}
	if input.CreatedByAdminID != "" {
		l.CreatedByAdminID = &input.CreatedByAdminID
	}

	if err := s.repo.Create(ctx, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Location, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Location, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*Location, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		l.Name = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		l.Address = strings.TrimSpace(*input.Address)
	}
	if input.Timezone != nil {
		if _, err := time.LoadLocation(*input.Timezone); err != nil {
			return nil, ErrInvalidTimezone
		}
		l.Timezone = *input.Timezone
	}
	if input.DefaultMeetingDay != nil {
		if *input.DefaultMeetingDay < 0 || *input.DefaultMeetingDay > 6 {
			return nil, fmt.Errorf("meeting day must be 0-6")
		}
		l.DefaultMeetingDay = *input.DefaultMeetingDay
	}
	if input.DefaultMeetingTime != nil {
		if !meetingTimePattern.MatchString(*input.DefaultMeetingTime) {
			return nil, ErrInvalidMeetingTime
		}
		l.DefaultMeetingTime = *input.DefaultMeetingTime
	}
	if input.IsActive != nil {
		l.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// TZ resolves the location's IANA timezone.
func (s *Service) TZ(ctx context.Context, id string) (*time.Location, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return time.LoadLocation(l.Timezone)
}

// MeetingStart returns the meeting start instant for a meeting date at this
// location, combining the calendar day with the configured start time.
func (s *Service) MeetingStart(ctx context.Context, id string, meetingDate time.Time) (time.Time, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return time.Time{}, err
	}
	tz, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return time.Time{}, err
	}
	return CombineDayAndTime(meetingDate, l.DefaultMeetingTime, tz)
}

// CombineDayAndTime anchors an HH:MM wall time onto day's calendar date in tz.
func CombineDayAndTime(day time.Time, hhmm string, tz *time.Location) (time.Time, error) {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, ErrInvalidMeetingTime
	}
	local := day.In(tz)
	return time.Date(local.Year(), local.Month(), local.Day(), parsed.Hour(), parsed.Minute(), 0, 0, tz), nil
}
