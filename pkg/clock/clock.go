package clock

import "time"

// Clock abstracts wall-clock time so the time-tiered penalty rules can be
// tested at fixed instants.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// System returns a Clock backed by time.Now.
func System() Clock {
	return systemClock{}
}

// Fixed is a Clock pinned to a single instant. Tests may reassign Instant
// between calls.
type Fixed struct {
	Instant time.Time
}

func (f *Fixed) Now() time.Time {
	return f.Instant
}

// DayStart returns midnight of t's calendar day in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// WeekStart returns midnight of the Sunday starting the calendar week that
// contains t, in loc. Club weeks run Sunday through Saturday.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	day := DayStart(t, loc)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// SameWeek reports whether a and b fall in the same Sunday-starting week
// in loc.
func SameWeek(a, b time.Time, loc *time.Location) bool {
	return WeekStart(a, loc).Equal(WeekStart(b, loc))
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DayStart(a, loc).Equal(DayStart(b, loc))
}
