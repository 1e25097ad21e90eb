package finance

import (
	"time"

	"club-app-go/pkg/clock"
	"github.com/shopspring/decimal"
)

// Fee amounts in KRW. The rules below are pure: they compute an amount (and,
// where relevant, whether a warning escalation applies) and leave applying it
// to the caller.
var (
	RoomFeeAmount         = decimal.NewFromInt(5000)
	lateFeeBase           = decimal.NewFromInt(5000)
	lateFeePerBlock       = decimal.NewFromInt(1000)
	lateFeeCap            = decimal.NewFromInt(10000)
	flipPenaltyWeekend    = decimal.NewFromInt(10000)
	flipPenaltyMeetingDay = decimal.NewFromInt(25000)
	AbsenceAfterYesAmount = decimal.NewFromInt(10000)
	PresenterLateAmount   = decimal.NewFromInt(5000)
)

const (
	lateFeeGraceMinutes = 10
	lateFeeFlatMinutes  = 20
	lateFeeBlockMinutes = 10
)

// RoomFee is the flat room fee owed for a meeting attended PRESENT or LATE.
func RoomFee(attended bool) decimal.Decimal {
	if !attended {
		return decimal.Zero
	}
	return RoomFeeAmount
}

// LateFee computes the tiered late fee for an arrival past the meeting start.
// Up to 10 minutes late is free, up to 20 minutes is a flat 5,000, and past
// that every started 10-minute block adds 1,000, capped at 10,000 total.
func LateFee(meetingStart, arrival time.Time) decimal.Decimal {
	offset := arrival.Sub(meetingStart)
	if offset <= lateFeeGraceMinutes*time.Minute {
		return decimal.Zero
	}
	if offset <= lateFeeFlatMinutes*time.Minute {
		return lateFeeBase
	}

	past := offset - lateFeeFlatMinutes*time.Minute
	blocks := int64(past / (lateFeeBlockMinutes * time.Minute))
	if past%(lateFeeBlockMinutes*time.Minute) != 0 {
		blocks++
	}

	fee := lateFeeBase.Add(lateFeePerBlock.Mul(decimal.NewFromInt(blocks)))
	if fee.GreaterThan(lateFeeCap) {
		return lateFeeCap
	}
	return fee
}

// FlipPenalty computes the cancellation penalty for a YES→NO vote flip at
// flippedAt, relative to the meeting's local calendar. Cancellation is free
// through the Thursday before the meeting; Friday and Saturday cost 10,000;
// flipping on the meeting day itself costs 25,000 and escalates to a warning.
// The returned bool reports whether the escalation warning applies.
func FlipPenalty(flippedAt, meetingDate time.Time, loc *time.Location) (decimal.Decimal, bool) {
	meetingDay := clock.DayStart(meetingDate, loc)
	fridayBefore := meetingDay.AddDate(0, 0, -2)

	at := flippedAt.In(loc)
	switch {
	case at.Before(fridayBefore):
		return decimal.Zero, false
	case at.Before(meetingDay):
		return flipPenaltyWeekend, false
	default:
		return flipPenaltyMeetingDay, true
	}
}

// AbsenceAfterYesPenalty is the flat penalty for being recorded ABSENT at a
// meeting the member had voted YES for. Unlike the flip penalty it is not
// tiered and always carries a warning.
func AbsenceAfterYesPenalty() decimal.Decimal {
	return AbsenceAfterYesAmount
}

// PresenterLatePenalty is the flat penalty for missing the topic deadline.
func PresenterLatePenalty() decimal.Decimal {
	return PresenterLateAmount
}
