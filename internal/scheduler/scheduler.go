// Package scheduler fires the two time-triggered sweeps: the vote deadline
// check every Wednesday 19:30 and the warning reset on January 1 and July 1
// at midnight, both in the configured club timezone.
package scheduler

import (
	"context"
	"sync"
	"time"

	"club-app-go/internal/domain/voting"
	"club-app-go/pkg/logger"
)

type VoteSweeper interface {
	CloseExpiredVotes(ctx context.Context) ([]voting.SweepResult, error)
}

type WarningResetter interface {
	ResetAll(ctx context.Context) (int64, error)
}

type PresenterSweeper interface {
	PenalizeOverdue(ctx context.Context) (int, error)
}

type Scheduler struct {
	votes      VoteSweeper
	warnings   WarningResetter
	presenters PresenterSweeper
	tz         *time.Location
	log        logger.Logger

	voteMu sync.Mutex
	warnMu sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(votes VoteSweeper, warnings WarningResetter, presenters PresenterSweeper, tz *time.Location, log logger.Logger) *Scheduler {
	return &Scheduler{
		votes:      votes,
		warnings:   warnings,
		presenters: presenters,
		tz:         tz,
		log:        log,
	}
}

// Start launches the timer loops. Stop must be called to release them.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.loop(ctx, s.nextVoteSweep, s.runVoteSweep)
		}()
		go func() {
			defer wg.Done()
			s.loop(ctx, s.nextWarningReset, s.runWarningReset)
		}()
		wg.Wait()
	}()
	s.log.Info("scheduler started", "timezone", s.tz.String())
}

func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, next func(time.Time) time.Time, run func(context.Context)) {
	for {
		at := next(time.Now().In(s.tz))
		timer := time.NewTimer(time.Until(at))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			run(ctx)
		}
	}
}

// RunVoteDeadlineSweep closes expired votes and penalizes overdue presenters.
// Safe to call from the manual trigger endpoint; overlapping runs are skipped.
func (s *Scheduler) RunVoteDeadlineSweep(ctx context.Context) {
	if !s.voteMu.TryLock() {
		s.log.Warn("vote deadline sweep already running, skipping")
		return
	}
	defer s.voteMu.Unlock()
	results, err := s.votes.CloseExpiredVotes(ctx)
	if err != nil {
		s.log.InternalError("vote deadline sweep failed", err)
	} else if len(results) > 0 {
		s.log.Info("vote deadline sweep complete", "closed", len(results))
	}
	if s.presenters != nil {
		if _, err := s.presenters.PenalizeOverdue(ctx); err != nil {
			s.log.InternalError("presenter penalty sweep failed", err)
		}
	}
}

// RunWarningReset resolves every open warning. Suspensions are untouched.
func (s *Scheduler) RunWarningReset(ctx context.Context) {
	if !s.warnMu.TryLock() {
		s.log.Warn("warning reset already running, skipping")
		return
	}
	defer s.warnMu.Unlock()
	count, err := s.warnings.ResetAll(ctx)
	if err != nil {
		s.log.InternalError("warning reset failed", err)
		return
	}
	s.log.Info("warning reset complete", "resolved", count)
}

func (s *Scheduler) runVoteSweep(ctx context.Context) {
	s.RunVoteDeadlineSweep(ctx)
}

func (s *Scheduler) runWarningReset(ctx context.Context) {
	s.RunWarningReset(ctx)
}

// nextVoteSweep returns the next Wednesday 19:30 after now.
func (s *Scheduler) nextVoteSweep(now time.Time) time.Time {
	at := time.Date(now.Year(), now.Month(), now.Day(), 19, 30, 0, 0, s.tz)
	for at.Weekday() != time.Wednesday || !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

// nextWarningReset returns the next January 1 or July 1 midnight after now.
func (s *Scheduler) nextWarningReset(now time.Time) time.Time {
	candidates := []time.Time{
		time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, s.tz),
		time.Date(now.Year(), time.July, 1, 0, 0, 0, 0, s.tz),
		time.Date(now.Year()+1, time.January, 1, 0, 0, 0, 0, s.tz),
	}
	for _, at := range candidates {
		if at.After(now) {
			return at
		}
	}
	return candidates[len(candidates)-1]
}
