package timer

import (
	"context"
	"log/slog"
	"time"
)

// idlePoll bounds how long Run sleeps when nothing is queued.
const idlePoll = time.Second

// Run drives the scheduler from the wall clock until ctx is cancelled. Only
// one goroutine may drive a scheduler at a time.
func (s *Scheduler) Run(ctx context.Context) error {
	wait := time.NewTimer(idlePoll)
	defer wait.Stop()
	last := time.Now()

	for {
		now := time.Now()
		s.Advance(now.Sub(last))
		last = now

		next, ok := s.untilNext()
		if !ok {
			next = idlePoll
		}
		resetTimer(wait, next)

		select {
		case <-ctx.Done():
			slog.Debug("Scheduler stopped", "pending", s.Pending())
			return ctx.Err()
		case <-wait.C:
		case <-s.wake:
		}
	}
}

// Stops the timer and resets it.
func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}
