package types

import (
	"fmt"
	"math"
	"time"
)

// Clock reports the current simulation time.
type Clock interface {
	Now() time.Time
}

// Rand is the injectable randomness source used for tie-breaks and jitter.
type Rand interface {
	IntN(n int) int
}

// Env is the simulation context handed to every state machine step. It
// replaces process-wide globals such as the speed multiplier.
type Env struct {
	Speed  float64
	Clock  Clock
	Rand   Rand
	Events EventSink
}

// Dwell scales a nominal duration by the speed multiplier and rounds up to
// the next millisecond. The result is never below one millisecond.
func (env Env) Dwell(nominal time.Duration) time.Duration {
	speed := env.Speed
	if speed <= 0 {
		speed = 1
	}
	ms := math.Ceil(float64(nominal) / float64(time.Millisecond) / speed)
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}

// Jitter returns a speed-scaled random duration in [0, limit).
func (env Env) Jitter(limit time.Duration) time.Duration {
	scaled := env.Dwell(limit)
	if env.Rand == nil || scaled <= time.Millisecond {
		return 0
	}
	return time.Duration(env.Rand.IntN(int(scaled/time.Millisecond))) * time.Millisecond
}

// Coin returns true with probability one half.
func (env Env) Coin() bool {
	if env.Rand == nil {
		return true
	}
	return env.Rand.IntN(2) == 0
}

func (env Env) Now() time.Time {
	if env.Clock == nil {
		return time.Time{}
	}
	return env.Clock.Now()
}

// Emit sends an event to the sink, if any.
func (env Env) Emit(kind ActorKind, id int, format string, args ...any) {
	if env.Events == nil {
		return
	}
	env.Events.Emit(Event{
		Time:    env.Now(),
		Kind:    kind,
		ID:      id,
		Message: fmt.Sprintf(format, args...),
	})
}
