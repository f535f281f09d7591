package timer

import (
	"sync"
	"time"
)

// StepFunc advances an actor by one transition. It returns the dwell until
// the next step, or false to stop scheduling.
type StepFunc func() (time.Duration, bool)

// Actor is a self-rescheduling task. Each Start begins a new generation;
// callbacks from an older generation are ignored when they fire, so Stop is
// a single call no matter where the actor is in its cycle.
type Actor struct {
	sched *Scheduler
	lock  sync.Locker
	step  StepFunc

	mu      sync.Mutex
	gen     uint64
	task    *Task
	running bool
}

// NewActor binds step to sched. If lock is non-nil, every step runs with it held.
func NewActor(sched *Scheduler, lock sync.Locker, step StepFunc) *Actor {
	return &Actor{sched: sched, lock: lock, step: step}
}

// Start schedules the first step after delay, replacing any pending step.
func (a *Actor) Start(delay time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	if a.task != nil {
		a.task.Cancel()
	}
	a.running = true
	a.schedule(a.gen, delay)
}

// Stop cancels the pending step. A step already waiting on the lock becomes a no-op.
func (a *Actor) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	if a.task != nil {
		a.task.Cancel()
		a.task = nil
	}
	a.running = false
}

// Running reports whether a step is scheduled.
func (a *Actor) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

func (a *Actor) schedule(gen uint64, delay time.Duration) {
	a.task = a.sched.After(delay, func() { a.fire(gen) })
}

func (a *Actor) current(gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return gen == a.gen
}

func (a *Actor) fire(gen uint64) {
	if a.lock != nil {
		a.lock.Lock()
		defer a.lock.Unlock()
	}
	if !a.current(gen) {
		return
	}

	dwell, more := a.step()

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen {
		// Stopped or restarted from inside the step.
		return
	}
	if !more {
		a.task = nil
		a.running = false
		return
	}
	a.schedule(gen, dwell)
}
