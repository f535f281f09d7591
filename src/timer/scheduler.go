package timer

import (
	"container/heap"
	"sync"
	"time"
)

// Task is a one-shot callback queued on a Scheduler.
type Task struct {
	due   time.Time
	seq   uint64
	fn    func()
	index int // position in the queue, -1 once popped or cancelled
	sched *Scheduler
}

// Due returns the virtual time the task fires at.
func (t *Task) Due() time.Time { return t.due }

// Cancel removes the task from the queue. It returns false if the task
// already fired or was cancelled.
func (t *Task) Cancel() bool {
	s := t.sched
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.index < 0 {
		return false
	}
	heap.Remove(&s.queue, t.index)
	return true
}

// Scheduler is a discrete-event clock. Time only moves through Advance (or
// Run, which calls Advance with wall-clock deltas), so tests get fully
// deterministic runs. Callbacks run on the goroutine driving the clock, one
// at a time, in (due, insertion) order.
type Scheduler struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	queue taskQueue
	wake  chan struct{}
}

func NewScheduler(start time.Time) *Scheduler {
	return &Scheduler{
		now:  start,
		wake: make(chan struct{}, 1),
	}
}

func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// After queues fn to run once d has elapsed on the scheduler clock.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	s.seq++
	t := &Task{due: s.now.Add(d), seq: s.seq, fn: fn, sched: s}
	heap.Push(&s.queue, t)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return t
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Advance moves the clock forward by d, running every task that falls due on
// the way. Tasks queued by callbacks run too if they fall inside the window.
// It returns the number of callbacks executed.
func (s *Scheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	ran := 0
	for {
		s.mu.Lock()
		if len(s.queue) == 0 || s.queue[0].due.After(target) {
			s.now = target
			s.mu.Unlock()
			return ran
		}
		t := heap.Pop(&s.queue).(*Task)
		if t.due.After(s.now) {
			s.now = t.due
		}
		s.mu.Unlock()

		t.fn()
		ran++
	}
}

// untilNext returns the virtual time left before the next task is due.
func (s *Scheduler) untilNext() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return 0, false
	}
	return s.queue[0].due.Sub(s.now), true
}

type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*Task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
