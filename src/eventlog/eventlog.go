// Package eventlog collects the events emitted by simulation actors and sets
// up the process logger.
package eventlog

import (
	"log/slog"
	"sync"

	"elevsim/src/types"
)

// Recorder keeps the most recent events in memory. The zero value is not
// usable; call NewRecorder.
type Recorder struct {
	mu     sync.Mutex
	limit  int
	events []types.Event
}

// NewRecorder keeps at most limit events, dropping the oldest first. A
// non-positive limit keeps everything.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

func (r *Recorder) Emit(ev types.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	if r.limit > 0 && len(r.events) > r.limit {
		drop := len(r.events) - r.limit
		r.events = append(r.events[:0], r.events[drop:]...)
	}
}

// Logs returns a copy of the recorded events, oldest first.
func (r *Recorder) Logs() []types.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// SlogSink forwards events to a logger at debug level.
type SlogSink struct {
	Logger *slog.Logger // nil means slog.Default()
}

func (s SlogSink) Emit(ev types.Event) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug(ev.Message,
		"actor", ev.Actor(),
		"at", ev.Time.Format("15:04:05.000"))
}

// Multi fans an event out to several sinks in order.
type Multi []types.EventSink

func (m Multi) Emit(ev types.Event) {
	for _, sink := range m {
		if sink != nil {
			sink.Emit(ev)
		}
	}
}
