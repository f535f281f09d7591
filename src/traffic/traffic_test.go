package traffic

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"elevsim/src/config"
	"elevsim/src/timer"
)

type recordingSink struct {
	trips [][2]int
	err   error
}

func (s *recordingSink) AddPassenger(start, dest int) (int, error) {
	if s.err != nil {
		return -1, s.err
	}
	s.trips = append(s.trips, [2]int{start, dest})
	return len(s.trips) - 1, nil
}

func TestParseFlavor(t *testing.T) {
	for in, want := range map[string]Flavor{"": Uniform, "Lobby": Lobby, " exodus ": Exodus} {
		got, err := ParseFlavor(in)
		if err != nil || got != want {
			t.Errorf("ParseFlavor(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFlavor("rush"); !errors.Is(err, ErrUnknownFlavor) {
		t.Errorf("expected ErrUnknownFlavor, got %v", err)
	}
}

func TestTripRanges(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	const floors = 5
	for range 500 {
		start, dest := Uniform.Trip(r, floors)
		if start < 1 || start > floors || dest < 1 || dest > floors || start == dest {
			t.Fatalf("uniform trip %d -> %d", start, dest)
		}
		start, dest = Lobby.Trip(r, floors)
		if start != 1 || dest < 2 || dest > floors {
			t.Fatalf("lobby trip %d -> %d", start, dest)
		}
		start, dest = Exodus.Trip(r, floors)
		if dest != 1 || start < 2 || start > floors {
			t.Fatalf("exodus trip %d -> %d", start, dest)
		}
	}
	if start, dest := Uniform.Trip(r, 1); start != 1 || dest != 1 {
		t.Errorf("single floor trip %d -> %d", start, dest)
	}
}

func TestGeneratorLimit(t *testing.T) {
	sched := timer.NewScheduler(time.Time{})
	sink := &recordingSink{}
	g, err := NewGenerator(sched, sink, 4, config.Traffic{Flavor: "lobby", Interval: time.Second, Limit: 3}, 9)
	if err != nil {
		t.Fatal(err)
	}
	g.Start()

	sched.Advance(500 * time.Millisecond)
	if len(sink.trips) != 0 {
		t.Fatalf("passenger added before the first interval")
	}
	sched.Advance(10 * time.Second)
	if len(sink.trips) != 3 || g.Added() != 3 {
		t.Errorf("expected 3 passengers, got %d", len(sink.trips))
	}
	if g.Running() {
		t.Errorf("generator still running past its limit")
	}
}

func TestGeneratorStopsOnSinkError(t *testing.T) {
	sched := timer.NewScheduler(time.Time{})
	sink := &recordingSink{err: errors.New("closed")}
	g, err := NewGenerator(sched, sink, 4, config.Traffic{Interval: time.Second}, 1)
	if err != nil {
		t.Fatal(err)
	}
	g.Start()
	sched.Advance(5 * time.Second)
	if g.Running() || sched.Pending() != 0 {
		t.Errorf("generator kept running after the sink failed")
	}
}

func TestGeneratorStop(t *testing.T) {
	sched := timer.NewScheduler(time.Time{})
	sink := &recordingSink{}
	g, _ := NewGenerator(sched, sink, 4, config.Traffic{Interval: time.Second}, 1)
	g.Start()
	sched.Advance(2500 * time.Millisecond)
	g.Stop()
	sched.Advance(time.Minute)
	if len(sink.trips) != 2 {
		t.Errorf("expected 2 passengers before Stop, got %d", len(sink.trips))
	}
}

func TestNewGeneratorRejectsBadConfig(t *testing.T) {
	sched := timer.NewScheduler(time.Time{})
	if _, err := NewGenerator(sched, &recordingSink{}, 4, config.Traffic{Flavor: "rush", Interval: time.Second}, 1); err == nil {
		t.Errorf("expected an unknown flavor to be rejected")
	}
	if _, err := NewGenerator(sched, &recordingSink{}, 4, config.Traffic{}, 1); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected a zero interval to be rejected, got %v", err)
	}
}
