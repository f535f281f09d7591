// Package sim owns one simulation run: the building, an actor per elevator
// and per passenger, and the scheduler that drives them.
package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"elevsim/src/building"
	"elevsim/src/config"
	"elevsim/src/elev"
	"elevsim/src/passenger"
	"elevsim/src/timer"
	"elevsim/src/types"
)

var (
	ErrInvalidConfig   = config.ErrInvalid
	ErrInvalidLevel    = errors.New("invalid level")
	ErrInvalidElevator = errors.New("invalid elevator")
	ErrNotRunning      = errors.New("simulation is not running")
)

// Simulation is safe for concurrent use. Every actor step runs with mu held,
// so transitions never interleave.
type Simulation struct {
	mu      sync.Mutex
	sched   *timer.Scheduler
	events  types.EventSink
	cfg     config.Sim
	env     types.Env
	bld     *building.Building
	running bool

	elevators  []*timer.Actor
	passengers []*timer.Actor
}

// New returns an unconfigured simulation. events may be nil.
func New(sched *timer.Scheduler, events types.EventSink) *Simulation {
	return &Simulation{sched: sched, events: events}
}

// Configure validates cfg, stops any previous run and starts a new one with
// every elevator parked on level 1. On error nothing changes.
func (s *Simulation) Configure(cfg config.Sim) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()

	seed := cfg.Seed
	s.cfg = cfg
	s.env = types.Env{
		Speed:  cfg.Speed,
		Clock:  s.sched,
		Rand:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Events: s.events,
	}
	s.bld = building.New(cfg.Elevators, cfg.Floors, cfg.MaxOccupancy)
	s.passengers = nil
	s.elevators = make([]*timer.Actor, len(s.bld.Elevators))

	env, bld := s.env, s.bld
	for i, e := range bld.Elevators {
		s.elevators[i] = timer.NewActor(s.sched, &s.mu, func() (time.Duration, bool) {
			return elev.Step(env, bld, e)
		})
		s.elevators[i].Start(env.Dwell(config.IdleInterval))
	}
	s.running = true

	slog.Info("Simulation configured",
		"elevators", cfg.Elevators,
		"floors", cfg.Floors,
		"maxOccupancy", cfg.MaxOccupancy,
		"speed", cfg.Speed)
	s.env.Emit(types.SimulationActor, 0, "configured %d elevators, %d floors, max occupancy %d, speed %gx",
		cfg.Elevators, cfg.Floors, cfg.MaxOccupancy, cfg.Speed)
	return nil
}

// Stop cancels every pending transition. State is left as it was.
func (s *Simulation) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.env.Emit(types.SimulationActor, 0, "stopped")
	}
	s.stopLocked()
}

func (s *Simulation) stopLocked() {
	for _, a := range s.elevators {
		a.Stop()
	}
	for _, a := range s.passengers {
		a.Stop()
	}
	s.running = false
}

func (s *Simulation) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// AddPassenger registers a passenger between two one based levels and
// schedules its first transition. It returns the passenger id.
func (s *Simulation) AddPassenger(startLevel, destLevel int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return building.None, ErrNotRunning
	}
	start, ok := s.bld.FloorForLevel(startLevel)
	if !ok {
		return building.None, fmt.Errorf("%w: start level %d", ErrInvalidLevel, startLevel)
	}
	dest, ok := s.bld.FloorForLevel(destLevel)
	if !ok {
		return building.None, fmt.Errorf("%w: destination level %d", ErrInvalidLevel, destLevel)
	}

	p := building.NewPassenger(len(s.bld.Passengers), start.Index, dest.Index, s.env.Now())
	if err := s.bld.AddPassenger(p); err != nil {
		return building.None, err
	}
	env, bld := s.env, s.bld
	a := timer.NewActor(s.sched, &s.mu, func() (time.Duration, bool) {
		return passenger.Step(env, bld, p)
	})
	s.passengers = append(s.passengers, a)
	a.Start(env.Dwell(config.PassengerInterval))

	env.Emit(types.SimulationActor, 0, "added passenger %d from level %d to level %d", p.ID, startLevel, destLevel)
	return p.ID, nil
}

// FloorForLevel returns the zero based index of a one based level.
func (s *Simulation) FloorForLevel(level int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bld == nil {
		return building.None, ErrNotRunning
	}
	f, ok := s.bld.FloorForLevel(level)
	if !ok {
		return building.None, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	return f.Index, nil
}

func (s *Simulation) PassengersInTransit() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsLocked().InTransit
}

func (s *Simulation) PassengersArrived() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsLocked().Arrived
}

// MeanTravelTime is the mean trip duration in seconds over completed trips,
// or 0 when none have completed.
func (s *Simulation) MeanTravelTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsLocked().MeanTravelTime
}

// Stats holds the derived passenger queries.
type Stats struct {
	InTransit      int
	Arrived        int
	MeanTravelTime float64 // seconds
}

func (s *Simulation) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsLocked()
}

func (s *Simulation) statsLocked() Stats {
	var st Stats
	if s.bld == nil {
		return st
	}
	var total time.Duration
	for _, p := range s.bld.Passengers {
		if p.Arrived() {
			st.Arrived++
			total += p.TravelTime()
		} else {
			st.InTransit++
		}
	}
	if st.Arrived > 0 {
		st.MeanTravelTime = total.Seconds() / float64(st.Arrived)
	}
	return st
}
