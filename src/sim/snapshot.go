package sim

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"elevsim/src/config"
	"elevsim/src/types"

	"github.com/tiendc/go-deepcopy"
)

// Snapshot is a detached copy of the simulation state. Mutating it has no
// effect on the running simulation.
type Snapshot struct {
	Time       time.Time
	Running    bool
	Config     config.Sim
	Elevators  []ElevatorView
	Floors     []FloorView
	Passengers []PassengerView
	Stats      Stats
}

type ElevatorView struct {
	ID           int
	MaxOccupancy int
	State        types.ElevatorState
	Direction    types.Direction
	Floor        int
	Onboard      map[int]struct{}
	PickupUp     []bool
	PickupDown   []bool
	Dropoff      []bool
	DoorClaimed  bool
}

// OnboardString lists the onboard passenger ids, e.g. "3 7 ".
func (v ElevatorView) OnboardString() string {
	return idList(v.Onboard)
}

func (v ElevatorView) String() string {
	return fmt.Sprintf("Elevator %d: %s %s at level %d, onboard [%s]",
		v.ID, v.State, v.Direction, v.Floor+1, v.OnboardString())
}

type FloorView struct {
	Index    int
	CallUp   bool
	CallDown bool
	Waiting  map[int]struct{}
	Slots    []bool
	Above    int
	Below    int
}

// WaitingString lists the waiting passenger ids, e.g. "0 4 ".
func (v FloorView) WaitingString() string {
	return idList(v.Waiting)
}

// SlotsString renders which elevators are here, e.g. "[0 - 2 ]".
func (v FloorView) SlotsString() string {
	var b strings.Builder
	b.WriteString("[")
	for id, here := range v.Slots {
		if here {
			fmt.Fprintf(&b, "%d ", id)
		} else {
			b.WriteString("- ")
		}
	}
	b.WriteString("]")
	return b.String()
}

type PassengerView struct {
	ID          int
	Origin      int
	Destination int
	State       types.PassengerState
	Floor       int
	Elevator    int
	StartTime   time.Time
	EndTime     time.Time
}

func (v PassengerView) String() string {
	return fmt.Sprintf("Passenger %d: %s (level %d to level %d)", v.ID, v.State, v.Origin+1, v.Destination+1)
}

// Snapshot copies the current state for readers such as a renderer.
func (s *Simulation) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Time:    s.env.Now(),
		Running: s.running,
		Config:  s.cfg,
		Stats:   s.statsLocked(),
	}
	if s.bld == nil {
		return snap
	}

	snap.Elevators = make([]ElevatorView, len(s.bld.Elevators))
	for i, e := range s.bld.Elevators {
		copyView(&snap.Elevators[i], e)
		snap.Elevators[i].DoorClaimed = e.Door().Claimed()
	}
	snap.Floors = make([]FloorView, len(s.bld.Floors))
	for i, f := range s.bld.Floors {
		copyView(&snap.Floors[i], f)
	}
	snap.Passengers = make([]PassengerView, len(s.bld.Passengers))
	for i, p := range s.bld.Passengers {
		copyView(&snap.Passengers[i], p)
		snap.Passengers[i].StartTime = p.StartTime()
		snap.Passengers[i].EndTime = p.EndTime()
	}
	return snap
}

func copyView[V any, T any](dst *V, src *T) {
	if err := deepcopy.Copy(dst, src); err != nil {
		slog.Error("Snapshot copy failed", "type", fmt.Sprintf("%T", src), "error", err)
	}
}

func idList(set map[int]struct{}) string {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	var b strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&b, "%d ", id)
	}
	return b.String()
}
