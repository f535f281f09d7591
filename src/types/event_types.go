package types

import (
	"fmt"
	"time"
)

type ActorKind int

const (
	SimulationActor ActorKind = iota
	ElevatorActor
	PassengerActor
)

func (k ActorKind) String() string {
	switch k {
	case SimulationActor:
		return "Simulation"
	case ElevatorActor:
		return "Elevator"
	case PassengerActor:
		return "Passenger"
	}
	return "Unknown"
}

// Event is a one-way notification emitted at each transition.
type Event struct {
	Time    time.Time
	Kind    ActorKind
	ID      int
	Message string
}

// Actor renders the emitting actor, e.g. "Elevator 2".
func (e Event) Actor() string {
	if e.Kind == SimulationActor {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s %d", e.Kind, e.ID)
}

func (e Event) String() string {
	return fmt.Sprintf("%s: %s", e.Actor(), e.Message)
}

// EventSink receives events. Implementations must not call back into the simulation.
type EventSink interface {
	Emit(Event)
}
