package building

import (
	"time"

	"elevsim/src/types"
)

type Passenger struct {
	ID          int
	Origin      int // floor index
	Destination int // floor index
	State       types.PassengerState

	// Exactly one of Floor and Elevator is set while the trip is in progress.
	Floor    int
	Elevator int

	// Boarding is the elevator whose door the passenger holds while entering.
	Boarding int

	startTime time.Time
	endTime   time.Time
}

func NewPassenger(id, origin, destination int, start time.Time) *Passenger {
	return &Passenger{
		ID:          id,
		Origin:      origin,
		Destination: destination,
		State:       types.JoiningSim,
		Floor:       origin,
		Elevator:    None,
		Boarding:    None,
		startTime:   start,
	}
}

// Direction is the travel direction from origin to destination.
func (p *Passenger) Direction() types.Direction {
	return types.DirectionBetween(p.Origin, p.Destination)
}

func (p *Passenger) StartTime() time.Time { return p.startTime }
func (p *Passenger) EndTime() time.Time   { return p.endTime }

// Finish records the end time once.
func (p *Passenger) Finish(t time.Time) {
	if p.endTime.IsZero() {
		p.endTime = t
	}
}

// TravelTime is zero until the passenger has reached its destination.
func (p *Passenger) TravelTime() time.Duration {
	if p.endTime.IsZero() {
		return 0
	}
	return p.endTime.Sub(p.startTime)
}

func (p *Passenger) Arrived() bool {
	return p.State == types.ReachedDestination
}
