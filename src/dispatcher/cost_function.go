package dispatcher

import (
	"elevsim/src/building"
	"elevsim/src/types"
)

// distance is the number of floors between the elevator and the call.
func distance(e *building.Elevator, floor int) int {
	d := e.Floor - floor
	if d < 0 {
		return -d
	}
	return d
}

// idle is a stationary elevator with nothing left to do. A stationary
// elevator that already holds stops is about to leave in an unknown direction.
func idle(e *building.Elevator) bool {
	return e.Direction == types.Stationary && e.StopCount() == 0
}

// approaching reports whether e can take a call on floor without turning:
//   - moving up from at or below the floor with no down pickups pending
//   - moving down from at or above the floor with no up pickups pending
func approaching(e *building.Elevator, floor int) bool {
	switch e.Direction {
	case types.Up:
		return e.Floor <= floor && !e.HasPendingPickups(types.Down)
	case types.Down:
		return e.Floor >= floor && !e.HasPendingPickups(types.Up)
	}
	return false
}
