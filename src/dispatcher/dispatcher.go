// Package dispatcher picks the elevator that answers a hall call.
package dispatcher

import (
	"log/slog"

	"elevsim/src/building"
	"elevsim/src/types"
)

// CallElevatorIfNeeded presses the call button for dir on f. Dispatch only
// happens when the latch goes from false to true; repeated presses are no-ops.
// It returns true if the press changed state.
func CallElevatorIfNeeded(env types.Env, b *building.Building, f *building.Floor, dir types.Direction) bool {
	if !f.SetCall(dir) {
		return false
	}
	a := Select(b, f.Index, dir)
	if a.Elevator != building.None {
		env.Emit(types.ElevatorActor, a.Elevator, "assigned pickup %s at level %d (%s)", dir, f.Level(), a.Rule)
	} else {
		env.Emit(types.SimulationActor, 0, "call %s at level %d already covered (%s)", dir, f.Level(), a.Rule)
	}
	return true
}

// Select commits a pickup for (floor, dir) on exactly one elevator. The first
// matching rule wins:
//  1. a stationary elevator parked on the floor
//  2. an elevator already holding the pickup: nothing to do
//  3. the nearest elevator that is idle or approaching the floor
//  4. the elevator with the fewest outstanding stops
//
// Ties go to the lowest elevator id.
//
// Rule 2 does not touch the floor's call latch.
func Select(b *building.Building, floor int, dir types.Direction) Assignment {
	a := Assignment{Floor: floor, Dir: dir, Elevator: building.None}
	if len(b.Elevators) == 0 {
		return a
	}

	for _, e := range b.Elevators {
		if e.Direction == types.Stationary && e.Floor == floor {
			return commit(a, e, ParkedHere)
		}
	}

	for _, e := range b.Elevators {
		if e.Pickup(floor, dir) {
			a.Rule = AlreadyTaken
			return a
		}
	}

	var best *building.Elevator
	for _, e := range b.Elevators {
		if !idle(e) && !approaching(e, floor) {
			continue
		}
		if best == nil || distance(e, floor) < distance(best, floor) {
			best = e
		}
	}
	if best != nil {
		return commit(a, best, Nearest)
	}

	best = b.Elevators[0]
	for _, e := range b.Elevators[1:] {
		if e.StopCount() < best.StopCount() {
			best = e
		}
	}
	return commit(a, best, LeastBusy)
}

func commit(a Assignment, e *building.Elevator, rule Rule) Assignment {
	e.SetPickup(a.Floor, a.Dir, true)
	a.Elevator = e.ID
	a.Rule = rule
	slog.Debug("Pickup assigned",
		"elevator", e.ID,
		"floor", a.Floor,
		"dir", a.Dir,
		"rule", rule)
	return a
}
