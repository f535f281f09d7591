package elev

import (
	"elevsim/src/building"
	"elevsim/src/types"
)

// countStops counts flags in [startFloor, endFloor). pickups selects which
// pickup flags count alongside dropoffs.
func countStops(elevator *building.Elevator, startFloor, endFloor int, pickups ...types.Direction) (result int) {
	for floor := max(startFloor, 0); floor < min(endFloor, len(elevator.Dropoff)); floor++ {
		if elevator.Dropoff[floor] {
			result++
		}
		for _, dir := range pickups {
			if elevator.Pickup(floor, dir) {
				result++
			}
		}
	}
	return result
}

// stopsAbove reports dropoffs, or pickups for the given directions, strictly above.
func stopsAbove(elevator *building.Elevator, pickups ...types.Direction) bool {
	return countStops(elevator, elevator.Floor+1, len(elevator.Dropoff), pickups...) > 0
}

// stopsBelow reports dropoffs, or pickups for the given directions, strictly below.
func stopsBelow(elevator *building.Elevator, pickups ...types.Direction) bool {
	return countStops(elevator, 0, elevator.Floor, pickups...) > 0
}

// pickupHere returns the pickup direction to serve on the current floor.
// When both are set the choice is random.
func pickupHere(env types.Env, elevator *building.Elevator) (types.Direction, bool) {
	up := elevator.Pickup(elevator.Floor, types.Up)
	down := elevator.Pickup(elevator.Floor, types.Down)
	switch {
	case up && down:
		if env.Coin() {
			return types.Up, true
		}
		return types.Down, true
	case up:
		return types.Up, true
	case down:
		return types.Down, true
	}
	return types.Stationary, false
}

// nearestPickup searches outward from the current floor for any pickup flag.
// Probe order (up or down first) is randomised once per call. Distance 0 is
// the current floor.
func nearestPickup(env types.Env, elevator *building.Elevator) (int, bool) {
	numFloors := len(elevator.Dropoff)
	if elevator.AnyPickup(elevator.Floor) {
		return elevator.Floor, true
	}
	upFirst := env.Coin()
	for dist := 1; dist < numFloors; dist++ {
		probes := [2]int{elevator.Floor + dist, elevator.Floor - dist}
		if !upFirst {
			probes[0], probes[1] = probes[1], probes[0]
		}
		for _, floor := range probes {
			if floor >= 0 && floor < numFloors && elevator.AnyPickup(floor) {
				return floor, true
			}
		}
	}
	return building.None, false
}
