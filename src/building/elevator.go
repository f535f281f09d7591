package building

import (
	"slices"
	"time"

	"elevsim/src/types"
)

// Elevator owns its door, its onboard set and its per-floor stop flags.
type Elevator struct {
	ID           int
	MaxOccupancy int
	State        types.ElevatorState
	Direction    types.Direction
	Floor        int // current floor index, changed only through Building.MoveElevator
	Onboard      map[int]struct{}
	PickupUp     []bool
	PickupDown   []bool
	Dropoff      []bool

	door          DoorMutex
	lastDoorEvent time.Time
}

func newElevator(id, maxOccupancy, numFloors int) *Elevator {
	return &Elevator{
		ID:           id,
		MaxOccupancy: maxOccupancy,
		State:        types.Closed,
		Direction:    types.Stationary,
		Floor:        None,
		Onboard:      make(map[int]struct{}),
		PickupUp:     make([]bool, numFloors),
		PickupDown:   make([]bool, numFloors),
		Dropoff:      make([]bool, numFloors),
	}
}

func (e *Elevator) Door() *DoorMutex {
	return &e.door
}

func (e *Elevator) HasRoom() bool {
	return len(e.Onboard) < e.MaxOccupancy
}

func (e *Elevator) LastDoorEvent() time.Time {
	return e.lastDoorEvent
}

// MarkDoorEvent records a successful board or alight.
func (e *Elevator) MarkDoorEvent(t time.Time) {
	e.lastDoorEvent = t
}

func (e *Elevator) validFloor(floor int) bool {
	return floor >= 0 && floor < len(e.Dropoff)
}

// Pickup reports the pickup flag for (floor, dir).
func (e *Elevator) Pickup(floor int, dir types.Direction) bool {
	if !e.validFloor(floor) {
		return false
	}
	switch dir {
	case types.Up:
		return e.PickupUp[floor]
	case types.Down:
		return e.PickupDown[floor]
	}
	return false
}

// AnyPickup reports whether either pickup flag is set on floor.
func (e *Elevator) AnyPickup(floor int) bool {
	return e.Pickup(floor, types.Up) || e.Pickup(floor, types.Down)
}

func (e *Elevator) SetPickup(floor int, dir types.Direction, on bool) {
	if !e.validFloor(floor) {
		return
	}
	switch dir {
	case types.Up:
		e.PickupUp[floor] = on
	case types.Down:
		e.PickupDown[floor] = on
	}
}

func (e *Elevator) HasDropoff(floor int) bool {
	return e.validFloor(floor) && e.Dropoff[floor]
}

func (e *Elevator) SetDropoff(floor int, on bool) {
	if e.validFloor(floor) {
		e.Dropoff[floor] = on
	}
}

// StopCount counts every set flag; a floor with several flags counts several times.
func (e *Elevator) StopCount() int {
	count := 0
	for floor := range e.Dropoff {
		for _, set := range []bool{e.Dropoff[floor], e.PickupUp[floor], e.PickupDown[floor]} {
			if set {
				count++
			}
		}
	}
	return count
}

// HasPendingPickups reports whether any pickup flag for dir is set.
func (e *Elevator) HasPendingPickups(dir types.Direction) bool {
	flags := e.PickupUp
	if dir == types.Down {
		flags = e.PickupDown
	}
	return slices.Contains(flags, true)
}

// OnboardIDs returns the onboard passenger ids in ascending order.
func (e *Elevator) OnboardIDs() []int {
	ids := make([]int, 0, len(e.Onboard))
	for id := range e.Onboard {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
