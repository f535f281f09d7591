package building

import (
	"fmt"
	"slices"
	"strings"

	"elevsim/src/types"
)

// None marks an absent floor, elevator or passenger reference.
const None = -1

// Floor holds the call buttons and the passengers waiting on one level.
type Floor struct {
	Index    int // zero based; level 1 is index 0
	CallUp   bool
	CallDown bool
	Waiting  map[int]struct{} // passenger ids
	Slots    []bool           // Slots[elevatorID] is true while that elevator is here
	Above    int
	Below    int
}

func newFloor(index, numFloors, numElevators int) *Floor {
	f := &Floor{
		Index:   index,
		Waiting: make(map[int]struct{}),
		Slots:   make([]bool, numElevators),
		Above:   None,
		Below:   None,
	}
	if index+1 < numFloors {
		f.Above = index + 1
	}
	if index > 0 {
		f.Below = index - 1
	}
	return f
}

func (f *Floor) Level() int {
	return f.Index + 1
}

// Call reports the latch for dir.
func (f *Floor) Call(dir types.Direction) bool {
	switch dir {
	case types.Up:
		return f.CallUp
	case types.Down:
		return f.CallDown
	}
	return false
}

// SetCall latches the button for dir. It returns true only on a false to
// true transition.
func (f *Floor) SetCall(dir types.Direction) bool {
	switch dir {
	case types.Up:
		if f.CallUp {
			return false
		}
		f.CallUp = true
		return true
	case types.Down:
		if f.CallDown {
			return false
		}
		f.CallDown = true
		return true
	}
	return false
}

// ResetCall clears the latch for dir. Called by the servicing elevator.
func (f *Floor) ResetCall(dir types.Direction) {
	switch dir {
	case types.Up:
		f.CallUp = false
	case types.Down:
		f.CallDown = false
	}
}

// ElevatorIDs returns the ids of the elevators present, in id order.
func (f *Floor) ElevatorIDs() []int {
	var ids []int
	for id, here := range f.Slots {
		if here {
			ids = append(ids, id)
		}
	}
	return ids
}

// WaitingIDs returns the waiting passenger ids in ascending order.
func (f *Floor) WaitingIDs() []int {
	ids := make([]int, 0, len(f.Waiting))
	for id := range f.Waiting {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (f *Floor) setSlot(elevatorID int, here bool) {
	if elevatorID >= 0 && elevatorID < len(f.Slots) {
		f.Slots[elevatorID] = here
	}
}

// SlotsString renders the slots as "[0 - 2 ]".
func (f *Floor) SlotsString() string {
	var b strings.Builder
	b.WriteString("[")
	for id, here := range f.Slots {
		if here {
			fmt.Fprintf(&b, "%d ", id)
		} else {
			b.WriteString("- ")
		}
	}
	b.WriteString("]")
	return b.String()
}
