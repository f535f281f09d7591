package dispatcher

import "elevsim/src/types"

// Rule identifies which step of the selection chain decided a call.
type Rule int

const (
	NoRule       Rule = iota
	ParkedHere        // stationary elevator already on the floor
	AlreadyTaken      // an elevator already holds this pickup
	Nearest           // nearest idle or approaching elevator
	LeastBusy         // every elevator moves away; fewest outstanding stops
)

func (r Rule) String() string {
	switch r {
	case ParkedHere:
		return "parked here"
	case AlreadyTaken:
		return "already taken"
	case Nearest:
		return "nearest"
	case LeastBusy:
		return "least busy"
	}
	return "none"
}

// Assignment is the outcome of Select.
type Assignment struct {
	Floor    int
	Dir      types.Direction
	Elevator int // building.None when no elevator was committed
	Rule     Rule
}
