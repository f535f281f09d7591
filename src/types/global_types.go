package types

// Direction is the travel intent of an elevator or passenger.
type Direction int

const (
	Stationary Direction = iota
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Stationary:
		return "Stationary"
	case Up:
		return "Up"
	case Down:
		return "Down"
	}
	return "Unknown"
}

// Opposite returns Down for Up and Up for Down. Stationary has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	}
	return Stationary
}

// DirectionBetween returns the direction of travel from one floor index to another.
func DirectionBetween(from, to int) Direction {
	if from < to {
		return Up
	}
	if from > to {
		return Down
	}
	return Stationary
}

type ElevatorState int

const (
	Closed ElevatorState = iota
	Open
	MovingUp
	MovingDown
)

func (s ElevatorState) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Open:
		return "Open"
	case MovingUp:
		return "Moving up towards floor"
	case MovingDown:
		return "Moving down towards floor"
	}
	return "Unknown"
}

type PassengerState int

const (
	JoiningSim PassengerState = iota
	WaitingForElevator
	EnteringElevator
	WaitingToEnterElevator
	WaitingForFloor
	WaitingToExitElevator
	ExitingElevator
	ReachedDestination
)

func (s PassengerState) String() string {
	switch s {
	case JoiningSim:
		return "Joining simulation"
	case WaitingForElevator:
		return "Waiting for elevator"
	case EnteringElevator:
		return "Entering elevator"
	case WaitingToEnterElevator:
		return "Waiting to enter elevator"
	case WaitingForFloor:
		return "Waiting for floor"
	case WaitingToExitElevator:
		return "Waiting to exit elevator"
	case ExitingElevator:
		return "Exiting elevator"
	case ReachedDestination:
		return "Reached destination"
	}
	return "Unknown"
}
