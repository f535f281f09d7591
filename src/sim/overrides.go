package sim

import (
	"fmt"

	"elevsim/src/building"
	"elevsim/src/types"
)

// Manual overrides for debugging. They bypass the elevator state machine and
// are guarded only by bounds checks; the next transition picks up whatever
// they leave behind.

func (s *Simulation) OpenElevator(id int) error {
	return s.withElevator(id, func(e *building.Elevator) error {
		e.State = types.Open
		s.env.Emit(types.ElevatorActor, e.ID, "manually opened at level %d", e.Floor+1)
		return nil
	})
}

func (s *Simulation) CloseElevator(id int) error {
	return s.withElevator(id, func(e *building.Elevator) error {
		e.State = types.Closed
		s.env.Emit(types.ElevatorActor, e.ID, "manually closed at level %d", e.Floor+1)
		return nil
	})
}

// MoveElevator places the elevator on a level without travelling.
func (s *Simulation) MoveElevator(id, level int) error {
	return s.withElevator(id, func(e *building.Elevator) error {
		f, ok := s.bld.FloorForLevel(level)
		if !ok {
			return fmt.Errorf("%w: %d", ErrInvalidLevel, level)
		}
		if err := s.bld.MoveElevator(e, f.Index); err != nil {
			return err
		}
		s.env.Emit(types.ElevatorActor, e.ID, "manually moved to level %d", level)
		return nil
	})
}

func (s *Simulation) SetElevatorDirection(id int, dir types.Direction) error {
	return s.withElevator(id, func(e *building.Elevator) error {
		e.Direction = dir
		s.env.Emit(types.ElevatorActor, e.ID, "manually set direction %s", dir)
		return nil
	})
}

func (s *Simulation) AddPickupStop(id, level int, dir types.Direction) error {
	return s.withElevator(id, func(e *building.Elevator) error {
		f, ok := s.bld.FloorForLevel(level)
		if !ok {
			return fmt.Errorf("%w: %d", ErrInvalidLevel, level)
		}
		if dir != types.Up && dir != types.Down {
			return fmt.Errorf("pickup at level %d needs a direction, got %s", level, dir)
		}
		e.SetPickup(f.Index, dir, true)
		s.env.Emit(types.ElevatorActor, e.ID, "manual pickup %s at level %d", dir, level)
		return nil
	})
}

func (s *Simulation) AddDropoffStop(id, level int) error {
	return s.withElevator(id, func(e *building.Elevator) error {
		f, ok := s.bld.FloorForLevel(level)
		if !ok {
			return fmt.Errorf("%w: %d", ErrInvalidLevel, level)
		}
		e.SetDropoff(f.Index, true)
		s.env.Emit(types.ElevatorActor, e.ID, "manual dropoff at level %d", level)
		return nil
	})
}

func (s *Simulation) withElevator(id int, fn func(e *building.Elevator) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bld == nil {
		return ErrNotRunning
	}
	e, ok := s.bld.Elevator(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidElevator, id)
	}
	return fn(e)
}
