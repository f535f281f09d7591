// Package elev advances a single elevator. Every transition returns the dwell
// until the next one; the caller owns scheduling.
package elev

import (
	"log/slog"
	"time"

	"elevsim/src/building"
	"elevsim/src/config"
	"elevsim/src/types"
)

// Step runs one transition for e. It returns false when the elevator must not
// be scheduled again, which only happens on a broken invariant.
func Step(env types.Env, b *building.Building, e *building.Elevator) (time.Duration, bool) {
	if _, ok := b.Floor(e.Floor); !ok {
		return halt(env, e, "elevator has no current floor")
	}

	switch e.State {
	case types.Open:
		return handleOpen(env, b, e)
	case types.Closed:
		return chooseAction(env, b, e)
	case types.MovingUp, types.MovingDown:
		// Travel dwell is over: the car is at its new floor with doors shut.
		e.State = types.Closed
		env.Emit(types.ElevatorActor, e.ID, "arrived at level %d", e.Floor+1)
		return chooseAction(env, b, e)
	}
	return halt(env, e, "unknown elevator state")
}

// handleOpen keeps the door open while someone is passing through or has
// just passed, otherwise clears what was served here and closes.
func handleOpen(env types.Env, b *building.Building, e *building.Elevator) (time.Duration, bool) {
	sinceDoor := env.Now().Sub(e.LastDoorEvent())
	if e.Door().Claimed() || sinceDoor < env.Dwell(config.DoorSensorWindow) {
		return env.Dwell(config.DoorHoldInterval), true
	}

	f := b.Floors[e.Floor]
	e.SetDropoff(f.Index, false)
	if e.Direction != types.Stationary {
		e.SetPickup(f.Index, e.Direction, false)
		f.ResetCall(e.Direction)
	}
	e.State = types.Closed
	env.Emit(types.ElevatorActor, e.ID, "closed doors at level %d", f.Level())
	return env.Dwell(config.DoorCloseDuration), true
}

// chooseAction is the Closed decision chain, first match wins:
//  1. dropoff here, or pickup here in the current direction: open
//  2. heading up with work strictly above: go up
//  3. heading down with work strictly below: go down
//  4. any dropoff above: go up
//  5. any dropoff below: go down
//  6. nearest pickup anywhere: head for it
//  7. otherwise idle
//
// A full car ignores pickups.
func chooseAction(env types.Env, b *building.Building, e *building.Elevator) (time.Duration, bool) {
	room := e.HasRoom()

	if e.Direction == types.Stationary && room {
		if dir, ok := pickupHere(env, e); ok {
			e.Direction = dir
		}
	}
	if e.HasDropoff(e.Floor) || (room && e.Pickup(e.Floor, e.Direction)) {
		return openDoor(env, e)
	}

	switch {
	case e.Direction == types.Up && stopsAbove(e, servable(e, types.Up)...):
		return move(env, b, e, types.Up)
	case e.Direction == types.Down && stopsBelow(e, servable(e, types.Down)...):
		return move(env, b, e, types.Down)
	case stopsAbove(e):
		return move(env, b, e, types.Up)
	case stopsBelow(e):
		return move(env, b, e, types.Down)
	}

	if room {
		if target, ok := nearestPickup(env, e); ok {
			if target == e.Floor {
				// Only a pickup against the current direction is left here: turn around.
				e.Direction, _ = pickupHere(env, e)
				return openDoor(env, e)
			}
			return move(env, b, e, types.DirectionBetween(e.Floor, target))
		}
	}

	if e.Direction != types.Stationary {
		env.Emit(types.ElevatorActor, e.ID, "idle at level %d", e.Floor+1)
	}
	e.Direction = types.Stationary
	return env.Dwell(config.IdleInterval), true
}

func servable(e *building.Elevator, dir types.Direction) []types.Direction {
	if !e.HasRoom() {
		return nil
	}
	return []types.Direction{dir}
}

func openDoor(env types.Env, e *building.Elevator) (time.Duration, bool) {
	e.State = types.Open
	env.Emit(types.ElevatorActor, e.ID, "opened doors at level %d going %s", e.Floor+1, e.Direction)
	return env.Dwell(config.DoorOpenDuration), true
}

// move advances one floor in dir. The floor changes at departure; the
// Moving state covers the travel dwell.
func move(env types.Env, b *building.Building, e *building.Elevator, dir types.Direction) (time.Duration, bool) {
	target := e.Floor + 1
	state := types.MovingUp
	if dir == types.Down {
		target = e.Floor - 1
		state = types.MovingDown
	}
	if err := b.MoveElevator(e, target); err != nil {
		return halt(env, e, err.Error())
	}
	e.Direction = dir
	e.State = state
	env.Emit(types.ElevatorActor, e.ID, "moving %s towards level %d", dir, target+1)
	return env.Dwell(config.TravelDuration), true
}

func halt(env types.Env, e *building.Elevator, reason string) (time.Duration, bool) {
	slog.Error("Elevator halted", "elevator", e.ID, "floor", e.Floor, "state", e.State, "reason", reason)
	env.Emit(types.ElevatorActor, e.ID, "halted: %s", reason)
	return 0, false
}
