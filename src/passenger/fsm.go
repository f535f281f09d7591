// Package passenger advances a single passenger from its origin floor to its
// destination.
package passenger

import (
	"log/slog"
	"time"

	"elevsim/src/building"
	"elevsim/src/config"
	"elevsim/src/dispatcher"
	"elevsim/src/types"
)

// Step runs one transition for p and returns the dwell until the next one.
// It returns false once the passenger is done or has halted.
func Step(env types.Env, b *building.Building, p *building.Passenger) (time.Duration, bool) {
	switch p.State {
	case types.JoiningSim:
		if p.Origin == p.Destination {
			return reach(env, b, p)
		}
		p.State = types.WaitingForElevator
		env.Emit(types.PassengerActor, p.ID, "waiting at level %d to go %s to level %d",
			p.Origin+1, p.Direction(), p.Destination+1)
		return waitForElevator(env, b, p)

	case types.WaitingForElevator:
		return waitForElevator(env, b, p)

	case types.WaitingToEnterElevator:
		if openHere(b, p) == nil {
			p.State = types.WaitingForElevator
			return waitForElevator(env, b, p)
		}
		return tryEnter(env, b, p)

	case types.EnteringElevator:
		return enter(env, b, p)

	case types.WaitingForFloor:
		return waitForFloor(env, b, p)

	case types.WaitingToExitElevator:
		e, ok := b.Elevator(p.Elevator)
		if !ok {
			return halt(env, p, "waiting to exit without an elevator")
		}
		if !atDestination(e, p) {
			p.State = types.WaitingForFloor
			return waitForFloor(env, b, p)
		}
		return tryExit(env, e, p)

	case types.ExitingElevator:
		return exit(env, b, p)

	case types.ReachedDestination:
		return 0, false
	}
	return halt(env, p, "unknown passenger state")
}

// openHere returns the first elevator on p's floor that is open, heading
// p's way and has room, or nil.
func openHere(b *building.Building, p *building.Passenger) *building.Elevator {
	f, ok := b.Floor(p.Floor)
	if !ok {
		return nil
	}
	dir := p.Direction()
	for _, e := range b.ElevatorsAt(f) {
		if e.State == types.Open && e.Direction == dir && e.HasRoom() {
			return e
		}
	}
	return nil
}

func waitForElevator(env types.Env, b *building.Building, p *building.Passenger) (time.Duration, bool) {
	f, ok := b.Floor(p.Floor)
	if !ok || p.Elevator != building.None {
		return halt(env, p, "waiting for an elevator while not on a floor")
	}
	if openHere(b, p) != nil {
		return tryEnter(env, b, p)
	}
	dispatcher.CallElevatorIfNeeded(env, b, f, p.Direction())
	return env.Dwell(config.PassengerInterval), true
}

func tryEnter(env types.Env, b *building.Building, p *building.Passenger) (time.Duration, bool) {
	e := openHere(b, p)
	if e != nil && e.Door().Claim() {
		p.Boarding = e.ID
		p.State = types.EnteringElevator
		env.Emit(types.PassengerActor, p.ID, "entering elevator %d at level %d", e.ID, p.Floor+1)
		return env.Dwell(config.DoorPassDuration), true
	}
	p.State = types.WaitingToEnterElevator
	return retry(env), true
}

func enter(env types.Env, b *building.Building, p *building.Passenger) (time.Duration, bool) {
	e, ok := b.Elevator(p.Boarding)
	if !ok {
		return halt(env, p, "entering without an elevator")
	}
	p.Boarding = building.None
	defer e.Door().Release()

	if err := b.Board(p, e); err != nil {
		// The car filled up or left under us; wait for the next one.
		slog.Warn("Boarding failed", "passenger", p.ID, "elevator", e.ID, "error", err)
		p.State = types.WaitingForElevator
		return retry(env), true
	}
	e.MarkDoorEvent(env.Now())
	e.SetDropoff(p.Destination, true)
	p.State = types.WaitingForFloor
	env.Emit(types.PassengerActor, p.ID, "boarded elevator %d", e.ID)
	return env.Dwell(config.PassengerInterval), true
}

func atDestination(e *building.Elevator, p *building.Passenger) bool {
	return e.State == types.Open && e.Floor == p.Destination
}

func waitForFloor(env types.Env, b *building.Building, p *building.Passenger) (time.Duration, bool) {
	e, ok := b.Elevator(p.Elevator)
	if !ok {
		return halt(env, p, "waiting for a floor without an elevator")
	}
	if atDestination(e, p) {
		return tryExit(env, e, p)
	}
	e.SetDropoff(p.Destination, true)
	return env.Dwell(config.PassengerInterval), true
}

func tryExit(env types.Env, e *building.Elevator, p *building.Passenger) (time.Duration, bool) {
	if e.Door().Claim() {
		p.State = types.ExitingElevator
		env.Emit(types.PassengerActor, p.ID, "exiting elevator %d at level %d", e.ID, e.Floor+1)
		return env.Dwell(config.DoorPassDuration), true
	}
	p.State = types.WaitingToExitElevator
	return retry(env), true
}

func exit(env types.Env, b *building.Building, p *building.Passenger) (time.Duration, bool) {
	e, ok := b.Elevator(p.Elevator)
	if !ok {
		return halt(env, p, "exiting without an elevator")
	}
	e.Door().Release()
	if err := b.Alight(p); err != nil {
		return halt(env, p, err.Error())
	}
	e.MarkDoorEvent(env.Now())
	return reach(env, b, p)
}

// reach is the terminal transition. Cleanup is idempotent.
func reach(env types.Env, b *building.Building, p *building.Passenger) (time.Duration, bool) {
	now := env.Now()
	p.State = types.ReachedDestination
	b.Retire(p, now)
	env.Emit(types.PassengerActor, p.ID, "reached level %d after %.1fs",
		p.Destination+1, p.TravelTime().Seconds())
	return 0, false
}

func retry(env types.Env) time.Duration {
	return env.Dwell(config.RetryInterval) + env.Jitter(config.RetryJitter)
}

func halt(env types.Env, p *building.Passenger, reason string) (time.Duration, bool) {
	slog.Error("Passenger halted", "passenger", p.ID, "state", p.State, "reason", reason)
	env.Emit(types.PassengerActor, p.ID, "halted: %s", reason)
	return 0, false
}
