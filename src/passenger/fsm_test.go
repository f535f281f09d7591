package passenger

import (
	"testing"
	"time"

	"elevsim/src/building"
	"elevsim/src/config"
	"elevsim/src/types"
)

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time { return c.now }

type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

func newEnv() (types.Env, *manualClock) {
	clock := &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return types.Env{Speed: 1, Clock: clock, Rand: zeroRand{}}, clock
}

func addPassenger(t *testing.T, b *building.Building, env types.Env, origin, dest int) *building.Passenger {
	t.Helper()
	p := building.NewPassenger(len(b.Passengers), origin, dest, env.Now())
	if err := b.AddPassenger(p); err != nil {
		t.Fatal(err)
	}
	return p
}

func openAt(t *testing.T, b *building.Building, id, floor int, dir types.Direction) *building.Elevator {
	t.Helper()
	e := b.Elevators[id]
	if err := b.MoveElevator(e, floor); err != nil {
		t.Fatal(err)
	}
	e.State = types.Open
	e.Direction = dir
	return e
}

func TestJoinAtDestination(t *testing.T) {
	env, _ := newEnv()
	b := building.New(1, 3, 2)
	p := addPassenger(t, b, env, 1, 1)

	if _, ok := Step(env, b, p); ok {
		t.Errorf("expected no further ticks")
	}
	if p.State != types.ReachedDestination {
		t.Errorf("state = %v", p.State)
	}
	if len(b.Floors[1].Waiting) != 0 {
		t.Errorf("passenger still waiting on its floor")
	}
	if p.EndTime().IsZero() {
		t.Errorf("end time not recorded")
	}
}

func TestWaitingPressesButton(t *testing.T) {
	env, _ := newEnv()
	b := building.New(2, 4, 2)
	p := addPassenger(t, b, env, 2, 0)

	dwell, ok := Step(env, b, p)
	if !ok || dwell != config.PassengerInterval {
		t.Fatalf("unexpected dwell %v %v", dwell, ok)
	}
	if p.State != types.WaitingForElevator {
		t.Fatalf("state = %v", p.State)
	}
	if !b.Floors[2].CallDown {
		t.Errorf("call button not pressed")
	}
	if !b.Elevators[0].Pickup(2, types.Down) {
		t.Errorf("pickup not dispatched to elevator 0")
	}

	// Staying put does not dispatch again.
	Step(env, b, p)
	if b.Elevators[1].StopCount() != 0 || b.Elevators[0].StopCount() != 1 {
		t.Errorf("duplicate dispatch")
	}
}

func TestIgnoresElevatorGoingTheOtherWay(t *testing.T) {
	env, _ := newEnv()
	b := building.New(1, 4, 2)
	openAt(t, b, 0, 1, types.Down)
	p := addPassenger(t, b, env, 1, 3)

	Step(env, b, p)
	if p.State != types.WaitingForElevator {
		t.Errorf("boarded an elevator going the wrong way: %v", p.State)
	}
}

func TestBoardRideExit(t *testing.T) {
	env, clock := newEnv()
	b := building.New(1, 4, 2)
	e := openAt(t, b, 0, 0, types.Up)
	p := addPassenger(t, b, env, 0, 2)

	dwell, _ := Step(env, b, p)
	if p.State != types.EnteringElevator || dwell != config.DoorPassDuration {
		t.Fatalf("expected EnteringElevator, got %v after %v", p.State, dwell)
	}
	if !e.Door().Claimed() {
		t.Fatalf("door not claimed")
	}

	clock.now = clock.now.Add(dwell)
	Step(env, b, p)
	if p.State != types.WaitingForFloor || p.Elevator != 0 || p.Floor != building.None {
		t.Fatalf("not onboard: %+v", p)
	}
	if e.Door().Claimed() {
		t.Errorf("door still claimed after boarding")
	}
	if !e.HasDropoff(2) || !e.LastDoorEvent().Equal(clock.now) {
		t.Errorf("dropoff or door event missing")
	}

	// Riding.
	e.State = types.MovingUp
	b.MoveElevator(e, 1)
	Step(env, b, p)
	if p.State != types.WaitingForFloor {
		t.Fatalf("state = %v", p.State)
	}

	b.MoveElevator(e, 2)
	e.State = types.Open
	Step(env, b, p)
	if p.State != types.ExitingElevator {
		t.Fatalf("expected ExitingElevator, got %v", p.State)
	}

	clock.now = clock.now.Add(time.Second)
	if _, ok := Step(env, b, p); ok {
		t.Errorf("expected the passenger to finish")
	}
	if p.State != types.ReachedDestination || len(e.Onboard) != 0 || e.Door().Claimed() {
		t.Errorf("exit incomplete: %v onboard=%v", p.State, e.OnboardIDs())
	}
	if p.TravelTime() != 2*time.Second {
		t.Errorf("travel time = %v", p.TravelTime())
	}
}

func TestContendedDoor(t *testing.T) {
	env, _ := newEnv()
	b := building.New(1, 3, 2)
	e := openAt(t, b, 0, 0, types.Up)
	p := addPassenger(t, b, env, 0, 2)
	e.Door().Claim()

	dwell, _ := Step(env, b, p)
	if p.State != types.WaitingToEnterElevator {
		t.Fatalf("expected WaitingToEnterElevator, got %v", p.State)
	}
	if dwell != config.RetryInterval {
		t.Errorf("retry dwell = %v", dwell)
	}

	e.Door().Release()
	Step(env, b, p)
	if p.State != types.EnteringElevator {
		t.Errorf("expected retry to claim, got %v", p.State)
	}
}

func TestOpportunityVanishes(t *testing.T) {
	env, _ := newEnv()
	b := building.New(1, 3, 2)
	e := openAt(t, b, 0, 0, types.Up)
	p := addPassenger(t, b, env, 0, 2)
	e.Door().Claim()
	Step(env, b, p)

	e.Door().Release()
	e.State = types.Closed
	Step(env, b, p)
	if p.State != types.WaitingForElevator {
		t.Errorf("expected fallback to WaitingForElevator, got %v", p.State)
	}
	if !b.Floors[0].CallUp {
		t.Errorf("expected the call button to be pressed")
	}
}

func TestFullElevatorIsNotAnOpportunity(t *testing.T) {
	env, _ := newEnv()
	b := building.New(1, 3, 1)
	e := openAt(t, b, 0, 0, types.Up)
	e.Onboard[99] = struct{}{}
	p := addPassenger(t, b, env, 0, 2)

	Step(env, b, p)
	if p.State != types.WaitingForElevator || e.Door().Claimed() {
		t.Errorf("passenger tried to enter a full car: %v", p.State)
	}
}

func TestExitContention(t *testing.T) {
	env, _ := newEnv()
	b := building.New(1, 3, 2)
	e := openAt(t, b, 0, 0, types.Up)
	p := addPassenger(t, b, env, 0, 1)
	if err := b.Board(p, e); err != nil {
		t.Fatal(err)
	}
	p.State = types.WaitingForFloor
	b.MoveElevator(e, 1)
	e.Door().Claim()

	Step(env, b, p)
	if p.State != types.WaitingToExitElevator {
		t.Fatalf("expected WaitingToExitElevator, got %v", p.State)
	}

	// The doors close before the door frees up.
	e.State = types.Closed
	Step(env, b, p)
	if p.State != types.WaitingForFloor {
		t.Errorf("expected fallback to WaitingForFloor, got %v", p.State)
	}
	if !e.HasDropoff(1) {
		t.Errorf("dropoff not re-requested")
	}
}

func TestWaitingForFloorWithoutElevatorHalts(t *testing.T) {
	env, _ := newEnv()
	b := building.New(1, 3, 2)
	p := addPassenger(t, b, env, 0, 2)
	p.State = types.WaitingForFloor

	if _, ok := Step(env, b, p); ok {
		t.Errorf("expected the passenger to halt")
	}
	if p.State != types.WaitingForFloor {
		t.Errorf("halting must not change state, got %v", p.State)
	}
}
