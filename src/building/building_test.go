package building

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"elevsim/src/types"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDoorMutex(t *testing.T) {
	var m DoorMutex
	if !m.Claim() {
		t.Fatalf("expected first claim to succeed")
	}
	if m.Claim() {
		t.Errorf("expected second claim to fail")
	}
	m.Release()
	if !m.Claim() {
		t.Errorf("expected claim after release to succeed")
	}
}

func TestDoorMutexConcurrentClaims(t *testing.T) {
	var m DoorMutex
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m.Claim() {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	if wins.Load() != 1 {
		t.Errorf("expected exactly one winning claim, got %d", wins.Load())
	}
}

func TestFloorLinkage(t *testing.T) {
	b := New(2, 4, 1)
	for i, f := range b.Floors {
		if f.Level() != i+1 {
			t.Errorf("floor %d has level %d", i, f.Level())
		}
		wantBelow, wantAbove := i-1, i+1
		if i == 0 {
			wantBelow = None
		}
		if i == len(b.Floors)-1 {
			wantAbove = None
		}
		if f.Below != wantBelow || f.Above != wantAbove {
			t.Errorf("floor %d linked below=%d above=%d", i, f.Below, f.Above)
		}
	}
}

func TestElevatorsParkOnGround(t *testing.T) {
	b := New(3, 5, 2)
	for _, e := range b.Elevators {
		if e.Floor != 0 || e.State != types.Closed || e.Direction != types.Stationary {
			t.Errorf("elevator %d not parked: floor=%d state=%v dir=%v", e.ID, e.Floor, e.State, e.Direction)
		}
	}
	if got := b.Floors[0].SlotsString(); got != "[0 1 2 ]" {
		t.Errorf("ground slots = %q", got)
	}
	if got := b.Floors[1].SlotsString(); got != "[- - - ]" {
		t.Errorf("first floor slots = %q", got)
	}
}

func TestMoveElevatorUpdatesSlots(t *testing.T) {
	b := New(2, 3, 1)
	e := b.Elevators[1]
	if err := b.MoveElevator(e, 2); err != nil {
		t.Fatal(err)
	}
	if b.Floors[0].Slots[1] || !b.Floors[2].Slots[1] {
		t.Errorf("slots not moved: %v %v", b.Floors[0].Slots, b.Floors[2].Slots)
	}
	if err := b.MoveElevator(e, 3); !errors.Is(err, ErrUnknownFloor) {
		t.Errorf("expected ErrUnknownFloor, got %v", err)
	}
	if e.Floor != 2 {
		t.Errorf("invalid move changed floor to %d", e.Floor)
	}
}

func TestCallLatchIdempotent(t *testing.T) {
	f := newFloor(1, 3, 1)
	if !f.SetCall(types.Up) {
		t.Errorf("first press should latch")
	}
	if f.SetCall(types.Up) {
		t.Errorf("second press should be a no-op")
	}
	if f.SetCall(types.Stationary) {
		t.Errorf("stationary is not a button")
	}
	f.ResetCall(types.Up)
	if f.Call(types.Up) {
		t.Errorf("reset did not clear latch")
	}
}

func TestBoardAndAlight(t *testing.T) {
	b := New(1, 3, 1)
	e := b.Elevators[0]
	p1 := NewPassenger(0, 0, 2, epoch)
	p2 := NewPassenger(1, 0, 1, epoch)
	for _, p := range []*Passenger{p1, p2} {
		if err := b.AddPassenger(p); err != nil {
			t.Fatal(err)
		}
	}
	if len(b.Floors[0].Waiting) != 2 {
		t.Fatalf("expected 2 waiting, got %d", len(b.Floors[0].Waiting))
	}

	if err := b.Board(p1, e); err != nil {
		t.Fatalf("Board: %v", err)
	}
	if p1.Floor != None || p1.Elevator != e.ID {
		t.Errorf("location after board: floor=%d elevator=%d", p1.Floor, p1.Elevator)
	}
	if _, waiting := b.Floors[0].Waiting[p1.ID]; waiting {
		t.Errorf("boarded passenger still waiting")
	}
	if err := b.Board(p2, e); !errors.Is(err, ErrFull) {
		t.Errorf("expected ErrFull, got %v", err)
	}
	if len(e.Onboard) != 1 {
		t.Errorf("capacity exceeded: %d onboard", len(e.Onboard))
	}

	b.MoveElevator(e, 2)
	if err := b.Alight(p1); err != nil {
		t.Fatalf("Alight: %v", err)
	}
	if p1.Elevator != None || p1.Floor != 2 || len(e.Onboard) != 0 {
		t.Errorf("location after alight: floor=%d elevator=%d onboard=%d", p1.Floor, p1.Elevator, len(e.Onboard))
	}
	if _, waiting := b.Floors[2].Waiting[p1.ID]; waiting {
		t.Errorf("alighted passenger should not join the waiting set")
	}
}

func TestBoardWrongFloor(t *testing.T) {
	b := New(1, 3, 4)
	p := NewPassenger(0, 1, 2, epoch)
	b.AddPassenger(p)
	if err := b.Board(p, b.Elevators[0]); !errors.Is(err, ErrNotHere) {
		t.Errorf("expected ErrNotHere, got %v", err)
	}
}

func TestAddPassengerValidation(t *testing.T) {
	b := New(1, 2, 1)
	if err := b.AddPassenger(NewPassenger(0, 0, 5, epoch)); !errors.Is(err, ErrUnknownFloor) {
		t.Errorf("expected ErrUnknownFloor, got %v", err)
	}
	if len(b.Passengers) != 0 {
		t.Errorf("invalid passenger registered")
	}
}

func TestRetireIdempotent(t *testing.T) {
	b := New(1, 2, 2)
	p := NewPassenger(0, 0, 1, epoch)
	b.AddPassenger(p)
	b.Board(p, b.Elevators[0])

	end := epoch.Add(5 * time.Second)
	b.Retire(p, end)
	b.Retire(p, end.Add(time.Hour))
	if len(b.Elevators[0].Onboard) != 0 || len(b.Floors[0].Waiting) != 0 {
		t.Errorf("retired passenger still indexed")
	}
	if p.TravelTime() != 5*time.Second {
		t.Errorf("travel time = %v, want 5s", p.TravelTime())
	}
}

func TestStopCount(t *testing.T) {
	e := newElevator(0, 1, 4)
	e.SetDropoff(1, true)
	e.SetPickup(1, types.Up, true)
	e.SetPickup(3, types.Down, true)
	e.SetPickup(7, types.Down, true) // ignored
	if got := e.StopCount(); got != 3 {
		t.Errorf("StopCount = %d, want 3", got)
	}
	if !e.HasPendingPickups(types.Down) || !e.HasPendingPickups(types.Up) {
		t.Errorf("pending pickups mismatch")
	}
}
