// Package building holds the simulation topology: floors, elevators and
// passengers, all addressed by id. Cross references are ids into these
// collections, never pointers between entities.
package building

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrFull            = errors.New("elevator is full")
	ErrNotOnFloor      = errors.New("passenger is not on a floor")
	ErrNotOnElevator   = errors.New("passenger is not on an elevator")
	ErrNotHere         = errors.New("elevator is not at the passenger's floor")
	ErrUnknownFloor    = errors.New("unknown floor")
	ErrUnknownElevator = errors.New("unknown elevator")
)

type Building struct {
	Elevators  []*Elevator
	Floors     []*Floor
	Passengers []*Passenger // indexed by id
}

// New builds the floors, links them vertically and parks every elevator on
// the ground floor. Counts must already be validated as positive.
func New(numElevators, numFloors, maxOccupancy int) *Building {
	b := &Building{
		Elevators: make([]*Elevator, numElevators),
		Floors:    make([]*Floor, numFloors),
	}
	for i := range b.Floors {
		b.Floors[i] = newFloor(i, numFloors, numElevators)
	}
	for i := range b.Elevators {
		b.Elevators[i] = newElevator(i, maxOccupancy, numFloors)
		b.MoveElevator(b.Elevators[i], 0)
	}
	return b
}

// Floor returns the floor at a zero based index.
func (b *Building) Floor(index int) (*Floor, bool) {
	if index < 0 || index >= len(b.Floors) {
		return nil, false
	}
	return b.Floors[index], true
}

// FloorForLevel returns the floor for a one based level.
func (b *Building) FloorForLevel(level int) (*Floor, bool) {
	return b.Floor(level - 1)
}

func (b *Building) Elevator(id int) (*Elevator, bool) {
	if id < 0 || id >= len(b.Elevators) {
		return nil, false
	}
	return b.Elevators[id], true
}

func (b *Building) Passenger(id int) (*Passenger, bool) {
	if id < 0 || id >= len(b.Passengers) {
		return nil, false
	}
	return b.Passengers[id], true
}

// MoveElevator is the only place an elevator's floor changes: it clears the
// slot on the old floor and fills it on the new one.
func (b *Building) MoveElevator(e *Elevator, index int) error {
	to, ok := b.Floor(index)
	if !ok {
		return fmt.Errorf("%w: index %d", ErrUnknownFloor, index)
	}
	if from, ok := b.Floor(e.Floor); ok {
		from.setSlot(e.ID, false)
	}
	e.Floor = index
	to.setSlot(e.ID, true)
	return nil
}

// ElevatorsAt returns the elevators present on a floor, in id order.
func (b *Building) ElevatorsAt(f *Floor) []*Elevator {
	var here []*Elevator
	for _, id := range f.ElevatorIDs() {
		if e, ok := b.Elevator(id); ok {
			here = append(here, e)
		}
	}
	return here
}

// AddPassenger registers p and puts it in its origin floor's waiting set.
// The passenger id must equal len(b.Passengers).
func (b *Building) AddPassenger(p *Passenger) error {
	origin, ok := b.Floor(p.Origin)
	if !ok {
		return fmt.Errorf("%w: origin %d", ErrUnknownFloor, p.Origin)
	}
	if _, ok := b.Floor(p.Destination); !ok {
		return fmt.Errorf("%w: destination %d", ErrUnknownFloor, p.Destination)
	}
	if p.ID != len(b.Passengers) {
		return fmt.Errorf("passenger id %d out of sequence, expected %d", p.ID, len(b.Passengers))
	}
	b.Passengers = append(b.Passengers, p)
	origin.Waiting[p.ID] = struct{}{}
	p.Floor = origin.Index
	p.Elevator = None
	return nil
}

// Board moves p from its floor's waiting set to e's onboard set.
func (b *Building) Board(p *Passenger, e *Elevator) error {
	f, ok := b.Floor(p.Floor)
	if !ok || p.Elevator != None {
		return fmt.Errorf("passenger %d: %w", p.ID, ErrNotOnFloor)
	}
	if e.Floor != f.Index {
		return fmt.Errorf("passenger %d, elevator %d: %w", p.ID, e.ID, ErrNotHere)
	}
	if !e.HasRoom() {
		return fmt.Errorf("elevator %d: %w", e.ID, ErrFull)
	}
	delete(f.Waiting, p.ID)
	e.Onboard[p.ID] = struct{}{}
	p.Floor = None
	p.Elevator = e.ID
	return nil
}

// Alight removes p from its elevator and places it on the elevator's
// current floor. The passenger does not join that floor's waiting set.
func (b *Building) Alight(p *Passenger) error {
	e, ok := b.Elevator(p.Elevator)
	if !ok {
		return fmt.Errorf("passenger %d: %w", p.ID, ErrNotOnElevator)
	}
	delete(e.Onboard, p.ID)
	p.Elevator = None
	p.Floor = e.Floor
	return nil
}

// Retire removes p from every floor and elevator index. Safe to repeat.
func (b *Building) Retire(p *Passenger, at time.Time) {
	for _, f := range b.Floors {
		delete(f.Waiting, p.ID)
	}
	for _, e := range b.Elevators {
		delete(e.Onboard, p.ID)
	}
	if p.Elevator != None {
		if e, ok := b.Elevator(p.Elevator); ok {
			p.Floor = e.Floor
		}
		p.Elevator = None
	}
	p.Finish(at)
}
