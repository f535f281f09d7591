// Package traffic feeds random passengers into a simulation.
package traffic

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"elevsim/src/config"
	"elevsim/src/timer"
	"elevsim/src/types"
)

var ErrUnknownFlavor = errors.New("unknown traffic flavor")

// Flavor decides where generated passengers start and where they go.
type Flavor string

const (
	Uniform Flavor = "uniform" // any level to any other level
	Lobby   Flavor = "lobby"   // level 1 to an upper level
	Exodus  Flavor = "exodus"  // an upper level to level 1
)

func ParseFlavor(s string) (Flavor, error) {
	switch f := Flavor(strings.ToLower(strings.TrimSpace(s))); f {
	case Uniform, Lobby, Exodus:
		return f, nil
	case "":
		return Uniform, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFlavor, s)
}

// Trip picks a (start, destination) pair of one based levels. With a single
// floor every trip is (1, 1).
func (f Flavor) Trip(r types.Rand, floors int) (int, int) {
	if floors <= 1 {
		return 1, 1
	}
	switch f {
	case Lobby:
		return 1, 2 + r.IntN(floors-1)
	case Exodus:
		return 2 + r.IntN(floors-1), 1
	}
	start := 1 + r.IntN(floors)
	dest := 1 + r.IntN(floors-1)
	if dest >= start {
		dest++
	}
	return start, dest
}

// Sink accepts generated passengers. *sim.Simulation satisfies it.
type Sink interface {
	AddPassenger(startLevel, destLevel int) (int, error)
}

// Generator adds one passenger per interval until stopped or until its limit
// is reached.
type Generator struct {
	sink     Sink
	flavor   Flavor
	floors   int
	interval time.Duration
	limit    int

	mu    sync.Mutex
	rnd   *rand.Rand
	added int
	actor *timer.Actor
}

func NewGenerator(sched *timer.Scheduler, sink Sink, floors int, cfg config.Traffic, seed uint64) (*Generator, error) {
	flavor, err := ParseFlavor(cfg.Flavor)
	if err != nil {
		return nil, err
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("%w: traffic interval %v must be positive", config.ErrInvalid, cfg.Interval)
	}
	g := &Generator{
		sink:     sink,
		flavor:   flavor,
		floors:   floors,
		interval: cfg.Interval,
		limit:    cfg.Limit,
		rnd:      rand.New(rand.NewPCG(seed, ^seed)),
	}
	g.actor = timer.NewActor(sched, &g.mu, g.step)
	return g, nil
}

// Start schedules the first passenger one interval from now.
func (g *Generator) Start() {
	slog.Info("Traffic started", "flavor", g.flavor, "interval", g.interval, "limit", g.limit)
	g.actor.Start(g.interval)
}

func (g *Generator) Stop() {
	g.actor.Stop()
}

func (g *Generator) Running() bool {
	return g.actor.Running()
}

// Added returns how many passengers were accepted by the sink.
func (g *Generator) Added() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.added
}

func (g *Generator) step() (time.Duration, bool) {
	start, dest := g.flavor.Trip(g.rnd, g.floors)
	id, err := g.sink.AddPassenger(start, dest)
	if err != nil {
		slog.Warn("Traffic stopped", "flavor", g.flavor, "error", err)
		return 0, false
	}
	g.added++
	slog.Debug("Passenger generated", "id", id, "start", start, "dest", dest)
	if g.limit > 0 && g.added >= g.limit {
		slog.Info("Traffic limit reached", "added", g.added)
		return 0, false
	}
	return g.interval, true
}
