package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Nominal dwell durations at speed 1x. Every actor divides these by Sim.Speed.
const (
	IdleInterval      = 500 * time.Millisecond  // Closed with nothing to do
	DoorOpenDuration  = 2 * time.Second         // Closed -> Open
	DoorHoldInterval  = 500 * time.Millisecond  // Open -> Open while someone is in the doorway
	DoorCloseDuration = 500 * time.Millisecond  // Open -> Closed
	DoorSensorWindow  = 1 * time.Second         // recency window for the last board/alight
	TravelDuration    = 1500 * time.Millisecond // one floor, MovingUp/MovingDown -> Closed

	PassengerInterval = 500 * time.Millisecond // WaitingForElevator, WaitingForFloor re-checks
	DoorPassDuration  = 1 * time.Second        // EnteringElevator, ExitingElevator
	RetryInterval     = 250 * time.Millisecond // WaitingToEnter/ExitElevator base
	RetryJitter       = 250 * time.Millisecond // upper bound of random jitter added to retries

	EventLogSize = 1000
)

var ErrInvalid = errors.New("invalid configuration")

// Sim holds the four values accepted by Simulation.Configure.
type Sim struct {
	Elevators    int     `yaml:"elevators"`
	Floors       int     `yaml:"floors"`
	MaxOccupancy int     `yaml:"max_occupancy"`
	Speed        float64 `yaml:"speed"`
	Seed         uint64  `yaml:"seed"`
}

// Traffic configures the random passenger source.
type Traffic struct {
	Flavor   string        `yaml:"flavor"`
	Interval time.Duration `yaml:"interval"`
	Limit    int           `yaml:"limit"` // 0 means unlimited
}

// Run configures the command surface.
type Run struct {
	Duration       time.Duration `yaml:"duration"` // 0 runs until interrupted
	StatusInterval time.Duration `yaml:"status_interval"`
	LogLevel       string        `yaml:"log_level"`
	LogFile        string        `yaml:"log_file"`
}

type Config struct {
	Sim     Sim     `yaml:"sim"`
	Traffic Traffic `yaml:"traffic"`
	Run     Run     `yaml:"run"`
}

func Default() Config {
	return Config{
		Sim: Sim{
			Elevators:    3,
			Floors:       6,
			MaxOccupancy: 8,
			Speed:        1,
			Seed:         1,
		},
		Traffic: Traffic{
			Flavor:   "uniform",
			Interval: 3 * time.Second,
		},
		Run: Run{
			StatusInterval: time.Second,
			LogLevel:       "info",
		},
	}
}

// Validate rejects non-positive counts and a non-positive or non-finite speed.
func (s Sim) Validate() error {
	switch {
	case s.Elevators <= 0:
		return fmt.Errorf("%w: elevator count %d must be positive", ErrInvalid, s.Elevators)
	case s.Floors <= 0:
		return fmt.Errorf("%w: floor count %d must be positive", ErrInvalid, s.Floors)
	case s.MaxOccupancy <= 0:
		return fmt.Errorf("%w: max occupancy %d must be positive", ErrInvalid, s.MaxOccupancy)
	case math.IsNaN(s.Speed) || math.IsInf(s.Speed, 0) || s.Speed <= 0:
		return fmt.Errorf("%w: speed multiplier %v must be positive", ErrInvalid, s.Speed)
	}
	return nil
}

func (c Config) Validate() error {
	if err := c.Sim.Validate(); err != nil {
		return err
	}
	if c.Traffic.Interval < 0 {
		return fmt.Errorf("%w: traffic interval %v is negative", ErrInvalid, c.Traffic.Interval)
	}
	if c.Traffic.Limit < 0 {
		return fmt.Errorf("%w: traffic limit %d is negative", ErrInvalid, c.Traffic.Limit)
	}
	if c.Run.Duration < 0 {
		return fmt.Errorf("%w: run duration %v is negative", ErrInvalid, c.Run.Duration)
	}
	return nil
}
