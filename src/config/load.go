package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the YAML file.
const (
	EnvElevators       = "ELEVSIM_ELEVATORS"
	EnvFloors          = "ELEVSIM_FLOORS"
	EnvMaxOccupancy    = "ELEVSIM_MAX_OCCUPANCY"
	EnvSpeed           = "ELEVSIM_SPEED"
	EnvSeed            = "ELEVSIM_SEED"
	EnvTrafficFlavor   = "ELEVSIM_TRAFFIC_FLAVOR"
	EnvTrafficInterval = "ELEVSIM_TRAFFIC_INTERVAL"
	EnvLogLevel        = "ELEVSIM_LOG_LEVEL"
)

// Load decodes a YAML file on top of Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from envFile (if it exists) and then from the process
// environment, which wins.
func ApplyEnv(cfg *Config, envFile string) error {
	values := map[string]string{}
	if envFile != "" {
		fileValues, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read env file %s: %w", envFile, err)
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}
	for _, key := range []string{
		EnvElevators, EnvFloors, EnvMaxOccupancy, EnvSpeed, EnvSeed,
		EnvTrafficFlavor, EnvTrafficInterval, EnvLogLevel,
	} {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}
	return applyValues(cfg, values)
}

func applyValues(cfg *Config, values map[string]string) error {
	for key, raw := range values {
		var err error
		switch key {
		case EnvElevators:
			cfg.Sim.Elevators, err = strconv.Atoi(raw)
		case EnvFloors:
			cfg.Sim.Floors, err = strconv.Atoi(raw)
		case EnvMaxOccupancy:
			cfg.Sim.MaxOccupancy, err = strconv.Atoi(raw)
		case EnvSpeed:
			cfg.Sim.Speed, err = strconv.ParseFloat(raw, 64)
		case EnvSeed:
			cfg.Sim.Seed, err = strconv.ParseUint(raw, 10, 64)
		case EnvTrafficFlavor:
			cfg.Traffic.Flavor = raw
		case EnvTrafficInterval:
			cfg.Traffic.Interval, err = time.ParseDuration(raw)
		case EnvLogLevel:
			cfg.Run.LogLevel = raw
		}
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, key, raw, err)
		}
	}
	return nil
}
