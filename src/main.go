package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"elevsim/src/config"
	"elevsim/src/eventlog"
	"elevsim/src/sim"
	"elevsim/src/timer"
	"elevsim/src/traffic"
	"elevsim/src/utils"

	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	envFile := flag.String("env", ".env", "file with ELEVSIM_* overrides")
	duration := flag.Duration("duration", 0, "stop after this long (0 runs until interrupted)")
	seed := flag.Uint64("seed", 0, "random seed (0 keeps the configured seed)")
	flag.Parse()

	if err := run(*configPath, *envFile, *duration, *seed); err != nil {
		fmt.Fprintln(os.Stderr, "elevsim:", err)
		os.Exit(1)
	}
}

func run(configPath, envFile string, duration time.Duration, seed uint64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(&cfg, envFile); err != nil {
		return err
	}
	if duration > 0 {
		cfg.Run.Duration = duration
	}
	if seed != 0 {
		cfg.Sim.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := eventlog.ParseLevel(cfg.Run.LogLevel)
	if err != nil {
		return err
	}
	logOut, closeLog, err := eventlog.OpenLogOutput(cfg.Run.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	eventlog.InitLogger(logOut, level)

	sched := timer.NewScheduler(time.Now())
	recorder := eventlog.NewRecorder(config.EventLogSize)
	simulation := sim.New(sched, eventlog.Multi{recorder, eventlog.SlogSink{}})
	if err := simulation.Configure(cfg.Sim); err != nil {
		return err
	}
	defer simulation.Stop()

	var gen *traffic.Generator
	if cfg.Traffic.Interval > 0 {
		gen, err = traffic.NewGenerator(sched, simulation, cfg.Sim.Floors, cfg.Traffic, cfg.Sim.Seed)
		if err != nil {
			return err
		}
		gen.Start()
		defer gen.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Run.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Run.Duration)
		defer cancel()
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return sched.Run(ctx)
	})
	if cfg.Run.StatusInterval > 0 {
		group.Go(func() error {
			ticker := time.NewTicker(cfg.Run.StatusInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					utils.PrintStatus(os.Stdout, simulation.Snapshot())
				}
			}
		})
	}

	err = group.Wait()
	simulation.Stop()
	snap := simulation.Snapshot()
	fmt.Println()
	utils.PrintBuilding(os.Stdout, snap)
	slog.Info("Simulation finished",
		"events", recorder.Len(),
		"inTransit", snap.Stats.InTransit,
		"arrived", snap.Stats.Arrived,
		"meanTravelTime", fmt.Sprintf("%.2fs", snap.Stats.MeanTravelTime))

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
