package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"elevsim/src/config"
	"elevsim/src/console"
	"elevsim/src/dispatcher"
	"elevsim/src/executor"
	"elevsim/src/logger"
	"elevsim/src/timer"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	Log := logger.GetLoggerConfigured(level)
	Log.Info().Msgf("Starting simulation: %s", cfg)

	building, err := dispatcher.NewBuilding(cfg.Floors, cfg.Elevators, cfg.Capacity,
		dispatcher.WithTiming(cfg.DoorOpenTicks, cfg.TerminalWaitTicks))
	if err != nil {
		Log.Error().Err(err).Msg("Could not create building")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	group, ctx := errgroup.WithContext(ctx)

	ex := executor.Start(ctx, building)
	timerAction := make(chan timer.TimerAction)
	opts := []console.Option{
		console.WithAutoStep(timerAction),
		console.WithClearScreen(true),
		console.WithSessionID(cfg.SessionID),
	}
	if cfg.Seed != 0 {
		opts = append(opts, console.WithSeed(cfg.Seed))
	}
	con := console.New(ex, os.Stdout, opts...)

	group.Go(func() error {
		timer.Run(ctx, cfg.TickInterval, timerAction, func() {
			if _, err := ex.Step(); err != nil {
				return
			}
			con.Redraw()
		})
		return nil
	})
	group.Go(func() error {
		defer cancel()
		if err := ex.StartSystem(); err != nil {
			return err
		}
		if cfg.AutoStep {
			if _, err := con.Execute("a"); err != nil {
				return err
			}
		}
		if cfg.Interactive {
			return con.RunKeys(ctx)
		}
		return con.Run(ctx, os.Stdin)
	})

	if err := group.Wait(); err != nil {
		Log.Error().Err(err).Msg("Simulation ended with an error")
		os.Exit(1)
	}
}
