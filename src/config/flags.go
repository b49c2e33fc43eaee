package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// Load builds the configuration from defaults, then the -config YAML file, then the -env file,
// then any flag given explicitly on the command line.
func Load(args []string, usage io.Writer) (Config, error) {
	fs := flag.NewFlagSet("elevsim", flag.ContinueOnError)
	fs.SetOutput(usage)

	configPath := fs.String("config", "", "YAML configuration file")
	envPath := fs.String("env", "", "env file with "+EnvPrefix+"* overrides")
	floors := fs.Int("floors", DefaultFloors, "number of floors")
	elevators := fs.Int("elevators", DefaultElevators, "number of elevators")
	capacity := fs.Int("capacity", DefaultCapacity, "requests an elevator takes per trip")
	doorTicks := fs.Int("door", DefaultDoorOpenTicks, "ticks the door stays open")
	waitTicks := fs.Int("wait", DefaultTerminalWaitTicks, "ticks an elevator waits at floor 0 and the top floor")
	interval := fs.Duration("interval", DefaultTickInterval, "auto-step tick interval")
	logLevel := fs.String("log", DefaultLogLevel, "log level (trace, debug, info, warn, error, disabled)")
	interactive := fs.Bool("keys", false, "single-key mode instead of line commands")
	autoStep := fs.Bool("auto", false, "start with auto-step on")
	sessionID := fs.String("session", "", "session identifier, random when empty")
	seed := fs.Uint64("seed", 0, "seed for random requests, random when 0")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Default()
	var err error
	if *configPath != "" {
		if cfg, err = LoadFile(*configPath, cfg); err != nil {
			return Config{}, err
		}
	}
	if *envPath != "" {
		if cfg, err = ApplyEnvFile(*envPath, cfg); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "floors":
			cfg.Floors = *floors
		case "elevators":
			cfg.Elevators = *elevators
		case "capacity":
			cfg.Capacity = *capacity
		case "door":
			cfg.DoorOpenTicks = *doorTicks
		case "wait":
			cfg.TerminalWaitTicks = *waitTicks
		case "interval":
			cfg.TickInterval = *interval
		case "log":
			cfg.LogLevel = *logLevel
		case "keys":
			cfg.Interactive = *interactive
		case "auto":
			cfg.AutoStep = *autoStep
		case "session":
			cfg.SessionID = *sessionID
		case "seed":
			cfg.Seed = *seed
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) String() string {
	return fmt.Sprintf("floors=%d elevators=%d capacity=%d door=%d wait=%d interval=%s",
		c.Floors, c.Elevators, c.Capacity, c.DoorOpenTicks, c.TerminalWaitTicks, c.TickInterval.Round(time.Millisecond))
}
