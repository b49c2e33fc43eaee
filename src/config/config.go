package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFloors            = 11
	DefaultElevators         = 8
	DefaultCapacity          = 3
	DefaultDoorOpenTicks     = 3
	DefaultTerminalWaitTicks = 5
	DefaultTickInterval      = 500 * time.Millisecond
	DefaultLogLevel          = "info"

	MinFloors    = 2
	MaxFloors    = 30
	MinOccupancy = 1
	MaxOccupancy = 20

	EnvPrefix = "ELEVSIM_"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Floors            int           `yaml:"floors"`
	Elevators         int           `yaml:"elevators"`
	Capacity          int           `yaml:"capacity"`
	DoorOpenTicks     int           `yaml:"doorOpenTicks"`
	TerminalWaitTicks int           `yaml:"terminalWaitTicks"`
	TickInterval      time.Duration `yaml:"tickInterval"`
	LogLevel          string        `yaml:"logLevel"`
	Interactive       bool          `yaml:"interactive"`
	AutoStep          bool          `yaml:"autoStep"`
	SessionID         string        `yaml:"sessionId"`
	Seed              uint64        `yaml:"seed"`
}

func Default() Config {
	return Config{
		Floors:            DefaultFloors,
		Elevators:         DefaultElevators,
		Capacity:          DefaultCapacity,
		DoorOpenTicks:     DefaultDoorOpenTicks,
		TerminalWaitTicks: DefaultTerminalWaitTicks,
		TickInterval:      DefaultTickInterval,
		LogLevel:          DefaultLogLevel,
	}
}

// LoadFile decodes a YAML file on top of cfg. Keys missing from the file keep their current value.
func LoadFile(path string, cfg Config) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config %s: %w", path, err)
	}
	defer file.Close()

	c := cfg
	if err := yaml.NewDecoder(file).Decode(&c); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return c, nil
}

// ApplyEnvFile reads ELEVSIM_* keys from a .env file and overrides the matching fields.
func ApplyEnvFile(path string, cfg Config) (Config, error) {
	envFile, err := godotenv.Read(path)
	if err != nil {
		return cfg, fmt.Errorf("read env file %s: %w", path, err)
	}
	return ApplyEnv(envFile, cfg)
}

func ApplyEnv(env map[string]string, cfg Config) (Config, error) {
	c := cfg
	ints := map[string]*int{
		"FLOORS":              &c.Floors,
		"ELEVATORS":           &c.Elevators,
		"CAPACITY":            &c.Capacity,
		"DOOR_OPEN_TICKS":     &c.DoorOpenTicks,
		"TERMINAL_WAIT_TICKS": &c.TerminalWaitTicks,
	}
	for key, field := range ints {
		raw, ok := env[EnvPrefix+key]
		if !ok {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return cfg, fmt.Errorf("%w: %s%s=%q is not an integer", ErrInvalidConfig, EnvPrefix, key, raw)
		}
		*field = v
	}

	if raw, ok := env[EnvPrefix+"TICK_INTERVAL"]; ok {
		d, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			return cfg, fmt.Errorf("%w: %sTICK_INTERVAL=%q: %v", ErrInvalidConfig, EnvPrefix, raw, err)
		}
		c.TickInterval = d
	}
	if raw, ok := env[EnvPrefix+"LOG_LEVEL"]; ok {
		c.LogLevel = strings.TrimSpace(raw)
	}
	if raw, ok := env[EnvPrefix+"SESSION_ID"]; ok {
		c.SessionID = strings.TrimSpace(raw)
	}
	bools := map[string]*bool{
		"INTERACTIVE": &c.Interactive,
		"AUTO_STEP":   &c.AutoStep,
	}
	for key, field := range bools {
		raw, ok := env[EnvPrefix+key]
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return cfg, fmt.Errorf("%w: %s%s=%q is not a boolean", ErrInvalidConfig, EnvPrefix, key, raw)
		}
		*field = b
	}
	return c, nil
}

// Validate enforces the construction bounds of the building and its elevators.
func (c Config) Validate() error {
	switch {
	case c.Floors < MinFloors || c.Floors > MaxFloors:
		return fmt.Errorf("%w: floors %d outside [%d, %d]", ErrInvalidConfig, c.Floors, MinFloors, MaxFloors)
	case c.Elevators < 1:
		return fmt.Errorf("%w: need at least one elevator, got %d", ErrInvalidConfig, c.Elevators)
	case c.Capacity < MinOccupancy || c.Capacity > MaxOccupancy:
		return fmt.Errorf("%w: capacity %d outside [%d, %d]", ErrInvalidConfig, c.Capacity, MinOccupancy, MaxOccupancy)
	case c.DoorOpenTicks < 1:
		return fmt.Errorf("%w: door open ticks must be positive, got %d", ErrInvalidConfig, c.DoorOpenTicks)
	case c.TerminalWaitTicks < 1:
		return fmt.Errorf("%w: terminal wait ticks must be positive, got %d", ErrInvalidConfig, c.TerminalWaitTicks)
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tick interval must be positive, got %s", ErrInvalidConfig, c.TickInterval)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func ParseLevel(name string) (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("%w: log level %q: %v", ErrInvalidConfig, name, err)
	}
	return level, nil
}
