package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, expected nil", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "elevsim.yaml", "floors: 4\nelevators: 2\ncapacity: 3\ntickInterval: 250ms\nlogLevel: debug\n")

	cfg, err := LoadFile(path, Default())
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Floors != 4 || cfg.Elevators != 2 || cfg.Capacity != 3 {
		t.Errorf("LoadFile() = %+v, expected floors 4, elevators 2, capacity 3", cfg)
	}
	if cfg.TickInterval != 250*time.Millisecond {
		t.Errorf("TickInterval = %s, expected 250ms", cfg.TickInterval)
	}
	if cfg.DoorOpenTicks != DefaultDoorOpenTicks {
		t.Errorf("DoorOpenTicks = %d, expected default %d", cfg.DoorOpenTicks, DefaultDoorOpenTicks)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, expected debug", cfg.LogLevel)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), Default()); err == nil {
		t.Errorf("LoadFile() on a missing file = nil, expected an error")
	}

	path := writeFile(t, "bad.yaml", "floors: [1, 2\n")
	cfg, err := LoadFile(path, Default())
	if err == nil {
		t.Errorf("LoadFile() on malformed yaml = nil, expected an error")
	}
	if cfg != Default() {
		t.Errorf("LoadFile() changed the config on error: %+v", cfg)
	}
}

func TestApplyEnvFile(t *testing.T) {
	path := writeFile(t, ".env", "ELEVSIM_FLOORS=6\nELEVSIM_CAPACITY=4\nELEVSIM_TICK_INTERVAL=1s\nELEVSIM_INTERACTIVE=true\nOTHER=ignored\n")

	cfg, err := ApplyEnvFile(path, Default())
	if err != nil {
		t.Fatalf("ApplyEnvFile() error = %v", err)
	}
	if cfg.Floors != 6 || cfg.Capacity != 4 {
		t.Errorf("ApplyEnvFile() = %+v, expected floors 6, capacity 4", cfg)
	}
	if cfg.Elevators != DefaultElevators {
		t.Errorf("Elevators = %d, expected default %d", cfg.Elevators, DefaultElevators)
	}
	if cfg.TickInterval != time.Second {
		t.Errorf("TickInterval = %s, expected 1s", cfg.TickInterval)
	}
	if !cfg.Interactive {
		t.Errorf("Interactive = false, expected true")
	}
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	tests := []map[string]string{
		{"ELEVSIM_FLOORS": "ten"},
		{"ELEVSIM_TICK_INTERVAL": "soon"},
		{"ELEVSIM_INTERACTIVE": "maybe"},
	}
	for _, env := range tests {
		cfg, err := ApplyEnv(env, Default())
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("ApplyEnv(%v) error = %v, expected %v", env, err, ErrInvalidConfig)
		}
		if cfg != Default() {
			t.Errorf("ApplyEnv(%v) changed the config on error", env)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"one floor", func(c *Config) { c.Floors = 1 }},
		{"too many floors", func(c *Config) { c.Floors = 31 }},
		{"no elevators", func(c *Config) { c.Elevators = 0 }},
		{"no capacity", func(c *Config) { c.Capacity = 0 }},
		{"too much capacity", func(c *Config) { c.Capacity = 21 }},
		{"zero door ticks", func(c *Config) { c.DoorOpenTicks = 0 }},
		{"zero wait ticks", func(c *Config) { c.TerminalWaitTicks = 0 }},
		{"zero interval", func(c *Config) { c.TickInterval = 0 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		cfg := Default()
		tt.modify(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: Validate() = %v, expected %v", tt.name, err, ErrInvalidConfig)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"disabled", zerolog.Disabled},
	}
	for _, tt := range tests {
		level, err := ParseLevel(tt.name)
		if err != nil {
			t.Errorf("ParseLevel(%q) error = %v", tt.name, err)
		}
		if level != tt.expected {
			t.Errorf("ParseLevel(%q) = %s, expected %s", tt.name, level, tt.expected)
		}
	}
}

func TestLoadPrecedence(t *testing.T) {
	yamlPath := writeFile(t, "elevsim.yaml", "floors: 4\nelevators: 2\ncapacity: 3\n")
	envPath := writeFile(t, ".env", "ELEVSIM_ELEVATORS=5\nELEVSIM_AUTO_STEP=1\n")

	cfg, err := Load([]string{"-config", yamlPath, "-env", envPath, "-capacity", "7", "-session", "lobby"}, io.Discard)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Floors != 4 {
		t.Errorf("Floors = %d, expected 4 from the yaml file", cfg.Floors)
	}
	if cfg.Elevators != 5 || !cfg.AutoStep {
		t.Errorf("Elevators = %d AutoStep = %t, expected 5 and true from the env file", cfg.Elevators, cfg.AutoStep)
	}
	if cfg.Capacity != 7 || cfg.SessionID != "lobby" {
		t.Errorf("Capacity = %d SessionID = %q, expected 7 and lobby from flags", cfg.Capacity, cfg.SessionID)
	}
}

func TestLoadDefaultsAndErrors(t *testing.T) {
	cfg, err := Load(nil, io.Discard)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(nil) = %+v, expected defaults", cfg)
	}

	if _, err := Load([]string{"-floors", "1"}, io.Discard); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load(-floors 1) error = %v, expected %v", err, ErrInvalidConfig)
	}
	if _, err := Load([]string{"-nonsense"}, io.Discard); err == nil {
		t.Errorf("Load(-nonsense) = nil error, expected a flag error")
	}
}
