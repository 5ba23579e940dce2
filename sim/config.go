package sim

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/uvgenios/schaduler/sim/syncsim"
	"github.com/uvgenios/schaduler/sim/trace"
)

// SessionConfig holds a session loadable from a YAML file.
// Nil pointer fields mean "not set in YAML"; string fields use "" for not set.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type SessionConfig struct {
	LogLevel        string                `yaml:"log_level"`
	Scheduling      SchedulingConfig      `yaml:"scheduling"`
	Synchronization SynchronizationConfig `yaml:"synchronization"`
}

// SchedulingConfig selects the algorithm and the process file of a scheduling run.
type SchedulingConfig struct {
	Algorithm string `yaml:"algorithm"`
	Quantum   *int   `yaml:"quantum"`
	Processes string `yaml:"processes"`
}

// SynchronizationConfig selects the mode and the three input files of a sync run.
type SynchronizationConfig struct {
	Mode           string `yaml:"mode"`
	SemaphoreCount *int   `yaml:"semaphore_count"`
	MaxCycles      *int   `yaml:"max_cycles"`
	Processes      string `yaml:"processes"`
	Resources      string `yaml:"resources"`
	Actions        string `yaml:"actions"`
	Trace          string `yaml:"trace"`
}

// LoadSessionConfig reads and strictly parses a YAML session file.
// Unknown keys are errors.
func LoadSessionConfig(path string) (*SessionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session config: %w", err)
	}
	var cfg SessionConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing session config: %w", err)
	}
	return &cfg, nil
}

// Validate checks names and parameter ranges.
func (c *SessionConfig) Validate() error {
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("invalid log_level: %w", err)
		}
	}
	if !IsValidAlgorithm(c.Scheduling.Algorithm) {
		return fmt.Errorf("unknown algorithm %q", c.Scheduling.Algorithm)
	}
	if c.Scheduling.Quantum != nil && *c.Scheduling.Quantum <= 0 {
		return fmt.Errorf("quantum must be positive, got %d", *c.Scheduling.Quantum)
	}
	mode, err := syncsim.ParseSyncMode(c.Synchronization.Mode)
	if err != nil {
		return err
	}
	if c.Synchronization.SemaphoreCount != nil && *c.Synchronization.SemaphoreCount <= 0 {
		return fmt.Errorf("semaphore_count must be positive, got %d", *c.Synchronization.SemaphoreCount)
	}
	if mode == syncsim.ModeSemaphore && c.Synchronization.SemaphoreCount == nil {
		return fmt.Errorf("semaphore mode requires semaphore_count")
	}
	if c.Synchronization.MaxCycles != nil && *c.Synchronization.MaxCycles < 0 {
		return fmt.Errorf("max_cycles must be non-negative, got %d", *c.Synchronization.MaxCycles)
	}
	if !trace.IsValidTraceLevel(c.Synchronization.Trace) {
		return fmt.Errorf("unknown trace level %q", c.Synchronization.Trace)
	}
	return nil
}

// SyncConfig converts the synchronization section into a simulator config.
// Call Validate first.
func (c *SessionConfig) SyncConfig() syncsim.Config {
	mode, _ := syncsim.ParseSyncMode(c.Synchronization.Mode)
	cfg := syncsim.Config{
		Mode:  mode,
		Trace: trace.TraceConfig{Level: trace.TraceLevel(c.Synchronization.Trace)},
	}
	if c.Synchronization.SemaphoreCount != nil {
		cfg.SemaphoreCount = *c.Synchronization.SemaphoreCount
	}
	return cfg
}
