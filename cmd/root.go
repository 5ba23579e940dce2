package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/uvgenios/schaduler/sim"
)

var (
	logLevel   string             // Log verbosity level
	configPath string             // Optional YAML session file
	sessionCfg *sim.SessionConfig // Loaded session file, empty if none
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:              "schaduler",
	Short:            "Cycle-by-cycle CPU scheduling and resource synchronization simulator",
	PersistentPreRun: setup,
}

// setup loads the session file and sets the log level. An explicit --log
// wins over log_level from the file.
func setup(cmd *cobra.Command, args []string) {
	cfg, err := loadSessionConfig(configPath)
	if err != nil {
		logrus.Fatalf("Invalid session config: %v", err)
	}
	sessionCfg = cfg

	level := logLevel
	if !cmd.Flags().Changed("log") && cfg.LogLevel != "" {
		level = cfg.LogLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(lvl)
}

// loadSessionConfig returns the validated session file at path, or an empty
// config when path is "".
func loadSessionConfig(path string) (*sim.SessionConfig, error) {
	if path == "" {
		return &sim.SessionConfig{}, nil
	}
	cfg, err := sim.LoadSessionConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logrus.Infof("Loaded session config from %s", path)
	return cfg, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML session file; explicit flags override its values")

	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(syncCmd)
}
