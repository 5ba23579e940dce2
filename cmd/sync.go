package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/uvgenios/schaduler/sim"
	"github.com/uvgenios/schaduler/sim/syncsim"
	"github.com/uvgenios/schaduler/sim/trace"
	"github.com/uvgenios/schaduler/sim/workload"
)

// syncOptions holds the inputs of one synchronization run.
type syncOptions struct {
	ProcessFile  string
	ResourceFile string
	ActionFile   string
	Mode         string
	Semaphores   int
	MaxCycles    int // 0 means run until every process finishes
	TraceLevel   string
	Export       string
}

var syncOpts syncOptions

// syncCmd runs the synchronization simulator over a dataset
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Simulate processes contending for mutex or semaphore resources",
	Run: func(cmd *cobra.Command, args []string) {
		opts := syncOpts
		applySyncConfig(cmd, &opts, sessionCfg)
		if err := runSync(cmd.OutOrStdout(), opts); err != nil {
			logrus.Fatalf("Synchronization failed: %v", err)
		}
	},
}

// applySyncConfig fills options the user did not set explicitly from the session file.
func applySyncConfig(cmd *cobra.Command, opts *syncOptions, cfg *sim.SessionConfig) {
	if cfg == nil {
		return
	}
	sc := cfg.Synchronization
	set := func(flag string, dst *string, v string) {
		if !cmd.Flags().Changed(flag) && v != "" {
			*dst = v
		}
	}
	set("processes", &opts.ProcessFile, sc.Processes)
	set("resources", &opts.ResourceFile, sc.Resources)
	set("actions", &opts.ActionFile, sc.Actions)
	set("mode", &opts.Mode, sc.Mode)
	set("trace", &opts.TraceLevel, sc.Trace)
	if !cmd.Flags().Changed("semaphores") && sc.SemaphoreCount != nil {
		opts.Semaphores = *sc.SemaphoreCount
	}
	if !cmd.Flags().Changed("max-cycles") && sc.MaxCycles != nil {
		opts.MaxCycles = *sc.MaxCycles
	}
}

// runSync loads the dataset, runs it to completion (or the cycle cap) and renders to w.
func runSync(w io.Writer, opts syncOptions) error {
	if opts.ProcessFile == "" || opts.ResourceFile == "" || opts.ActionFile == "" {
		return fmt.Errorf("--processes, --resources and --actions are required")
	}
	cfg := sim.SessionConfig{Synchronization: sim.SynchronizationConfig{
		Mode:      opts.Mode,
		MaxCycles: &opts.MaxCycles,
		Processes: opts.ProcessFile,
		Resources: opts.ResourceFile,
		Actions:   opts.ActionFile,
		Trace:     opts.TraceLevel,
	}}
	if opts.Semaphores != 0 {
		cfg.Synchronization.SemaphoreCount = &opts.Semaphores
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	dataset, err := workload.LoadSyncDataset(opts.ProcessFile, opts.ResourceFile, opts.ActionFile)
	if err != nil {
		return err
	}
	session, err := sim.NewSession(sim.AlgorithmFIFO, 0)
	if err != nil {
		return err
	}
	s, err := session.LoadSync(dataset.Processes, dataset.Resources, cfg.SyncConfig())
	if err != nil {
		return err
	}

	executed := s.Run(opts.MaxCycles)
	if s.Running() && opts.MaxCycles > 0 && executed == opts.MaxCycles {
		logrus.Warnf("Stopped after %d cycles with unfinished processes", executed)
	}

	title := fmt.Sprintf("%s synchronization", s.Mode)
	if s.Mode == syncsim.ModeSemaphore {
		title = fmt.Sprintf("%s (count %d)", title, s.SemaphoreCount)
	}
	outputTitle(w, title)
	outputTimelines(w, s)
	if s.Trace != nil {
		outputTraceSummary(w, s, trace.Summarize(s.Trace))
	}

	if opts.Export != "" {
		if err := workload.ExportTimelines(s, opts.Export); err != nil {
			return err
		}
		logrus.Infof("Exported timelines to %s", opts.Export)
	}
	return nil
}

func init() {
	syncCmd.Flags().StringVar(&syncOpts.ProcessFile, "processes", "", "Process file (NAME, BURST, ARRIVAL, PRIORITY per row)")
	syncCmd.Flags().StringVar(&syncOpts.ResourceFile, "resources", "", "Resource file (NAME, CAPACITY per row)")
	syncCmd.Flags().StringVar(&syncOpts.ActionFile, "actions", "", "Action file (PROCESS, KIND, RESOURCE, CYCLE per row)")
	syncCmd.Flags().StringVar(&syncOpts.Mode, "mode", syncsim.ModeMutex.String(), "Synchronization mode (mutex, semaphore)")
	syncCmd.Flags().IntVar(&syncOpts.Semaphores, "semaphores", 1, "Semaphore count (semaphore mode)")
	syncCmd.Flags().IntVar(&syncOpts.MaxCycles, "max-cycles", 0, "Stop after this many cycles (0 = until all processes finish)")
	syncCmd.Flags().StringVar(&syncOpts.TraceLevel, "trace", string(trace.TraceLevelNone), "Arbitration trace level (none, decisions)")
	syncCmd.Flags().StringVar(&syncOpts.Export, "export", "", "Write the timelines (CSV) to this path")
}
