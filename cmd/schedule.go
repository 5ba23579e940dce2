package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/uvgenios/schaduler/sim"
	"github.com/uvgenios/schaduler/sim/workload"
)

// scheduleOptions holds the inputs of one scheduling run.
type scheduleOptions struct {
	ProcessFile  string
	Algorithm    string
	Quantum      int
	Random       int   // generate this many processes instead of reading a file
	Seed         int64 // seed for generated processes
	MaxBurst     int
	MaxArrival   int
	MaxPriority  int
	ShowSteps    bool
	ShowGantt    bool
	ExportHeader string
	ExportData   string
}

var scheduleOpts scheduleOptions

// scheduleCmd simulates one scheduling algorithm over a process set
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Simulate a CPU scheduling algorithm",
	Long: "Simulate a CPU scheduling algorithm over rows of NAME, BURST, ARRIVAL, PRIORITY.\n" +
		"Algorithms: " + strings.Join(sim.ValidAlgorithmNames(), ", "),
	Run: func(cmd *cobra.Command, args []string) {
		opts := scheduleOpts
		applyScheduleConfig(cmd, &opts, sessionCfg)
		if err := runSchedule(cmd.OutOrStdout(), opts); err != nil {
			logrus.Fatalf("Scheduling failed: %v", err)
		}
	},
}

// applyScheduleConfig fills options the user did not set explicitly from the session file.
func applyScheduleConfig(cmd *cobra.Command, opts *scheduleOptions, cfg *sim.SessionConfig) {
	if cfg == nil {
		return
	}
	sc := cfg.Scheduling
	if !cmd.Flags().Changed("algorithm") && sc.Algorithm != "" {
		opts.Algorithm = sc.Algorithm
	}
	if !cmd.Flags().Changed("quantum") && sc.Quantum != nil {
		opts.Quantum = *sc.Quantum
	}
	if !cmd.Flags().Changed("processes") && sc.Processes != "" {
		opts.ProcessFile = sc.Processes
	}
}

// loadScheduleProcesses reads the process file, or generates processes when opts.Random > 0.
func loadScheduleProcesses(opts scheduleOptions) (*sim.ProcessList, error) {
	if opts.Random > 0 {
		gen := sim.GeneratorConfig{
			Count:       opts.Random,
			MaxBurst:    opts.MaxBurst,
			MaxArrival:  opts.MaxArrival,
			MaxPriority: opts.MaxPriority,
		}
		if err := gen.Validate(); err != nil {
			return nil, err
		}
		logrus.Infof("Generating %d processes with seed %d", opts.Random, opts.Seed)
		return sim.GenerateProcesses(sim.NewPartitionedRNG(opts.Seed), gen), nil
	}
	if opts.ProcessFile == "" {
		return nil, fmt.Errorf("no process file given (use --processes or --random)")
	}
	return workload.LoadProcessFile(opts.ProcessFile)
}

// runSchedule simulates and renders the result to w.
func runSchedule(w io.Writer, opts scheduleOptions) error {
	if !sim.IsValidAlgorithm(opts.Algorithm) {
		return fmt.Errorf("unknown algorithm %q (valid: %s)", opts.Algorithm, strings.Join(sim.ValidAlgorithmNames(), ", "))
	}
	if (opts.ExportHeader == "") != (opts.ExportData == "") {
		return fmt.Errorf("--export-header and --export-data must be given together")
	}
	session, err := sim.NewSession(sim.Algorithm(opts.Algorithm), opts.Quantum)
	if err != nil {
		return err
	}
	list, err := loadScheduleProcesses(opts)
	if err != nil {
		return err
	}
	if err := session.LoadProcesses(list); err != nil {
		return err
	}

	s, err := session.Simulate()
	if err != nil {
		return err
	}
	m, err := session.Metrics()
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s scheduling", session.Algorithm())
	if session.Algorithm() == sim.AlgorithmRoundRobin {
		title = fmt.Sprintf("%s (quantum %d)", title, session.Quantum())
	}
	outputTitle(w, title)
	if opts.ShowGantt {
		outputGantt(w, list, s)
	}
	outputSchedule(w, m)
	if opts.ShowSteps {
		outputSteps(w, list, s)
	}

	if opts.ExportHeader != "" {
		if err := workload.ExportSimulation(list, s, opts.ExportHeader, opts.ExportData); err != nil {
			return err
		}
		logrus.Infof("Exported trace to %s and %s", opts.ExportHeader, opts.ExportData)
	}
	return nil
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleOpts.ProcessFile, "processes", "", "Process file (NAME, BURST, ARRIVAL, PRIORITY per row)")
	scheduleCmd.Flags().StringVar(&scheduleOpts.Algorithm, "algorithm", string(sim.AlgorithmFIFO), "Scheduling algorithm ("+strings.Join(sim.ValidAlgorithmNames(), ", ")+")")
	scheduleCmd.Flags().IntVar(&scheduleOpts.Quantum, "quantum", 2, "Round-robin time quantum (cycles)")

	// Generated workload
	scheduleCmd.Flags().IntVar(&scheduleOpts.Random, "random", 0, "Generate this many processes instead of reading --processes")
	scheduleCmd.Flags().Int64Var(&scheduleOpts.Seed, "seed", 42, "Seed for generated processes")
	scheduleCmd.Flags().IntVar(&scheduleOpts.MaxBurst, "max-burst", 10, "Max burst of generated processes")
	scheduleCmd.Flags().IntVar(&scheduleOpts.MaxArrival, "max-arrival", 10, "Max arrival of generated processes")
	scheduleCmd.Flags().IntVar(&scheduleOpts.MaxPriority, "max-priority", 5, "Max priority of generated processes")

	// Output
	scheduleCmd.Flags().BoolVar(&scheduleOpts.ShowSteps, "steps", false, "Print every step snapshot (remaining burst/waiting)")
	scheduleCmd.Flags().BoolVar(&scheduleOpts.ShowGantt, "gantt", true, "Print the Gantt chart")
	scheduleCmd.Flags().StringVar(&scheduleOpts.ExportHeader, "export-header", "", "Write the trace header (YAML) to this path")
	scheduleCmd.Flags().StringVar(&scheduleOpts.ExportData, "export-data", "", "Write the trace steps (CSV) to this path")
}
