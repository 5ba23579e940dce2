package sim

import (
	"fmt"
	"sort"
	"strings"
)

// Algorithm names a scheduling discipline.
type Algorithm string

const (
	AlgorithmFIFO       Algorithm = "fifo"
	AlgorithmSJF        Algorithm = "sjf"
	AlgorithmSRT        Algorithm = "srt"
	AlgorithmRoundRobin Algorithm = "round-robin"
	AlgorithmPriority   Algorithm = "priority"
)

// validAlgorithms is the set of recognized algorithm names.
// Empty string defaults to fifo (for CLI flag default compatibility).
var validAlgorithms = map[Algorithm]bool{
	"":                  true,
	AlgorithmFIFO:       true,
	AlgorithmSJF:        true,
	AlgorithmSRT:        true,
	AlgorithmRoundRobin: true,
	AlgorithmPriority:   true,
}

// IsValidAlgorithm returns true if name is a recognized algorithm.
func IsValidAlgorithm(name string) bool {
	return validAlgorithms[Algorithm(name)]
}

// ValidAlgorithmNames returns the sorted list of non-empty algorithm names.
func ValidAlgorithmNames() []string {
	names := make([]string, 0, len(validAlgorithms))
	for a := range validAlgorithms {
		if a != "" {
			names = append(names, string(a))
		}
	}
	sort.Strings(names)
	return names
}

// Preemptive reports whether a running process may be interrupted.
func (a Algorithm) Preemptive() bool {
	return a == AlgorithmSRT || a == AlgorithmRoundRobin
}

// Scheduler maps an initial process list to a full simulation trace.
// Implementations MUST NOT modify the list.
type Scheduler interface {
	Simulate(processes *ProcessList) *Simulation
}

// FIFOScheduler dispatches by arrival time (non-preemptive).
type FIFOScheduler struct{}

func (FIFOScheduler) Simulate(processes *ProcessList) *Simulation {
	return SimulateFIFO(processes)
}

// SJFScheduler dispatches the shortest burst first (non-preemptive).
// Warning: SJF can starve long processes.
type SJFScheduler struct{}

func (SJFScheduler) Simulate(processes *ProcessList) *Simulation {
	return SimulateSJF(processes)
}

// SRTScheduler runs the process with the shortest remaining time each cycle.
type SRTScheduler struct{}

func (SRTScheduler) Simulate(processes *ProcessList) *Simulation {
	return SimulateSRT(processes)
}

// RoundRobinScheduler time-slices a FIFO ready queue with a fixed quantum.
type RoundRobinScheduler struct {
	Quantum int
}

func (r RoundRobinScheduler) Simulate(processes *ProcessList) *Simulation {
	return SimulateRoundRobin(processes, r.Quantum)
}

// PriorityScheduler dispatches the lowest priority value first (non-preemptive).
type PriorityScheduler struct{}

func (PriorityScheduler) Simulate(processes *ProcessList) *Simulation {
	return SimulatePriority(processes)
}

// NewScheduler creates a Scheduler by name.
// Empty string defaults to FIFOScheduler. quantum is only read by round-robin.
// Panics on unrecognized names.
func NewScheduler(name string, quantum int) Scheduler {
	if !IsValidAlgorithm(name) {
		panic(fmt.Sprintf("unknown algorithm %q", name))
	}
	switch Algorithm(name) {
	case "", AlgorithmFIFO:
		return FIFOScheduler{}
	case AlgorithmSJF:
		return SJFScheduler{}
	case AlgorithmSRT:
		return SRTScheduler{}
	case AlgorithmRoundRobin:
		return RoundRobinScheduler{Quantum: quantum}
	case AlgorithmPriority:
		return PriorityScheduler{}
	default:
		panic(fmt.Sprintf("unhandled algorithm %q", name))
	}
}

// ValidateProcesses checks the preconditions of the given algorithm so callers
// can report an error instead of hitting a panic inside the engine.
func ValidateProcesses(processes *ProcessList, alg Algorithm, quantum int) error {
	if !IsValidAlgorithm(string(alg)) {
		return fmt.Errorf("unknown algorithm %q (valid: %s)", alg, strings.Join(ValidAlgorithmNames(), ", "))
	}
	if processes.Len() == 0 {
		return fmt.Errorf("process list is empty")
	}
	if alg == AlgorithmRoundRobin && quantum <= 0 {
		return fmt.Errorf("round-robin quantum must be positive, got %d", quantum)
	}
	for _, p := range processes.items {
		if p.BurstTime < 0 || p.ArrivalTime < 0 {
			return fmt.Errorf("process %s: burst and arrival must be non-negative", p.Name)
		}
		if !alg.Preemptive() && p.BurstTime == 0 {
			return fmt.Errorf("process %s: burst time must be positive for %s", p.Name, algOrDefault(alg))
		}
	}
	return nil
}

func algOrDefault(alg Algorithm) Algorithm {
	if alg == "" {
		return AlgorithmFIFO
	}
	return alg
}

// mustHaveProcesses panics on an empty list.
func mustHaveProcesses(fn string, processes *ProcessList) {
	if processes.Len() == 0 {
		panic(fmt.Sprintf("%s: process list must not be empty", fn))
	}
}
