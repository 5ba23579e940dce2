package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/uvgenios/schaduler/sim/syncsim"
)

// Session is the context of one user working with the simulator: the selected
// algorithm, the loaded process set and its last trace, and the current
// synchronization simulator. Sessions are independent of each other.
type Session struct {
	algorithm  Algorithm
	quantum    int
	processes  *ProcessList
	simulation *Simulation
	sync       *syncsim.Simulator
}

// NewSession returns a session with the given algorithm. Returns an error for
// an unknown algorithm name.
func NewSession(alg Algorithm, quantum int) (*Session, error) {
	s := &Session{}
	if err := s.SetAlgorithm(alg, quantum); err != nil {
		return nil, err
	}
	return s, nil
}

// Algorithm returns the selected algorithm ("" is reported as fifo).
func (s *Session) Algorithm() Algorithm {
	return algOrDefault(s.algorithm)
}

// Quantum returns the round-robin quantum.
func (s *Session) Quantum() int {
	return s.quantum
}

// SetAlgorithm selects the algorithm and discards the last trace.
func (s *Session) SetAlgorithm(alg Algorithm, quantum int) error {
	if !IsValidAlgorithm(string(alg)) {
		return fmt.Errorf("unknown algorithm %q", alg)
	}
	s.algorithm = alg
	s.quantum = quantum
	s.simulation = nil
	return nil
}

// LoadProcesses replaces the process set with a copy of list and discards the
// last trace. Returns an error, leaving the session unchanged, if list is nil or empty.
func (s *Session) LoadProcesses(list *ProcessList) error {
	if list == nil || list.Len() == 0 {
		return fmt.Errorf("no processes to load")
	}
	s.processes = NewProcessList(list.Items()...)
	s.simulation = nil
	logrus.Debugf("session: loaded %d processes", s.processes.Len())
	return nil
}

// Processes returns the loaded process set, or nil.
func (s *Session) Processes() *ProcessList {
	return s.processes
}

// Simulate runs the selected algorithm over the loaded processes and keeps the trace.
func (s *Session) Simulate() (*Simulation, error) {
	if s.processes == nil {
		return nil, fmt.Errorf("no processes loaded")
	}
	if err := ValidateProcesses(s.processes, s.algorithm, s.quantum); err != nil {
		return nil, err
	}
	s.simulation = NewScheduler(string(s.algorithm), s.quantum).Simulate(s.processes)
	return s.simulation, nil
}

// Simulation returns the last trace, or nil if none is current.
func (s *Session) Simulation() *Simulation {
	return s.simulation
}

// Metrics summarizes the last trace. Returns an error if none is current.
func (s *Session) Metrics() (*Metrics, error) {
	if s.simulation == nil {
		return nil, fmt.Errorf("no simulation has been run")
	}
	return ComputeMetrics(s.processes, s.simulation), nil
}

// LoadSync replaces the synchronization simulator, discarding all timelines of
// the previous one.
func (s *Session) LoadSync(processes []syncsim.Process, resources []syncsim.Resource, cfg syncsim.Config) (*syncsim.Simulator, error) {
	if len(processes) == 0 {
		return nil, fmt.Errorf("no sync processes loaded")
	}
	if cfg.Mode == syncsim.ModeSemaphore && cfg.SemaphoreCount <= 0 {
		return nil, fmt.Errorf("semaphore count must be positive, got %d", cfg.SemaphoreCount)
	}
	s.sync = syncsim.NewSimulator(processes, resources, cfg)
	logrus.Debugf("session: loaded sync dataset with %d processes, %d resources", len(processes), len(resources))
	return s.sync, nil
}

// Sync returns the current synchronization simulator, or nil.
func (s *Session) Sync() *syncsim.Simulator {
	return s.sync
}
