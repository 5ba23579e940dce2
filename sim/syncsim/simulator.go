// Package syncsim simulates processes contending for mutex- or
// semaphore-guarded resources over discrete cycles.
//
// A Simulator is advanced one cycle per Advance call. Each cycle retires
// processes whose burst is exhausted, arbitrates every resource independently
// by ascending action priority, and lets the remaining processes progress.
// Every process gets exactly one timeline entry per cycle until it finishes:
// resources are arbitrated in ID order, and a process already admitted or
// waiting this cycle has its actions on other resources deferred one cycle.
package syncsim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/uvgenios/schaduler/sim/trace"
)

// Config holds the synchronization parameters of a simulator.
type Config struct {
	Mode           SyncMode
	SemaphoreCount int // required > 0 in ModeSemaphore
	Trace          trace.TraceConfig
}

// Simulator holds the full state of a synchronization run.
// Not safe for concurrent use: at most one Advance may be in flight.
type Simulator struct {
	Processes      []Process
	Resources      []Resource
	Timelines      []Timeline // one per process, indexed by process ID
	CurrentCycle   int
	TotalCycles    int
	Mode           SyncMode
	SemaphoreCount int
	// Trace is nil unless decision tracing is enabled.
	Trace *trace.SimulationTrace

	running          bool
	traceConfig      trace.TraceConfig
	initialProcesses []Process
	initialResources []Resource
}

// NewSimulator builds a simulator over copies of the given processes and resources.
// Process IDs must equal their index, resource IDs likewise, and every action
// must reference a valid process. Panics on violations.
func NewSimulator(processes []Process, resources []Resource, cfg Config) *Simulator {
	if cfg.Mode == ModeSemaphore && cfg.SemaphoreCount <= 0 {
		panic(fmt.Sprintf("NewSimulator: semaphore count must be positive, got %d", cfg.SemaphoreCount))
	}
	for i, p := range processes {
		if p.ID != i {
			panic(fmt.Sprintf("NewSimulator: process at index %d has ID %d", i, p.ID))
		}
	}
	for i, r := range resources {
		if r.ID != i {
			panic(fmt.Sprintf("NewSimulator: resource at index %d has ID %d", i, r.ID))
		}
		for _, a := range r.Actions {
			if a.PID < 0 || a.PID >= len(processes) {
				panic(fmt.Sprintf("NewSimulator: action %d references unknown process %d", a.ID, a.PID))
			}
			if a.ResourceID != r.ID {
				panic(fmt.Sprintf("NewSimulator: action %d stored on resource %d but targets %d", a.ID, r.ID, a.ResourceID))
			}
		}
	}

	s := &Simulator{
		Mode:             cfg.Mode,
		SemaphoreCount:   cfg.SemaphoreCount,
		traceConfig:      cfg.Trace,
		initialProcesses: copyProcesses(processes),
		initialResources: copyResources(resources),
	}
	s.Reset()
	return s
}

// Reset restores the loaded dataset and discards all timelines.
func (s *Simulator) Reset() {
	s.Processes = copyProcesses(s.initialProcesses)
	s.Resources = copyResources(s.initialResources)
	s.Timelines = make([]Timeline, len(s.Processes))
	for i := range s.Timelines {
		s.Timelines[i] = newTimeline(i)
	}
	s.CurrentCycle = 0
	s.TotalCycles = 0
	s.running = true
	s.Trace = nil
	if s.traceConfig.Enabled() {
		s.Trace = trace.NewSimulationTrace(s.traceConfig)
	}
}

// Running reports whether further Advance calls can make progress.
func (s *Simulator) Running() bool {
	return s.running
}

// Timeline returns the timeline of process pid. Panics if pid is out of range.
func (s *Simulator) Timeline(pid int) Timeline {
	if pid < 0 || pid >= len(s.Timelines) {
		panic(fmt.Sprintf("Simulator.Timeline: process %d out of range [0, %d)", pid, len(s.Timelines)))
	}
	return s.Timelines[pid]
}

// States returns the current state of every process, indexed by ID.
func (s *Simulator) States() []ProcessState {
	out := make([]ProcessState, len(s.Processes))
	for i, p := range s.Processes {
		out[i] = p.State
	}
	return out
}

// syncCapacity is how many admissions a resource may grant per cycle before
// its own capacity is applied.
func (s *Simulator) syncCapacity() int {
	if s.Mode == ModeMutex {
		return 1
	}
	return s.SemaphoreCount
}

// Advance computes the next cycle in place. It returns false, without
// touching any state other than the running flag, once every process is
// FINISHED; subsequent calls are no-ops.
func (s *Simulator) Advance() bool {
	if !s.running {
		return false
	}
	nextCycle := s.CurrentCycle + 1
	visited := make([]bool, len(s.Processes))

	finished := 0
	for i, p := range s.Processes {
		if p.State == StateFinished {
			finished++
			visited[i] = true
		}
	}
	if finished == len(s.Processes) {
		s.running = false
		logrus.Infof("[cycle %d] synchronization finished after %d cycles", s.CurrentCycle, s.TotalCycles)
		return false
	}

	for i := range s.Processes {
		p := &s.Processes[i]
		if visited[i] || p.BurstTime > 0 {
			continue
		}
		p.State = StateFinished
		s.record(i, nextCycle, StateFinished, NoAction, NoResource)
		visited[i] = true
		if s.Trace != nil {
			s.Trace.RecordRetirement(trace.RetirementRecord{Cycle: nextCycle, ProcessID: i})
		}
		logrus.Debugf("[cycle %d] %s finished", nextCycle, p.Name)
	}

	for r := range s.Resources {
		s.arbitrate(&s.Resources[r], nextCycle, visited)
	}

	for i := range s.Processes {
		p := &s.Processes[i]
		if visited[i] || nextCycle >= p.ArrivalTime {
			continue
		}
		p.State = StateReady
		p.BurstTime--
		s.record(i, nextCycle, StateReady, NoAction, NoResource)
		visited[i] = true
	}

	for i := range s.Processes {
		if visited[i] {
			continue
		}
		p := &s.Processes[i]
		p.State = StateComputing
		p.BurstTime--
		s.record(i, nextCycle, StateComputing, NoAction, NoResource)
		visited[i] = true
	}

	s.CurrentCycle++
	s.TotalCycles++
	return true
}

// arbitrate admits the actions scheduled on res for cycle in ascending
// priority order; equal priorities keep their load order.
func (s *Simulator) arbitrate(res *Resource, cycle int, visited []bool) {
	contenders := make([]int, 0)
	claimed := make(map[int]bool)
	for i, a := range res.Actions {
		if a.Cycle != cycle {
			continue
		}
		if s.Processes[a.PID].State == StateFinished {
			logrus.Debugf("[cycle %d] skipping action %d of finished process %d", cycle, a.ID, a.PID)
			continue
		}
		if visited[a.PID] || claimed[a.PID] {
			// one resource request per process per cycle
			res.Actions[i].Cycle++
			logrus.Debugf("[cycle %d] %s busy on another resource, action %d deferred to %d",
				cycle, s.Processes[a.PID].Name, a.ID, cycle+1)
			continue
		}
		claimed[a.PID] = true
		contenders = append(contenders, i)
	}
	if len(contenders) == 0 {
		return
	}
	sort.SliceStable(contenders, func(i, j int) bool {
		return res.Actions[contenders[i]].Priority < res.Actions[contenders[j]].Priority
	})

	limit := min(s.syncCapacity(), res.MaxCounter)
	for rank, idx := range contenders {
		a := &res.Actions[idx]
		p := &s.Processes[a.PID]
		admitted := res.InUse() < limit
		if admitted {
			res.Counter--
			a.Executed = true
			p.State = StateAccessed
			p.BurstTime--
			s.record(a.PID, cycle, StateAccessed, a.ID, res.ID)
			logrus.Debugf("[cycle %d] %s acquired %s (action %d)", cycle, p.Name, res.Name, a.ID)
		} else {
			p.State = StateWaiting
			a.Cycle++
			s.record(a.PID, cycle, StateWaiting, a.ID, res.ID)
			logrus.Debugf("[cycle %d] %s waits on %s, action %d retried at %d", cycle, p.Name, res.Name, a.ID, a.Cycle)
		}
		visited[a.PID] = true

		if s.Trace != nil {
			reason := "capacity available"
			if !admitted {
				reason = fmt.Sprintf("capacity %d exhausted", limit)
			}
			s.Trace.RecordArbitration(trace.ArbitrationRecord{
				Cycle:      cycle,
				ResourceID: res.ID,
				ActionID:   a.ID,
				ProcessID:  a.PID,
				Priority:   a.Priority,
				Rank:       rank,
				Contenders: len(contenders),
				Admitted:   admitted,
				Reason:     reason,
			})
		}
	}

	res.Counter = res.MaxCounter
}

func (s *Simulator) record(pid, cycle int, state ProcessState, actionID, resourceID int) {
	s.Timelines[pid].append(TimelineEntry{
		Cycle:      cycle,
		State:      state,
		ActionID:   actionID,
		ResourceID: resourceID,
	})
}

// Run advances until every process finishes or maxCycles cycles have been
// executed (maxCycles <= 0 means no cap). Returns the number of cycles executed.
func (s *Simulator) Run(maxCycles int) int {
	executed := 0
	for maxCycles <= 0 || executed < maxCycles {
		if !s.Advance() {
			break
		}
		executed++
	}
	return executed
}

func copyProcesses(in []Process) []Process {
	out := make([]Process, len(in))
	copy(out, in)
	return out
}

func copyResources(in []Resource) []Resource {
	out := make([]Resource, len(in))
	for i, r := range in {
		r.Actions = append([]Action(nil), r.Actions...)
		out[i] = r
	}
	return out
}
