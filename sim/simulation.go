package sim

import "fmt"

// NoProcess marks an idle cycle in StepState.CurrentProcess.
const NoProcess = -1

// StepState is one simulation cycle: the running process and a snapshot of
// every process. Each step owns its Processes slice.
type StepState struct {
	CurrentProcess int       // ID of the process running this cycle, or NoProcess
	Processes      []Process // BurstTime holds the remaining burst at this cycle
}

// Idle reports whether no process ran during this step.
func (s StepState) Idle() bool {
	return s.CurrentProcess == NoProcess
}

// Simulation is the full trace produced by a scheduling algorithm.
// CurrentStep is a cursor owned by the consumer; the engines leave it at 0.
type Simulation struct {
	Algorithm      Algorithm
	Quantum        int // Round-robin only
	Steps          []StepState
	AvgWaitingTime float64
	WaitingTimes   []int // final waiting time, indexed by process ID
	FinishTimes    []int // completion cycle, indexed by process ID
	CurrentStep    int
}

func newSimulation(alg Algorithm, n int) *Simulation {
	return &Simulation{
		Algorithm:    alg,
		Steps:        make([]StepState, 0),
		WaitingTimes: make([]int, n),
		FinishTimes:  make([]int, n),
	}
}

// appendStep records a step; snapshot must not be retained by the caller.
func (s *Simulation) appendStep(current int, snapshot []Process) {
	s.Steps = append(s.Steps, StepState{CurrentProcess: current, Processes: snapshot})
}

// finalize computes the average waiting time from WaitingTimes.
func (s *Simulation) finalize() {
	s.AvgWaitingTime = CalculateMean(s.WaitingTimes)
}

// Len returns the number of steps.
func (s *Simulation) Len() int {
	return len(s.Steps)
}

// Step returns the step at idx. Panics if idx is out of range.
func (s *Simulation) Step(idx int) StepState {
	if idx < 0 || idx >= len(s.Steps) {
		panic(fmt.Sprintf("Simulation.Step: index %d out of range [0, %d)", idx, len(s.Steps)))
	}
	return s.Steps[idx]
}

// Current returns the step under the cursor.
func (s *Simulation) Current() StepState {
	return s.Step(s.CurrentStep)
}

// Next moves the cursor forward. Returns false if already on the last step.
func (s *Simulation) Next() bool {
	if s.CurrentStep+1 >= len(s.Steps) {
		return false
	}
	s.CurrentStep++
	return true
}

// Prev moves the cursor back. Returns false if already on the first step.
func (s *Simulation) Prev() bool {
	if s.CurrentStep == 0 {
		return false
	}
	s.CurrentStep--
	return true
}

// Seek places the cursor on idx. Panics if idx is out of range.
func (s *Simulation) Seek(idx int) {
	if idx < 0 || idx >= len(s.Steps) {
		panic(fmt.Sprintf("Simulation.Seek: index %d out of range [0, %d)", idx, len(s.Steps)))
	}
	s.CurrentStep = idx
}

// Reset returns the cursor to the first step.
func (s *Simulation) Reset() {
	s.CurrentStep = 0
}

// Done reports whether the cursor is on the last step (or the trace is empty).
func (s *Simulation) Done() bool {
	return s.CurrentStep >= len(s.Steps)-1
}

// Sequence returns the running process ID of every step, in order.
func (s *Simulation) Sequence() []int {
	seq := make([]int, len(s.Steps))
	for i, st := range s.Steps {
		seq[i] = st.CurrentProcess
	}
	return seq
}

// Segment is a run of consecutive steps with the same running process.
type Segment struct {
	Process int // process ID or NoProcess
	Start   int // first step index
	End     int // one past the last step index
}

// Gantt collapses the trace into contiguous segments.
func (s *Simulation) Gantt() []Segment {
	segments := make([]Segment, 0)
	for i, st := range s.Steps {
		n := len(segments)
		if n > 0 && segments[n-1].Process == st.CurrentProcess {
			segments[n-1].End = i + 1
			continue
		}
		segments = append(segments, Segment{Process: st.CurrentProcess, Start: i, End: i + 1})
	}
	return segments
}
