package syncsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uvgenios/schaduler/sim/trace"
)

func proc(id, burst, arrival, priority int) Process {
	return Process{ID: id, Name: "P" + string(rune('1'+id)), BurstTime: burst, ArrivalTime: arrival, Priority: priority}
}

// withActions builds a resource and attaches actions (pid, cycle) using the
// owning process priority.
func withActions(id, capacity int, procs []Process, actions ...[2]int) Resource {
	r := NewResource(id, "R"+string(rune('0'+id)), capacity)
	for i, a := range actions {
		r.AddAction(Action{ID: i, PID: a[0], Cycle: a[1], Priority: procs[a[0]].Priority, Kind: "READ"})
	}
	return r
}

func TestAdvance_Mutex_LowerPriorityValueWins(t *testing.T) {
	// GIVEN one mutex resource and two actions at cycle 1 with priorities 1 and 2
	procs := []Process{proc(0, 3, 0, 1), proc(1, 3, 0, 2)}
	res := withActions(0, 1, procs, [2]int{1, 1}, [2]int{0, 1})
	s := NewSimulator(procs, []Resource{res}, Config{Mode: ModeMutex})

	// WHEN the first cycle is computed
	require.True(t, s.Advance())

	// THEN the priority-1 process is admitted and the other waits
	assert.Equal(t, StateAccessed, s.Processes[0].State)
	assert.Equal(t, 2, s.Processes[0].BurstTime)
	assert.Equal(t, StateWaiting, s.Processes[1].State)
	assert.Equal(t, 3, s.Processes[1].BurstTime, "waiting consumes no burst")

	// AND the denied action is retried exactly one cycle later
	denied := s.Resources[0].Actions[0]
	assert.Equal(t, 1, denied.PID)
	assert.Equal(t, 2, denied.Cycle)
	assert.False(t, denied.Executed)
	assert.True(t, s.Resources[0].Actions[1].Executed)

	// AND the counter is reset at the end of the cycle
	assert.Equal(t, 1, s.Resources[0].Counter)

	// WHEN the next cycle is computed
	require.True(t, s.Advance())

	// THEN the deferred action is admitted
	assert.Equal(t, StateAccessed, s.Processes[1].State)
	assert.Equal(t, 2, s.Processes[1].BurstTime)
	assert.True(t, s.Resources[0].Actions[0].Executed)
	assert.Equal(t, StateComputing, s.Processes[0].State)
	assert.Equal(t, 2, s.CurrentCycle)
	assert.Equal(t, 2, s.TotalCycles)
}

func TestAdvance_EqualPriority_KeepsLoadOrder(t *testing.T) {
	// GIVEN two actions with equal priority on a mutex
	procs := []Process{proc(0, 2, 0, 5), proc(1, 2, 0, 5)}
	res := withActions(0, 1, procs, [2]int{1, 1}, [2]int{0, 1})
	s := NewSimulator(procs, []Resource{res}, Config{Mode: ModeMutex})

	// WHEN arbitrated
	s.Advance()

	// THEN the action loaded first wins, regardless of process ID
	assert.Equal(t, StateAccessed, s.Processes[1].State)
	assert.Equal(t, StateWaiting, s.Processes[0].State)
}

func TestAdvance_Semaphore_LimitIsMinOfCountAndCapacity(t *testing.T) {
	tests := []struct {
		name           string
		semaphoreCount int
		capacity       int
		wantAdmitted   int
	}{
		{"count below capacity", 2, 3, 2},
		{"capacity below count", 3, 1, 1},
		{"count equals capacity", 3, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN three contenders at cycle 1
			procs := []Process{proc(0, 2, 0, 1), proc(1, 2, 0, 2), proc(2, 2, 0, 3)}
			res := withActions(0, tt.capacity, procs, [2]int{0, 1}, [2]int{1, 1}, [2]int{2, 1})
			s := NewSimulator(procs, []Resource{res}, Config{Mode: ModeSemaphore, SemaphoreCount: tt.semaphoreCount})

			// WHEN arbitrated
			s.Advance()

			// THEN exactly the limit is admitted, in priority order
			admitted := 0
			for i, p := range s.Processes {
				if p.State == StateAccessed {
					admitted++
					assert.Less(t, i, tt.wantAdmitted, "admission must follow priority order")
				}
			}
			assert.Equal(t, tt.wantAdmitted, admitted)
		})
	}
}

func TestAdvance_Mutex_IgnoresLargerCapacity(t *testing.T) {
	// GIVEN a resource with capacity 3 under mutex mode
	procs := []Process{proc(0, 2, 0, 1), proc(1, 2, 0, 2)}
	res := withActions(0, 3, procs, [2]int{0, 1}, [2]int{1, 1})
	s := NewSimulator(procs, []Resource{res}, Config{Mode: ModeMutex})

	// WHEN arbitrated
	s.Advance()

	// THEN only one process gets in
	assert.Equal(t, []ProcessState{StateAccessed, StateWaiting}, s.States())
}

func TestAdvance_ResourcesArbitratedIndependently(t *testing.T) {
	// GIVEN two mutex resources each with one contender
	procs := []Process{proc(0, 2, 0, 1), proc(1, 2, 0, 2)}
	r0 := withActions(0, 1, procs, [2]int{0, 1})
	r1 := withActions(1, 1, procs, [2]int{1, 1})
	s := NewSimulator(procs, []Resource{r0, r1}, Config{Mode: ModeMutex})

	// WHEN arbitrated
	s.Advance()

	// THEN both are admitted on their own resource
	assert.Equal(t, []ProcessState{StateAccessed, StateAccessed}, s.States())
	e0, _ := s.Timelines[0].Last()
	e1, _ := s.Timelines[1].Last()
	assert.Equal(t, 0, e0.ResourceID)
	assert.Equal(t, 1, e1.ResourceID)
}

func TestAdvance_SameCycleSecondResource_DeferredOneCycle(t *testing.T) {
	// GIVEN one process with mutex actions on R0 and R1 at cycle 1
	procs := []Process{proc(0, 3, 0, 1)}
	r0 := withActions(0, 1, procs, [2]int{0, 1})
	r1 := withActions(1, 1, procs, [2]int{0, 1})
	s := NewSimulator(procs, []Resource{r0, r1}, Config{Mode: ModeMutex})

	// WHEN the first cycle is computed
	require.True(t, s.Advance())

	// THEN the process gets one entry and one burst unit is consumed
	tl := s.Timeline(0)
	require.Equal(t, 1, tl.Len())
	assert.Equal(t, TimelineEntry{Cycle: 1, State: StateAccessed, ActionID: 0, ResourceID: 0}, tl.At(0))
	assert.Equal(t, 2, s.Processes[0].BurstTime)

	// AND the R1 action is moved to the next cycle without being executed
	assert.Equal(t, 2, s.Resources[1].Actions[0].Cycle)
	assert.False(t, s.Resources[1].Actions[0].Executed)
	assert.Equal(t, 1, s.Resources[1].Counter)

	// WHEN the second cycle is computed
	require.True(t, s.Advance())

	// THEN the deferred action is admitted on R1
	tl = s.Timeline(0)
	require.Equal(t, 2, tl.Len())
	assert.Equal(t, TimelineEntry{Cycle: 2, State: StateAccessed, ActionID: 0, ResourceID: 1}, tl.At(1))
	assert.True(t, s.Resources[1].Actions[0].Executed)
	assert.Equal(t, 1, s.Processes[0].BurstTime)
}

func TestAdvance_TwoActionsSameResourceSameCycle_OneEntry(t *testing.T) {
	// GIVEN one process with two actions on a semaphore resource at cycle 1
	procs := []Process{proc(0, 3, 0, 1)}
	res := withActions(0, 2, procs, [2]int{0, 1}, [2]int{0, 1})
	s := NewSimulator(procs, []Resource{res}, Config{Mode: ModeSemaphore, SemaphoreCount: 2})

	// WHEN the first cycle is computed
	require.True(t, s.Advance())

	// THEN only the first action runs and the second waits for cycle 2
	assert.Equal(t, 1, s.Timeline(0).Len())
	assert.True(t, s.Resources[0].Actions[0].Executed)
	assert.False(t, s.Resources[0].Actions[1].Executed)
	assert.Equal(t, 2, s.Resources[0].Actions[1].Cycle)
	assert.Equal(t, 2, s.Processes[0].BurstTime)
}

func TestAdvance_FutureArrival_IsReadyAndConsumesBurst(t *testing.T) {
	// GIVEN a process arriving at cycle 3
	procs := []Process{proc(0, 5, 3, 1)}
	s := NewSimulator(procs, nil, Config{Mode: ModeMutex})

	// WHEN two cycles run
	s.Advance()
	s.Advance()

	// THEN it is READY in both and its burst decreased
	assert.Equal(t, []ProcessState{StateReady, StateReady}, s.Timelines[0].States())
	assert.Equal(t, 3, s.Processes[0].BurstTime)

	// WHEN the arrival cycle is reached
	s.Advance()

	// THEN it computes
	assert.Equal(t, StateComputing, s.Processes[0].State)
}

func TestAdvance_LifecycleToFinished(t *testing.T) {
	// GIVEN a single process with one cycle of burst
	procs := []Process{proc(0, 1, 0, 1)}
	s := NewSimulator(procs, nil, Config{Mode: ModeMutex})

	// WHEN advanced until it stops
	assert.True(t, s.Advance())  // COMPUTING, burst 0
	assert.True(t, s.Advance())  // retired: FINISHED
	assert.False(t, s.Advance()) // all finished

	// THEN the timeline is COMPUTING, FINISHED and the simulator stopped
	assert.Equal(t, []ProcessState{StateComputing, StateFinished}, s.Timelines[0].States())
	assert.False(t, s.Running())
	assert.Equal(t, 2, s.CurrentCycle)
	assert.Equal(t, 2, s.TotalCycles)
}

func TestAdvance_AfterStop_IsIdempotent(t *testing.T) {
	// GIVEN a simulator that has run to completion
	procs := []Process{proc(0, 2, 0, 1), proc(1, 1, 0, 2)}
	res := withActions(0, 1, procs, [2]int{0, 1}, [2]int{1, 1})
	s := NewSimulator(procs, []Resource{res}, Config{Mode: ModeMutex})
	s.Run(0)
	require.False(t, s.Running())

	cycle, total := s.CurrentCycle, s.TotalCycles
	states := s.States()
	lens := []int{s.Timelines[0].Len(), s.Timelines[1].Len()}
	actions := append([]Action(nil), s.Resources[0].Actions...)

	// WHEN advanced again
	for i := 0; i < 3; i++ {
		assert.False(t, s.Advance())
	}

	// THEN nothing changed
	assert.Equal(t, cycle, s.CurrentCycle)
	assert.Equal(t, total, s.TotalCycles)
	assert.Equal(t, states, s.States())
	assert.Equal(t, lens, []int{s.Timelines[0].Len(), s.Timelines[1].Len()})
	assert.Equal(t, actions, s.Resources[0].Actions)
}

func TestAdvance_OneEntryPerProcessPerCycle(t *testing.T) {
	// GIVEN a mixed workload
	procs := []Process{proc(0, 3, 0, 1), proc(1, 4, 2, 2), proc(2, 2, 0, 3)}
	res := withActions(0, 1, procs, [2]int{0, 1}, [2]int{2, 1}, [2]int{1, 3})
	s := NewSimulator(procs, []Resource{res}, Config{Mode: ModeMutex})

	// WHEN every cycle is computed
	for s.Advance() {
		// THEN every timeline grows by exactly one until its FINISHED entry
		for pid := range s.Processes {
			tl := s.Timeline(pid)
			last, ok := tl.Last()
			require.True(t, ok)
			if last.State != StateFinished {
				assert.Equal(t, s.CurrentCycle, tl.Len(), "process %d", pid)
			}
			assert.Equal(t, tl.Len(), tl.At(tl.Len()-1).Cycle)
		}
	}

	// AND every process ends FINISHED with a single terminal entry
	for pid := range s.Processes {
		states := s.Timeline(pid).States()
		assert.Equal(t, StateFinished, states[len(states)-1])
		for _, st := range states[:len(states)-1] {
			assert.NotEqual(t, StateFinished, st)
		}
	}
}

func TestAdvance_FinishedProcessActionsAreSkipped(t *testing.T) {
	// GIVEN a process that finishes before its action fires
	procs := []Process{proc(0, 1, 0, 1), proc(1, 4, 0, 2)}
	res := withActions(0, 1, procs, [2]int{0, 3}, [2]int{1, 3})
	s := NewSimulator(procs, []Resource{res}, Config{Mode: ModeMutex})

	// WHEN cycles 1..3 run
	s.Advance()
	s.Advance()
	s.Advance()

	// THEN the finished process holds no capacity and the other is admitted
	assert.Equal(t, StateFinished, s.Processes[0].State)
	assert.Equal(t, StateAccessed, s.Processes[1].State)
	assert.False(t, s.Resources[0].Actions[0].Executed)
}

func TestRun_RespectsCycleCap(t *testing.T) {
	procs := []Process{proc(0, 10, 0, 1)}
	s := NewSimulator(procs, nil, Config{Mode: ModeMutex})

	executed := s.Run(4)

	assert.Equal(t, 4, executed)
	assert.True(t, s.Running())
	assert.Equal(t, 6, s.Processes[0].BurstTime)
}

func TestReset_RestoresDatasetAndClearsTimelines(t *testing.T) {
	// GIVEN a simulator that has progressed
	procs := []Process{proc(0, 3, 0, 1), proc(1, 3, 0, 2)}
	res := withActions(0, 1, procs, [2]int{0, 1}, [2]int{1, 1})
	s := NewSimulator(procs, []Resource{res}, Config{Mode: ModeMutex})
	s.Run(0)

	// WHEN reset
	s.Reset()

	// THEN state equals a freshly loaded simulator
	fresh := NewSimulator(procs, []Resource{res}, Config{Mode: ModeMutex})
	assert.Equal(t, fresh.Processes, s.Processes)
	assert.Equal(t, fresh.Resources, s.Resources)
	assert.Equal(t, 0, s.CurrentCycle)
	assert.True(t, s.Running())
	assert.Equal(t, 0, s.Timelines[0].Len())

	// AND the caller's inputs were never mutated
	assert.Equal(t, 1, res.Actions[1].Cycle)
	assert.Equal(t, 3, procs[1].BurstTime)
}

func TestAdvance_TraceRecordsDecisions(t *testing.T) {
	// GIVEN tracing enabled and two contenders on a mutex
	procs := []Process{proc(0, 2, 0, 1), proc(1, 2, 0, 2)}
	res := withActions(0, 1, procs, [2]int{0, 1}, [2]int{1, 1})
	s := NewSimulator(procs, []Resource{res}, Config{
		Mode:  ModeMutex,
		Trace: trace.TraceConfig{Level: trace.TraceLevelDecisions},
	})

	// WHEN run to completion
	s.Run(0)

	// THEN one denial and two admissions were recorded
	summary := trace.Summarize(s.Trace)
	assert.Equal(t, 3, summary.TotalDecisions)
	assert.Equal(t, 2, summary.AdmittedCount)
	assert.Equal(t, 1, summary.DeniedCount)
	assert.Equal(t, 1, summary.DenialsPerProcess[1])
	assert.Equal(t, 2, summary.RetiredCount)
	first := s.Trace.Arbitration[0]
	assert.Equal(t, 0, first.Rank)
	assert.Equal(t, 2, first.Contenders)
}

func TestAdvance_TraceDisabledByDefault(t *testing.T) {
	s := NewSimulator([]Process{proc(0, 1, 0, 1)}, nil, Config{})
	s.Run(0)
	assert.Nil(t, s.Trace)
}

func TestNewSimulator_InvalidConfigPanics(t *testing.T) {
	procs := []Process{proc(0, 1, 0, 1)}
	assert.Panics(t, func() {
		NewSimulator(procs, nil, Config{Mode: ModeSemaphore, SemaphoreCount: 0})
	})
	assert.Panics(t, func() {
		NewSimulator([]Process{{ID: 3}}, nil, Config{})
	})
	bad := NewResource(0, "R0", 1)
	bad.Actions = append(bad.Actions, Action{ID: 0, PID: 7, ResourceID: 0, Cycle: 1})
	assert.Panics(t, func() {
		NewSimulator(procs, []Resource{bad}, Config{})
	})
}

func TestTimeline_AtOutOfRangePanics(t *testing.T) {
	s := NewSimulator([]Process{proc(0, 1, 0, 1)}, nil, Config{})
	tl := s.Timeline(0)
	assert.Panics(t, func() { tl.At(0) })
	assert.Panics(t, func() { s.Timeline(1) })
}

func TestParseSyncMode(t *testing.T) {
	m, err := ParseSyncMode("Semaphore")
	require.NoError(t, err)
	assert.Equal(t, ModeSemaphore, m)

	m, err = ParseSyncMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeMutex, m)

	_, err = ParseSyncMode("spinlock")
	assert.Error(t, err)
}

func TestProcessState_String(t *testing.T) {
	assert.Equal(t, "ACCESSED", StateAccessed.String())
	assert.Equal(t, "FINISHED", StateFinished.String())
	assert.Equal(t, "ProcessState(9)", ProcessState(9).String())
}
