// Preemptive disciplines: Shortest-Remaining-Time and Round-Robin.
// Both advance one cycle at a time and may emit idle steps.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// preemptiveState tracks per-process progress while a preemptive trace is built.
type preemptiveState struct {
	alg       Algorithm
	original  []Process
	remaining []int
	finish    []int
	waited    []int // cycles spent eligible but not running, so far
	completed int
}

func newPreemptiveState(alg Algorithm, processes *ProcessList) *preemptiveState {
	mustHaveProcesses(fmt.Sprintf("Simulate %s", alg), processes)
	n := processes.Len()
	st := &preemptiveState{
		alg:       alg,
		original:  processes.Items(),
		remaining: make([]int, n),
		finish:    make([]int, n),
		waited:    make([]int, n),
	}
	for id, p := range st.original {
		if p.BurstTime < 0 {
			panic(fmt.Sprintf("Simulate %s: process %d has negative burst %d", alg, id, p.BurstTime))
		}
		st.remaining[id] = p.BurstTime
		st.finish[id] = -1
		if p.BurstTime == 0 {
			// trivially finished: never dispatched
			st.finish[id] = p.ArrivalTime
			st.completed++
		}
	}
	return st
}

func (st *preemptiveState) eligible(id, cycle int) bool {
	return st.original[id].ArrivalTime <= cycle && st.remaining[id] > 0
}

// run executes one cycle for the given process (or idles) and returns whether
// the process finished during it.
func (st *preemptiveState) run(cycle, running int) bool {
	for id := range st.original {
		if id != running && st.eligible(id, cycle) {
			st.waited[id]++
		}
	}
	if running == NoProcess {
		logrus.Debugf("[%s] cycle %d idle", st.alg, cycle)
		return false
	}
	st.remaining[running]--
	if st.remaining[running] == 0 {
		st.finish[running] = cycle + 1
		st.completed++
		logrus.Debugf("[%s] %s finished at %d", st.alg, st.original[running].Name, cycle+1)
		return true
	}
	return false
}

func (st *preemptiveState) snapshot() []Process {
	snap := make([]Process, len(st.original))
	for id, p := range st.original {
		p.BurstTime = st.remaining[id]
		p.WaitingTime = st.waited[id]
		snap[id] = p
	}
	return snap
}

func (st *preemptiveState) done() bool {
	return st.completed == len(st.original)
}

// finalize applies waiting = finish - arrival - burst (floored at 0).
func (st *preemptiveState) finalize(sim *Simulation) {
	for id, p := range st.original {
		sim.FinishTimes[id] = st.finish[id]
		sim.WaitingTimes[id] = max(0, st.finish[id]-p.ArrivalTime-p.BurstTime)
	}
	sim.finalize()
	logrus.Infof("[%s] %d steps, average waiting %.2f", st.alg, sim.Len(), sim.AvgWaitingTime)
}

// SimulateSRT runs, every cycle, the arrived process with the least remaining
// time; ties go to the lowest ID. Cycles with no eligible process are idle.
func SimulateSRT(processes *ProcessList) *Simulation {
	st := newPreemptiveState(AlgorithmSRT, processes)
	sim := newSimulation(AlgorithmSRT, len(st.original))

	for cycle := 0; !st.done(); cycle++ {
		shortest := NoProcess
		for id := range st.original {
			if !st.eligible(id, cycle) {
				continue
			}
			if shortest == NoProcess || st.remaining[id] < st.remaining[shortest] {
				shortest = id
			}
		}
		st.run(cycle, shortest)
		sim.appendStep(shortest, st.snapshot())
	}

	st.finalize(sim)
	return sim
}

// SimulateRoundRobin time-slices a FIFO ready queue. Processes arriving at a
// cycle are enqueued at its start; a process whose quantum expires is
// re-enqueued at the tail at the end of the cycle. Panics if quantum <= 0.
func SimulateRoundRobin(processes *ProcessList, quantum int) *Simulation {
	if quantum <= 0 {
		panic(fmt.Sprintf("SimulateRoundRobin: quantum must be positive, got %d", quantum))
	}
	st := newPreemptiveState(AlgorithmRoundRobin, processes)
	sim := newSimulation(AlgorithmRoundRobin, len(st.original))
	sim.Quantum = quantum

	ready := &ReadyQueue{}
	queued := make([]bool, len(st.original))
	current := NoProcess
	slice := 0

	for cycle := 0; !st.done() || current != NoProcess; cycle++ {
		for id, p := range st.original {
			if p.ArrivalTime == cycle && st.remaining[id] > 0 && !queued[id] {
				ready.Enqueue(id)
				queued[id] = true
			}
		}
		if current == NoProcess && ready.Len() > 0 {
			current = ready.Dequeue()
			slice = 0
		}

		running := current
		if st.run(cycle, running) {
			current = NoProcess
		} else if running != NoProcess {
			slice++
			if slice == quantum {
				ready.Enqueue(running)
				current = NoProcess
				logrus.Debugf("[%s] cycle %d: quantum expired for %s, queue %s",
					AlgorithmRoundRobin, cycle, st.original[running].Name, ready)
			}
		}
		sim.appendStep(running, st.snapshot())
	}

	st.finalize(sim)
	return sim
}
