// Non-preemptive disciplines: FIFO, Shortest-Job-First and Priority.
// All three share the same step generation and differ only in dispatch order.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// SimulateFIFO dispatches processes by (arrival, ID).
func SimulateFIFO(processes *ProcessList) *Simulation {
	return simulateNonPreemptive(AlgorithmFIFO, processes, ByArrival)
}

// SimulateSJF dispatches processes by (burst, ID).
func SimulateSJF(processes *ProcessList) *Simulation {
	return simulateNonPreemptive(AlgorithmSJF, processes, ByBurst)
}

// SimulatePriority dispatches processes by (priority, ID); lower values first.
func SimulatePriority(processes *ProcessList) *Simulation {
	return simulateNonPreemptive(AlgorithmPriority, processes, ByPriority)
}

// simulateNonPreemptive runs each process to completion in the given order.
// One step is emitted per unit of burst; idle gaps before a late arrival
// advance the clock but produce no steps, so Len() == TotalBurst().
func simulateNonPreemptive(alg Algorithm, processes *ProcessList, less ProcessLess) *Simulation {
	mustHaveProcesses(fmt.Sprintf("Simulate %s", alg), processes)
	n := processes.Len()
	order := processes.Sorted(less)
	for _, p := range order {
		if p.BurstTime <= 0 {
			panic(fmt.Sprintf("Simulate %s: process %d has non-positive burst %d", alg, p.ID, p.BurstTime))
		}
	}

	sim := newSimulation(alg, n)
	sim.Steps = make([]StepState, 0, processes.TotalBurst())

	// position[id] is the dispatch slot of process id
	position := make([]int, n)
	for k, p := range order {
		position[p.ID] = k
	}
	original := processes.Items()

	clock := 0
	for k, proc := range order {
		if clock < proc.ArrivalTime {
			clock = proc.ArrivalTime
		}
		waiting := max(0, clock-proc.ArrivalTime)
		sim.WaitingTimes[proc.ID] = waiting
		logrus.Debugf("[%s] dispatch %s at clock %d (waiting %d)", alg, proc.Name, clock, waiting)

		for b := 0; b < proc.BurstTime; b++ {
			snapshot := make([]Process, n)
			for id, orig := range original {
				snap := orig
				switch slot := position[id]; {
				case slot < k:
					snap.BurstTime = 0
					snap.WaitingTime = sim.WaitingTimes[id]
				case slot == k:
					snap.BurstTime = proc.BurstTime - (b + 1)
					snap.WaitingTime = waiting
				default:
					snap.WaitingTime = 0
				}
				snapshot[id] = snap
			}
			sim.appendStep(proc.ID, snapshot)
		}
		clock += proc.BurstTime
		sim.FinishTimes[proc.ID] = clock
	}

	sim.finalize()
	logrus.Infof("[%s] %d steps, average waiting %.2f", alg, sim.Len(), sim.AvgWaitingTime)
	return sim
}
