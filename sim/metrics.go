// Derives per-process and aggregate statistics from a finished Simulation.

package sim

import "fmt"

// ProcessMetrics holds the outcome of one process.
type ProcessMetrics struct {
	ID          int
	Name        string
	BurstTime   int
	ArrivalTime int
	Priority    int
	WaitingTime int
	FinishTime  int
	Turnaround  int // FinishTime - ArrivalTime
}

// Metrics aggregates statistics about a scheduling run for final reporting.
type Metrics struct {
	Algorithm      Algorithm
	Processes      []ProcessMetrics
	Steps          int     // Number of cycles in the trace
	BusySteps      int     // Cycles with a running process
	Makespan       int     // Latest finish time
	AvgWaitingTime float64 // Same value as Simulation.AvgWaitingTime
	AvgTurnaround  float64
	MaxWaitingTime int
	Throughput     float64 // Completed processes per cycle of makespan
	CPUUtilization float64 // BusySteps / Makespan
}

// ComputeMetrics combines the input list with its simulation.
// Panics if the two do not describe the same number of processes.
func ComputeMetrics(processes *ProcessList, sim *Simulation) *Metrics {
	if processes.Len() != len(sim.WaitingTimes) {
		panic(fmt.Sprintf("ComputeMetrics: %d processes but simulation has %d", processes.Len(), len(sim.WaitingTimes)))
	}
	m := &Metrics{
		Algorithm:      sim.Algorithm,
		Processes:      make([]ProcessMetrics, 0, processes.Len()),
		Steps:          sim.Len(),
		AvgWaitingTime: sim.AvgWaitingTime,
	}
	turnarounds := make([]int, 0, processes.Len())
	for _, p := range processes.Items() {
		pm := ProcessMetrics{
			ID:          p.ID,
			Name:        p.Name,
			BurstTime:   p.BurstTime,
			ArrivalTime: p.ArrivalTime,
			Priority:    p.Priority,
			WaitingTime: sim.WaitingTimes[p.ID],
			FinishTime:  sim.FinishTimes[p.ID],
			Turnaround:  max(0, sim.FinishTimes[p.ID]-p.ArrivalTime),
		}
		m.Processes = append(m.Processes, pm)
		turnarounds = append(turnarounds, pm.Turnaround)
	}
	for _, st := range sim.Steps {
		if !st.Idle() {
			m.BusySteps++
		}
	}
	m.AvgTurnaround = CalculateMean(turnarounds)
	m.MaxWaitingTime = CalculateMax(sim.WaitingTimes)
	m.Makespan = CalculateMax(sim.FinishTimes)
	if m.Makespan > 0 {
		m.Throughput = float64(len(m.Processes)) / float64(m.Makespan)
		m.CPUUtilization = float64(m.BusySteps) / float64(m.Makespan)
	}
	return m
}
