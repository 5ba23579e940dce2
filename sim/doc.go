// Package sim provides the CPU scheduling engines of the simulator.
//
// # Reading Guide
//
// Start with these files to understand the scheduling kernel:
//   - process.go: Process records, the ordered containers and the comparators
//   - nonpreemptive.go: FIFO, SJF and Priority (run to completion in sort order)
//   - preemptive.go: SRT and Round-Robin (one cycle at a time, idle cycles allowed)
//   - simulation.go: the Simulation trace and its consumer-owned cursor
//
// # Architecture
//
// Every algorithm maps an input ProcessList to a Simulation: one StepState per
// cycle, each owning a full snapshot of remaining burst and waiting time, plus
// final per-process waiting and finish times. Engines never modify the input.
// Equal sort keys are broken by the lower process ID.
//
// Related packages:
//   - sim/syncsim/: mutex/semaphore synchronization engine
//   - sim/workload/: input parsers and trace export
//   - sim/trace/: arbitration decision trace
//
// # Key Interfaces
//
//   - Scheduler: Simulate(*ProcessList) *Simulation, built by NewScheduler(name, quantum)
//   - Session: selected algorithm, loaded data and last results of one user
package sim
