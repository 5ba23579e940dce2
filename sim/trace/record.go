// Package trace provides decision-trace recording for synchronization runs.
// It has no dependencies on sim/ or sim/syncsim/ and stores pure data types.
package trace

// ArbitrationRecord captures a single admission or denial of an action on a resource.
type ArbitrationRecord struct {
	Cycle      int
	ResourceID int
	ActionID   int
	ProcessID  int
	Priority   int
	Rank       int // position in the priority-sorted contender list, 0-based
	Contenders int // number of actions competing for the resource this cycle
	Admitted   bool
	Reason     string
}

// RetirementRecord captures the cycle at which a process became FINISHED.
type RetirementRecord struct {
	Cycle     int
	ProcessID int
}
