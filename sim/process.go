// Defines the Process record consumed by the scheduling algorithms and the
// ordered containers that hold processes and their names.

package sim

import (
	"fmt"
	"sort"
	"strings"
)

// Process models a single schedulable process.
// ID is the index into the original name list and stays stable across sorts.
type Process struct {
	ID          int    // Index of the process in parse order
	Name        string // Display name (P1, P2, ...)
	BurstTime   int    // CPU cycles required; fixed at creation
	ArrivalTime int    // Cycle at which the process becomes eligible
	WaitingTime int    // Derived, overwritten by the engine in snapshots
	Priority    int    // Lower value dispatches first
}

// String returns a human-readable representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (ID: %d, Name: %s, Burst: %d, Arrival: %d, Priority: %d)",
		p.ID, p.Name, p.BurstTime, p.ArrivalTime, p.Priority)
}

// ProcessLess orders two processes; used for stable sorting of working copies.
type ProcessLess func(a, b Process) bool

// ByArrival orders by arrival time, then by ID.
func ByArrival(a, b Process) bool {
	if a.ArrivalTime != b.ArrivalTime {
		return a.ArrivalTime < b.ArrivalTime
	}
	return a.ID < b.ID
}

// ByBurst orders by burst time (shortest first), then by ID.
func ByBurst(a, b Process) bool {
	if a.BurstTime != b.BurstTime {
		return a.BurstTime < b.BurstTime
	}
	return a.ID < b.ID
}

// ByPriority orders by priority value (lowest first), then by ID.
func ByPriority(a, b Process) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.ID < b.ID
}

// ProcessList is an ordered, growable collection of processes.
// Insertion order is parse order. Simulations only read it through copies.
type ProcessList struct {
	items []Process
}

// NewProcessList builds a list from the given processes, reassigning IDs to
// their positions.
func NewProcessList(procs ...Process) *ProcessList {
	pl := &ProcessList{items: make([]Process, 0, len(procs))}
	for _, p := range procs {
		pl.Append(p)
	}
	return pl
}

// Append adds a process to the end of the list and returns its ID.
// The process ID is set to its index.
func (pl *ProcessList) Append(p Process) int {
	p.ID = len(pl.items)
	pl.items = append(pl.items, p)
	return p.ID
}

// Len returns the number of processes.
func (pl *ProcessList) Len() int {
	if pl == nil {
		return 0
	}
	return len(pl.items)
}

// At returns the process at idx. Panics if idx is out of range.
func (pl *ProcessList) At(idx int) Process {
	if idx < 0 || idx >= len(pl.items) {
		panic(fmt.Sprintf("ProcessList.At: index %d out of range [0, %d)", idx, len(pl.items)))
	}
	return pl.items[idx]
}

// Items returns a copy of the processes in insertion order.
func (pl *ProcessList) Items() []Process {
	out := make([]Process, len(pl.items))
	copy(out, pl.items)
	return out
}

// Sorted returns a stably sorted copy of the processes. The list itself is not modified.
func (pl *ProcessList) Sorted(less ProcessLess) []Process {
	out := pl.Items()
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

// TotalBurst returns the sum of all burst times.
func (pl *ProcessList) TotalBurst() int {
	total := 0
	for _, p := range pl.items {
		total += p.BurstTime
	}
	return total
}

// Names returns the process names in ID order.
func (pl *ProcessList) Names() []string {
	names := make([]string, len(pl.items))
	for i, p := range pl.items {
		names[i] = p.Name
	}
	return names
}

// NameList is an ordered list of names; the position of a name is its ID.
type NameList struct {
	names []string
}

// Append adds a name and returns its index.
func (nl *NameList) Append(name string) int {
	nl.names = append(nl.names, name)
	return len(nl.names) - 1
}

// Len returns the number of names.
func (nl *NameList) Len() int {
	return len(nl.names)
}

// At returns the name at idx. Panics if idx is out of range.
func (nl *NameList) At(idx int) string {
	if idx < 0 || idx >= len(nl.names) {
		panic(fmt.Sprintf("NameList.At: index %d out of range [0, %d)", idx, len(nl.names)))
	}
	return nl.names[idx]
}

// IndexOf returns the index of the first name equal to target after trimming
// surrounding whitespace, or -1 if absent.
func (nl *NameList) IndexOf(target string) int {
	target = strings.TrimSpace(target)
	for i, n := range nl.names {
		if n == target {
			return i
		}
	}
	return -1
}

// Items returns a copy of the names.
func (nl *NameList) Items() []string {
	out := make([]string, len(nl.names))
	copy(out, nl.names)
	return out
}
