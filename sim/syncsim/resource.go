package syncsim

import "fmt"

// NoResource marks timeline entries that did not involve a resource.
const NoResource = -1

// NoAction marks timeline entries that did not involve an action.
const NoAction = -1

// Process is a participant in the synchronization simulation.
type Process struct {
	ID          int
	Name        string
	BurstTime   int // remaining demand; decremented every cycle the process progresses
	ArrivalTime int
	Priority    int // lower value wins arbitration
	State       ProcessState
}

func (p Process) String() string {
	return fmt.Sprintf("SyncProcess: (ID: %d, Name: %s, Burst: %d, Arrival: %d, Priority: %d, State: %s)",
		p.ID, p.Name, p.BurstTime, p.ArrivalTime, p.Priority, p.State)
}

// Action is a request by a process to use a resource at a given cycle.
// Cycle is bumped in place each time the request is denied.
type Action struct {
	ID         int
	PID        int
	ResourceID int
	Kind       string // free-form label from the input (READ, WRITE, ...)
	Cycle      int
	Priority   int // owning process priority at load time
	Executed   bool
}

func (a Action) String() string {
	return fmt.Sprintf("Action: (ID: %d, PID: %d, Resource: %d, Kind: %s, Cycle: %d, Priority: %d, Executed: %t)",
		a.ID, a.PID, a.ResourceID, a.Kind, a.Cycle, a.Priority, a.Executed)
}

// Resource is a shared resource with a per-cycle capacity.
// Counter starts at MaxCounter, is decremented per admission and is reset at
// the end of every cycle.
type Resource struct {
	ID         int
	Name       string
	Counter    int
	MaxCounter int
	Actions    []Action
}

// NewResource returns a resource with a full counter.
func NewResource(id int, name string, capacity int) Resource {
	return Resource{ID: id, Name: name, Counter: capacity, MaxCounter: capacity, Actions: make([]Action, 0)}
}

// AddAction appends an action, stamping it with this resource's ID.
func (r *Resource) AddAction(a Action) {
	a.ResourceID = r.ID
	r.Actions = append(r.Actions, a)
}

// InUse returns how many admissions have been made this cycle.
func (r *Resource) InUse() int {
	return r.MaxCounter - r.Counter
}

func (r Resource) String() string {
	return fmt.Sprintf("Resource: (ID: %d, Name: %s, Counter: %d/%d, Actions: %d)",
		r.ID, r.Name, r.Counter, r.MaxCounter, len(r.Actions))
}
