package syncsim

import "fmt"

// TimelineEntry is one cycle's recorded state for a single process.
type TimelineEntry struct {
	Cycle      int
	State      ProcessState
	ActionID   int // NoAction if none
	ResourceID int // NoResource if none
}

// Timeline is the append-only history of one process.
type Timeline struct {
	ProcessID int
	entries   []TimelineEntry
}

func newTimeline(pid int) Timeline {
	return Timeline{ProcessID: pid, entries: make([]TimelineEntry, 0, 8)}
}

func (t *Timeline) append(e TimelineEntry) {
	t.entries = append(t.entries, e)
}

// Len returns the number of entries.
func (t Timeline) Len() int {
	return len(t.entries)
}

// At returns the entry at idx. Panics if idx is out of range.
func (t Timeline) At(idx int) TimelineEntry {
	if idx < 0 || idx >= len(t.entries) {
		panic(fmt.Sprintf("Timeline.At: index %d out of range [0, %d)", idx, len(t.entries)))
	}
	return t.entries[idx]
}

// Last returns the most recent entry and false if the timeline is empty.
func (t Timeline) Last() (TimelineEntry, bool) {
	if len(t.entries) == 0 {
		return TimelineEntry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// Entries returns a copy of all entries.
func (t Timeline) Entries() []TimelineEntry {
	out := make([]TimelineEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// States returns the state of every entry, in order.
func (t Timeline) States() []ProcessState {
	out := make([]ProcessState, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.State
	}
	return out
}
