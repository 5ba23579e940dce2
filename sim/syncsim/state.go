package syncsim

import (
	"fmt"
	"strings"
)

// ProcessState is the lifecycle state of a process in the synchronization simulation.
// READY -> {ACCESSED, WAITING, COMPUTING} -> FINISHED (terminal).
type ProcessState int

const (
	StateReady     ProcessState = iota // present, not yet competing
	StateAccessed                      // using a resource this cycle
	StateWaiting                       // denied a resource this cycle
	StateComputing                     // no resource needed, consuming burst
	StateFinished                      // burst exhausted
)

var stateNames = map[ProcessState]string{
	StateReady:     "READY",
	StateAccessed:  "ACCESSED",
	StateWaiting:   "WAITING",
	StateComputing: "COMPUTING",
	StateFinished:  "FINISHED",
}

func (s ProcessState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ProcessState(%d)", int(s))
}

// SyncMode selects how many processes may hold a resource per cycle.
type SyncMode int

const (
	// ModeMutex admits one process per resource per cycle regardless of capacity.
	ModeMutex SyncMode = iota
	// ModeSemaphore admits up to the semaphore count, bounded by resource capacity.
	ModeSemaphore
)

func (m SyncMode) String() string {
	switch m {
	case ModeMutex:
		return "mutex"
	case ModeSemaphore:
		return "semaphore"
	default:
		return fmt.Sprintf("SyncMode(%d)", int(m))
	}
}

// ParseSyncMode maps "mutex" / "semaphore" (case-insensitive) to a SyncMode.
// Empty string defaults to mutex.
func ParseSyncMode(name string) (SyncMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mutex":
		return ModeMutex, nil
	case "semaphore":
		return ModeSemaphore, nil
	default:
		return ModeMutex, fmt.Errorf("unknown sync mode %q (valid: mutex, semaphore)", name)
	}
}
