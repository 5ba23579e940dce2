package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === Subsystem Constants ===

// Each generated field draws from its own stream, so widening one range does
// not change the values drawn for the others.
const (
	SubsystemBurst    = "burst"
	SubsystemArrival  = "arrival"
	SubsystemPriority = "priority"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
// Each subsystem is seeded with seed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	seed       int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		seed:       seed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.seed ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Seed returns the seed used to create this PartitionedRNG.
func (p *PartitionedRNG) Seed() int64 {
	return p.seed
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// === Process generation ===

// GeneratorConfig bounds randomly generated processes. Bursts are drawn from
// [1, MaxBurst], arrivals from [0, MaxArrival], priorities from [0, MaxPriority].
type GeneratorConfig struct {
	Count       int
	MaxBurst    int
	MaxArrival  int
	MaxPriority int
}

// Validate checks that the ranges are usable.
func (c GeneratorConfig) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("process count must be positive, got %d", c.Count)
	}
	if c.MaxBurst <= 0 {
		return fmt.Errorf("max burst must be positive, got %d", c.MaxBurst)
	}
	if c.MaxArrival < 0 || c.MaxPriority < 0 {
		return fmt.Errorf("max arrival and max priority must be non-negative")
	}
	return nil
}

// GenerateProcesses returns cfg.Count processes named P1..Pn. The same seed
// and config always produce the same list. Panics if cfg is invalid.
func GenerateProcesses(rng *PartitionedRNG, cfg GeneratorConfig) *ProcessList {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("GenerateProcesses: %v", err))
	}
	burstRNG := rng.ForSubsystem(SubsystemBurst)
	arrivalRNG := rng.ForSubsystem(SubsystemArrival)
	priorityRNG := rng.ForSubsystem(SubsystemPriority)

	list := &ProcessList{}
	for i := 0; i < cfg.Count; i++ {
		list.Append(Process{
			Name:        fmt.Sprintf("P%d", i+1),
			BurstTime:   1 + burstRNG.Intn(cfg.MaxBurst),
			ArrivalTime: arrivalRNG.Intn(cfg.MaxArrival + 1),
			Priority:    priorityRNG.Intn(cfg.MaxPriority + 1),
		})
	}
	return list
}
