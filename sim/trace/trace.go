package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every resource arbitration decision.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether decisions should be recorded.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelDecisions
}

// SimulationTrace collects arbitration records during a synchronization run.
type SimulationTrace struct {
	Config      TraceConfig
	Arbitration []ArbitrationRecord
	Retirements []RetirementRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:      config,
		Arbitration: make([]ArbitrationRecord, 0),
		Retirements: make([]RetirementRecord, 0),
	}
}

// RecordArbitration appends an arbitration decision record.
func (st *SimulationTrace) RecordArbitration(record ArbitrationRecord) {
	st.Arbitration = append(st.Arbitration, record)
}

// RecordRetirement appends a process retirement record.
func (st *SimulationTrace) RecordRetirement(record RetirementRecord) {
	st.Retirements = append(st.Retirements, record)
}
