package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions       int
	AdmittedCount        int
	DeniedCount          int
	MaxContenders        int
	UniqueResources      int
	ResourceDistribution map[int]int // resource ID → count of admissions
	DenialsPerProcess    map[int]int // process ID → count of denials
	RetiredCount         int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ResourceDistribution: make(map[int]int),
		DenialsPerProcess:    make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Arbitration)
	for _, a := range st.Arbitration {
		if a.Admitted {
			summary.AdmittedCount++
			summary.ResourceDistribution[a.ResourceID]++
		} else {
			summary.DeniedCount++
			summary.DenialsPerProcess[a.ProcessID]++
		}
		if a.Contenders > summary.MaxContenders {
			summary.MaxContenders = a.Contenders
		}
	}

	summary.UniqueResources = len(summary.ResourceDistribution)
	summary.RetiredCount = len(st.Retirements)

	return summary
}
