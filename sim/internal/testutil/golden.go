// Package testutil provides shared test infrastructure for the scheduling
// simulator: the golden trace dataset and assertion helpers.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldentraces.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one hand-verified scheduling run.
type GoldenTestCase struct {
	Name      string          `json:"name"`
	Algorithm string          `json:"algorithm"`
	Quantum   int             `json:"quantum"`
	Processes []GoldenProcess `json:"processes"`
	Expected  GoldenResult    `json:"expected"`
}

// GoldenProcess is one input row.
type GoldenProcess struct {
	Name     string `json:"name"`
	Burst    int    `json:"burst"`
	Arrival  int    `json:"arrival"`
	Priority int    `json:"priority"`
}

// GoldenResult holds the expected trace outcome. Sequence lists the running
// process ID of every step, -1 for idle.
type GoldenResult struct {
	Sequence       []int   `json:"sequence"`
	WaitingTimes   []int   `json:"waiting_times"`
	FinishTimes    []int   `json:"finish_times"`
	AvgWaitingTime float64 `json:"avg_waiting_time"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldentraces.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
