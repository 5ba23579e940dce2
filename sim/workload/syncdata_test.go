package workload

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uvgenios/schaduler/sim/syncsim"
)

const (
	syncProcesses = "P1, 3, 0, 1\nP2, 3, 0, 2\n"
	syncResources = "R1, 1\nR2, 2\n"
	syncActions   = "P1, READ, R1, 1\nP2, WRITE, R1, 1\nP2, READ, R2, 3\n"
)

func sources(procs, res, actions string) SyncSources {
	return SyncSources{
		ProcessSource:  "procs.txt",
		Processes:      strings.NewReader(procs),
		ResourceSource: "res.txt",
		Resources:      strings.NewReader(res),
		ActionSource:   "actions.txt",
		Actions:        strings.NewReader(actions),
	}
}

func TestParseSyncDataset_ResolvesNamesAndAttachesActions(t *testing.T) {
	// GIVEN two processes, two resources and three actions
	// WHEN parsed
	d, err := ParseSyncDataset(sources(syncProcesses, syncResources, syncActions))

	// THEN actions land on their resource with the owner's priority
	require.NoError(t, err)
	require.Len(t, d.Processes, 2)
	require.Len(t, d.Resources, 2)
	assert.Equal(t, 3, d.ActionCount)
	assert.Equal(t, []string{"P1", "P2"}, d.ProcessNames.Items())
	assert.Equal(t, []string{"R1", "R2"}, d.ResourceNames.Items())

	r1 := d.Resources[0]
	assert.Equal(t, 1, r1.MaxCounter)
	assert.Equal(t, 1, r1.Counter)
	require.Len(t, r1.Actions, 2)
	assert.Equal(t, syncsim.Action{ID: 0, PID: 0, ResourceID: 0, Kind: "READ", Cycle: 1, Priority: 1}, r1.Actions[0])
	assert.Equal(t, syncsim.Action{ID: 1, PID: 1, ResourceID: 0, Kind: "WRITE", Cycle: 1, Priority: 2}, r1.Actions[1])

	r2 := d.Resources[1]
	assert.Equal(t, 2, r2.MaxCounter)
	require.Len(t, r2.Actions, 1)
	assert.Equal(t, 2, r2.Actions[0].ID)
}

func TestSyncDataset_NewSimulator_RunsMutexArbitration(t *testing.T) {
	// GIVEN the parsed dataset in mutex mode
	d, err := ParseSyncDataset(sources(syncProcesses, syncResources, syncActions))
	require.NoError(t, err)
	s := d.NewSimulator(syncsim.Config{Mode: syncsim.ModeMutex})

	// WHEN the first cycle runs
	require.True(t, s.Advance())

	// THEN the lower priority value wins and the loser retries next cycle
	assert.Equal(t, []syncsim.ProcessState{syncsim.StateAccessed, syncsim.StateWaiting}, s.States())
	assert.Equal(t, 2, s.Resources[0].Actions[1].Cycle)
	// AND the dataset itself is untouched
	assert.Equal(t, 1, d.Resources[0].Actions[1].Cycle)
}

func TestParseSyncDataset_Errors(t *testing.T) {
	tests := []struct {
		name     string
		procs    string
		res      string
		actions  string
		sentinel error
		source   string
		line     int
	}{
		{"unknown resource", syncProcesses, syncResources, "P1, READ, R9, 1\n", ErrResourceNotFound, "actions.txt", 1},
		{"unknown process", syncProcesses, syncResources, "P1, READ, R1, 1\nP7, READ, R1, 2\n", ErrProcessNotFound, "actions.txt", 2},
		{"action row too short", syncProcesses, syncResources, "P1, READ, R1\n", ErrMalformedRow, "actions.txt", 1},
		{"action cycle not a number", syncProcesses, syncResources, "P1, READ, R1, soon\n", ErrInvalidNumber, "actions.txt", 1},
		{"resource row too long", syncProcesses, "R1, 1, 2\n", syncActions, ErrMalformedRow, "res.txt", 1},
		{"zero capacity", syncProcesses, "R1, 0\n", syncActions, ErrInvalidNumber, "res.txt", 1},
		{"duplicate resource", syncProcesses, "R1, 1\nR1, 2\n", syncActions, ErrDuplicateName, "res.txt", 2},
		{"duplicate process", "P1, 3, 0, 1\nP1, 2, 0, 1\n", syncResources, syncActions, ErrDuplicateName, "procs.txt", 2},
		{"no processes", "", syncResources, syncActions, ErrEmptyInput, "procs.txt", 0},
		{"no resources", syncProcesses, "", syncActions, ErrEmptyInput, "res.txt", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// WHEN the dataset is parsed
			d, err := ParseSyncDataset(sources(tc.procs, tc.res, tc.actions))

			// THEN the whole load aborts with a located error
			assert.Nil(t, d)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.sentinel), "got %v", err)
			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.source, pe.Source)
			assert.Equal(t, tc.line, pe.Line)
		})
	}
}

func TestParseSyncDataset_NoActions_IsValid(t *testing.T) {
	d, err := ParseSyncDataset(sources(syncProcesses, syncResources, "# none\n"))

	require.NoError(t, err)
	assert.Equal(t, 0, d.ActionCount)
}

func TestLoadSyncDataset_ReadsThreeFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}
	procs := write("procs.txt", syncProcesses)
	res := write("res.txt", syncResources)
	actions := write("actions.txt", syncActions)

	d, err := LoadSyncDataset(procs, res, actions)

	require.NoError(t, err)
	assert.Equal(t, 3, d.ActionCount)

	_, err = LoadSyncDataset(procs, res, filepath.Join(dir, "missing.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
