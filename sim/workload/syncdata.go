package workload

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/uvgenios/schaduler/sim"
	"github.com/uvgenios/schaduler/sim/syncsim"
)

// SyncDataset is the parsed input of a synchronization run.
// Processes and Resources are indexed by ID; every action is already
// attached to its resource.
type SyncDataset struct {
	Processes     []syncsim.Process
	Resources     []syncsim.Resource
	ProcessNames  sim.NameList
	ResourceNames sim.NameList
	ActionCount   int
}

// SyncSources names the three readers of a synchronization dataset.
type SyncSources struct {
	ProcessSource  string
	Processes      io.Reader
	ResourceSource string
	Resources      io.Reader
	ActionSource   string
	Actions        io.Reader
}

// ParseSyncDataset reads processes ("NAME, BURST, ARRIVAL, PRIORITY"),
// resources ("NAME, CAPACITY") and actions ("NAME, KIND, RESOURCE, CYCLE").
// Action names must resolve against the process and resource sets; an
// unresolved name aborts the whole load.
func ParseSyncDataset(src SyncSources) (*SyncDataset, error) {
	d := &SyncDataset{}
	if err := d.parseProcesses(src.ProcessSource, src.Processes); err != nil {
		return nil, err
	}
	if err := d.parseResources(src.ResourceSource, src.Resources); err != nil {
		return nil, err
	}
	if err := d.parseActions(src.ActionSource, src.Actions); err != nil {
		return nil, err
	}
	logrus.Debugf("parsed sync dataset: %d processes, %d resources, %d actions",
		len(d.Processes), len(d.Resources), d.ActionCount)
	return d, nil
}

// LoadSyncDataset opens the three files and parses them with ParseSyncDataset.
func LoadSyncDataset(processPath, resourcePath, actionPath string) (*SyncDataset, error) {
	files := make([]*os.File, 0, 3)
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()
	for _, path := range []string{processPath, resourcePath, actionPath} {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening sync input: %w", err)
		}
		files = append(files, f)
	}
	return ParseSyncDataset(SyncSources{
		ProcessSource:  processPath,
		Processes:      files[0],
		ResourceSource: resourcePath,
		Resources:      files[1],
		ActionSource:   actionPath,
		Actions:        files[2],
	})
}

// NewSimulator builds a synchronization simulator over this dataset.
func (d *SyncDataset) NewSimulator(cfg syncsim.Config) *syncsim.Simulator {
	return syncsim.NewSimulator(d.Processes, d.Resources, cfg)
}

func (d *SyncDataset) parseProcesses(source string, r io.Reader) error {
	rows, err := readRows(source, r, 4)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return &ParseError{Source: source, Err: ErrEmptyInput}
	}
	d.Processes = make([]syncsim.Process, 0, len(rows))
	for _, rw := range rows {
		p, err := parseProcessRow(source, rw)
		if err != nil {
			return err
		}
		if d.ProcessNames.IndexOf(p.name) >= 0 {
			return &ParseError{Source: source, Line: rw.line, Err: fmt.Errorf("%w: process %q", ErrDuplicateName, p.name)}
		}
		id := d.ProcessNames.Append(p.name)
		d.Processes = append(d.Processes, syncsim.Process{
			ID:          id,
			Name:        p.name,
			BurstTime:   p.burst,
			ArrivalTime: p.arrival,
			Priority:    p.priority,
			State:       syncsim.StateReady,
		})
	}
	return nil
}

func (d *SyncDataset) parseResources(source string, r io.Reader) error {
	rows, err := readRows(source, r, 2)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return &ParseError{Source: source, Err: ErrEmptyInput}
	}
	d.Resources = make([]syncsim.Resource, 0, len(rows))
	for _, rw := range rows {
		name, err := nameField(source, rw, 0)
		if err != nil {
			return err
		}
		capacity, err := intField(source, rw, 1, "capacity")
		if err != nil {
			return err
		}
		if capacity == 0 {
			return &ParseError{Source: source, Line: rw.line, Err: fmt.Errorf("%w: capacity of %q must be positive", ErrInvalidNumber, name)}
		}
		if d.ResourceNames.IndexOf(name) >= 0 {
			return &ParseError{Source: source, Line: rw.line, Err: fmt.Errorf("%w: resource %q", ErrDuplicateName, name)}
		}
		id := d.ResourceNames.Append(name)
		d.Resources = append(d.Resources, syncsim.NewResource(id, name, capacity))
	}
	return nil
}

// parseActions resolves each row's resource first, then its process. Action
// IDs follow row order across the whole file.
func (d *SyncDataset) parseActions(source string, r io.Reader) error {
	rows, err := readRows(source, r, 4)
	if err != nil {
		return err
	}
	for id, rw := range rows {
		procName, kind, resName := rw.fields[0], rw.fields[1], rw.fields[2]
		rid := d.ResourceNames.IndexOf(resName)
		if rid < 0 {
			return &ParseError{Source: source, Line: rw.line, Err: fmt.Errorf("%w: %q", ErrResourceNotFound, resName)}
		}
		pid := d.ProcessNames.IndexOf(procName)
		if pid < 0 {
			return &ParseError{Source: source, Line: rw.line, Err: fmt.Errorf("%w: %q", ErrProcessNotFound, procName)}
		}
		cycle, err := intField(source, rw, 3, "cycle")
		if err != nil {
			return err
		}
		if cycle < 1 {
			logrus.Warnf("%s:%d: action of %s on %s at cycle %d can never run (cycles start at 1)",
				source, rw.line, procName, resName, cycle)
		}
		d.Resources[rid].AddAction(syncsim.Action{
			ID:       id,
			PID:      pid,
			Kind:     kind,
			Cycle:    cycle,
			Priority: d.Processes[pid].Priority,
		})
		d.ActionCount++
	}
	return nil
}
