package workload

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/uvgenios/schaduler/sim"
)

// ParseProcesses reads scheduling rows "NAME, BURST, ARRIVAL, PRIORITY".
// Process IDs follow row order. source names the input in errors.
func ParseProcesses(source string, r io.Reader) (*sim.ProcessList, error) {
	rows, err := readRows(source, r, 4)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &ParseError{Source: source, Err: ErrEmptyInput}
	}

	list := &sim.ProcessList{}
	for _, rw := range rows {
		p, err := parseProcessRow(source, rw)
		if err != nil {
			return nil, err
		}
		list.Append(sim.Process{
			Name:        p.name,
			BurstTime:   p.burst,
			ArrivalTime: p.arrival,
			Priority:    p.priority,
		})
	}
	logrus.Debugf("parsed %d processes from %s", list.Len(), source)
	return list, nil
}

// LoadProcessFile opens path and parses it with ParseProcesses.
func LoadProcessFile(path string) (*sim.ProcessList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening process file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseProcesses(path, f)
}

type processRow struct {
	name     string
	burst    int
	arrival  int
	priority int
}

func parseProcessRow(source string, rw row) (processRow, error) {
	var p processRow
	var err error
	if p.name, err = nameField(source, rw, 0); err != nil {
		return p, err
	}
	if p.burst, err = intField(source, rw, 1, "burst"); err != nil {
		return p, err
	}
	if p.arrival, err = intField(source, rw, 2, "arrival"); err != nil {
		return p, err
	}
	if p.priority, err = intField(source, rw, 3, "priority"); err != nil {
		return p, err
	}
	return p, nil
}
