package workload

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/uvgenios/schaduler/sim"
	"github.com/uvgenios/schaduler/sim/syncsim"
)

// ExportVersion is written to every export header.
const ExportVersion = 1

// SimulationHeader captures metadata for an exported scheduling trace.
type SimulationHeader struct {
	Version        int      `yaml:"export_version"`
	Algorithm      string   `yaml:"algorithm"`
	Quantum        int      `yaml:"quantum,omitempty"`
	Processes      []string `yaml:"processes"`
	Steps          int      `yaml:"steps"`
	AvgWaitingTime float64  `yaml:"avg_waiting_time"`
	WaitingTimes   []int    `yaml:"waiting_times"`
	FinishTimes    []int    `yaml:"finish_times"`
}

// CSV column headers for the step data, one row per process per step.
var simulationColumns = []string{"step", "current_process", "process_id", "burst_remaining", "waiting_time"}

// CSV column headers for the timeline data, one row per timeline entry.
var timelineColumns = []string{"process_id", "process_name", "cycle", "state", "action_id", "resource_id"}

// NewSimulationHeader summarizes sim over processes.
func NewSimulationHeader(processes *sim.ProcessList, s *sim.Simulation) *SimulationHeader {
	return &SimulationHeader{
		Version:        ExportVersion,
		Algorithm:      string(s.Algorithm),
		Quantum:        s.Quantum,
		Processes:      processes.Names(),
		Steps:          s.Len(),
		AvgWaitingTime: s.AvgWaitingTime,
		WaitingTimes:   append([]int(nil), s.WaitingTimes...),
		FinishTimes:    append([]int(nil), s.FinishTimes...),
	}
}

// WriteSimulationCSV writes every step snapshot of s to w.
func WriteSimulationCSV(w io.Writer, s *sim.Simulation) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(simulationColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i := 0; i < s.Len(); i++ {
		step := s.Step(i)
		for _, p := range step.Processes {
			row := []string{
				strconv.Itoa(i),
				strconv.Itoa(step.CurrentProcess),
				strconv.Itoa(p.ID),
				strconv.Itoa(p.BurstTime),
				strconv.Itoa(p.WaitingTime),
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("writing CSV row for step %d: %w", i, err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportSimulation writes the header (YAML) and step data (CSV) to separate files.
func ExportSimulation(processes *sim.ProcessList, s *sim.Simulation, headerPath, dataPath string) error {
	headerData, err := yaml.Marshal(NewSimulationHeader(processes, s))
	if err != nil {
		return fmt.Errorf("marshaling simulation header: %w", err)
	}
	if err := os.WriteFile(headerPath, headerData, 0644); err != nil {
		return fmt.Errorf("writing simulation header: %w", err)
	}

	file, err := os.Create(dataPath)
	if err != nil {
		return fmt.Errorf("creating simulation data file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return WriteSimulationCSV(file, s)
}

// LoadSimulationHeader reads a header written by ExportSimulation.
func LoadSimulationHeader(path string) (*SimulationHeader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading simulation header: %w", err)
	}
	var header SimulationHeader
	if err := yaml.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("parsing simulation header: %w", err)
	}
	return &header, nil
}

// WriteTimelinesCSV writes every timeline entry of s to w, process by process.
func WriteTimelinesCSV(w io.Writer, s *syncsim.Simulator) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(timelineColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for pid, tl := range s.Timelines {
		name := s.Processes[pid].Name
		for _, e := range tl.Entries() {
			row := []string{
				strconv.Itoa(pid),
				name,
				strconv.Itoa(e.Cycle),
				e.State.String(),
				strconv.Itoa(e.ActionID),
				strconv.Itoa(e.ResourceID),
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("writing CSV row for process %d: %w", pid, err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportTimelines writes the timelines of s as CSV to path.
func ExportTimelines(s *syncsim.Simulator, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating timeline file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return WriteTimelinesCSV(file, s)
}
