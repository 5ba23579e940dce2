package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/uvgenios/schaduler/sim"
	"github.com/uvgenios/schaduler/sim/syncsim"
	"github.com/uvgenios/schaduler/sim/trace"
)

func outputTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)))
	_, _ = fmt.Fprintln(w, title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)))
}

// processLabel names a process ID for display; NoProcess is "idle".
func processLabel(list *sim.ProcessList, id int) string {
	if id == sim.NoProcess {
		return "idle"
	}
	return list.At(id).Name
}

// outputGantt prints the trace as a one-line chart with cycle boundaries below.
func outputGantt(w io.Writer, list *sim.ProcessList, s *sim.Simulation) {
	segments := s.Gantt()
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	_, _ = fmt.Fprint(w, "|")
	for _, seg := range segments {
		label := processLabel(list, seg.Process)
		padding := strings.Repeat(" ", max(1, (8-len(label))/2))
		_, _ = fmt.Fprint(w, padding, label, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for i, seg := range segments {
		_, _ = fmt.Fprint(w, strconv.Itoa(seg.Start), "\t")
		if i == len(segments)-1 {
			_, _ = fmt.Fprint(w, strconv.Itoa(seg.End))
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

// outputSchedule prints one row per process with the run's averages in the footer.
func outputSchedule(w io.Writer, m *sim.Metrics) {
	_, _ = fmt.Fprintln(w, "Schedule table")
	rows := make([][]string, 0, len(m.Processes))
	for _, p := range m.Processes {
		rows = append(rows, []string{
			p.Name,
			strconv.Itoa(p.Priority),
			strconv.Itoa(p.BurstTime),
			strconv.Itoa(p.ArrivalTime),
			strconv.Itoa(p.WaitingTime),
			strconv.Itoa(p.Turnaround),
			strconv.Itoa(p.FinishTime),
		})
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Priority", "Burst", "Arrival", "Wait", "Turnaround", "Exit"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Average\n%.2f", m.AvgWaitingTime),
		fmt.Sprintf("Average\n%.2f", m.AvgTurnaround),
		fmt.Sprintf("Throughput\n%.2f/t", m.Throughput)})
	table.Render()
	_, _ = fmt.Fprintf(w, "CPU utilization: %.2f%%\n\n", 100*m.CPUUtilization)
}

// outputSteps prints every step: the running process and each process's
// remaining burst / waiting time.
func outputSteps(w io.Writer, list *sim.ProcessList, s *sim.Simulation) {
	_, _ = fmt.Fprintln(w, "Step table")
	header := []string{"Cycle", "Running"}
	header = append(header, list.Names()...)
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	for i := 0; i < s.Len(); i++ {
		step := s.Step(i)
		row := []string{strconv.Itoa(i), processLabel(list, step.CurrentProcess)}
		for _, p := range step.Processes {
			row = append(row, fmt.Sprintf("%d/%d", p.BurstTime, p.WaitingTime))
		}
		table.Append(row)
	}
	table.Render()
	_, _ = fmt.Fprintln(w)
}

// timelineCell renders one timeline entry; resource states name the resource.
func timelineCell(s *syncsim.Simulator, e syncsim.TimelineEntry) string {
	if e.ResourceID == syncsim.NoResource {
		return e.State.String()
	}
	return fmt.Sprintf("%s %s", e.State, s.Resources[e.ResourceID].Name)
}

// outputTimelines prints one row per process and one column per cycle.
func outputTimelines(w io.Writer, s *syncsim.Simulator) {
	_, _ = fmt.Fprintf(w, "Timelines (%s, %d cycles)\n", s.Mode, s.TotalCycles)
	cycles := 0
	for i := range s.Timelines {
		if last, ok := s.Timelines[i].Last(); ok {
			cycles = max(cycles, last.Cycle)
		}
	}
	header := []string{"Process"}
	for c := 1; c <= cycles; c++ {
		header = append(header, strconv.Itoa(c))
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	for pid := range s.Timelines {
		row := make([]string, cycles+1)
		row[0] = s.Processes[pid].Name
		for _, e := range s.Timelines[pid].Entries() {
			row[e.Cycle] = timelineCell(s, e)
		}
		table.Append(row)
	}
	table.Render()
	_, _ = fmt.Fprintln(w)
}

// outputTraceSummary prints arbitration statistics of a traced run.
func outputTraceSummary(w io.Writer, s *syncsim.Simulator, summary *trace.TraceSummary) {
	_, _ = fmt.Fprintln(w, "Arbitration summary")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.AppendBulk([][]string{
		{"Decisions", strconv.Itoa(summary.TotalDecisions)},
		{"Admitted", strconv.Itoa(summary.AdmittedCount)},
		{"Denied", strconv.Itoa(summary.DeniedCount)},
		{"Max contenders", strconv.Itoa(summary.MaxContenders)},
		{"Resources used", strconv.Itoa(summary.UniqueResources)},
		{"Retired", strconv.Itoa(summary.RetiredCount)},
	})
	table.Render()

	pids := make([]int, 0, len(summary.DenialsPerProcess))
	for pid := range summary.DenialsPerProcess {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	for _, pid := range pids {
		_, _ = fmt.Fprintf(w, "  %s denied %d time(s)\n", s.Processes[pid].Name, summary.DenialsPerProcess[pid])
	}
	_, _ = fmt.Fprintln(w)
}
