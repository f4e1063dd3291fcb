package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/viant/sweeper"
	"github.com/viant/sweeper/model/trial"
	"github.com/viant/sweeper/progress"
	"github.com/viant/sweeper/service/aggregate"
	"github.com/viant/sweeper/service/host"
	"github.com/viant/sweeper/service/orchestrator"
)

func printWarning(format string, args ...interface{}) {
	printer := color.New(color.FgYellow)
	printer.Printf("[WARNING] "+format+"\n", args...)
}

var progressMux sync.Mutex

func printProgress(c progress.Counters) {
	progressMux.Lock()
	defer progressMux.Unlock()
	writeProgress(os.Stderr, c)
}

func writeProgress(writer io.Writer, c progress.Counters) {
	color.New(color.FgCyan).Fprintf(writer, "[%s] %d/%d finished, %d running, %d queued (%d timed out, %d failed)\n",
		c.Sweep, c.Finished(), c.Total, c.Running, c.Queued, c.TimedOut, c.Failed)
}

func statusColor(status trial.Status) *color.Color {
	switch status {
	case trial.StatusCompleted:
		return color.New(color.FgGreen)
	case trial.StatusTimedOut:
		return color.New(color.FgYellow)
	}
	return color.New(color.FgRed)
}

// printReport writes the status counts of a run followed by a table of the
// trials that did not complete.
func printReport(writer io.Writer, report *orchestrator.Report) {
	fmt.Fprintf(writer, "\nsweep %s (%s) finished in %s\n", report.Name, report.ID, report.Elapsed().Round(time.Millisecond))
	for _, status := range trial.Statuses() {
		statusColor(status).Fprintf(writer, "  %-10s %d\n", status, report.Count(status))
	}

	var failed []*trial.Outcome
	for _, o := range report.Outcomes {
		if o.Status != trial.StatusCompleted {
			failed = append(failed, o)
		}
	}
	if len(failed) == 0 {
		return
	}
	table := tablewriter.NewWriter(writer)
	table.SetHeader([]string{"Trial", "Status", "Reason", "Elapsed", "Error"})
	table.SetAutoWrapText(false)
	for _, o := range failed {
		table.Append([]string{o.ID, string(o.Status), string(o.Reason), o.Elapsed().Round(time.Millisecond).String(), o.Error})
	}
	table.Render()
}

func printPlan(writer io.Writer, planned []*sweeper.Planned) {
	table := tablewriter.NewWriter(writer)
	table.SetHeader([]string{"Dataset", "Algorithm", "Servers", "Replicas", "Nodes", "Output", "Existing"})
	table.SetAutoWrapText(false)
	for _, p := range planned {
		existing := ""
		if p.Exists {
			existing = "overwrite"
		}
		table.Append([]string{
			p.Spec.Dataset,
			string(p.Spec.Algorithm),
			strconv.Itoa(p.Spec.Servers),
			strconv.Itoa(p.Spec.Replicas),
			strconv.Itoa(p.Spec.Nodes),
			p.OutputPath,
			existing,
		})
	}
	table.Render()
}

func printSweeps(writer io.Writer, srv *sweeper.Service) error {
	table := tablewriter.NewWriter(writer)
	table.SetHeader([]string{"Name", "Datasets", "Algorithms", "Trials"})
	for _, name := range srv.Config().SweepNames() {
		definition, err := srv.Definition(name)
		if err != nil {
			return err
		}
		table.Append([]string{
			name,
			strconv.Itoa(len(definition.Datasets)),
			strconv.Itoa(len(definition.Algorithms)),
			strconv.Itoa(definition.Size()),
		})
	}
	table.Render()
	return nil
}

func printRows(writer io.Writer, rows []*aggregate.Row) {
	table := tablewriter.NewWriter(writer)
	table.SetHeader(aggregate.Header)
	for _, row := range rows {
		table.Append(row.Record())
	}
	table.Render()
}

func printHost(writer io.Writer, info *host.Info, capacity int) {
	table := tablewriter.NewWriter(writer)
	table.SetHeader([]string{"Hostname", "OS", "Arch", "Kernel", "CPUs", "Capacity"})
	table.Append([]string{info.Hostname, info.OS, info.Arch, info.Kernel, strconv.Itoa(info.CPUs), strconv.Itoa(capacity)})
	table.Render()
	if info.Oversubscribed(capacity) {
		printWarning("capacity %d exceeds %d CPUs", capacity, info.CPUs)
	}
}
