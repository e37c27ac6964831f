package scenario

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sarchlab/flowsim/datarecording"
)

// QueueTableName is the table that receives the per-queue summary.
const QueueTableName = "queue_summary"

// RunReport is the outcome of a scenario run.
type RunReport struct {
	Name           string
	Strategy       string
	Duration       float64
	Produced       int
	Consumed       int
	Rejected       int
	Throughput     float64
	AverageLatency float64
	MaxLatency     float64
	Queues         []QueueReport
}

// QueueReport summarizes one queue and its server.
type QueueReport struct {
	Queue        string
	Final        int
	MaxLevel     int
	AverageLevel float64
	BusyTime     float64
	AverageDwell float64
	MaxDwell     float64
	Served       int
	Dropped      int
	FullCount    uint64
}

// InFlight returns the number of items produced and admitted but not yet
// consumed.
func (r *RunReport) InFlight() int {
	return r.Produced - r.Rejected - r.Consumed
}

// RecordTo writes one row per queue into the recorder.
func (r *RunReport) RecordTo(recorder datarecording.DataRecorder) {
	recorder.CreateTable(QueueTableName, QueueReport{})

	for _, q := range r.Queues {
		recorder.InsertData(QueueTableName, q)
	}
}

// Write prints the report as a table.
func (r *RunReport) Write(w io.Writer) error {
	fmt.Fprintf(w, "Scenario %s (%s) after %.2fs\n",
		r.Name, r.Strategy, r.Duration)
	fmt.Fprintf(w, "  produced %d, consumed %d, rejected %d, in flight %d\n",
		r.Produced, r.Consumed, r.Rejected, r.InFlight())
	fmt.Fprintf(w, "  throughput %.3f/s, latency avg %.3fs max %.3fs\n\n",
		r.Throughput, r.AverageLatency, r.MaxLatency)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Queue\tFinal\tMax\tAvg Level\tBusy\tAvg Dwell\t"+
		"Max Dwell\tServed\tFull\t")

	for _, q := range r.Queues {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.3f\t%.2f\t%.3f\t%.3f\t%d\t%d\t\n",
			q.Queue, q.Final, q.MaxLevel, q.AverageLevel, q.BusyTime,
			q.AverageDwell, q.MaxDwell, q.Served, q.FullCount)
	}

	return tw.Flush()
}
