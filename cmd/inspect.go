package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sarchlab/flowsim/datarecording"
	"github.com/sarchlab/flowsim/scenario"
	"github.com/sarchlab/flowsim/tracing"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <recording.sqlite3>",
		Short: "Summarize a recording written by run.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err != nil {
				return err
			}

			reader := datarecording.NewReader(args[0])
			defer reader.Close()

			return inspect(cmd.Context(), reader, cmd.OutOrStdout())
		},
	}
}

func inspect(
	ctx context.Context,
	reader datarecording.DataReader,
	out io.Writer,
) error {
	stored, err := reader.StoredTables(ctx)
	if err != nil {
		return err
	}

	if !contains(stored, scenario.QueueTableName) {
		return fmt.Errorf("recording has no %s table", scenario.QueueTableName)
	}

	reader.MapTable(scenario.QueueTableName, scenario.QueueReport{})

	queues, _, err := reader.Query(ctx, scenario.QueueTableName,
		datarecording.QueryParams{OrderBy: "Queue"})
	if err != nil {
		return err
	}

	hasLevels := contains(stored, tracing.LevelTableName)
	if hasLevels {
		reader.MapTable(tracing.LevelTableName, tracing.LevelEntry{})
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Queue\tServed\tMax\tAvg Level\tAvg Dwell\tChanges\t")

	for _, row := range queues {
		q := row.(*scenario.QueueReport)

		changes := 0
		if hasLevels {
			_, changes, err = reader.Query(ctx, tracing.LevelTableName,
				datarecording.QueryParams{
					Where: "Queue = ?",
					Args:  []any{q.Queue},
					Limit: 1,
				})
			if err != nil {
				return err
			}
		}

		fmt.Fprintf(tw, "%s\t%d\t%d\t%.3f\t%.3f\t%d\t\n",
			q.Queue, q.Served, q.MaxLevel, q.AverageLevel, q.AverageDwell,
			changes)
	}

	return tw.Flush()
}

func contains(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}

	return false
}
