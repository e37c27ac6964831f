package cmd

import (
	"os"

	"github.com/sarchlab/flowsim/datarecording"
	"github.com/sarchlab/flowsim/monitoring"
	"github.com/sarchlab/flowsim/scenario"
	"github.com/sarchlab/flowsim/sim/timing"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type runOptions struct {
	*rootOptions

	record      string
	monitor     bool
	monitorPort int
	openBrowser bool
	traceEvents bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{rootOptions: root}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario and print the queue report.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd)
		},
	}

	runCmd.Flags().StringVar(&opts.record, "record", "",
		"Record queue levels into this SQLite database (without the "+
			".sqlite3 suffix). Defaults to the scenario's record field, "+
			"then to "+envDatabase+".")
	runCmd.Flags().BoolVar(&opts.monitor, "monitor", false,
		"Serve the state of the run over HTTP.")
	runCmd.Flags().IntVar(&opts.monitorPort, "monitor-port", 0,
		"Port of the monitoring server. Defaults to "+envMonitorPort+
			", then to a random port.")
	runCmd.Flags().BoolVar(&opts.openBrowser, "open-browser", false,
		"Open the monitoring page in a browser.")

	runCmd.Flags().BoolVar(&opts.traceEvents, "trace-events", false,
		"Log every event at debug level.")

	return runCmd
}

func (o *runOptions) run(cmd *cobra.Command) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	builder := scenario.MakeBuilder().
		WithConfig(cfg).
		WithLogger(logrus.StandardLogger())

	recordPath := o.recordPath(cfg)
	if recordPath != "" {
		recorder := datarecording.New(recordPath)
		defer recorder.Close()

		builder = builder.WithRecorder(recorder)
	}

	network, err := builder.Build()
	if err != nil {
		return err
	}

	if o.traceEvents {
		network.Simulation().GetEngine().AcceptHook(
			timing.NewEventLogger(logrus.StandardLogger()))
	}

	if o.monitor || o.openBrowser {
		err = o.startMonitor(network)
		if err != nil {
			return err
		}
	}

	report, err := network.Run()
	if err != nil {
		return err
	}

	return report.Write(cmd.OutOrStdout())
}

func (o *runOptions) recordPath(cfg *scenario.Config) string {
	if o.record != "" {
		return o.record
	}

	if cfg.Record != "" {
		return cfg.Record
	}

	return os.Getenv(envDatabase)
}

func (o *runOptions) startMonitor(network *scenario.Network) error {
	port := o.monitorPort
	if port == 0 {
		var err error

		port, err = envInt(envMonitorPort)
		if err != nil {
			return err
		}
	}

	m := monitoring.NewMonitor().
		WithPortNumber(port).
		WithLogger(logrus.StandardLogger())
	network.AttachMonitor(m)
	m.StartServer()

	if o.openBrowser {
		err := m.OpenBrowser()
		if err != nil {
			logrus.WithError(err).Warn("cannot open browser")
		}
	}

	return nil
}
