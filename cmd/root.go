// Package cmd provides the command-line interface of flowsim.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sarchlab/flowsim/scenario"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

const (
	envMonitorPort = "FLOWSIM_MONITOR_PORT"
	envDatabase    = "FLOWSIM_DB"
)

type rootOptions struct {
	configPath string
	envFile    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "flowsim",
		Short: "Simulate networks of queues, routers and servers.",
		Long: `flowsim builds an item-flow network from a YAML scenario, ` +
			`runs it on a discrete event engine and reports how the ` +
			`queues behaved.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"Scenario file. The built-in scenario is used if empty.")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env",
		"File with environment overrides.")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info",
		"Log level (trace, debug, info, warn, error).")

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newStrategiesCmd())

	return rootCmd
}

// Execute runs the command line and exits through atexit so that recorders
// are flushed.
func Execute() {
	err := newRootCmd().Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func (o *rootOptions) setup() error {
	level, err := logrus.ParseLevel(o.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q", o.logLevel)
	}

	logrus.SetLevel(level)

	err = godotenv.Load(o.envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", o.envFile, err)
	}

	return nil
}

func (o *rootOptions) loadConfig() (*scenario.Config, error) {
	if o.configPath == "" {
		return scenario.DefaultConfig(), nil
	}

	return scenario.LoadConfig(o.configPath)
}

func envInt(key string) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}

	return n, nil
}
