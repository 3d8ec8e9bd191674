// Package cli implements intervalctl, a command line front end to the
// interval algebra.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type options struct {
	configFile string
	domain     string
	logLevel   string

	engine engine
}

// Run executes intervalctl with os.Args and returns the process exit code.
func Run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "intervalctl: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "intervalctl",
		Short:         "Parse and combine intervals, interval sets and interval maps",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.complete(cmd.Flags())
		},
	}
	addGlobalFlags(root.PersistentFlags(), o)

	root.AddCommand(
		newParseCmd(o),
		newOrderCmd(o),
		newSetCmd(o),
		newMapCmd(o),
		newJSONCmd(o),
	)
	return root
}

func addGlobalFlags(fs *pflag.FlagSet, o *options) {
	fs.StringVarP(&o.configFile, "config", "c", "", "YAML config file")
	fs.StringVarP(&o.domain, "domain", "d", "", fmt.Sprintf("element domain, one of %s", strings.Join(domainNames(), ", ")))
	fs.StringVar(&o.logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// complete merges the config file with the flags that were set and builds
// the engine for the selected domain.
func (o *options) complete(fs *pflag.FlagSet) error {
	cfg, err := LoadConfig(o.configFile)
	if err != nil {
		return err
	}
	if fs.Changed("domain") {
		cfg.Domain = o.domain
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	o.engine, err = newEngine(cfg.Domain, cfg.Sets, logrus.NewEntry(logger))
	return err
}

func newParseCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse INTERVAL...",
		Short: "Print intervals in canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.engine.Parse(cmd.OutOrStdout(), args)
		},
	}
}

func newOrderCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "order A B",
		Short: "Print how interval A is placed relative to interval B",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.engine.Order(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func newSetCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set OPERATION SET [SET|VALUE]",
		Short: "Combine interval sets",
		Long: `Combine interval sets written as {interval,...}, or named sets from the
config file written as @name.

Operations taking two sets: union, intersection, difference, xor.
Operations taking one set: inverse, envelope.
contains takes a set and a value.`,
		Args:      cobra.RangeArgs(2, 3),
		ValidArgs: []string{"union", "intersection", "difference", "xor", "inverse", "envelope", "contains"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.engine.Set(cmd.OutOrStdout(), args[0], args[1:])
		},
	}
}

func newMapCmd(o *options) *cobra.Command {
	var (
		def     string
		lookups []string
	)
	cmd := &cobra.Command{
		Use:   "map INTERVAL=VALUE...",
		Short: "Build an interval map by inserting pairs in order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.engine.Map(cmd.OutOrStdout(), def, args, lookups)
		},
	}
	cmd.Flags().StringVar(&def, "default", "", "value of keys outside every interval")
	cmd.Flags().StringSliceVar(&lookups, "get", nil, "keys to look up after the inserts")
	return cmd
}

func newJSONCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "json SET...",
		Short: "Print interval sets as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.engine.JSON(cmd.OutOrStdout(), args)
		},
	}
}
