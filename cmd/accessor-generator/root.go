package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"accessor-generator/internal/config"
	"accessor-generator/internal/logging"
)

// errDiagnostics is returned once error diagnostics have been printed.
var errDiagnostics = errors.New("declarations have errors")

// app is the state shared by all subcommands once flags are parsed.
type app struct {
	configPath string

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:          "accessor-generator",
		Short:        "Generate accessor methods from field and association declarations",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.log.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to config file (default ./accessor-generator.yaml)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-format", "console", "Log format: console or json")
	flags.Bool("strict-arity", false, "Reject generic types with more than one type argument")

	root.AddCommand(
		newGenCmd(a),
		newCheckCmd(a),
		newExpandCmd(a),
		newClassifyCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	a.cfg = cfg
	a.log = log

	if cfg.File != "" {
		log.Debug("loaded config", zap.String("file", cfg.File))
	}

	return nil
}
