package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpgo/networth-projector/internal/calculation"
	"github.com/rpgo/networth-projector/internal/config"
	"github.com/rpgo/networth-projector/internal/logging"
)

// app carries the state shared by every subcommand.
type app struct {
	logLevel string
	logJSON  bool
	log      *zap.SugaredLogger
	parser   *config.InputParser
}

func newRootCmd() *cobra.Command {
	a := &app{parser: config.NewInputParser(), log: logging.Nop()}

	root := &cobra.Command{
		Use:           "networth",
		Short:         "Project household net worth month by month",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logging.NewWithWriter(a.logLevel, a.logJSON, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "emit logs as JSON")

	root.AddCommand(
		newRunCmd(a),
		newMonteCarloCmd(a),
		newValidateCmd(a),
		newExampleCmd(a),
	)
	return root
}

// engineFlags are the options shared by run and montecarlo.
type engineFlags struct {
	configFile string
	filter     string
	seed       int64
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "configuration file (yaml, json or toml)")
	cmd.Flags().StringVar(&f.filter, "filter", "", "only project assets whose name contains this text")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed (0 uses the scenario seed)")
	_ = cmd.MarkFlagRequired("config")
}

// loadEngine reads the configuration and prepares an engine for it.
func (a *app) loadEngine(f *engineFlags) (*calculation.Engine, error) {
	cfg, err := a.parser.LoadFromFile(f.configFile)
	if err != nil {
		return nil, err
	}
	a.log.Debugf("loaded %q with %d assets from %s", cfg.Scenario.Name, len(cfg.Assets), f.configFile)

	opts := []calculation.Option{
		calculation.WithLogger(a.log),
		calculation.WithAssetFilter(f.filter),
	}
	if f.seed != 0 {
		opts = append(opts, calculation.WithSeed(f.seed))
	}
	return calculation.NewEngine(cfg, opts...)
}
