package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpgo/networth-projector/internal/calculation"
	"github.com/rpgo/networth-projector/internal/output"
)

func newMonteCarloCmd(a *app) *cobra.Command {
	var (
		flags     engineFlags
		runs      int
		workers   int
		outputDir string
	)
	cmd := &cobra.Command{
		Use:     "montecarlo",
		Aliases: []string{"mc"},
		Short:   "Run many seeded projections and summarize final net worth",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if runs <= 0 {
				return fmt.Errorf("--runs must be positive, got %d", runs)
			}
			engine, err := a.loadEngine(&flags)
			if err != nil {
				return err
			}
			sim := calculation.NewMonteCarloSimulator(engine, calculation.MonteCarloConfig{
				NumSimulations: runs,
				BaseSeed:       flags.seed,
				Workers:        workers,
			})
			a.log.Infof("running %d simulations on %d workers from seed %d", runs, sim.Config.Workers, sim.Config.BaseSeed)

			result, err := sim.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), output.FormatMonteCarloSummary(result))

			if outputDir == "" {
				return nil
			}
			report := &output.MonteCarloCSVReport{Result: result}
			paths, err := report.WriteFiles(outputDir, time.Now())
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", p)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&runs, "runs", "n", 1000, "number of simulations")
	cmd.Flags().IntVar(&workers, "workers", calculation.DefaultMonteCarloWorkers, "concurrent simulations")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for "+output.MonteCarloCSVFormat+" files")
	return cmd
}
