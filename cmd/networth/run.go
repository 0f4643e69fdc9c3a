package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/networth-projector/internal/output"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		flags     engineFlags
		format    string
		outputDir string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single projection and write a report",
		Long: `Run a single monthly projection of the configured household.

The console format prints to stdout unless --output is set. Every other
format, and "all", writes timestamped files into the output directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := a.loadEngine(&flags)
			if err != nil {
				return err
			}
			projection, err := engine.Run(cmd.Context())
			if err != nil {
				return err
			}
			a.log.Infof("projected %d periods, final net worth %s", len(projection.Periods), output.FormatCurrency(projection.FinalNetWorth()))

			if output.NormalizeFormatName(format) == "console" && outputDir == "" {
				data, err := output.ConsoleFormatter{}.Format(projection)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			dir := outputDir
			if dir == "" {
				dir = "."
			}
			paths, err := output.GenerateReport(projection, format, dir)
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
	cmd.Flags().StringVarP(&format, "format", "f", "console", "report format (console, model-csv, assets-csv, json, chart or all)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for report files")
	return cmd
}
