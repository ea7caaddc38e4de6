package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/redhat/browser-e2e-tests/test/framework"
	"github.com/redhat/browser-e2e-tests/test/framework/report"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		input  string
		output string
		csv    string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the HTML index of a run from its JSON results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := filepath.Join(a.cfg.OutputDir, framework.ReportDir)
			if input == "" {
				input = filepath.Join(dir, "results.json")
			}
			if output == "" {
				output = filepath.Join(filepath.Dir(input), "index.html")
			}

			run, err := report.LoadJSON(input)
			if err != nil {
				return err
			}
			if err := report.WriteHTML(run, output); err != nil {
				return err
			}
			if csv != "" {
				if err := report.NewCSVExporter(csv).Export(run); err != nil {
					return err
				}
			}

			s := run.Summary()
			a.logger.Debug("report rendered", zap.String("run_id", run.ID), zap.String("path", output))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d passed, %d failed, %d skipped\n", output, s.Passed, s.Failed, s.Skipped)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&input, "input", "i", "", "results.json of the run (default <output-dir>/report/results.json)")
	flags.StringVar(&output, "html", "", "HTML file to write (default next to the input)")
	flags.StringVar(&csv, "csv", "", "also export the run as CSV to this file")
	return cmd
}
