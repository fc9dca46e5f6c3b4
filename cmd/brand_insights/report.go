package main

import (
	"github.com/jonathan/brand-insights/internal/insights"
	"github.com/jonathan/brand-insights/internal/observability"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute every insight in one document",
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(eng *insights.Engine) (any, func(*observability.Printer), error) {
		r, err := eng.Report(cmd.Context())
		if err != nil {
			return nil, nil, err
		}
		return r, func(p *observability.Printer) { p.PrintReport(r) }, nil
	})
}
