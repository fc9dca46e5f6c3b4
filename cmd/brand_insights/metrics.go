package main

import (
	"github.com/jonathan/brand-insights/internal/insights"
	"github.com/jonathan/brand-insights/internal/observability"
	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print the per-brand metric table",
	Long:  "Computes share of search, year-over-year growth, AI share of voice, mention rate and first-recommendation rate for every tracked brand.",
	RunE:  runMetrics,
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(eng *insights.Engine) (any, func(*observability.Printer), error) {
		table := eng.BrandMetrics()
		return table, func(p *observability.Printer) { p.PrintMetrics(table) }, nil
	})
}
