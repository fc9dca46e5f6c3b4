package main

import (
	"github.com/jonathan/brand-insights/internal/insights"
	"github.com/jonathan/brand-insights/internal/observability"
	"github.com/spf13/cobra"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Summarize the focal brand's strength, weakness and opportunity",
	RunE:  runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(eng *insights.Engine) (any, func(*observability.Printer), error) {
		o := eng.Overview()
		return o, func(p *observability.Printer) { p.PrintOverview(o) }, nil
	})
}
