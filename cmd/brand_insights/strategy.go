package main

import (
	"github.com/jonathan/brand-insights/internal/insights"
	"github.com/jonathan/brand-insights/internal/observability"
	"github.com/spf13/cobra"
)

var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Summarize gaps to the leader and prioritized strategy items",
	RunE:  runStrategy,
}

func init() {
	rootCmd.AddCommand(strategyCmd)
}

func runStrategy(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(eng *insights.Engine) (any, func(*observability.Printer), error) {
		s := eng.StrategySummary()
		return s, func(p *observability.Printer) { p.PrintStrategy(s) }, nil
	})
}
