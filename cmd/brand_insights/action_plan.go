package main

import (
	"github.com/jonathan/brand-insights/internal/insights"
	"github.com/jonathan/brand-insights/internal/observability"
	"github.com/spf13/cobra"
)

var actionPlanCmd = &cobra.Command{
	Use:   "action-plan",
	Short: "Rank the AI contexts where the focal brand trails the leader",
	RunE:  runActionPlan,
}

func init() {
	rootCmd.AddCommand(actionPlanCmd)
}

func runActionPlan(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(eng *insights.Engine) (any, func(*observability.Printer), error) {
		plan := eng.ActionPlan()
		return plan, func(p *observability.Printer) { p.PrintActionPlan(plan) }, nil
	})
}
