package main

import (
	"github.com/jonathan/brand-insights/internal/insights"
	"github.com/jonathan/brand-insights/internal/observability"
	"github.com/spf13/cobra"
)

var seasonalityBrand string

var seasonalityCmd = &cobra.Command{
	Use:   "seasonality",
	Short: "Find peak, off-season and rebound months for a brand",
	Long:  "Finds a brand's peak, off-season and rebound months from its monthly search index. Defaults to the focal brand.",
	RunE:  runSeasonality,
}

func init() {
	seasonalityCmd.Flags().StringVarP(&seasonalityBrand, "brand", "b", "", "Brand name (default: focal brand)")
	rootCmd.AddCommand(seasonalityCmd)
}

func runSeasonality(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(eng *insights.Engine) (any, func(*observability.Printer), error) {
		s, err := eng.Seasonality(seasonalityBrand)
		if err != nil {
			return nil, nil, err
		}
		return s, func(p *observability.Printer) { p.PrintSeasonality(s) }, nil
	})
}
