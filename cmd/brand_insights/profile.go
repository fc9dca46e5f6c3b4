package main

import (
	"fmt"

	"github.com/jonathan/brand-insights/internal/insights"
	"github.com/jonathan/brand-insights/internal/observability"
	"github.com/spf13/cobra"
)

var profileBrand string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Compute the profile of one tracked brand",
	Long:  "Computes a brand's strongest AI context, search rank, share of search, trend direction and positioning tier.",
	RunE:  runProfile,
}

func init() {
	profileCmd.Flags().StringVarP(&profileBrand, "brand", "b", "", "Brand name (required)")
	if err := profileCmd.MarkFlagRequired("brand"); err != nil {
		panic(fmt.Sprintf("failed to mark brand flag as required: %v", err))
	}
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(eng *insights.Engine) (any, func(*observability.Printer), error) {
		profile, err := eng.BrandProfile(profileBrand)
		if err != nil {
			return nil, nil, err
		}
		return profile, func(p *observability.Printer) { p.PrintBrandProfile(profile) }, nil
	})
}
