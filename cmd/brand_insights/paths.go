package main

import (
	"github.com/jonathan/brand-insights/internal/insights"
	"github.com/jonathan/brand-insights/internal/observability"
	"github.com/spf13/cobra"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List exit and entry search paths for the focal brand",
	Long:  "Lists the competitors searchers leave to after a category query and the generic queries that lead into the focal brand.",
	RunE:  runPaths,
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}

func runPaths(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(eng *insights.Engine) (any, func(*observability.Printer), error) {
		paths := eng.PathExamples()
		return paths, func(p *observability.Printer) { p.PrintPathExamples(paths) }, nil
	})
}
