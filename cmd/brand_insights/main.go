// Package main provides the brand_insights CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	dataDir    string
	logLevel   string
	outPath    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "brand_insights",
	Short: "Brand derived-metrics and insight engine",
	Long: "brand_insights reads search-volume, trend, keyword-cluster, consumer-journey, AI share-of-voice, " +
		"review-sentiment and strategy-matrix documents and derives brand profiles, overview insights, search paths, " +
		"an AI visibility action plan, seasonality and strategy summaries, as JSON on the CLI or over HTTP.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "brand-insights.yaml", "Path to config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the input documents (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "Write JSON output to this file instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print a readable summary to stderr")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
