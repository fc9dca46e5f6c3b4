package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/brand-insights/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testConfig  = "../../brand-insights.yaml"
	testDataDir = "../../testdata/dataset"
)

// resetFlags restores every flag to its default so commands can run repeatedly in one process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI in-process and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Setenv("LOG_FILE", "")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	base := []string{"--config", testConfig, "--data-dir", testDataDir, "--log-level", "error"}
	stdout, stderr, err := execute(t, append(base, args...)...)
	require.NoError(t, err, stderr)
	return stdout
}

func TestValidateCommand(t *testing.T) {
	var result validationResult
	require.NoError(t, json.Unmarshal([]byte(run(t, "validate")), &result))

	assert.True(t, result.Valid)
	assert.NotEmpty(t, result.Version)
	assert.Equal(t, "iloom", result.Roster.Focal.Name)
	assert.Len(t, result.Documents, 7)
}

func TestValidateCommand_SchemaViolation(t *testing.T) {
	dir := t.TempDir()
	entries, err := os.ReadDir(testDataDir)
	require.NoError(t, err)
	for _, e := range entries {
		content, err := os.ReadFile(filepath.Join(testDataDir, e.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, e.Name()), content, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keyword-clusters.json"), []byte(`{}`), 0o644))

	_, _, err = execute(t, "--config", testConfig, "--data-dir", dir, "--log-level", "error", "validate")

	require.Error(t, err)
	var sv *types.SchemaViolation
	require.True(t, errors.As(err, &sv))
	assert.Equal(t, "keyword-clusters.json", sv.Source)
}

func TestMetricsCommand(t *testing.T) {
	var table types.MetricsTable
	require.NoError(t, json.Unmarshal([]byte(run(t, "metrics")), &table))

	require.Len(t, table.Rows, 5)
	assert.Equal(t, "hanssem", table.Rows[0].Brand)
}

func TestProfileCommand(t *testing.T) {
	var profile types.BrandProfile
	require.NoError(t, json.Unmarshal([]byte(run(t, "profile", "--brand", "iloom")), &profile))

	assert.Equal(t, "iloom", profile.Brand)
	require.NotNil(t, profile.PositioningTier)
	assert.Equal(t, types.TierMajorCompetitor, *profile.PositioningTier)
}

func TestProfileCommand_UnknownBrand(t *testing.T) {
	_, _, err := execute(t, "--config", testConfig, "--data-dir", testDataDir, "profile", "--brand", "muji")

	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnknownKey)
}

func TestProfileCommand_MissingBrandFlag(t *testing.T) {
	_, _, err := execute(t, "--config", testConfig, "--data-dir", testDataDir, "profile")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestSeasonalityCommand(t *testing.T) {
	var s types.SeasonalityInsights
	require.NoError(t, json.Unmarshal([]byte(run(t, "seasonality")), &s))
	assert.Equal(t, "iloom", s.Brand)

	require.NoError(t, json.Unmarshal([]byte(run(t, "seasonality", "--brand", "hanssem")), &s))
	assert.Equal(t, "hanssem", s.Brand)
}

func TestInsightCommands(t *testing.T) {
	for _, name := range []string{"overview", "paths", "action-plan", "strategy"} {
		t.Run(name, func(t *testing.T) {
			var out map[string]any
			require.NoError(t, json.Unmarshal([]byte(run(t, name)), &out))
			assert.Equal(t, "iloom", out["brand"])
		})
	}
}

func TestReportCommand_WritesOutFile(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "report.json")

	stdout := run(t, "report", "--out", outFile)
	assert.Empty(t, stdout)

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var report types.Report
	require.NoError(t, json.Unmarshal(content, &report))
	assert.Len(t, report.Profiles, 5)
	assert.NotEmpty(t, report.Version)
}

func TestVerboseGoesToStderr(t *testing.T) {
	stdout, stderr, err := execute(t, "--config", testConfig, "--data-dir", testDataDir, "--log-level", "error", "--verbose", "action-plan")
	require.NoError(t, err)

	var plan types.ActionPlan
	require.NoError(t, json.Unmarshal([]byte(stdout), &plan), "stdout stays pure JSON")
	assert.Contains(t, stderr, "ACTION PLAN")
}

func TestConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "metrics")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("short roster", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.yaml")
		require.NoError(t, os.WriteFile(path, []byte("brand: {name: iloom}\ncompetitors: [{name: ikea}]\n"), 0o644))

		_, _, err := execute(t, "--config", path, "--data-dir", testDataDir, "metrics")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "competitors")
	})
}
