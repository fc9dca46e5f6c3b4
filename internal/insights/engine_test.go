package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonathan/brand-insights/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Report(t *testing.T) {
	ds := loadFixture(t)
	engine := NewEngine(ds, Options{}, quietLogger())

	report, err := engine.Report(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ds.Version, report.Version)
	require.Len(t, report.Profiles, 5)
	for i, name := range ds.Roster.Names() {
		assert.Equal(t, name, report.Profiles[i].Brand)
	}
	assert.Equal(t, "iloom", report.Seasonality.Brand)
	assert.Len(t, report.ActionPlan.Items, 3)
	assert.Len(t, report.Metrics.Rows, 5)
	assert.Equal(t, "home_office", report.Overview.Opportunity.ClusterID)
	assert.Equal(t, "ikea", report.Paths.PrimaryLeakDestination)
	assert.Len(t, report.Strategy.Items, 4)
}

func TestEngine_ReportIsIdempotent(t *testing.T) {
	ds := loadFixture(t)

	first, err := NewEngine(ds, Options{}, quietLogger()).Report(context.Background())
	require.NoError(t, err)
	second, err := NewEngine(loadFixture(t), Options{}, quietLogger()).Report(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("report differs between runs (-first +second):\n%s", diff)
	}

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b), "report JSON is not byte-identical")
}

func TestEngine_RoutinesAreIdempotent(t *testing.T) {
	ds := loadFixture(t)
	opts := Options{}

	routines := map[string]func() any{
		RoutineBrandProfile: func() any {
			p, _ := ComputeBrandProfile(ds.Roster, "hanssem", ds.SearchVolume, ds.Trend, ds.AISov)
			return p
		},
		RoutineOverview: func() any {
			return ComputeOverviewInsights(ds.Roster, ds.SearchVolume, ds.AISov, ds.KeywordClusters, ds.Sentiment, opts)
		},
		RoutinePathExamples: func() any { return ComputePathExamples(ds.Roster, ds.Journey, opts) },
		RoutineActionPlan:   func() any { return ComputeActionPlan(ds.Roster, ds.AISov) },
		RoutineSeasonality: func() any {
			s, _ := ComputeSeasonalityInsights(ds.Roster, "iloom", ds.Trend)
			return s
		},
		RoutineBrandMetrics: func() any { return ComputeBrandMetrics(ds.Roster, ds.SearchVolume, ds.AISov) },
		RoutineStrategySummary: func() any {
			return ComputeStrategySummary(ds.Roster, ds.SearchVolume, ds.AISov, ds.Strategy)
		},
	}

	for name, run := range routines {
		t.Run(name, func(t *testing.T) {
			a, err := json.Marshal(run())
			require.NoError(t, err)
			b, err := json.Marshal(run())
			require.NoError(t, err)
			assert.Equal(t, string(a), string(b))
		})
	}
}

func TestEngine_Memoizes(t *testing.T) {
	ds := loadFixture(t)
	engine := NewEngine(ds, Options{}, quietLogger())

	first, err := engine.BrandProfile("iloom")
	require.NoError(t, err)
	second, err := engine.BrandProfile("iloom")
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := engine.BrandProfile("ikea")
	require.NoError(t, err)
	assert.NotSame(t, first, other)

	assert.Same(t, engine.ActionPlan(), engine.ActionPlan())
	assert.Same(t, engine.BrandMetrics(), engine.BrandMetrics())
}

func TestEngine_ConcurrentCallsShareResult(t *testing.T) {
	ds := loadFixture(t)
	engine := NewEngine(ds, Options{}, quietLogger())

	const callers = 16
	results := make([]*types.OverviewInsights, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = engine.Overview()
		}()
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.Same(t, results[0], r)
	}
}

func TestEngine_LogsOmissionsOnce(t *testing.T) {
	ds := loadFixture(t)
	log, hook := test.NewNullLogger()
	engine := NewEngine(ds, Options{}, log)

	_, err := engine.BrandProfile("desker")
	require.NoError(t, err)
	_, err = engine.BrandProfile("desker")
	require.NoError(t, err)

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "desker", entry.Data["brand"])
	assert.Equal(t, RoutineBrandProfile, entry.Data["routine"])
	assert.Equal(t, "trend_direction", entry.Data["field"])
	assert.Equal(t, ds.Version, entry.Data["version"])
}

func TestEngine_UnknownBrand(t *testing.T) {
	engine := NewEngine(loadFixture(t), Options{}, quietLogger())

	_, err := engine.BrandProfile("muji")
	assert.ErrorIs(t, err, types.ErrUnknownKey)
	_, err = engine.Seasonality("muji")
	assert.ErrorIs(t, err, types.ErrUnknownKey)

	// Failures are not cached.
	_, err = engine.BrandProfile("muji")
	assert.ErrorIs(t, err, types.ErrUnknownKey)
}

func TestEngine_SeasonalityDefaultsToFocal(t *testing.T) {
	engine := NewEngine(loadFixture(t), Options{}, quietLogger())

	s, err := engine.Seasonality("")
	require.NoError(t, err)
	assert.Equal(t, "iloom", s.Brand)

	explicit, err := engine.Seasonality("iloom")
	require.NoError(t, err)
	assert.Same(t, s, explicit)
}

func TestEngine_ReportCancelled(t *testing.T) {
	engine := NewEngine(loadFixture(t), Options{}, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Report(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_OptionsReachRoutines(t *testing.T) {
	engine := NewEngine(loadFixture(t), Options{ExcludedClusters: []string{}, MaxPathExamples: 1}, quietLogger())

	assert.Equal(t, "newlywed_home", engine.Overview().Opportunity.ClusterID)
	assert.Len(t, engine.PathExamples().ExitPaths, 1)
}
