package insights

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/brand-insights/internal/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// memoKey identifies one computed record.
type memoKey struct {
	version string
	brand   string
	routine string
}

func (k memoKey) String() string {
	return k.version + "/" + k.brand + "/" + k.routine
}

// Engine binds one loaded dataset to the routines and memoizes their results.
// A new dataset means a new Engine; the cache is never partially invalidated.
// Returned records are shared between callers and must not be modified.
type Engine struct {
	ds   *types.Dataset
	opts Options
	log  logrus.FieldLogger

	mu    sync.Mutex
	cache map[memoKey]any
	group singleflight.Group
}

// NewEngine creates an engine over ds.
func NewEngine(ds *types.Dataset, opts Options, log logrus.FieldLogger) *Engine {
	return &Engine{
		ds:    ds,
		opts:  opts,
		log:   log,
		cache: make(map[memoKey]any),
	}
}

// Dataset returns the bound dataset.
func (e *Engine) Dataset() *types.Dataset {
	return e.ds
}

// Version returns the bound dataset's version.
func (e *Engine) Version() string {
	return e.ds.Version
}

// memo returns the cached record for (version, brand, routine), computing it once.
// Omissions are logged when the record is first computed.
func memo[T any](e *Engine, brand, routine string, compute func() (T, error), omitted func(T) []types.Omission) (T, error) {
	key := memoKey{version: e.ds.Version, brand: brand, routine: routine}

	e.mu.Lock()
	if v, ok := e.cache[key]; ok {
		e.mu.Unlock()
		return v.(T), nil
	}
	e.mu.Unlock()

	v, err, _ := e.group.Do(key.String(), func() (any, error) {
		result, err := compute()
		if err != nil {
			return nil, err
		}
		e.logOmissions(brand, routine, omitted(result))

		e.mu.Lock()
		e.cache[key] = result
		e.mu.Unlock()
		return result, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (e *Engine) logOmissions(brand, routine string, omitted []types.Omission) {
	for _, o := range omitted {
		e.log.WithFields(logrus.Fields{
			"version": e.ds.Version,
			"brand":   brand,
			"routine": routine,
			"field":   o.Field,
		}).Warn(o.Reason)
	}
}

// BrandProfile returns the profile of any tracked brand.
func (e *Engine) BrandProfile(brand string) (*types.BrandProfile, error) {
	return memo(e, brand, RoutineBrandProfile,
		func() (*types.BrandProfile, error) {
			return ComputeBrandProfile(e.ds.Roster, brand, e.ds.SearchVolume, e.ds.Trend, e.ds.AISov)
		},
		func(p *types.BrandProfile) []types.Omission { return p.Omissions },
	)
}

// Overview returns the focal brand's Strength/Weakness/Opportunity summary.
func (e *Engine) Overview() *types.OverviewInsights {
	v, _ := memo(e, e.focal(), RoutineOverview,
		func() (*types.OverviewInsights, error) {
			return ComputeOverviewInsights(e.ds.Roster, e.ds.SearchVolume, e.ds.AISov, e.ds.KeywordClusters, e.ds.Sentiment, e.opts), nil
		},
		func(o *types.OverviewInsights) []types.Omission { return o.Omissions },
	)
	return v
}

// PathExamples returns the focal brand's exit and entry search paths.
func (e *Engine) PathExamples() *types.PathExamples {
	v, _ := memo(e, e.focal(), RoutinePathExamples,
		func() (*types.PathExamples, error) {
			return ComputePathExamples(e.ds.Roster, e.ds.Journey, e.opts), nil
		},
		func(p *types.PathExamples) []types.Omission { return p.Omissions },
	)
	return v
}

// ActionPlan returns the focal brand's AI visibility action plan.
func (e *Engine) ActionPlan() *types.ActionPlan {
	v, _ := memo(e, e.focal(), RoutineActionPlan,
		func() (*types.ActionPlan, error) {
			return ComputeActionPlan(e.ds.Roster, e.ds.AISov), nil
		},
		func(p *types.ActionPlan) []types.Omission { return p.Omissions },
	)
	return v
}

// Seasonality returns a brand's seasonality insights. An empty brand means the focal brand.
func (e *Engine) Seasonality(brand string) (*types.SeasonalityInsights, error) {
	if brand == "" {
		brand = e.focal()
	}
	return memo(e, brand, RoutineSeasonality,
		func() (*types.SeasonalityInsights, error) {
			return ComputeSeasonalityInsights(e.ds.Roster, brand, e.ds.Trend)
		},
		func(s *types.SeasonalityInsights) []types.Omission { return s.Omissions },
	)
}

// BrandMetrics returns the per-brand metric table.
func (e *Engine) BrandMetrics() *types.MetricsTable {
	v, _ := memo(e, "", RoutineBrandMetrics,
		func() (*types.MetricsTable, error) {
			return ComputeBrandMetrics(e.ds.Roster, e.ds.SearchVolume, e.ds.AISov), nil
		},
		func(m *types.MetricsTable) []types.Omission { return m.Omissions },
	)
	return v
}

// StrategySummary returns the focal brand's strategy summary.
func (e *Engine) StrategySummary() *types.StrategySummary {
	v, _ := memo(e, e.focal(), RoutineStrategySummary,
		func() (*types.StrategySummary, error) {
			return ComputeStrategySummary(e.ds.Roster, e.ds.SearchVolume, e.ds.AISov, e.ds.Strategy), nil
		},
		func(s *types.StrategySummary) []types.Omission { return s.Omissions },
	)
	return v
}

// Report computes every routine. Brand profiles run in parallel, one goroutine per tracked brand.
func (e *Engine) Report(ctx context.Context) (*types.Report, error) {
	names := e.ds.Roster.Names()
	profiles := make([]*types.BrandProfile, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := e.BrandProfile(name)
			if err != nil {
				return fmt.Errorf("failed to compute profile for %s: %w", name, err)
			}
			profiles[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seasonality, err := e.Seasonality("")
	if err != nil {
		return nil, err
	}

	return &types.Report{
		Version:     e.ds.Version,
		Metrics:     e.BrandMetrics(),
		Profiles:    profiles,
		Overview:    e.Overview(),
		Paths:       e.PathExamples(),
		ActionPlan:  e.ActionPlan(),
		Seasonality: seasonality,
		Strategy:    e.StrategySummary(),
	}, nil
}

func (e *Engine) focal() string {
	return e.ds.Roster.Focal.Name
}
