// Package insights computes the composite insight records from a loaded dataset.
//
// Every Compute function takes the typed records it needs as explicit parameters and is pure:
// the same inputs always produce the same record. Recoverable failures (unknown keys, short
// series, zero denominators) leave the affected field nil and are listed in the record's omissions.
package insights

import (
	"fmt"
	"sort"

	"github.com/jonathan/brand-insights/internal/crossref"
	"github.com/jonathan/brand-insights/internal/metrics"
	"github.com/jonathan/brand-insights/internal/types"
)

// Routine names, used as memo keys and log fields.
const (
	RoutineBrandProfile    = "brand_profile"
	RoutineOverview        = "overview"
	RoutinePathExamples    = "path_examples"
	RoutineActionPlan      = "action_plan"
	RoutineSeasonality     = "seasonality"
	RoutineBrandMetrics    = "brand_metrics"
	RoutineStrategySummary = "strategy_summary"
)

// DefaultMaxPathExamples caps each list of path examples.
const DefaultMaxPathExamples = 5

// DefaultExcludedClusters are the demographic segments skipped when looking for an opportunity.
var DefaultExcludedClusters = []string{"newlywed", "kids"}

// Options tunes the data-dependent rules of the routines.
type Options struct {
	// ExcludedClusters are matched as case-insensitive substrings of cluster ids.
	// Nil means DefaultExcludedClusters; an empty slice excludes nothing.
	ExcludedClusters []string
	// MaxPathExamples caps exit and entry paths. Zero or negative means DefaultMaxPathExamples.
	MaxPathExamples int
}

func (o Options) excludedClusters() []string {
	if o.ExcludedClusters == nil {
		return DefaultExcludedClusters
	}
	return o.ExcludedClusters
}

func (o Options) maxPathExamples() int {
	if o.MaxPathExamples <= 0 {
		return DefaultMaxPathExamples
	}
	return o.MaxPathExamples
}

// omissions collects recoverable failures for a single record.
type omissions []types.Omission

func (o *omissions) add(field string, err error) {
	*o = append(*o, types.Omission{Field: field, Reason: err.Error()})
}

// missing records an unknown-key omission per brand absent from a dataset, as field.brand.
func (o *omissions) missing(field string, brands []string) {
	for _, b := range brands {
		o.add(field+"."+b, fmt.Errorf("%s: brand %q has no record: %w", field, b, types.ErrUnknownKey))
	}
}

func (o omissions) list() []types.Omission {
	if len(o) == 0 {
		return nil
	}
	return []types.Omission(o)
}

func unknownBrand(routine, brand string) error {
	return fmt.Errorf("%s: brand %q is not tracked: %w", routine, brand, types.ErrUnknownKey)
}

func ptr[T any](v T) *T {
	return &v
}

// searchShares returns every tracked brand's share of search.
// It fails when any tracked brand is missing, since the shares must cover the full set.
func searchShares(roster types.Roster, sv *types.SearchVolume) (map[string]float64, error) {
	if sv == nil {
		return nil, fmt.Errorf("share of search: no search volume: %w", types.ErrUnknownKey)
	}
	all, missing := sv.Current.Totals(roster.Names())
	if len(missing) > 0 {
		return nil, fmt.Errorf("share of search: brands %v missing: %w", missing, types.ErrUnknownKey)
	}
	shares := make(map[string]float64, len(all))
	for _, name := range roster.Names() {
		s, err := metrics.ShareOfSearch(sv.Current.Brands[name].Total, all)
		if err != nil {
			return nil, err
		}
		shares[name] = s
	}
	return shares, nil
}

// aiShares returns every tracked brand's AI share of voice, under the same full-set rule as searchShares.
func aiShares(roster types.Roster, sov *types.AISov) (map[string]float64, error) {
	if sov == nil {
		return nil, fmt.Errorf("ai share of voice: no ai share of voice data: %w", types.ErrUnknownKey)
	}
	records, missing := crossref.AIRecords(roster, sov)
	if len(missing) > 0 {
		return nil, fmt.Errorf("ai share of voice: brands %v missing: %w", missing, types.ErrUnknownKey)
	}
	all := make([]int, 0, len(records))
	for _, name := range roster.Names() {
		all = append(all, records[name].Mentions)
	}
	shares := make(map[string]float64, len(records))
	for _, name := range roster.Names() {
		s, err := metrics.AIShareOfVoice(records[name].Mentions, all)
		if err != nil {
			return nil, err
		}
		shares[name] = s
	}
	return shares, nil
}

// contextRates returns a record's mention rate per context, in percentage points of trials.
func contextRates(rec types.AISovRecord, trials int) (map[string]float64, error) {
	counts := rec.ContextCounts()
	rates := make(map[string]float64, len(counts))
	for _, ctx := range crossref.SortContexts(counts) {
		r, err := metrics.ContextMentionRate(counts, ctx, trials)
		if err != nil {
			return nil, err
		}
		rates[ctx] = r * 100
	}
	return rates, nil
}

// PositioningTier classifies an AI share of voice (percent). 25.0 exactly is a leader.
func PositioningTier(aiShareOfVoice float64) string {
	switch {
	case aiShareOfVoice >= 25:
		return types.TierLeader
	case aiShareOfVoice > 15:
		return types.TierMajorCompetitor
	default:
		return types.TierNiche
	}
}

// TrendDirection classifies a three-month change rate (percent).
func TrendDirection(changeRate float64) string {
	switch {
	case changeRate > 5:
		return types.TrendRising
	case changeRate < -5:
		return types.TrendDeclining
	default:
		return types.TrendStable
	}
}

// sortedKeys returns a map's keys in lexical order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
