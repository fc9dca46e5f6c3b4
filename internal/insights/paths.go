package insights

import (
	"fmt"
	"sort"

	"github.com/jonathan/brand-insights/internal/metrics"
	"github.com/jonathan/brand-insights/internal/types"
)

// exitCandidate is a tracked competitor with at least one exit sample.
type exitCandidate struct {
	name string
	types.ExitCompetitor
}

// ComputePathExamples builds deterministic two-hop search paths for the focal brand.
// Exit paths lead from the focal brand's category term to a competitor keyword; entry paths
// lead from a brand-free awareness keyword to a focal-brand consideration keyword.
func ComputePathExamples(roster types.Roster, journey *types.ConsumerJourney, opts Options) *types.PathExamples {
	out := &types.PathExamples{
		Brand:      roster.Focal.Name,
		ExitPaths:  []types.SearchPath{},
		EntryPaths: []types.SearchPath{},
	}
	var om omissions
	if journey == nil {
		om.add("paths", fmt.Errorf("path examples: no consumer journey: %w", types.ErrUnknownKey))
		out.Omissions = om.list()
		return out
	}
	limit := opts.maxPathExamples()

	out.ExitPaths = exitPaths(roster, journey.Stages.Consideration.ExitSignals, limit, &om)
	if len(out.ExitPaths) > 0 {
		out.PrimaryLeakDestination = out.ExitPaths[0].Competitor
	}
	out.EntryPaths = entryPaths(roster, journey.Stages, limit)
	out.Funnel = funnelSummary(journey.Stages, &om)

	out.Omissions = om.list()
	return out
}

// exitPaths orders competitors by share, then mention count (both descending), then name.
func exitPaths(roster types.Roster, signals *types.ExitSignals, limit int, om *omissions) []types.SearchPath {
	paths := []types.SearchPath{}
	if signals == nil || len(signals.Competitors) == 0 {
		return paths
	}
	category := roster.Focal.Category
	if category == "" {
		om.add("exit_paths", fmt.Errorf("exit paths: focal brand %q has no category term: %w", roster.Focal.Name, types.ErrUnknownKey))
		return paths
	}

	tracked := make(map[string]bool, len(roster.Brands))
	for _, name := range roster.Competitors() {
		tracked[name] = true
	}
	candidates := make([]exitCandidate, 0, len(signals.Competitors))
	for _, name := range sortedKeys(signals.Competitors) {
		ec := signals.Competitors[name]
		switch {
		case !tracked[name]:
			om.add("exit_paths."+name, fmt.Errorf("exit paths: %q is not a tracked competitor: %w", name, types.ErrUnknownKey))
		case len(ec.Samples) == 0:
			om.add("exit_paths."+name, fmt.Errorf("exit paths: %q has no sample keywords: %w", name, types.ErrInsufficientData))
		default:
			candidates = append(candidates, exitCandidate{name: name, ExitCompetitor: ec})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Share != b.Share {
			return a.Share > b.Share
		}
		return a.MentionCount > b.MentionCount
	})

	for _, c := range candidates {
		if len(paths) == limit {
			break
		}
		paths = append(paths, types.SearchPath{
			Competitor: c.name,
			Steps:      [2]string{category, c.Samples[0]},
		})
	}
	return paths
}

// entryPaths pairs generic awareness keywords with focal consideration keywords by position.
func entryPaths(roster types.Roster, stages types.JourneyStages, limit int) []types.SearchPath {
	var generic, branded []string
	for _, k := range stages.Awareness.Keywords {
		if k.Keyword != "" && !roster.MentionsAny(k.Keyword) {
			generic = append(generic, k.Keyword)
		}
	}
	for _, k := range stages.Consideration.Keywords {
		if roster.MentionsFocal(k.Keyword) {
			branded = append(branded, k.Keyword)
		}
	}

	n := min(len(generic), len(branded), limit)
	paths := make([]types.SearchPath, 0, n)
	for i := 0; i < n; i++ {
		paths = append(paths, types.SearchPath{Steps: [2]string{generic[i], branded[i]}})
	}
	return paths
}

// funnelSummary compares stage volumes. A zero earlier-stage volume leaves that ratio nil.
func funnelSummary(stages types.JourneyStages, om *omissions) *types.FunnelSummary {
	volumes := make(map[string]int64, 3)
	for _, name := range []string{types.StageAwareness, types.StageConsideration, types.StageConversion} {
		stage, _ := stages.ByName(name)
		volumes[name] = stage.Volume()
	}
	out := &types.FunnelSummary{
		AwarenessVolume:     volumes[types.StageAwareness],
		ConsiderationVolume: volumes[types.StageConsideration],
		ConversionVolume:    volumes[types.StageConversion],
	}

	out.AwarenessToConsideration = stageRatio(volumes, types.StageAwareness, types.StageConsideration, om)
	out.ConsiderationToConversion = stageRatio(volumes, types.StageConsideration, types.StageConversion, om)
	if leak, err := metrics.LeakRate(out.ConversionVolume, out.AwarenessVolume); err != nil {
		om.add("funnel.estimated_leak_rate", err)
	} else {
		out.EstimatedLeakRate = ptr(leak * 100)
	}
	return out
}

func stageRatio(volumes map[string]int64, from, to string, om *omissions) *float64 {
	r, err := metrics.StageConversion(volumes[to], volumes[from])
	if err != nil {
		om.add("funnel."+from+"_to_"+to, fmt.Errorf("%s to %s: %w", from, to, err))
		return nil
	}
	return ptr(r * 100)
}
