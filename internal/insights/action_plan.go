package insights

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonathan/brand-insights/internal/crossref"
	"github.com/jonathan/brand-insights/internal/metrics"
	"github.com/jonathan/brand-insights/internal/types"
)

const (
	// maxActionItems caps the action plan.
	maxActionItems = 3
	// highPriorityGap is the gap (percentage points) above which an action is high priority.
	highPriorityGap = 30.0
	// targetGapFraction is the share of the gap the next target closes.
	targetGapFraction = 0.5
)

// ComputeActionPlan ranks the AI contexts where the focal brand trails the context leader.
// Only positive gaps produce items; the plan is never padded.
func ComputeActionPlan(roster types.Roster, sov *types.AISov) *types.ActionPlan {
	focal := roster.Focal.Name
	plan := &types.ActionPlan{Brand: focal, Items: []types.ActionItem{}}
	var om omissions

	if sov == nil {
		om.add("items", fmt.Errorf("action plan: no ai share of voice data: %w", types.ErrUnknownKey))
		plan.Omissions = om.list()
		return plan
	}
	records, missing := crossref.AIRecords(roster, sov)
	focalRecord, ok := records[focal]
	if !ok {
		om.add("items", fmt.Errorf("action plan: focal brand %q has no ai record: %w", focal, types.ErrUnknownKey))
		plan.Omissions = om.list()
		return plan
	}
	om.missing("items", missing)
	trials := sov.TrialCount()

	var items []types.ActionItem
	for _, ctx := range types.ContextPriority {
		item, err := actionFor(ctx, focal, focalRecord, records, trials)
		if err != nil {
			om.add("items."+ctx, err)
			continue
		}
		if item.Gap > 0 {
			items = append(items, item)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Gap != items[j].Gap {
			return items[i].Gap > items[j].Gap
		}
		return crossref.ContextLess(items[i].Context, items[j].Context)
	})
	if len(items) > maxActionItems {
		items = items[:maxActionItems]
	}
	if items != nil {
		plan.Items = items
	}
	plan.Omissions = om.list()
	return plan
}

func actionFor(
	ctx, focal string,
	focalRecord types.AISovRecord,
	records map[string]types.AISovRecord,
	trials int,
) (types.ActionItem, error) {
	focalRate, err := metrics.ContextMentionRate(focalRecord.ContextCounts(), ctx, trials)
	if err != nil {
		return types.ActionItem{}, err
	}
	top, err := crossref.Top(crossref.ContextMentions(records, ctx))
	if err != nil {
		return types.ActionItem{}, err
	}
	topRate, err := metrics.ContextMentionRate(records[top.Name].ContextCounts(), ctx, trials)
	if err != nil {
		return types.ActionItem{}, err
	}

	focalPct, topPct := focalRate*100, topRate*100
	gap := topPct - focalPct
	priority := types.PriorityMedium
	if gap > highPriorityGap {
		priority = types.PriorityHigh
	}
	return types.ActionItem{
		Context:           ctx,
		TopBrand:          top.Name,
		TopMentionRate:    topPct,
		FocalMentionRate:  focalPct,
		Gap:               gap,
		Priority:          priority,
		TargetMentionRate: math.Min(focalPct+gap*targetGapFraction, topPct),
	}, nil
}
