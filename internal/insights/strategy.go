package insights

import (
	"sort"

	"github.com/jonathan/brand-insights/internal/crossref"
	"github.com/jonathan/brand-insights/internal/types"
)

// ComputeStrategySummary reports the focal brand's search and AI gaps to the leaders
// and orders the strategy items by impact times feasibility.
func ComputeStrategySummary(
	roster types.Roster,
	sv *types.SearchVolume,
	sov *types.AISov,
	matrix *types.StrategyMatrix,
) *types.StrategySummary {
	focal := roster.Focal.Name
	out := &types.StrategySummary{Brand: focal, Items: []types.StrategyItem{}}
	var om omissions

	if shares, err := searchShares(roster, sv); err != nil {
		om.add("sos_gap", err)
	} else {
		top, _ := crossref.Top(shares)
		out.SOSGap = ptr(top.Value - shares[focal])
	}
	if shares, err := aiShares(roster, sov); err != nil {
		om.add("sov_gap", err)
	} else {
		top, _ := crossref.Top(shares)
		out.SOVGap = ptr(top.Value - shares[focal])
	}

	if matrix != nil {
		items := make([]types.StrategyItem, len(matrix.Items))
		copy(items, matrix.Items)
		for i := range items {
			items[i].Priority = types.DerivePriority(items[i].Impact, items[i].Feasibility)
		}
		sort.SliceStable(items, func(i, j int) bool {
			si := items[i].Impact * items[i].Feasibility
			sj := items[j].Impact * items[j].Feasibility
			if si != sj {
				return si > sj
			}
			return items[i].ID < items[j].ID
		})
		out.Items = items
	}

	out.Omissions = om.list()
	return out
}
