package insights

import (
	"fmt"
	"time"

	"github.com/jonathan/brand-insights/internal/crossref"
	"github.com/jonathan/brand-insights/internal/metrics"
	"github.com/jonathan/brand-insights/internal/types"
)

// ComputeBrandMetrics returns the per-brand metric table in search-rank order.
// Brands absent from the search snapshot are listed last, by name.
func ComputeBrandMetrics(roster types.Roster, sv *types.SearchVolume, sov *types.AISov) *types.MetricsTable {
	table := &types.MetricsTable{Rows: []types.BrandMetrics{}}
	var om omissions

	var totals map[string]float64
	if sv != nil {
		var missing []string
		totals, missing = crossref.SearchTotals(roster, sv)
		om.missing("search_volume", missing)
	}
	sosShares, sosErr := searchShares(roster, sv)
	if sosErr != nil {
		om.add("share_of_search", sosErr)
	}
	sovShares, sovErr := aiShares(roster, sov)
	if sovErr != nil {
		om.add("ai_share_of_voice", sovErr)
	}

	for _, name := range metricsOrder(roster, totals) {
		row := types.BrandMetrics{Brand: name}
		if sv != nil {
			if v, ok := sv.Current.Brands[name]; ok {
				row.SearchVolume = ptr(v.Total)
			}
		}
		if rank, err := crossref.Rank(totals, name); err == nil {
			row.SearchRank = ptr(rank)
		}
		if sosErr == nil {
			row.ShareOfSearch = ptr(sosShares[name])
		}
		if sovErr == nil {
			row.AIShareOfVoice = ptr(sovShares[name])
		}

		if yoy, err := yearOverYear(sv, name); err != nil {
			om.add("rows."+name+".year_over_year", err)
		} else {
			row.YearOverYear = ptr(yoy)
		}

		if sov != nil {
			if rec, ok := sov.SovScore.Brands[name]; ok {
				if r, err := metrics.MentionRate(rec.Mentions, sov.TrialCount()); err == nil {
					row.MentionRate = ptr(r * 100)
				}
				if r, err := metrics.FirstRecRate(rec.FirstMentions, sov.TrialCount()); err == nil {
					row.FirstRecRate = ptr(r * 100)
				}
			} else {
				om.add("rows."+name+".mention_rate", fmt.Errorf("mention rate: brand %q has no ai record: %w", name, types.ErrUnknownKey))
			}
		}
		table.Rows = append(table.Rows, row)
	}

	table.Omissions = om.list()
	return table
}

func metricsOrder(roster types.Roster, totals map[string]float64) []string {
	order := make([]string, 0, len(roster.Brands))
	for _, r := range crossref.RankAll(totals) {
		order = append(order, r.Name)
	}
	for _, name := range roster.Names() {
		if _, ok := totals[name]; !ok {
			order = append(order, name)
		}
	}
	return order
}

// yearOverYear compares a brand's current total with the historical snapshot one year earlier.
func yearOverYear(sv *types.SearchVolume, brand string) (float64, error) {
	if sv == nil {
		return 0, fmt.Errorf("year over year: no search volume: %w", types.ErrUnknownKey)
	}
	current, ok := sv.Current.Brands[brand]
	if !ok {
		return 0, fmt.Errorf("year over year: brand %q has no current volume: %w", brand, types.ErrUnknownKey)
	}
	if sv.Current.Date == "" {
		return 0, fmt.Errorf("year over year: current snapshot is undated: %w", types.ErrInsufficientData)
	}
	month, err := time.Parse("2006-01", sv.Current.Date)
	if err != nil {
		return 0, fmt.Errorf("year over year: invalid date %q: %w", sv.Current.Date, types.ErrUnknownKey)
	}
	prev := month.AddDate(-1, 0, 0).Format("2006-01")
	snapshot, ok := sv.HistoricalFor(prev)
	if !ok {
		return 0, fmt.Errorf("year over year: no historical snapshot for %s: %w", prev, types.ErrUnknownKey)
	}
	historical, ok := snapshot.Brands[brand]
	if !ok {
		return 0, fmt.Errorf("year over year: brand %q missing from %s: %w", brand, prev, types.ErrUnknownKey)
	}
	return metrics.YearOverYear(current.Total, historical.Total)
}
