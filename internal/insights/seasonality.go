package insights

import (
	"fmt"
	"time"

	"github.com/jonathan/brand-insights/internal/crossref"
	"github.com/jonathan/brand-insights/internal/metrics"
	"github.com/jonathan/brand-insights/internal/types"
)

// Seasonality thresholds on the index scale (100 = average month).
const (
	peakIndex      = 110.0
	offSeasonIndex = 92.0
	dipIndex       = 95.0
	reboundIndex   = 105.0
	monthsPerYear  = 12
)

// ComputeSeasonalityInsights classifies a brand's calendar months into peak (Strength),
// off-season (Weakness) and dip-then-rebound (Opportunity) windows. December wraps to January.
func ComputeSeasonalityInsights(roster types.Roster, brand string, trend *types.Trend) (*types.SeasonalityInsights, error) {
	if !roster.Has(brand) {
		return nil, unknownBrand(RoutineSeasonality, brand)
	}
	out := &types.SeasonalityInsights{
		Brand:       brand,
		Strength:    []string{},
		Weakness:    []string{},
		Opportunity: []string{},
	}
	var om omissions

	indices, err := monthIndices(brand, trend)
	if err != nil {
		om.add("months", err)
		out.Omissions = om.list()
		return out, nil
	}

	for m := time.January; m <= time.December; m++ {
		idx := indices[m-1]
		label := types.MonthLabel(m)
		out.Months = append(out.Months, types.MonthIndex{Month: int(m), Label: label, Index: idx})
		if idx >= peakIndex {
			out.Strength = append(out.Strength, label)
		}
		if idx <= offSeasonIndex {
			out.Weakness = append(out.Weakness, label)
		}
		next := m%monthsPerYear + 1
		if idx <= dipIndex && indices[next-1] >= reboundIndex {
			out.Opportunity = append(out.Opportunity, label)
			out.OpportunityWindows = append(out.OpportunityWindows, types.SeasonWindow{
				OffSeason: label,
				Rebound:   types.MonthLabel(next),
			})
		}
	}
	return out, nil
}

// monthIndices returns the twelve seasonality indices, January first.
// Stored seasonality values already are indices and are used as given. Without a
// seasonality entry the brand's last twelve monthly points are normalised to their mean.
func monthIndices(brand string, trend *types.Trend) ([monthsPerYear]float64, error) {
	if trend == nil {
		return [monthsPerYear]float64{}, fmt.Errorf("seasonality: no trend data: %w", types.ErrUnknownKey)
	}
	if byMonth, ok := trend.Seasonality[brand]; ok {
		return fromSeasonality(byMonth)
	}

	raw, err := fromMonthly(trend.Monthly[brand], trend.Start)
	if err != nil {
		return raw, err
	}
	mean, err := crossref.TrailingAverage(raw[:], crossref.YearWindow)
	if err != nil {
		return raw, err
	}
	var indices [monthsPerYear]float64
	for i, v := range raw {
		idx, err := metrics.SeasonalityIndex(v, mean)
		if err != nil {
			return raw, err
		}
		indices[i] = idx
	}
	return indices, nil
}

func fromSeasonality(byMonth map[string]float64) ([monthsPerYear]float64, error) {
	var raw [monthsPerYear]float64
	var seen [monthsPerYear]bool
	for key, v := range byMonth {
		m, err := types.ParseMonthKey(key)
		if err != nil {
			return raw, fmt.Errorf("seasonality: %v: %w", err, types.ErrUnknownKey)
		}
		raw[m-1] = v
		seen[m-1] = true
	}
	for i, ok := range seen {
		if !ok {
			return raw, fmt.Errorf("seasonality: no value for %s: %w", types.MonthLabel(time.Month(i+1)), types.ErrInsufficientData)
		}
	}
	return raw, nil
}

// fromMonthly maps the last twelve points of an ordered series onto calendar months using its start month.
func fromMonthly(series []float64, start string) ([monthsPerYear]float64, error) {
	var raw [monthsPerYear]float64
	if len(series) < monthsPerYear {
		return raw, fmt.Errorf("seasonality: need %d monthly points, have %d: %w", monthsPerYear, len(series), types.ErrInsufficientData)
	}
	if start == "" {
		return raw, fmt.Errorf("seasonality: monthly series has no start month: %w", types.ErrInsufficientData)
	}
	first, err := time.Parse("2006-01", start)
	if err != nil {
		return raw, fmt.Errorf("seasonality: invalid start month %q: %w", start, types.ErrUnknownKey)
	}

	offset := len(series) - monthsPerYear
	for i, v := range series[offset:] {
		month := first.AddDate(0, offset+i, 0).Month()
		raw[month-1] = v
	}
	return raw, nil
}
