// Package metrics implements the single-dataset metric formulas every insight is built from.
// All functions are pure and deterministic.
package metrics

import (
	"fmt"

	"github.com/jonathan/brand-insights/internal/types"
)

// ShareOfSearch returns brandTotal as a percentage of the sum of allTotals.
// allTotals must include brandTotal. A zero sum is "no data", not 0%.
func ShareOfSearch(brandTotal int64, allTotals []int64) (float64, error) {
	var sum int64
	for _, t := range allTotals {
		sum += t
	}
	if sum == 0 {
		return 0, fmt.Errorf("share of search: total volume is zero: %w", types.ErrDivisionUndefined)
	}
	return float64(brandTotal) * 100 / float64(sum), nil
}

// YearOverYear returns the percentage change of current versus the same month a year earlier.
// The result is unbounded; it can be negative or exceed 100.
func YearOverYear(current, historical int64) (float64, error) {
	if historical == 0 {
		return 0, fmt.Errorf("year over year: historical volume is zero: %w", types.ErrDivisionUndefined)
	}
	return float64(current-historical) * 100 / float64(historical), nil
}

// ChangeRate returns the percentage change from prior to recent.
func ChangeRate(recent, prior float64) (float64, error) {
	if prior == 0 {
		return 0, fmt.Errorf("change rate: prior value is zero: %w", types.ErrDivisionUndefined)
	}
	return (recent - prior) * 100 / prior, nil
}

// AIShareOfVoice returns a brand's AI mentions as a percentage of all tracked brands' mentions.
func AIShareOfVoice(mentions int, allMentions []int) (float64, error) {
	sum := 0
	for _, m := range allMentions {
		sum += m
	}
	if sum == 0 {
		return 0, fmt.Errorf("ai share of voice: no mentions: %w", types.ErrDivisionUndefined)
	}
	return float64(mentions) * 100 / float64(sum), nil
}

// MentionRate returns the fraction of trials that mentioned the brand.
func MentionRate(mentions, trials int) (float64, error) {
	return rate("mention rate", mentions, trials)
}

// FirstRecRate returns the fraction of trials that recommended the brand first.
func FirstRecRate(firstMentions, trials int) (float64, error) {
	return rate("first recommendation rate", firstMentions, trials)
}

// ContextMentionRate returns the fraction of trials mentioning the brand within one context.
func ContextMentionRate(byContext map[string]int, context string, trials int) (float64, error) {
	mentions, ok := byContext[context]
	if !ok {
		return 0, fmt.Errorf("context mention rate: context %q: %w", context, types.ErrUnknownKey)
	}
	return rate("context mention rate", mentions, trials)
}

func rate(name string, count, trials int) (float64, error) {
	if trials == 0 {
		return 0, fmt.Errorf("%s: zero trials: %w", name, types.ErrDivisionUndefined)
	}
	return float64(count) / float64(trials), nil
}

// SentimentScore returns the net positive-minus-negative proportion scaled to [-100, 100].
func SentimentScore(positiveRatio, negativeRatio float64) float64 {
	return (positiveRatio - negativeRatio) * 100
}

// NetSentiment returns the positive-minus-negative share of all classified reviews, scaled to [-100, 100].
// The split is normalised by its own total, so counts and proportions give the same score.
func NetSentiment(split types.SentimentSplit) (float64, error) {
	total := split.Positive + split.Negative + split.Neutral
	if total == 0 {
		return 0, fmt.Errorf("net sentiment: no classified reviews: %w", types.ErrDivisionUndefined)
	}
	return SentimentScore(split.Positive/total, split.Negative/total), nil
}

// StageConversion returns the fraction of the from-stage search volume seen again at the to stage.
// The result can exceed 1 when the later stage is searched more.
func StageConversion(to, from int64) (float64, error) {
	if from == 0 {
		return 0, fmt.Errorf("stage conversion: earlier stage volume is zero: %w", types.ErrDivisionUndefined)
	}
	return float64(to) / float64(from), nil
}

// LeakRate returns the fraction of awareness volume that never reaches conversion.
func LeakRate(conversion, awareness int64) (float64, error) {
	c, err := StageConversion(conversion, awareness)
	if err != nil {
		return 0, fmt.Errorf("leak rate: %w", err)
	}
	return 1 - c, nil
}

// SeasonalityIndex returns a month's volume relative to the twelve-month average, scaled to 100.
func SeasonalityIndex(monthVolume, twelveMonthAverage float64) (float64, error) {
	if twelveMonthAverage == 0 {
		return 0, fmt.Errorf("seasonality index: average is zero: %w", types.ErrDivisionUndefined)
	}
	return monthVolume * 100 / twelveMonthAverage, nil
}
