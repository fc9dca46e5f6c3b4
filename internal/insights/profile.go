package insights

import (
	"fmt"

	"github.com/jonathan/brand-insights/internal/crossref"
	"github.com/jonathan/brand-insights/internal/metrics"
	"github.com/jonathan/brand-insights/internal/types"
)

// ComputeBrandProfile combines a brand's strongest AI context, its search rank,
// its three-month trend direction and its AI positioning tier.
// It fails only when brand is not in the roster.
func ComputeBrandProfile(
	roster types.Roster,
	brand string,
	sv *types.SearchVolume,
	trend *types.Trend,
	sov *types.AISov,
) (*types.BrandProfile, error) {
	if !roster.Has(brand) {
		return nil, unknownBrand(RoutineBrandProfile, brand)
	}

	profile := &types.BrandProfile{Brand: brand}
	var om omissions

	profileStrength(profile, sov, &om)
	profileSearch(profile, roster, sv, &om)
	profileTrend(profile, trend, &om)

	if shares, err := aiShares(roster, sov); err != nil {
		om.add("positioning_tier", err)
	} else {
		share := shares[brand]
		profile.AIShareOfVoice = ptr(share)
		profile.PositioningTier = ptr(PositioningTier(share))
	}

	profile.Omissions = om.list()
	return profile, nil
}

func profileStrength(profile *types.BrandProfile, sov *types.AISov, om *omissions) {
	if sov == nil {
		om.add("strength_context", fmt.Errorf("strength context: no ai share of voice data: %w", types.ErrUnknownKey))
		return
	}
	rec, ok := sov.SovScore.Brands[profile.Brand]
	if !ok {
		om.add("strength_context", fmt.Errorf("strength context: brand %q has no ai record: %w", profile.Brand, types.ErrUnknownKey))
		return
	}
	rates, err := contextRates(rec, sov.TrialCount())
	if err != nil {
		om.add("strength_context", err)
		return
	}
	ctx, rate, err := crossref.TopContext(rates)
	if err != nil {
		om.add("strength_context", err)
		return
	}
	profile.StrengthContext = ptr(ctx)
	profile.StrengthMentionRate = ptr(rate)
}

func profileSearch(profile *types.BrandProfile, roster types.Roster, sv *types.SearchVolume, om *omissions) {
	if sv == nil {
		om.add("search_rank", fmt.Errorf("search rank: no search volume: %w", types.ErrUnknownKey))
		return
	}
	totals, missing := crossref.SearchTotals(roster, sv)
	om.missing("search_rank", missing)
	rank, err := crossref.Rank(totals, profile.Brand)
	if err != nil {
		om.add("search_rank", err)
		return
	}
	profile.SearchRank = ptr(rank)

	shares, err := searchShares(roster, sv)
	if err != nil {
		om.add("share_of_search", err)
		return
	}
	profile.ShareOfSearch = ptr(shares[profile.Brand])
}

func profileTrend(profile *types.BrandProfile, trend *types.Trend, om *omissions) {
	if trend == nil {
		om.add("trend_direction", fmt.Errorf("trend direction: no trend data: %w", types.ErrUnknownKey))
		return
	}
	series, ok := trend.Monthly[profile.Brand]
	if !ok {
		om.add("trend_direction", fmt.Errorf("trend direction: brand %q has no monthly series: %w", profile.Brand, types.ErrUnknownKey))
		return
	}
	recent, prior, err := crossref.RecentAndPrior(series, crossref.QuarterWindow)
	if err != nil {
		om.add("trend_direction", err)
		return
	}
	change, err := metrics.ChangeRate(recent, prior)
	if err != nil {
		om.add("trend_direction", err)
		return
	}
	profile.TrendChangeRate = ptr(change)
	profile.TrendDirection = ptr(TrendDirection(change))
}
