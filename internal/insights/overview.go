package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/brand-insights/internal/crossref"
	"github.com/jonathan/brand-insights/internal/metrics"
	"github.com/jonathan/brand-insights/internal/types"
)

// weakTopicThreshold is the negative ratio above which a review topic counts as a weakness.
const weakTopicThreshold = 0.10

// maxWeakTopics caps the weak topics reported.
const maxWeakTopics = 3

// ComputeOverviewInsights produces the Strength/Weakness/Opportunity summary for the focal brand.
// Each branch degrades independently: a missing dataset empties that branch and records an omission.
func ComputeOverviewInsights(
	roster types.Roster,
	sv *types.SearchVolume,
	sov *types.AISov,
	clusters *types.KeywordClusters,
	sentiment *types.ReviewsSentiment,
	opts Options,
) *types.OverviewInsights {
	focal := roster.Focal.Name
	out := &types.OverviewInsights{Brand: focal}
	var om omissions

	out.Strength = overviewStrength(roster, sov, clusters, sentiment, &om)
	out.Weakness = overviewWeakness(roster, sv, sov, sentiment, &om)
	out.Opportunity = overviewOpportunity(clusters, opts.excludedClusters(), &om)

	out.Omissions = om.list()
	return out
}

func overviewStrength(
	roster types.Roster,
	sov *types.AISov,
	clusters *types.KeywordClusters,
	sentiment *types.ReviewsSentiment,
	om *omissions,
) types.StrengthInsight {
	if s, ok := contextLeadership(roster, sov, clusters, om); ok {
		return s
	}
	if s, ok := bestTopic(sentiment); ok {
		return s
	}
	om.add("strength", fmt.Errorf("strength: no leading context and no review topics: %w", types.ErrInsufficientData))
	return types.StrengthInsight{}
}

// contextLeadership finds the first context, in priority order, where the focal brand has the most mentions.
func contextLeadership(
	roster types.Roster,
	sov *types.AISov,
	clusters *types.KeywordClusters,
	om *omissions,
) (types.StrengthInsight, bool) {
	if sov == nil {
		return types.StrengthInsight{}, false
	}
	focal := roster.Focal.Name
	records, missing := crossref.AIRecords(roster, sov)
	focalRecord, ok := records[focal]
	if !ok {
		om.add("strength.context", fmt.Errorf("context leadership: focal brand %q has no ai record: %w", focal, types.ErrUnknownKey))
		return types.StrengthInsight{}, false
	}
	om.missing("strength.context", missing)

	for _, ctx := range crossref.SortContexts(focalRecord.ByContext) {
		top, err := crossref.Top(crossref.ContextMentions(records, ctx))
		if err != nil || top.Name != focal || top.Value == 0 {
			continue
		}
		s := types.StrengthInsight{
			Kind:    types.StrengthContextLeadership,
			Context: ctx,
		}
		if rate, err := metrics.ContextMentionRate(focalRecord.ContextCounts(), ctx, sov.TrialCount()); err == nil {
			s.MentionRate = ptr(rate * 100)
		}
		if clusters == nil {
			om.add("strength.cluster_share", fmt.Errorf("cluster share: no keyword clusters: %w", types.ErrUnknownKey))
			return s, true
		}
		cluster, err := crossref.MatchCluster(ctx, clusters.Clusters)
		if err != nil {
			om.add("strength.cluster_share", err)
			return s, true
		}
		s.ClusterID = cluster.ID
		s.ClusterShare = ptr(cluster.Share)
		return s, true
	}
	return types.StrengthInsight{}, false
}

// bestTopic returns the review topic with the highest positive ratio; ties go to the lexically first topic.
func bestTopic(sentiment *types.ReviewsSentiment) (types.StrengthInsight, bool) {
	if sentiment == nil || len(sentiment.ByTopic) == 0 {
		return types.StrengthInsight{}, false
	}
	best := ""
	for _, topic := range sortedKeys(sentiment.ByTopic) {
		if best == "" || sentiment.ByTopic[topic].Positive > sentiment.ByTopic[best].Positive {
			best = topic
		}
	}
	split := sentiment.ByTopic[best]
	return types.StrengthInsight{
		Kind:           types.StrengthSentimentTopic,
		Topic:          best,
		PositiveRatio:  ptr(split.Positive),
		SentimentScore: ptr(metrics.SentimentScore(split.Positive, split.Negative)),
	}, true
}

func overviewWeakness(
	roster types.Roster,
	sv *types.SearchVolume,
	sov *types.AISov,
	sentiment *types.ReviewsSentiment,
	om *omissions,
) types.WeaknessInsight {
	focal := roster.Focal.Name
	var w types.WeaknessInsight

	if sv != nil {
		totals, missing := crossref.SearchTotals(roster, sv)
		om.missing("weakness.search_rank", missing)
		if rank, err := crossref.Rank(totals, focal); err != nil {
			om.add("weakness.search_rank", err)
		} else {
			w.SearchRank = ptr(rank)
		}
		if shares, err := searchShares(roster, sv); err != nil {
			om.add("weakness.gap_to_top", err)
		} else {
			top, _ := crossref.Top(shares)
			w.TopBrand = top.Name
			w.ShareOfSearch = ptr(shares[focal])
			w.GapToTop = ptr(top.Value - shares[focal])
		}
	} else {
		om.add("weakness.search_rank", fmt.Errorf("search rank: no search volume: %w", types.ErrUnknownKey))
	}

	if sov != nil {
		records, missing := crossref.AIRecords(roster, sov)
		om.missing("weakness.mention_rate_rank", missing)
		rates := make(map[string]float64, len(records))
		for name, rec := range records {
			if r, err := metrics.MentionRate(rec.Mentions, sov.TrialCount()); err == nil {
				rates[name] = r
			}
		}
		if rank, err := crossref.Rank(rates, focal); err != nil {
			om.add("weakness.mention_rate_rank", err)
		} else {
			w.MentionRateRank = ptr(rank)
		}
	} else {
		om.add("weakness.mention_rate_rank", fmt.Errorf("mention rate rank: no ai share of voice data: %w", types.ErrUnknownKey))
	}

	if sentiment != nil {
		if score, err := metrics.NetSentiment(sentiment.Overall); err != nil {
			om.add("weakness.overall_sentiment_score", err)
		} else {
			w.OverallSentimentScore = ptr(score)
		}
		w.WeakTopics = weakTopics(sentiment.ByTopic)
		w.WeakestProduct = weakestProduct(sentiment.ByProduct)
	}
	return w
}

// weakTopics returns topics whose negative ratio exceeds weakTopicThreshold, worst first.
func weakTopics(byTopic map[string]types.SentimentSplit) []types.TopicSignal {
	var out []types.TopicSignal
	for _, topic := range sortedKeys(byTopic) {
		if neg := byTopic[topic].Negative; neg > weakTopicThreshold {
			out = append(out, types.TopicSignal{Topic: topic, NegativeRatio: neg})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NegativeRatio > out[j].NegativeRatio
	})
	if len(out) > maxWeakTopics {
		out = out[:maxWeakTopics]
	}
	return out
}

func weakestProduct(products types.ProductSentiments) *types.ProductSentiment {
	var worst *types.ProductSentiment
	for i := range products {
		p := products[i]
		if worst == nil ||
			p.SentimentScore < worst.SentimentScore ||
			(p.SentimentScore == worst.SentimentScore && p.Name < worst.Name) {
			worst = &p
		}
	}
	return worst
}

// overviewOpportunity picks the largest cluster that is neither excluded nor already dominated by the focal brand.
func overviewOpportunity(clusters *types.KeywordClusters, excluded []string, om *omissions) types.OpportunityInsight {
	if clusters == nil {
		om.add("opportunity", fmt.Errorf("opportunity: no keyword clusters: %w", types.ErrUnknownKey))
		return types.OpportunityInsight{}
	}

	var best *types.KeywordCluster
	for i := range clusters.Clusters {
		c := clusters.Clusters[i]
		if isExcluded(c.ID, excluded) || c.DominatedByFocal() {
			continue
		}
		if best == nil || c.Share > best.Share || (c.Share == best.Share && c.ID < best.ID) {
			best = &c
		}
	}
	if best == nil {
		om.add("opportunity", fmt.Errorf("opportunity: no eligible cluster: %w", types.ErrInsufficientData))
		return types.OpportunityInsight{}
	}
	return types.OpportunityInsight{
		ClusterID:  best.ID,
		Persona:    best.Persona,
		Share:      ptr(best.Share),
		Needs:      best.Needs,
		PainPoints: best.PainPoints,
	}
}

func isExcluded(id string, excluded []string) bool {
	lower := strings.ToLower(id)
	for _, e := range excluded {
		if e != "" && strings.Contains(lower, strings.ToLower(e)) {
			return true
		}
	}
	return false
}
