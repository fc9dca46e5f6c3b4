//nolint:revive // types is a standard Go package name pattern
package types

// Dataset is the full set of validated inputs for one refresh cycle.
// It is never mutated after the loader returns it.
type Dataset struct {
	// Version identifies the exact bytes of the seven documents; equal inputs give equal versions.
	Version         string            `json:"version"`
	Roster          Roster            `json:"roster"`
	SearchVolume    *SearchVolume     `json:"search_volume"`
	Trend           *Trend            `json:"trend"`
	KeywordClusters *KeywordClusters  `json:"keyword_clusters"`
	Journey         *ConsumerJourney  `json:"consumer_journey"`
	AISov           *AISov            `json:"ai_sov"`
	Sentiment       *ReviewsSentiment `json:"reviews_sentiment"`
	Strategy        *StrategyMatrix   `json:"strategy_matrix"`
}
