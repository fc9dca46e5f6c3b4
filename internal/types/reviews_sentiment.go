//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ReviewsSentiment is the aggregated review sentiment for the focal brand.
type ReviewsSentiment struct {
	Overall   SentimentSplit            `json:"overall"`
	ByTopic   map[string]SentimentSplit `json:"by_topic" validate:"dive"`
	ByProduct ProductSentiments         `json:"by_product,omitempty" validate:"dive"`
}

// SentimentSplit holds positive/negative/neutral proportions (sum to 1.0 ± rounding).
type SentimentSplit struct {
	Positive float64 `json:"positive" validate:"gte=0,lte=1"`
	Negative float64 `json:"negative" validate:"gte=0,lte=1"`
	Neutral  float64 `json:"neutral" validate:"gte=0,lte=1"`
}

// ProductSentiment is the optional per-product breakdown
type ProductSentiment struct {
	Name           string  `json:"name"`
	Count          int     `json:"count,omitempty"`
	AvgRating      float64 `json:"avg_rating,omitempty"`
	SentimentScore float64 `json:"sentiment_score"`
}

// ProductSentiments decodes from an array of products or an object keyed by product name.
// The object form is sorted by name so the result does not depend on map order.
type ProductSentiments []ProductSentiment

// UnmarshalJSON accepts both the array and the keyed-object form.
func (p *ProductSentiments) UnmarshalJSON(data []byte) error {
	var list []ProductSentiment
	if err := json.Unmarshal(data, &list); err == nil {
		*p = list
		return nil
	}

	var keyed map[string]ProductSentiment
	if err := json.Unmarshal(data, &keyed); err != nil {
		return fmt.Errorf("by_product must be an array or an object: %w", err)
	}
	names := make([]string, 0, len(keyed))
	for name := range keyed {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]ProductSentiment, 0, len(names))
	for _, name := range names {
		ps := keyed[name]
		if ps.Name == "" {
			ps.Name = name
		}
		out = append(out, ps)
	}
	*p = out
	return nil
}
