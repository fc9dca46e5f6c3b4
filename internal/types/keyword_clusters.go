//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// KeywordClusters is the persona segmentation of furniture search keywords.
type KeywordClusters struct {
	Clusters []KeywordCluster `json:"clusters" validate:"dive"`
}

// KeywordCluster is a keyword segment grouped by inferred searcher intent or demographic.
type KeywordCluster struct {
	ID          string   `json:"id" validate:"required"`
	Persona     string   `json:"persona,omitempty"`
	Share       float64  `json:"share" validate:"gte=0,lte=100"`
	Relevance   string   `json:"relevance"`
	Needs       []string `json:"needs"`
	PainPoints  []string `json:"pain_points"`
	TotalVolume int64    `json:"total_volume,omitempty" validate:"gte=0"`
	// Context is the AI-assistant context tag this segment maps to, when the producer knows it.
	Context string `json:"context,omitempty"`
}

// DominatedByFocal reports whether the relevance qualifier says the focal brand already owns the segment.
func (c KeywordCluster) DominatedByFocal() bool {
	switch strings.ToLower(strings.TrimSpace(c.Relevance)) {
	case "high", "dominant", "owned":
		return true
	default:
		return false
	}
}

// ShareSum returns the sum of all cluster shares.
func (kc *KeywordClusters) ShareSum() float64 {
	sum := 0.0
	for _, c := range kc.Clusters {
		sum += c.Share
	}
	return sum
}

// NormalizeShares rescales fractional shares (0-1) to percentages when the whole set is in fraction form.
// Returns true if shares were rescaled.
func (kc *KeywordClusters) NormalizeShares() bool {
	sum := kc.ShareSum()
	if sum == 0 || sum > 1.5 {
		return false
	}
	for i := range kc.Clusters {
		kc.Clusters[i].Share *= 100
	}
	return true
}
