//nolint:revive // types is a standard Go package name pattern
package types

// DefaultTrials is the fixed number of sampled AI responses each count is denominated over.
const DefaultTrials = 60

// AI recommendation context tags, in tie-break priority order.
const (
	ContextGeneralRecommendation = "general_recommendation"
	ContextKidsFurniture         = "kids_furniture"
	ContextLivingRoom            = "living_room"
	ContextValueForMoney         = "value_for_money"
)

// ContextPriority is the fixed total order used to break ties between contexts.
var ContextPriority = []string{
	ContextGeneralRecommendation,
	ContextKidsFurniture,
	ContextLivingRoom,
	ContextValueForMoney,
}

// AISov is the AI-assistant share-of-voice measurement.
type AISov struct {
	Trials   int         `json:"trials,omitempty" validate:"gte=0"`
	SovScore SovScoreSet `json:"sov_score"`
}

// SovScoreSet holds per-brand AI mention records
type SovScoreSet struct {
	Brands map[string]AISovRecord `json:"brands" validate:"required,dive"`
}

// AISovRecord counts how often AI assistants mentioned and first-recommended a brand.
type AISovRecord struct {
	Mentions      int                       `json:"mentions" validate:"gte=0"`
	FirstMentions int                       `json:"first_mentions" validate:"gte=0,ltefield=Mentions"`
	ByContext     map[string]ContextMention `json:"by_context" validate:"dive"`
}

// ContextMention is the mention count within one recommendation context
type ContextMention struct {
	Mentions int `json:"mentions" validate:"gte=0"`
}

// TrialCount returns the trial denominator, falling back to DefaultTrials.
func (a *AISov) TrialCount() int {
	if a.Trials > 0 {
		return a.Trials
	}
	return DefaultTrials
}

// ContextCounts flattens a record's by_context mapping to context → mentions.
func (r AISovRecord) ContextCounts() map[string]int {
	out := make(map[string]int, len(r.ByContext))
	for ctx, m := range r.ByContext {
		out[ctx] = m.Mentions
	}
	return out
}
