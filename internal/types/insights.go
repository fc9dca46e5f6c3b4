//nolint:revive // types is a standard Go package name pattern
package types

// Trend directions
const (
	TrendRising    = "rising"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// Positioning tiers
const (
	TierLeader          = "leader"
	TierMajorCompetitor = "major competitor"
	TierNiche           = "niche"
)

// Action priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

// Strength kinds
const (
	StrengthContextLeadership = "context_leadership"
	StrengthSentimentTopic    = "sentiment_topic"
)

// Omission records a field left empty because an upstream join or ratio had no data.
type Omission struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// BrandProfile summarizes one brand's position across AI, search and trend data.
// Nil fields mean "no data", never zero.
type BrandProfile struct {
	Brand               string     `json:"brand"`
	StrengthContext     *string    `json:"strength_context"`
	StrengthMentionRate *float64   `json:"strength_mention_rate"`
	SearchRank          *int       `json:"search_rank"`
	ShareOfSearch       *float64   `json:"share_of_search"`
	TrendDirection      *string    `json:"trend_direction"`
	TrendChangeRate     *float64   `json:"trend_change_rate"`
	PositioningTier     *string    `json:"positioning_tier"`
	AIShareOfVoice      *float64   `json:"ai_share_of_voice"`
	Omissions           []Omission `json:"omissions,omitempty"`
}

// OverviewInsights is the Strength/Weakness/Opportunity summary for the focal brand.
type OverviewInsights struct {
	Brand       string             `json:"brand"`
	Strength    StrengthInsight    `json:"strength"`
	Weakness    WeaknessInsight    `json:"weakness"`
	Opportunity OpportunityInsight `json:"opportunity"`
	Omissions   []Omission         `json:"omissions,omitempty"`
}

// StrengthInsight is either AI context leadership or the best review topic.
type StrengthInsight struct {
	Kind           string   `json:"kind"`
	Context        string   `json:"context,omitempty"`
	MentionRate    *float64 `json:"mention_rate,omitempty"`
	ClusterID      string   `json:"cluster_id,omitempty"`
	ClusterShare   *float64 `json:"cluster_share,omitempty"`
	Topic          string   `json:"topic,omitempty"`
	PositiveRatio  *float64 `json:"positive_ratio,omitempty"`
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
}

// WeaknessInsight reports the focal brand's search gap to the leader and its weak review signals.
// OverallSentimentScore is the net sentiment across all reviews, in [-100, 100].
type WeaknessInsight struct {
	SearchRank            *int              `json:"search_rank"`
	ShareOfSearch         *float64          `json:"share_of_search"`
	TopBrand              string            `json:"top_brand"`
	GapToTop              *float64          `json:"gap_to_top"`
	MentionRateRank       *int              `json:"mention_rate_rank"`
	OverallSentimentScore *float64          `json:"overall_sentiment_score,omitempty"`
	WeakTopics            []TopicSignal     `json:"weak_topics,omitempty"`
	WeakestProduct        *ProductSentiment `json:"weakest_product,omitempty"`
}

// TopicSignal is a review topic with its negative ratio
type TopicSignal struct {
	Topic         string  `json:"topic"`
	NegativeRatio float64 `json:"negative_ratio"`
}

// OpportunityInsight is the largest under-served keyword cluster.
type OpportunityInsight struct {
	ClusterID  string   `json:"cluster_id"`
	Persona    string   `json:"persona,omitempty"`
	Share      *float64 `json:"share"`
	Needs      []string `json:"needs,omitempty"`
	PainPoints []string `json:"pain_points,omitempty"`
}

// PathExamples pairs keywords into two-hop search paths.
type PathExamples struct {
	Brand                  string         `json:"brand"`
	ExitPaths              []SearchPath   `json:"exit_paths"`
	EntryPaths             []SearchPath   `json:"entry_paths"`
	PrimaryLeakDestination string         `json:"primary_leak_destination,omitempty"`
	Funnel                 *FunnelSummary `json:"funnel,omitempty"`
	Omissions              []Omission     `json:"omissions,omitempty"`
}

// FunnelSummary compares search volume between funnel stages.
// Ratios are in percentage points of the earlier stage's volume.
type FunnelSummary struct {
	AwarenessVolume           int64    `json:"awareness_volume"`
	ConsiderationVolume       int64    `json:"consideration_volume"`
	ConversionVolume          int64    `json:"conversion_volume"`
	AwarenessToConsideration  *float64 `json:"awareness_to_consideration"`
	ConsiderationToConversion *float64 `json:"consideration_to_conversion"`
	EstimatedLeakRate         *float64 `json:"estimated_leak_rate"`
}

// SearchPath is an ordered two-hop path [from, to].
type SearchPath struct {
	Competitor string    `json:"competitor,omitempty"`
	Steps      [2]string `json:"steps"`
}

// ActionPlan is the ordered list of AI-visibility actions for the focal brand.
type ActionPlan struct {
	Brand     string       `json:"brand"`
	Items     []ActionItem `json:"items"`
	Omissions []Omission   `json:"omissions,omitempty"`
}

// ActionItem targets one AI context. Rates are in percentage points of trials.
type ActionItem struct {
	Context           string  `json:"context"`
	TopBrand          string  `json:"top_brand"`
	TopMentionRate    float64 `json:"top_mention_rate"`
	FocalMentionRate  float64 `json:"focal_mention_rate"`
	Gap               float64 `json:"gap"`
	Priority          string  `json:"priority"`
	TargetMentionRate float64 `json:"target_mention_rate"`
}

// SeasonalityInsights classifies calendar months by seasonality index.
type SeasonalityInsights struct {
	Brand              string         `json:"brand"`
	Strength           []string       `json:"strength"`
	Weakness           []string       `json:"weakness"`
	Opportunity        []string       `json:"opportunity"`
	OpportunityWindows []SeasonWindow `json:"opportunity_windows,omitempty"`
	Months             []MonthIndex   `json:"months,omitempty"`
	Omissions          []Omission     `json:"omissions,omitempty"`
}

// MonthIndex is one calendar month's seasonality index
type MonthIndex struct {
	Month int     `json:"month"`
	Label string  `json:"label"`
	Index float64 `json:"index"`
}

// SeasonWindow is an off-season month followed by its rebound month
type SeasonWindow struct {
	OffSeason string `json:"off_season"`
	Rebound   string `json:"rebound"`
}

// BrandMetrics is one row of the per-brand metric table.
type BrandMetrics struct {
	Brand          string   `json:"brand"`
	SearchVolume   *int64   `json:"search_volume"`
	ShareOfSearch  *float64 `json:"share_of_search"`
	SearchRank     *int     `json:"search_rank"`
	YearOverYear   *float64 `json:"year_over_year"`
	AIShareOfVoice *float64 `json:"ai_share_of_voice"`
	MentionRate    *float64 `json:"mention_rate"`
	FirstRecRate   *float64 `json:"first_rec_rate"`
}

// MetricsTable is the per-brand metric table, in search-rank order.
type MetricsTable struct {
	Rows      []BrandMetrics `json:"rows"`
	Omissions []Omission     `json:"omissions,omitempty"`
}

// StrategySummary ranks strategy items and reports the gaps that justify them.
type StrategySummary struct {
	Brand     string         `json:"brand"`
	SOSGap    *float64       `json:"sos_gap"`
	SOVGap    *float64       `json:"sov_gap"`
	Items     []StrategyItem `json:"items"`
	Omissions []Omission     `json:"omissions,omitempty"`
}

// Report bundles every insight for one dataset version.
type Report struct {
	Version     string               `json:"version"`
	Metrics     *MetricsTable        `json:"metrics"`
	Profiles    []*BrandProfile      `json:"profiles"`
	Overview    *OverviewInsights    `json:"overview"`
	Paths       *PathExamples        `json:"paths"`
	ActionPlan  *ActionPlan          `json:"action_plan"`
	Seasonality *SeasonalityInsights `json:"seasonality"`
	Strategy    *StrategySummary     `json:"strategy"`
}
