//nolint:revive // types is a standard Go package name pattern
package types

// Strategy priority tiers
const (
	TierCritical = "critical"
	TierHigh     = "high"
	TierMedium   = "medium"
)

// StrategyMatrix is the impact/feasibility matrix of proposed strategies.
type StrategyMatrix struct {
	Items []StrategyItem `json:"items" validate:"dive"`
}

// StrategyItem is a proposed strategy scored on impact and feasibility (0-100).
type StrategyItem struct {
	ID          int      `json:"id,omitempty"`
	Label       string   `json:"label,omitempty"`
	Category    string   `json:"category,omitempty"`
	Impact      float64  `json:"impact" validate:"gte=0,lte=100"`
	Feasibility float64  `json:"feasibility" validate:"gte=0,lte=100"`
	DataBasis   string   `json:"data_basis"`
	Actions     []string `json:"actions,omitempty"`
	// Priority is derived from Impact and Feasibility; any producer value is overwritten.
	Priority string `json:"priority,omitempty"`
}

// DerivePriority returns the priority tier for an impact/feasibility pair.
func DerivePriority(impact, feasibility float64) string {
	switch {
	case impact >= 85 && feasibility >= 75:
		return TierCritical
	case (impact+feasibility)/2 >= 70:
		return TierHigh
	default:
		return TierMedium
	}
}
