// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/brand-insights/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// noData is printed for nil metric values
	noData = "n/a"
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if utf8.RuneCountInString(line) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func pct(v *float64) string {
	if v == nil {
		return noData
	}
	return fmt.Sprintf("%.1f%%", *v)
}

func num(v *float64) string {
	if v == nil {
		return noData
	}
	return fmt.Sprintf("%.1f", *v)
}

func rank(v *int) string {
	if v == nil {
		return noData
	}
	return fmt.Sprintf("#%d", *v)
}

func str(v *string) string {
	if v == nil || *v == "" {
		return noData
	}
	return *v
}

func orNoData(s string) string {
	if s == "" {
		return noData
	}
	return s
}

func writeOmissions(sb *strings.Builder, omissions []types.Omission) {
	if len(omissions) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\nOmitted (%d):\n", len(omissions)))
	count := min(len(omissions), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", omissions[i].Field))
	}
	if len(omissions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(omissions)-maxItemsToShow))
	}
}

// PrintMetrics outputs the per-brand metric table.
func (p *Printer) PrintMetrics(table *types.MetricsTable) {
	if table == nil || len(table.Rows) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-10s %7s %7s %8s %7s\n", "Brand", "SOS", "YoY", "AI SOV", "Rate"))
	for _, row := range table.Rows {
		sb.WriteString(fmt.Sprintf("%-10s %7s %7s %8s %7s\n",
			row.Brand, pct(row.ShareOfSearch), pct(row.YearOverYear), pct(row.AIShareOfVoice), pct(row.MentionRate)))
	}
	writeOmissions(&sb, table.Omissions)

	p.printBox("BRAND METRICS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBrandProfile outputs one brand's profile.
func (p *Printer) PrintBrandProfile(profile *types.BrandProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Strength context: %s (%s)\n", str(profile.StrengthContext), pct(profile.StrengthMentionRate)))
	sb.WriteString(fmt.Sprintf("Search rank:      %s (%s)\n", rank(profile.SearchRank), pct(profile.ShareOfSearch)))
	sb.WriteString(fmt.Sprintf("Trend:            %s (%s)\n", str(profile.TrendDirection), pct(profile.TrendChangeRate)))
	sb.WriteString(fmt.Sprintf("Positioning:      %s (%s)\n", str(profile.PositioningTier), pct(profile.AIShareOfVoice)))
	writeOmissions(&sb, profile.Omissions)

	p.printBox("BRAND PROFILE: "+strings.ToUpper(profile.Brand), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOverview outputs the Strength/Weakness/Opportunity summary.
func (p *Printer) PrintOverview(o *types.OverviewInsights) {
	if o == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString("Strength:\n")
	switch o.Strength.Kind {
	case types.StrengthContextLeadership:
		sb.WriteString(fmt.Sprintf("  Leads %s (%s)\n", o.Strength.Context, pct(o.Strength.MentionRate)))
		if o.Strength.ClusterID != "" {
			sb.WriteString(fmt.Sprintf("  Cluster %s: %s of searches\n", o.Strength.ClusterID, pct(o.Strength.ClusterShare)))
		}
	case types.StrengthSentimentTopic:
		sb.WriteString(fmt.Sprintf("  Reviews praise %s (score %s)\n", o.Strength.Topic, num(o.Strength.SentimentScore)))
	default:
		sb.WriteString("  " + noData + "\n")
	}

	w := o.Weakness
	sb.WriteString("\nWeakness:\n")
	sb.WriteString(fmt.Sprintf("  Search rank %s, %s behind %s\n", rank(w.SearchRank), num(w.GapToTop), orNoData(w.TopBrand)))
	sb.WriteString(fmt.Sprintf("  AI mention rank %s\n", rank(w.MentionRateRank)))
	if w.OverallSentimentScore != nil {
		sb.WriteString(fmt.Sprintf("  Review sentiment score %s\n", num(w.OverallSentimentScore)))
	}
	for _, topic := range w.WeakTopics {
		sb.WriteString(fmt.Sprintf("  • %s: %.0f%% negative\n", topic.Topic, topic.NegativeRatio*100))
	}

	sb.WriteString("\nOpportunity:\n")
	sb.WriteString(fmt.Sprintf("  %s (%s)\n", orNoData(o.Opportunity.ClusterID), pct(o.Opportunity.Share)))
	if len(o.Opportunity.Needs) > 0 {
		sb.WriteString(fmt.Sprintf("  Needs: %s\n", strings.Join(o.Opportunity.Needs, ", ")))
	}
	writeOmissions(&sb, o.Omissions)

	p.printBox("OVERVIEW: "+strings.ToUpper(o.Brand), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPathExamples outputs exit and entry search paths.
func (p *Printer) PrintPathExamples(paths *types.PathExamples) {
	if paths == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString("Exit paths:\n")
	if len(paths.ExitPaths) == 0 {
		sb.WriteString("  none\n")
	}
	for _, path := range paths.ExitPaths {
		sb.WriteString(fmt.Sprintf("  %s → %s\n", path.Steps[0], path.Steps[1]))
	}
	sb.WriteString("\nEntry paths:\n")
	if len(paths.EntryPaths) == 0 {
		sb.WriteString("  none\n")
	}
	for _, path := range paths.EntryPaths {
		sb.WriteString(fmt.Sprintf("  %s → %s\n", path.Steps[0], path.Steps[1]))
	}
	if paths.PrimaryLeakDestination != "" {
		sb.WriteString(fmt.Sprintf("\nPrimary leak: %s\n", paths.PrimaryLeakDestination))
	}
	if f := paths.Funnel; f != nil {
		sb.WriteString("\nFunnel:\n")
		sb.WriteString(fmt.Sprintf("  Awareness → consideration: %s\n", pct(f.AwarenessToConsideration)))
		sb.WriteString(fmt.Sprintf("  Consideration → conversion: %s\n", pct(f.ConsiderationToConversion)))
		sb.WriteString(fmt.Sprintf("  Estimated leak: %s\n", pct(f.EstimatedLeakRate)))
	}
	writeOmissions(&sb, paths.Omissions)

	p.printBox("SEARCH PATHS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintActionPlan outputs the ordered action items.
func (p *Printer) PrintActionPlan(plan *types.ActionPlan) {
	if plan == nil {
		return
	}

	var sb strings.Builder
	if len(plan.Items) == 0 {
		sb.WriteString("No context trails its leader.\n")
	}
	for i, item := range plan.Items {
		sb.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, item.Context, item.Priority))
		sb.WriteString(fmt.Sprintf("   %.1f%% → %.1f%% (leader %s %.1f%%)\n",
			item.FocalMentionRate, item.TargetMentionRate, item.TopBrand, item.TopMentionRate))
	}
	writeOmissions(&sb, plan.Omissions)

	p.printBox("ACTION PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSeasonality outputs the peak, off-season and rebound months.
func (p *Printer) PrintSeasonality(s *types.SeasonalityInsights) {
	if s == nil {
		return
	}

	list := func(months []string) string {
		if len(months) == 0 {
			return "none"
		}
		return strings.Join(months, ", ")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Peak:        %s\n", list(s.Strength)))
	sb.WriteString(fmt.Sprintf("Off-season:  %s\n", list(s.Weakness)))
	sb.WriteString(fmt.Sprintf("Opportunity: %s\n", list(s.Opportunity)))
	for _, w := range s.OpportunityWindows {
		sb.WriteString(fmt.Sprintf("  • %s → %s\n", w.OffSeason, w.Rebound))
	}
	writeOmissions(&sb, s.Omissions)

	p.printBox("SEASONALITY: "+strings.ToUpper(s.Brand), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStrategy outputs the strategy gaps and the top items.
func (p *Printer) PrintStrategy(s *types.StrategySummary) {
	if s == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("SOS gap to leader:    %s pts\n", num(s.SOSGap)))
	sb.WriteString(fmt.Sprintf("AI SOV gap to leader: %s pts\n\n", num(s.SOVGap)))

	count := min(len(s.Items), maxItemsToShow)
	for i := 0; i < count; i++ {
		item := s.Items[i]
		sb.WriteString(fmt.Sprintf("[%s] %s\n", item.Priority, item.Label))
		sb.WriteString(fmt.Sprintf("    impact %.0f, feasibility %.0f\n", item.Impact, item.Feasibility))
	}
	if len(s.Items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more items\n", len(s.Items)-maxItemsToShow))
	}
	writeOmissions(&sb, s.Omissions)

	p.printBox("STRATEGY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs every section of a report.
func (p *Printer) PrintReport(r *types.Report) {
	if r == nil {
		return
	}
	p.PrintMetrics(r.Metrics)
	for _, profile := range r.Profiles {
		p.PrintBrandProfile(profile)
	}
	p.PrintOverview(r.Overview)
	p.PrintPathExamples(r.Paths)
	p.PrintActionPlan(r.ActionPlan)
	p.PrintSeasonality(r.Seasonality)
	p.PrintStrategy(r.Strategy)
}
