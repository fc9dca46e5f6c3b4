package crossref

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/brand-insights/internal/types"
)

// contextOrder returns a context's position in types.ContextPriority; unknown tags sort after all known ones.
func contextOrder(ctx string) int {
	for i, c := range types.ContextPriority {
		if c == ctx {
			return i
		}
	}
	return len(types.ContextPriority)
}

// ContextLess is the total order on context tags: fixed priority first, then lexical for unknown tags.
func ContextLess(a, b string) bool {
	oa, ob := contextOrder(a), contextOrder(b)
	if oa != ob {
		return oa < ob
	}
	return a < b
}

// SortContexts returns the keys of byContext in ContextLess order.
func SortContexts[V any](byContext map[string]V) []string {
	keys := make([]string, 0, len(byContext))
	for k := range byContext {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return ContextLess(keys[i], keys[j]) })
	return keys
}

// TopContext returns the context with the highest value; ties go to the higher-priority context.
func TopContext(byContext map[string]float64) (string, float64, error) {
	if len(byContext) == 0 {
		return "", 0, fmt.Errorf("top context: no context entries: %w", types.ErrUnknownKey)
	}
	best := ""
	bestValue := 0.0
	for _, ctx := range SortContexts(byContext) {
		v := byContext[ctx]
		if best == "" || v > bestValue {
			best, bestValue = ctx, v
		}
	}
	return best, bestValue, nil
}

// MatchCluster finds the keyword cluster that corresponds to an AI context tag.
// A cluster whose Context equals the tag wins; otherwise the first cluster (by id) whose id
// contains the tag's leading token ("kids" for kids_furniture).
func MatchCluster(context string, clusters []types.KeywordCluster) (types.KeywordCluster, error) {
	for _, c := range clusters {
		if c.Context == context {
			return c, nil
		}
	}

	token := context
	if i := strings.Index(context, "_"); i > 0 {
		token = context[:i]
	}
	candidates := make([]types.KeywordCluster, 0)
	for _, c := range clusters {
		if strings.Contains(strings.ToLower(c.ID), strings.ToLower(token)) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return types.KeywordCluster{}, fmt.Errorf("match cluster: context %q: %w", context, types.ErrUnknownKey)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	return candidates[0], nil
}
