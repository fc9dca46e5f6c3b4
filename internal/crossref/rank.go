// Package crossref joins datasets on brand or context keys and ranks the joined values.
// Every ordering here is a documented total order so results never depend on map iteration.
package crossref

import (
	"fmt"
	"sort"

	"github.com/jonathan/brand-insights/internal/types"
)

// Ranked is one entry of a ranking
type Ranked struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Rank  int     `json:"rank"`
}

// RankAll orders values descending, ties broken by name in lexical order. Ranks are 1-based and unique.
func RankAll(values map[string]float64) []Ranked {
	out := make([]Ranked, 0, len(values))
	for name, v := range values {
		out = append(out, Ranked{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Rank returns target's 1-based position in RankAll(values).
func Rank(values map[string]float64, target string) (int, error) {
	if _, ok := values[target]; !ok {
		return 0, fmt.Errorf("rank: %q: %w", target, types.ErrUnknownKey)
	}
	for _, r := range RankAll(values) {
		if r.Name == target {
			return r.Rank, nil
		}
	}
	return 0, fmt.Errorf("rank: %q: %w", target, types.ErrUnknownKey)
}

// Top returns the first entry of RankAll(values).
func Top(values map[string]float64) (Ranked, error) {
	if len(values) == 0 {
		return Ranked{}, fmt.Errorf("top: no values: %w", types.ErrInsufficientData)
	}
	return RankAll(values)[0], nil
}
