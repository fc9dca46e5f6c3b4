package crossref

import (
	"github.com/jonathan/brand-insights/internal/types"
)

// JoinBrands restricts a per-brand mapping to the roster.
// Entries for untracked brands are dropped; roster brands with no entry are returned in missing, in lexical order.
func JoinBrands[V any](roster types.Roster, byBrand map[string]V) (joined map[string]V, missing []string) {
	joined = make(map[string]V, len(roster.Brands))
	for _, name := range roster.Names() {
		v, ok := byBrand[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		joined[name] = v
	}
	return joined, missing
}

// SearchTotals joins the current search volume snapshot to the roster.
func SearchTotals(roster types.Roster, sv *types.SearchVolume) (map[string]float64, []string) {
	joined, missing := JoinBrands(roster, sv.Current.Brands)
	out := make(map[string]float64, len(joined))
	for name, v := range joined {
		out[name] = float64(v.Total)
	}
	return out, missing
}

// AIRecords joins AI share-of-voice records to the roster.
func AIRecords(roster types.Roster, sov *types.AISov) (map[string]types.AISovRecord, []string) {
	return JoinBrands(roster, sov.SovScore.Brands)
}

// ContextMentions returns, for one context, the mention count of every tracked brand that has an entry for it.
func ContextMentions(records map[string]types.AISovRecord, context string) map[string]float64 {
	out := make(map[string]float64, len(records))
	for name, rec := range records {
		if m, ok := rec.ByContext[context]; ok {
			out[name] = float64(m.Mentions)
		}
	}
	return out
}
