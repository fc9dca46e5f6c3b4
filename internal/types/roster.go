//nolint:revive // types is a standard Go package name pattern
package types

import (
	"sort"
	"strings"
)

// TrackedBrandCount is the fixed size of the tracked brand set.
const TrackedBrandCount = 5

// Brand is a tracked brand with the generic category term searchers use for it.
type Brand struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// Roster is the fixed set of tracked brands. Focal is always a member of Brands.
type Roster struct {
	Focal  Brand   `json:"focal"`
	Brands []Brand `json:"brands"`
}

// NewRoster builds a roster from the focal brand and its competitors.
func NewRoster(focal Brand, competitors []Brand) Roster {
	brands := make([]Brand, 0, len(competitors)+1)
	brands = append(brands, focal)
	brands = append(brands, competitors...)
	return Roster{Focal: focal, Brands: brands}
}

// Names returns the tracked brand names in lexical order.
func (r Roster) Names() []string {
	names := make([]string, 0, len(r.Brands))
	for _, b := range r.Brands {
		names = append(names, b.Name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is a tracked brand.
func (r Roster) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Lookup returns the tracked brand with the given name.
func (r Roster) Lookup(name string) (Brand, bool) {
	for _, b := range r.Brands {
		if b.Name == name {
			return b, true
		}
	}
	return Brand{}, false
}

// Competitors returns every tracked brand except the focal one, in lexical order.
func (r Roster) Competitors() []string {
	out := make([]string, 0, len(r.Brands))
	for _, name := range r.Names() {
		if name != r.Focal.Name {
			out = append(out, name)
		}
	}
	return out
}

// MentionsAny reports whether text contains any tracked brand name.
// Spaces are ignored so "일 룸" still matches "일룸".
func (r Roster) MentionsAny(text string) bool {
	for _, b := range r.Brands {
		if mentions(text, b.Name) {
			return true
		}
	}
	return false
}

// MentionsFocal reports whether text contains the focal brand name.
func (r Roster) MentionsFocal(text string) bool {
	return mentions(text, r.Focal.Name)
}

func mentions(text, brand string) bool {
	if brand == "" {
		return false
	}
	t := strings.ToLower(text)
	b := strings.ToLower(brand)
	if strings.Contains(t, b) {
		return true
	}
	return strings.Contains(strings.ReplaceAll(t, " ", ""), strings.ReplaceAll(b, " ", ""))
}
