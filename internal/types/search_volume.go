//nolint:revive // types is a standard Go package name pattern
package types

// SearchVolume is the monthly brand search volume snapshot plus prior months.
type SearchVolume struct {
	Current    VolumeSnapshot   `json:"current"`
	Historical []VolumeSnapshot `json:"historical" validate:"dive"`
}

// VolumeSnapshot holds one month of per-brand search volume.
type VolumeSnapshot struct {
	Date   string                 `json:"date,omitempty" validate:"omitempty,datetime=2006-01"`
	Brands map[string]BrandVolume `json:"brands" validate:"required,dive"`
}

// BrandVolume is one brand's monthly query count
type BrandVolume struct {
	Total  int64 `json:"total" validate:"gte=0"`
	PC     int64 `json:"pc,omitempty" validate:"gte=0"`
	Mobile int64 `json:"mobile,omitempty" validate:"gte=0"`
}

// Totals returns the current total for each of the given brands, in the same order.
// Brands absent from the snapshot are reported in missing and contribute nothing.
func (s VolumeSnapshot) Totals(brands []string) (totals []int64, missing []string) {
	totals = make([]int64, 0, len(brands))
	for _, b := range brands {
		v, ok := s.Brands[b]
		if !ok {
			missing = append(missing, b)
			continue
		}
		totals = append(totals, v.Total)
	}
	return totals, missing
}

// HistoricalFor returns the historical snapshot dated month ("YYYY-MM").
func (sv *SearchVolume) HistoricalFor(month string) (VolumeSnapshot, bool) {
	for _, h := range sv.Historical {
		if h.Date == month {
			return h, true
		}
	}
	return VolumeSnapshot{}, false
}
