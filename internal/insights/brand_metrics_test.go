package insights

import (
	"testing"

	"github.com/jonathan/brand-insights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBrandMetrics_Fixture(t *testing.T) {
	ds := loadFixture(t)

	table := ComputeBrandMetrics(ds.Roster, ds.SearchVolume, ds.AISov)
	require.Len(t, table.Rows, 5)

	order := make([]string, 0, len(table.Rows))
	sosSum, sovSum := 0.0, 0.0
	for i, row := range table.Rows {
		order = append(order, row.Brand)
		require.NotNil(t, row.SearchRank)
		assert.Equal(t, i+1, *row.SearchRank)
		sosSum += *row.ShareOfSearch
		sovSum += *row.AIShareOfVoice
	}
	assert.Equal(t, []string{"hanssem", "ikea", "iloom", "livart", "desker"}, order)
	assert.InDelta(t, 100.0, sosSum, 1e-9)
	assert.InDelta(t, 100.0, sovSum, 1e-9)

	iloom := table.Rows[2]
	assert.Equal(t, int64(60000), *iloom.SearchVolume)
	assert.Equal(t, 25.0, *iloom.YearOverYear)
	assert.InDelta(t, 50.0, *iloom.MentionRate, 1e-9)
	assert.InDelta(t, 20.0, *iloom.FirstRecRate, 1e-9)

	assert.Equal(t, 20.0, *table.Rows[0].YearOverYear)
	assert.Equal(t, 0.0, *table.Rows[1].YearOverYear)
	assert.Equal(t, -20.0, *table.Rows[3].YearOverYear)

	// desker had no searches a year ago: no data, not infinity or zero.
	assert.Nil(t, table.Rows[4].YearOverYear)
	require.Len(t, table.Omissions, 1)
	assert.Equal(t, "rows.desker.year_over_year", table.Omissions[0].Field)
	assert.Contains(t, table.Omissions[0].Reason, types.ErrDivisionUndefined.Error())
}

func TestComputeBrandMetrics_UndatedSnapshot(t *testing.T) {
	sv := &types.SearchVolume{Current: types.VolumeSnapshot{Brands: map[string]types.BrandVolume{
		"iloom": {Total: 10}, "hanssem": {Total: 10}, "ikea": {Total: 10}, "livart": {Total: 10}, "desker": {Total: 10},
	}}}

	table := ComputeBrandMetrics(testRoster(), sv, nil)
	require.Len(t, table.Rows, 5)

	// Equal totals rank by name.
	assert.Equal(t, "desker", table.Rows[0].Brand)
	for _, row := range table.Rows {
		assert.Equal(t, 20.0, *row.ShareOfSearch)
		assert.Nil(t, row.YearOverYear)
		assert.Nil(t, row.AIShareOfVoice)
		assert.Nil(t, row.MentionRate)
	}
	assert.Contains(t, omissionFields(table.Omissions), "ai_share_of_voice")
	assert.Contains(t, omissionFields(table.Omissions), "rows.iloom.year_over_year")
}

func TestComputeBrandMetrics_IncompleteSnapshot(t *testing.T) {
	sv := &types.SearchVolume{Current: types.VolumeSnapshot{Brands: map[string]types.BrandVolume{
		"iloom": {Total: 30}, "ikea": {Total: 10},
	}}}

	table := ComputeBrandMetrics(testRoster(), sv, nil)
	order := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		order = append(order, row.Brand)
		assert.Nil(t, row.ShareOfSearch, "shares need the full brand set")
	}
	assert.Equal(t, []string{"iloom", "ikea", "desker", "hanssem", "livart"}, order)
	assert.Nil(t, table.Rows[2].SearchVolume)
	assert.Nil(t, table.Rows[2].SearchRank)

	fields := omissionFields(table.Omissions)
	assert.Contains(t, fields, "search_volume.desker")
	assert.Contains(t, fields, "search_volume.hanssem")
	assert.Contains(t, fields, "search_volume.livart")
	assert.NotContains(t, fields, "search_volume.iloom")
}

func TestComputeBrandMetrics_NoData(t *testing.T) {
	table := ComputeBrandMetrics(testRoster(), nil, nil)
	require.Len(t, table.Rows, 5)
	assert.Equal(t, "desker", table.Rows[0].Brand)
	assert.Nil(t, table.Rows[0].SearchVolume)
}
