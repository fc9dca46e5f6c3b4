package insights

import (
	"io"
	"testing"

	"github.com/jonathan/brand-insights/internal/loader"
	"github.com/jonathan/brand-insights/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../testdata/dataset"

func testRoster() types.Roster {
	return types.NewRoster(
		types.Brand{Name: "iloom", Category: "desk"},
		[]types.Brand{{Name: "hanssem"}, {Name: "ikea"}, {Name: "livart"}, {Name: "desker"}},
	)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func loadFixture(t *testing.T) *types.Dataset {
	t.Helper()
	ds, err := loader.Load(fixtureDir, testRoster(), quietLogger())
	require.NoError(t, err)
	return ds
}

// sovWith builds an AI share-of-voice record set over 60 trials from mention and context counts.
func sovWith(mentions map[string]int, byContext map[string]map[string]int) *types.AISov {
	brands := make(map[string]types.AISovRecord, len(mentions))
	for name, m := range mentions {
		rec := types.AISovRecord{Mentions: m, ByContext: map[string]types.ContextMention{}}
		for ctx, n := range byContext[name] {
			rec.ByContext[ctx] = types.ContextMention{Mentions: n}
		}
		brands[name] = rec
	}
	return &types.AISov{Trials: 60, SovScore: types.SovScoreSet{Brands: brands}}
}

func omissionFields(om []types.Omission) []string {
	out := make([]string, 0, len(om))
	for _, o := range om {
		out = append(out, o.Field)
	}
	return out
}
