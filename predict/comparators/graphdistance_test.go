/* graphdistance_test.go
 * Contains tests for the win graph distance models: path weight shortest paths, sampled
 * resistance and the fallback ladder for unconnected teams
 */

package comparators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ncaa-predictions/predict/shared"
)

// graphSeason: alabama beat baylor directly and also transitively through creighton
func graphSeason() shared.SeasonSummary {
	return shared.SeasonSummary{
		Year:     2024,
		Division: "mens",
		Games: []shared.GameRecord{
			dominantWin("alabama", "baylor"),
			lossView("baylor", "alabama"),
			dominantWin("alabama", "creighton"),
			lossView("creighton", "alabama"),
			dominantWin("creighton", "baylor"),
			lossView("baylor", "creighton"),
		},
	}
}

func buildGraphModel(t *testing.T, model string, summary shared.SeasonSummary) *GraphDistanceComparator {
	t.Helper()
	cmp, err := Build(model, testDeps(summary), 2024, "mens", DefaultOptions())
	require.NoError(t, err)
	return cmp.(*GraphDistanceComparator)
}

func TestPathWeightDistances(t *testing.T) {
	cmp := buildGraphModel(t, ModelPathWeight, graphSeason())

	// The direct single-win hop costs 1, shorter than the two-hop route costing 2
	d, ok := cmp.lookup("alabama", "baylor")
	require.True(t, ok)
	assert.InDelta(t, 1.0, d, 1e-9)

	// No winning path leads from baylor anywhere
	_, ok = cmp.lookup("baylor", "alabama")
	assert.False(t, ok)
}

func TestPathWeightRepeatWinsShortenDistance(t *testing.T) {
	summary := shared.SeasonSummary{
		Year:     2024,
		Division: "mens",
		Games: []shared.GameRecord{
			dominantWin("alabama", "baylor"),
			lossView("baylor", "alabama"),
			dominantWin("alabama", "baylor"),
			lossView("baylor", "alabama"),
		},
	}
	cmp := buildGraphModel(t, ModelPathWeight, summary)

	// Two wins invert to 1/2^2
	d, ok := cmp.lookup("alabama", "baylor")
	require.True(t, ok)
	assert.InDelta(t, 0.25, d, 1e-9)
}

func TestPathWeightTruncatedEdge(t *testing.T) {
	games := make([]shared.GameRecord, 0, 6)
	for i := 0; i < 3; i++ {
		games = append(games, dominantWin("alabama", "baylor"), lossView("baylor", "alabama"))
	}
	summary := shared.SeasonSummary{Year: 2024, Division: "mens", Games: games}
	cmp := buildGraphModel(t, ModelPathWeight, summary)

	// Three wins store floor(1e6/9) = 111111, so the distance is 0.111111, not 1/9
	d, ok := cmp.lookup("alabama", "baylor")
	require.True(t, ok)
	assert.InDelta(t, 0.111111, d, 1e-9)
}

func TestResistanceParallelPaths(t *testing.T) {
	cmp := buildGraphModel(t, ModelResistance, graphSeason())

	// Direct path r=1 in parallel with the two-hop path r=2: R = 1/(1 + 1/2)
	d, ok := cmp.lookup("alabama", "baylor")
	require.True(t, ok)
	assert.InDelta(t, 2.0/3.0, d, 1e-9)
}

func TestGraphDistanceOneDirectionKnown(t *testing.T) {
	for _, model := range []string{ModelPathWeight, ModelResistance} {
		t.Run(model, func(t *testing.T) {
			cmp := buildGraphModel(t, model, graphSeason())

			prob, err := cmp.Compare(shared.Team{Name: "alabama"}, shared.Team{Name: "baylor"})
			require.NoError(t, err)
			assert.InDelta(t, 0.99, prob, 1e-9)

			prob, err = cmp.Compare(shared.Team{Name: "baylor"}, shared.Team{Name: "alabama"})
			require.NoError(t, err)
			assert.InDelta(t, 0.01, prob, 1e-9)
		})
	}
}

func TestGraphDistanceBothDirectionsKnown(t *testing.T) {
	summary := shared.SeasonSummary{
		Year:     2024,
		Division: "mens",
		Games: []shared.GameRecord{
			dominantWin("alabama", "baylor"),
			lossView("baylor", "alabama"),
			dominantWin("baylor", "alabama"),
			lossView("alabama", "baylor"),
		},
	}
	cmp := buildGraphModel(t, ModelPathWeight, summary)

	prob, err := cmp.Compare(shared.Team{Name: "alabama"}, shared.Team{Name: "baylor"})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, prob, 1e-9)
}

func TestGraphDistanceSeedFallback(t *testing.T) {
	// Two components that never met
	summary := shared.SeasonSummary{
		Year:     2024,
		Division: "mens",
		Games: []shared.GameRecord{
			dominantWin("alabama", "baylor"),
			lossView("baylor", "alabama"),
			dominantWin("creighton", "drake"),
			lossView("drake", "creighton"),
		},
	}
	cmp := buildGraphModel(t, ModelPathWeight, summary)

	prob, err := cmp.Compare(shared.Team{Name: "alabama", Seed: 1}, shared.Team{Name: "creighton", Seed: 3})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, prob, 1e-9)

	// Zero seeds cannot divide by zero
	prob, err = cmp.Compare(shared.Team{Name: "alabama"}, shared.Team{Name: "creighton"})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, prob, 1e-9)
}

func TestGraphDistanceSelfCompare(t *testing.T) {
	cmp := buildGraphModel(t, ModelResistance, graphSeason())

	prob, err := cmp.Compare(shared.Team{Name: "alabama"}, shared.Team{Name: "alabama"})
	require.NoError(t, err)
	assert.Equal(t, 0.5, prob)
}
