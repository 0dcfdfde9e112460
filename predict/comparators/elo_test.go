/* elo_test.go
 * Contains tests for Elo rating updates, K-factor tiers and the win expectancy comparison
 */

package comparators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ncaa-predictions/predict/shared"
)

func TestEloOrdersTeamsByResults(t *testing.T) {
	cmp, err := Build(ModelElo, testDeps(), 2024, "mens", DefaultOptions())
	require.NoError(t, err)

	elo := cmp.(*EloComparator)
	assert.Greater(t, elo.ratings["alabama"], elo.ratings["baylor"])
	assert.Greater(t, elo.ratings["baylor"], elo.ratings["creighton"])

	prob, err := cmp.Compare(shared.Team{Name: "alabama"}, shared.Team{Name: "creighton"})
	require.NoError(t, err)
	assert.Greater(t, prob, 0.5)
}

func TestEloEvenMatchFromBase(t *testing.T) {
	opts := DefaultOptions()
	cmp, err := Build(ModelElo, testDeps(), 2024, "mens", opts)
	require.NoError(t, err)

	elo := cmp.(*EloComparator)
	// Equal ratings give exactly even odds
	elo.ratings["alabama"] = opts.InitialRating
	elo.ratings["baylor"] = opts.InitialRating

	prob, err := cmp.Compare(shared.Team{Name: "alabama"}, shared.Team{Name: "baylor"})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, prob, 1e-12)
}

func TestKFactorTiers(t *testing.T) {
	assert.Equal(t, 32.0, kFactor(1200))
	assert.Equal(t, 32.0, kFactor(1499.9))
	assert.Equal(t, 16.0, kFactor(1500))
	assert.Equal(t, 16.0, kFactor(1699.9))
	assert.Equal(t, 24.0, kFactor(1700))
	assert.Equal(t, 24.0, kFactor(2000))
	assert.Equal(t, 16.0, kFactor(2000.1))
}

func TestEloSingleGameUpdate(t *testing.T) {
	summary := shared.SeasonSummary{
		Year:     2024,
		Division: "mens",
		Games: []shared.GameRecord{
			dominantWin("alabama", "baylor"),
			lossView("baylor", "alabama"),
		},
	}

	ratings := fitEloSeason(summary, nil, 1750)
	// Both start at 1750: expectancy 0.5, K=24 for the [1700,2000] band
	assert.InDelta(t, 1762, ratings["alabama"], 1e-9)
	assert.InDelta(t, 1738, ratings["baylor"], 1e-9)
}

func TestEloWarmStartCarriesRatings(t *testing.T) {
	deps := testDeps(testSeason(2023), testSeason(2024))
	opts := DefaultOptions()
	opts.WarmStartYears = 1

	warm, err := Build(ModelElo, deps, 2024, "mens", opts)
	require.NoError(t, err)

	cold, err := Build(ModelElo, testDeps(), 2024, "mens", DefaultOptions())
	require.NoError(t, err)

	// Two seasons of the same results push the leader further from base than one
	warmGap := warm.(*EloComparator).ratings["alabama"] - cold.(*EloComparator).ratings["alabama"]
	assert.Greater(t, warmGap, 0.0)
}
