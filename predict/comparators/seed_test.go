/* seed_test.go
 * Contains tests for the seed differential baseline model
 */

package comparators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ncaa-predictions/predict/shared"
)

func TestDefaultSeedStdev(t *testing.T) {
	// Sample standard deviation of the seeds 1..16
	assert.InDelta(t, math.Sqrt(68.0/3.0), DefaultSeedStdev(), 1e-9)
}

func TestSeedCompare(t *testing.T) {
	cmp := NewSeedComparator(0)

	prob, err := cmp.Compare(shared.Team{Name: "alabama", Seed: 1}, shared.Team{Name: "bradley", Seed: 16})
	require.NoError(t, err)
	assert.Greater(t, prob, 0.5)

	reverse, err := cmp.Compare(shared.Team{Name: "bradley", Seed: 16}, shared.Team{Name: "alabama", Seed: 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, prob+reverse, 1e-9)
}

func TestSeedCompareEqualSeeds(t *testing.T) {
	cmp := NewSeedComparator(0)

	prob, err := cmp.Compare(shared.Team{Name: "alabama", Seed: 4}, shared.Team{Name: "bradley", Seed: 4})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, prob, 1e-12)
}

func TestSeedCompareNeverCertain(t *testing.T) {
	cmp := NewSeedComparator(0)

	prob, err := cmp.Compare(shared.Team{Name: "alabama", Seed: 1}, shared.Team{Name: "bradley", Seed: 16})
	require.NoError(t, err)
	assert.Less(t, prob, 1.0)
	assert.Greater(t, prob, 0.0)
}

func TestSeedComparatorViaRegistry(t *testing.T) {
	// The seed model needs no season data at all
	cmp, err := Build(ModelSeed, BuildDeps{}, 2024, "mens", DefaultOptions())
	require.NoError(t, err)

	prob, err := cmp.Compare(shared.Team{Name: "alabama", Seed: 2}, shared.Team{Name: "bradley", Seed: 15})
	require.NoError(t, err)
	assert.Greater(t, prob, 0.5)
}
