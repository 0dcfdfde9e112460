/* bradleyterry_test.go
 * Contains tests for the Bradley-Terry fixed point iteration and strength comparison
 */

package comparators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ncaa-predictions/predict/shared"
)

func TestBradleyTerryStrengthsSumToOne(t *testing.T) {
	cmp, err := Build(ModelBradleyTerry, testDeps(), 2024, "mens", DefaultOptions())
	require.NoError(t, err)

	bt := cmp.(*BradleyTerryComparator)
	sum := 0.0
	for _, strength := range bt.strengths {
		assert.Greater(t, strength, 0.0)
		sum += strength
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestBradleyTerryOrdersTeamsByResults(t *testing.T) {
	cmp, err := Build(ModelBradleyTerry, testDeps(), 2024, "mens", DefaultOptions())
	require.NoError(t, err)

	bt := cmp.(*BradleyTerryComparator)
	assert.Greater(t, bt.strengths["alabama"], bt.strengths["baylor"])
	assert.Greater(t, bt.strengths["baylor"], bt.strengths["creighton"])

	prob, err := cmp.Compare(shared.Team{Name: "alabama"}, shared.Team{Name: "baylor"})
	require.NoError(t, err)
	assert.Greater(t, prob, 0.5)
}

// A winless team must keep a small positive strength, never zero, so ratios stay finite
func TestBradleyTerryWinlessTeamStaysPositive(t *testing.T) {
	cmp, err := Build(ModelBradleyTerry, testDeps(), 2024, "mens", DefaultOptions())
	require.NoError(t, err)

	bt := cmp.(*BradleyTerryComparator)
	assert.Greater(t, bt.strengths["creighton"], 0.0)

	prob, err := cmp.Compare(shared.Team{Name: "creighton"}, shared.Team{Name: "alabama"})
	require.NoError(t, err)
	assert.Greater(t, prob, 0.0)
	assert.Less(t, prob, 0.5)
}

func TestBradleyTerryMoreRoundsSharpens(t *testing.T) {
	one := DefaultOptions()
	several := DefaultOptions()
	several.Rounds = 10

	cmpOne, err := Build(ModelBradleyTerry, testDeps(), 2024, "mens", one)
	require.NoError(t, err)
	cmpSeveral, err := Build(ModelBradleyTerry, testDeps(), 2024, "mens", several)
	require.NoError(t, err)

	a := shared.Team{Name: "alabama"}
	c := shared.Team{Name: "creighton"}

	pOne, err := cmpOne.Compare(a, c)
	require.NoError(t, err)
	pSeveral, err := cmpSeveral.Compare(a, c)
	require.NoError(t, err)

	assert.Greater(t, pOne, 0.5)
	assert.GreaterOrEqual(t, pSeveral, pOne)
}
