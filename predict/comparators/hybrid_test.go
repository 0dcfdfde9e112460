/* hybrid_test.go
 * Contains tests for the hybrid comparator's most-confident-submodel selection
 */

package comparators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ncaa-predictions/predict/shared"
)

// constantComparator returns a fixed probability for every pairing
type constantComparator struct {
	name string
	prob float64
	err  error
}

func (c constantComparator) Name() string { return c.name }

func (c constantComparator) Compare(a, b shared.Team) (float64, error) {
	if c.err != nil {
		return 0, c.err
	}
	return c.prob, nil
}

func TestHybridPicksMostConfident(t *testing.T) {
	a := shared.Team{Name: "alabama"}
	b := shared.Team{Name: "baylor"}

	tests := []struct {
		name  string
		probs []float64
		want  float64
	}{
		{"high extreme wins", []float64{0.6, 0.9, 0.55}, 0.9},
		{"low extreme wins", []float64{0.05, 0.45, 0.6}, 0.05},
		{"all even", []float64{0.5, 0.5}, 0.5},
		{"tied extremes keep the high side", []float64{0.2, 0.8}, 0.8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			subs := make([]TeamComparator, len(tc.probs))
			for i, p := range tc.probs {
				subs[i] = constantComparator{name: "const", prob: p}
			}
			hybrid, err := NewHybridComparator(subs...)
			require.NoError(t, err)

			prob, err := hybrid.Compare(a, b)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, prob, 1e-12)
		})
	}
}

func TestHybridRequiresSubmodels(t *testing.T) {
	_, err := NewHybridComparator()
	assert.Error(t, err)
}

func TestHybridPropagatesSubmodelError(t *testing.T) {
	boom := errors.New("boom")
	hybrid, err := NewHybridComparator(
		constantComparator{name: "ok", prob: 0.7},
		constantComparator{name: "bad", err: boom},
	)
	require.NoError(t, err)

	_, err = hybrid.Compare(shared.Team{Name: "alabama"}, shared.Team{Name: "baylor"})
	assert.ErrorIs(t, err, boom)
}

func TestHybridBuildDefaults(t *testing.T) {
	cmp, err := Build(ModelHybrid, testDeps(), 2024, "mens", quickOptions())
	require.NoError(t, err)

	hybrid := cmp.(*HybridComparator)
	assert.Len(t, hybrid.comparators, 3)

	// All three score models favor the team that beat everyone
	prob, err := cmp.Compare(shared.Team{Name: "alabama"}, shared.Team{Name: "creighton"})
	require.NoError(t, err)
	assert.Greater(t, prob, 0.5)
}

func TestHybridRejectsNestedHybrid(t *testing.T) {
	opts := quickOptions()
	opts.Submodels = []string{ModelElo, ModelHybrid}

	_, err := Build(ModelHybrid, testDeps(), 2024, "mens", opts)
	assert.Error(t, err)
}
