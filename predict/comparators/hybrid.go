/* hybrid.go
 * Contains the hybrid comparator, which uses other TeamComparator models to compare teams and
 * chooses the most confident of them
 */

package comparators

import (
	"fmt"

	"ncaa-predictions/predict/shared"
)

// ModelHybrid is the registry name of the hybrid comparator
const ModelHybrid = "hybrid"

func init() {
	registerBuilder(ModelHybrid, buildHybrid)
}

// HybridComparator wraps an ordered set of other comparators. For each comparison it returns the
// prediction furthest from 0.5: the maximum if max >= 1-min, otherwise the minimum (1-min being
// the minimum's confidence mirrored around 0.5).
type HybridComparator struct {
	comparators []TeamComparator
}

// Function to create a hybrid comparator from already-built models
// Preconditions: Receives at least one fitted comparator
// Postconditions: Returns a pointer to the HybridComparator, or an error if none were given
func NewHybridComparator(comparators ...TeamComparator) (*HybridComparator, error) {
	if len(comparators) == 0 {
		return nil, fmt.Errorf("hybrid: needs at least one comparator")
	}
	return &HybridComparator{comparators: comparators}, nil
}

func (c *HybridComparator) Name() string { return ModelHybrid }

// Compare evaluates every wrapped model and returns whichever extreme is more confident
// Preconditions: Both teams must be known to every wrapped model (subject to that model's own
// fallback rules)
// Postconditions: Returns the probability that teamA beats teamB; submodel errors propagate.
// When the two extremes are exactly equidistant from 0.5 (maxConf == 1-minConf) the high side
// wins in both directions, so complementarity does not hold at that single point
func (c *HybridComparator) Compare(teamA shared.Team, teamB shared.Team) (float64, error) {
	minConf, maxConf := 1.0, 0.0
	for _, comparator := range c.comparators {
		conf, err := comparator.Compare(teamA, teamB)
		if err != nil {
			return 0, fmt.Errorf("hybrid: %s: %w", comparator.Name(), err)
		}
		if conf < minConf {
			minConf = conf
		}
		if conf > maxConf {
			maxConf = conf
		}
	}

	if maxConf >= 1-minConf {
		return maxConf, nil
	}
	return minConf, nil
}

// buildHybrid builds every submodel named in opts.Submodels and wraps them
func buildHybrid(deps BuildDeps, year int, division string, opts Options) (TeamComparator, error) {
	opts = opts.withDefaults()

	comparators := make([]TeamComparator, 0, len(opts.Submodels))
	for _, name := range opts.Submodels {
		if name == ModelHybrid {
			return nil, fmt.Errorf("hybrid: cannot nest hybrid models")
		}
		comparator, err := Build(name, deps, year, division, opts)
		if err != nil {
			return nil, fmt.Errorf("hybrid: building %s: %w", name, err)
		}
		comparators = append(comparators, comparator)
	}

	return NewHybridComparator(comparators...)
}
