/* seed.go
 * Contains the seed comparator. Closed-form probability from the bracket seed difference; the
 * lower seeded (better) team always gets better odds except on exact ties
 */

package comparators

import (
	"math"

	"ncaa-predictions/predict/shared"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ModelSeed is the registry name of the seed comparator
const ModelSeed = "seed"

func init() {
	registerBuilder(ModelSeed, func(_ BuildDeps, _ int, _ string, opts Options) (TeamComparator, error) {
		return NewSeedComparator(opts.SeedStdev), nil
	})
}

// DefaultSeedStdev returns the sample standard deviation of the seeds 1..16, i.e. sqrt(68/3)
func DefaultSeedStdev() float64 {
	seeds := make([]float64, 16)
	for i := range seeds {
		seeds[i] = float64(i + 1)
	}
	stdev, err := stats.StandardDeviationSample(seeds)
	if err != nil {
		return math.Sqrt(68.0 / 3.0)
	}
	return stdev
}

// SeedComparator compares two teams based on their seed in whichever tournament they are both
// from. It implicitly assumes each team's latent ability in a game is normal with mean of its
// seed, so the win probability is the chance that a normal variable centered at the seed gap is
// negative. It needs no season data, which makes it the fallback of last resort.
type SeedComparator struct {
	stdev float64
}

// Function to create a seed comparator with optional standard deviation
// Preconditions: Receives the ability spread; values <= 0 select the default sqrt(68/3)
// Postconditions: Returns a pointer to the SeedComparator
func NewSeedComparator(stdev float64) *SeedComparator {
	if stdev <= 0 {
		stdev = DefaultSeedStdev()
	}
	return &SeedComparator{stdev: stdev}
}

func (c *SeedComparator) Name() string { return ModelSeed }

// Compare evaluates normcdf(0; mean=seedA-seedB, scale=stdev): the probability that teamA's
// latent ability exceeds teamB's
// Preconditions: Receives two teams with bracket seeds >= 1
// Postconditions: Returns the probability that teamA beats teamB; exact seed ties give 0.5
func (c *SeedComparator) Compare(teamA shared.Team, teamB shared.Team) (float64, error) {
	gap := distuv.Normal{Mu: float64(teamA.Seed - teamB.Seed), Sigma: c.stdev}
	return gap.CDF(0), nil
}
