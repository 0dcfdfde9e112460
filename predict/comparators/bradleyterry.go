/* bradleyterry.go
 * Contains the Bradley-Terry comparator. Fixed-point maximum likelihood estimation of pairwise
 * strengths. See https://en.wikipedia.org/wiki/Bradley%E2%80%93Terry_model
 */

package comparators

import (
	"ncaa-predictions/predict/shared"
	"ncaa-predictions/predict/store"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// ModelBradleyTerry is the registry name of the Bradley-Terry comparator
const ModelBradleyTerry = "bradleyterry"

func init() {
	registerBuilder(ModelBradleyTerry, buildBradleyTerry)
}

// BradleyTerryComparator compares two teams by the ratio of their fitted strengths
type BradleyTerryComparator struct {
	strengths map[string]float64
}

func (c *BradleyTerryComparator) Name() string { return ModelBradleyTerry }

// Compare returns strength(a) / (strength(a) + strength(b))
// Preconditions: Both teams must be in the fitted universe
// Postconditions: Returns the probability that teamA beats teamB, or ErrUnknownTeam
func (c *BradleyTerryComparator) Compare(teamA shared.Team, teamB shared.Team) (float64, error) {
	scoreA, ok := c.strengths[teamA.Name]
	if !ok {
		return 0, unknownTeam(teamA.Name)
	}
	scoreB, ok := c.strengths[teamB.Name]
	if !ok {
		return 0, unknownTeam(teamB.Name)
	}

	return scoreA / (scoreA + scoreB), nil
}

// Function to build a Bradley-Terry comparator for one season
// Preconditions: Receives build dependencies, year, division and options. Opts.Rounds sets the
// fixed-point iteration count; opts.WarmStartYears seeds strengths from prior seasons
// Postconditions: Returns the fitted comparator, persisting strengths for idempotent rebuilds
func buildBradleyTerry(deps BuildDeps, year int, division string, opts Options) (TeamComparator, error) {
	opts = opts.withDefaults()

	artifact, err := loadArtifact(deps, year, division, ModelBradleyTerry)
	if err != nil {
		return nil, err
	}
	if artifact == nil {
		artifact, err = fitBradleyTerry(deps, year, division, opts)
		if err != nil {
			return nil, err
		}
		if err := saveArtifact(deps, artifact); err != nil {
			return nil, err
		}
	}

	return &BradleyTerryComparator{strengths: artifact.Rankings}, nil
}

// fitBradleyTerry walks the warm-start seasons oldest first; each season's strengths initialize
// the next season's vector where the team name still exists, newly promoted teams start uniform
func fitBradleyTerry(deps BuildDeps, year int, division string, opts Options) (*store.ModelArtifact, error) {
	years := warmStartYears(deps, year, division, opts.WarmStartYears)

	var prior map[string]float64
	var artifact *store.ModelArtifact
	for _, y := range years {
		summary, err := deps.Summaries.Get(y, division)
		if err != nil {
			return nil, err
		}

		artifact = fitBradleyTerrySeason(summary, prior, opts.Rounds)
		artifact.Year = y
		artifact.Division = division
		prior = artifact.Rankings

		logrus.WithFields(logrus.Fields{
			"model":    ModelBradleyTerry,
			"year":     y,
			"division": division,
			"teams":    len(artifact.Rankings),
		}).Debug("fitted bradley-terry season")
	}

	artifact.Year = year
	return artifact, nil
}

// fitBradleyTerrySeason builds the unweighted win-count matrix and runs the fixed-point rounds:
// p_i = (number of wins for team i) / sum((total games vs team j) / (p_i + p_j))
func fitBradleyTerrySeason(summary shared.SeasonSummary, prior map[string]float64, rounds int) *store.ModelArtifact {
	teams := summary.TeamUniverse()
	index := universeIndex(teams)
	n := len(teams)
	if n == 0 {
		return &store.ModelArtifact{Model: ModelBradleyTerry, Rankings: map[string]float64{}}
	}

	m := mat.NewDense(n, n, nil)
	for _, game := range summary.Games {
		if !qualifies(game, index) {
			continue
		}
		winIdx, loseIdx := index[game.TeamA], index[game.TeamB]
		m.Set(winIdx, loseIdx, m.At(winIdx, loseIdx)+1)
	}

	// Uniform initial strengths, overwritten by the prior season where the team existed, then
	// renormalized so the vector still sums to 1
	vec := make([]float64, n)
	for i, name := range teams {
		vec[i] = 1 / float64(n)
		if prior != nil {
			if prev, ok := prior[name]; ok {
				vec[i] = prev
			}
		}
	}
	normalizeSum(vec, 1)

	zeroGuard := 1 / (float64(n) * float64(n))
	for round := 0; round < rounds; round++ {
		next := make([]float64, n)
		for i := 0; i < n; i++ {
			numerator := 0.0
			for j := 0; j < n; j++ {
				numerator += m.At(i, j)
			}

			denominator := 0.0
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				games := m.At(i, j) + m.At(j, i)
				if games == 0 {
					continue
				}
				denominator += games / (vec[i] + vec[j])
			}

			if denominator == 0 {
				next[i] = 0
			} else {
				next[i] = numerator / denominator
			}
		}

		// Make sure no vector entries are 0. If they are, set them to 1/n^2
		for i := range next {
			if next[i] == 0 {
				next[i] = zeroGuard
			}
		}
		normalizeSum(next, 1)

		vec = next
	}

	rankings := make(map[string]float64, n)
	vector := make([]float64, n)
	for i, name := range teams {
		rankings[name] = vec[i]
		vector[i] = vec[i]
	}

	return &store.ModelArtifact{Model: ModelBradleyTerry, Rankings: rankings, Vector: vector}
}

// normalizeSum rescales the slice so its entries sum to target
func normalizeSum(values []float64, target float64) {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	if sum == 0 {
		return
	}
	for i := range values {
		values[i] *= target / sum
	}
}
