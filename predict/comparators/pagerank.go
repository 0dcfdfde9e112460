/* pagerank.go
 * Contains the PageRank comparator. Ranks all teams in a season using PageRank over a
 * four-factor weighted win matrix, then calibrates pairwise probabilities with a chi-squared CDF
 * fit over the rank vector. See https://en.wikipedia.org/wiki/PageRank
 */

package comparators

import (
	"fmt"
	"math"

	"ncaa-predictions/predict/shared"
	"ncaa-predictions/predict/store"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ModelPageRank is the registry name of the PageRank comparator
const ModelPageRank = "pagerank"

// Weights of a team winning a game and the "four factors": effective field goal percentage,
// turnover percentage, offensive rebound percentage and free throw rate. Changing these changes
// the importance of each factor in a game.
var pageRankWeights = [5]float64{50, 13.3333, 6.6666, 8.3333, 5}

// warmStartAlphaStep is how much the damping factor drops per season of look back
const warmStartAlphaStep = 0.1

func init() {
	registerBuilder(ModelPageRank, buildPageRank)
}

// PageRankComparator compares two teams by their fitted PageRank scores. The score vector is
// calibrated through a chi-squared CDF so a score gap maps to a win probability
type PageRankComparator struct {
	rankings map[string]float64
	chi      distuv.ChiSquared
	minVec   float64
	maxVec   float64
}

func (c *PageRankComparator) Name() string { return ModelPageRank }

// Compare maps both fitted scores through the chi-squared CDF and scales the CDF distance into a
// probability, clipped to at most 0.999. The side with the strictly greater raw score is favored;
// equal CDF values with equal scores give exactly 0.5
// Preconditions: Both teams must be in the fitted universe
// Postconditions: Returns the probability that teamA beats teamB, or ErrUnknownTeam
func (c *PageRankComparator) Compare(teamA shared.Team, teamB shared.Team) (float64, error) {
	rankA, ok := c.rankings[teamA.Name]
	if !ok {
		return 0, unknownTeam(teamA.Name)
	}
	rankB, ok := c.rankings[teamB.Name]
	if !ok {
		return 0, unknownTeam(teamB.Name)
	}

	maxCDF := c.chi.CDF(c.maxVec)
	minCDF := c.chi.CDF(c.minVec)
	diff := (maxCDF - minCDF) / math.Sqrt2

	prob := 0.5
	if diff > 0 {
		cdfA, cdfB := c.chi.CDF(rankA), c.chi.CDF(rankB)
		prob = math.Min(math.Abs(cdfA-cdfB)/diff+0.5, 0.999)
	}

	if rankA >= rankB {
		return prob, nil
	}
	return 1 - prob, nil
}

// Function to build a PageRank comparator for one season
// Preconditions: Receives build dependencies, year, division and options. Opts.WarmStartYears
// controls how many prior seasons initialize the rank vector
// Postconditions: Returns the fitted comparator. Fitted state is persisted so repeated builds for
// the same key reload instead of refitting
func buildPageRank(deps BuildDeps, year int, division string, opts Options) (TeamComparator, error) {
	opts = opts.withDefaults()

	artifact, err := loadArtifact(deps, year, division, ModelPageRank)
	if err != nil {
		return nil, err
	}
	if artifact == nil {
		artifact, err = fitPageRank(deps, year, division, opts)
		if err != nil {
			return nil, err
		}
		if err := saveArtifact(deps, artifact); err != nil {
			return nil, err
		}
	}

	return calibratePageRank(artifact)
}

// fitPageRank runs the warm-start loop: the earliest season starts from a uniform vector, every
// later season starts from the previous season's fitted vector with a reduced damping factor.
// The look back is an explicit loop, not recursion, so the terminating condition is visible:
// either opts.WarmStartYears seasons back or the first season with no stored summary.
func fitPageRank(deps BuildDeps, year int, division string, opts Options) (*store.ModelArtifact, error) {
	years := warmStartYears(deps, year, division, opts.WarmStartYears)

	var prior map[string]float64
	var artifact *store.ModelArtifact
	for _, y := range years {
		summary, err := deps.Summaries.Get(y, division)
		if err != nil {
			return nil, err
		}

		// Damping drops a fixed step per season of look back from the requested year
		alpha := opts.Alpha - warmStartAlphaStep*float64(year-y)
		if alpha < 0.05 {
			alpha = 0.05
		}

		artifact = fitPageRankSeason(summary, prior, alpha, opts.Iterations)
		artifact.Year = y
		artifact.Division = division
		prior = artifact.Rankings

		logrus.WithFields(logrus.Fields{
			"model":    ModelPageRank,
			"year":     y,
			"division": division,
			"alpha":    alpha,
			"teams":    len(artifact.Rankings),
		}).Debug("fitted pagerank season")
	}

	return artifact, nil
}

// fitPageRankSeason builds the four-factor weighted matrix for one season and runs a fixed
// number of power iterations. There is no convergence check; iters must be large enough that the
// vector's rank order has stabilized.
func fitPageRankSeason(summary shared.SeasonSummary, prior map[string]float64, alpha float64, iters int) *store.ModelArtifact {
	teams := summary.TeamUniverse()
	index := universeIndex(teams)
	n := len(teams)
	if n == 0 {
		return &store.ModelArtifact{Model: ModelPageRank, Rankings: map[string]float64{}}
	}

	m := mat.NewDense(n, n, nil)
	for _, game := range summary.Games {
		if !qualifies(game, index) {
			continue
		}

		// The first team won, so it takes the primary win weight outright. Each of the four
		// factors adds its bonus to whichever side led it; ties add nothing. Fewer turnovers is
		// better, so that comparison is inverted.
		winScore, loseScore := pageRankWeights[0], 0.0

		if game.EFGPctA > game.EFGPctB {
			winScore += pageRankWeights[1]
		} else if game.EFGPctB > game.EFGPctA {
			loseScore += pageRankWeights[1]
		}

		if game.TOVPctA < game.TOVPctB {
			winScore += pageRankWeights[2]
		} else if game.TOVPctB < game.TOVPctA {
			loseScore += pageRankWeights[2]
		}

		if game.ORBPctA > game.ORBPctB {
			winScore += pageRankWeights[3]
		} else if game.ORBPctB > game.ORBPctA {
			loseScore += pageRankWeights[3]
		}

		if game.FTRA > game.FTRB {
			winScore += pageRankWeights[4]
		} else if game.FTRB > game.FTRA {
			loseScore += pageRankWeights[4]
		}

		winIdx, loseIdx := index[game.TeamA], index[game.TeamB]
		m.Set(winIdx, loseIdx, m.At(winIdx, loseIdx)+winScore)
		m.Set(loseIdx, winIdx, m.At(loseIdx, winIdx)+loseScore)
	}

	// Blend with the uniform matrix to account for the damping factor:
	// mat' = alpha*mat + (1-alpha)*J/n
	uniform := (1 - alpha) / float64(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.Set(i, j, alpha*m.At(i, j)+uniform)
		}
	}

	// Initial vector: uniform 1s on a cold start, otherwise the prior season's fitted score where
	// the team existed last season
	vec := mat.NewVecDense(n, nil)
	for i, name := range teams {
		value := 1.0
		if prior != nil {
			if prev, ok := prior[name]; ok {
				value = prev
			}
		}
		vec.SetVec(i, value)
	}
	normalizeVecSum(vec, float64(n))

	// Perform many iterations of matrix multiplication, keeping the vector summed to n
	next := mat.NewVecDense(n, nil)
	for iter := 0; iter < iters; iter++ {
		next.MulVec(m, vec)
		normalizeVecSum(next, float64(n))
		vec.CopyVec(next)
	}

	rankings := make(map[string]float64, n)
	vector := make([]float64, n)
	for i, name := range teams {
		rankings[name] = vec.AtVec(i)
		vector[i] = vec.AtVec(i)
	}

	return &store.ModelArtifact{Model: ModelPageRank, Rankings: rankings, Vector: vector}
}

// calibratePageRank fits a chi-squared distribution to the fitted vector (method of moments: the
// distribution's mean equals its degrees of freedom) and records the vector's CDF extremes
func calibratePageRank(artifact *store.ModelArtifact) (*PageRankComparator, error) {
	if len(artifact.Vector) == 0 {
		return nil, fmt.Errorf("pagerank: artifact for %d %s has no fitted vector", artifact.Year, artifact.Division)
	}

	df, err := stats.Mean(artifact.Vector)
	if err != nil {
		return nil, fmt.Errorf("pagerank: fitting chi-squared dof: %w", err)
	}
	if df <= 0 {
		df = 1
	}
	minVec, err := stats.Min(artifact.Vector)
	if err != nil {
		return nil, err
	}
	maxVec, err := stats.Max(artifact.Vector)
	if err != nil {
		return nil, err
	}

	return &PageRankComparator{
		rankings: artifact.Rankings,
		chi:      distuv.ChiSquared{K: df},
		minVec:   minVec,
		maxVec:   maxVec,
	}, nil
}

// normalizeVecSum rescales the vector so its entries sum to target
func normalizeVecSum(vec *mat.VecDense, target float64) {
	sum := 0.0
	for i := 0; i < vec.Len(); i++ {
		sum += vec.AtVec(i)
	}
	if sum == 0 {
		return
	}
	vec.ScaleVec(target/sum, vec)
}

// warmStartYears lists the seasons to fit, earliest first, ending on the requested year. The list
// is clipped at the first prior season whose summary cannot be served; the requested year itself
// is always included so its missing summary still fails the build.
func warmStartYears(deps BuildDeps, year int, division string, lookBack int) []int {
	first := year
	for step := 1; step <= lookBack; step++ {
		if _, err := deps.Summaries.Get(year-step, division); err != nil {
			break
		}
		first = year - step
	}

	years := make([]int, 0, year-first+1)
	for y := first; y <= year; y++ {
		years = append(years, y)
	}
	return years
}
