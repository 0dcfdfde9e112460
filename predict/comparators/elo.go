/* elo.go
 * Contains the Elo comparator. Sequential rating updates over a season of games with a tiered
 * K-factor. See https://en.wikipedia.org/wiki/Elo_rating_system
 */

package comparators

import (
	"math"

	"ncaa-predictions/predict/shared"
	"ncaa-predictions/predict/store"

	"github.com/sirupsen/logrus"
)

// ModelElo is the registry name of the Elo comparator
const ModelElo = "elo"

func init() {
	registerBuilder(ModelElo, buildElo)
}

// EloComparator compares two teams by the logistic expectancy formula on their final ratings
type EloComparator struct {
	ratings map[string]float64
}

func (c *EloComparator) Name() string { return ModelElo }

// Compare evaluates the Elo win expectancy of teamA over teamB on the season's final ratings
// Preconditions: Both teams must be in the fitted universe
// Postconditions: Returns the probability that teamA beats teamB, or ErrUnknownTeam
func (c *EloComparator) Compare(teamA shared.Team, teamB shared.Team) (float64, error) {
	ratingA, ok := c.ratings[teamA.Name]
	if !ok {
		return 0, unknownTeam(teamA.Name)
	}
	ratingB, ok := c.ratings[teamB.Name]
	if !ok {
		return 0, unknownTeam(teamB.Name)
	}

	qA := math.Pow(10, ratingA/400)
	qB := math.Pow(10, ratingB/400)
	return qA / (qA + qB), nil
}

// Function to build an Elo comparator for one season
// Preconditions: Receives build dependencies, year, division and options. Opts.InitialRating is
// the base rating; opts.WarmStartYears carries prior season ratings forward
// Postconditions: Returns the fitted comparator, persisting final ratings for idempotent rebuilds
func buildElo(deps BuildDeps, year int, division string, opts Options) (TeamComparator, error) {
	opts = opts.withDefaults()

	artifact, err := loadArtifact(deps, year, division, ModelElo)
	if err != nil {
		return nil, err
	}
	if artifact == nil {
		artifact, err = fitElo(deps, year, division, opts)
		if err != nil {
			return nil, err
		}
		if err := saveArtifact(deps, artifact); err != nil {
			return nil, err
		}
	}

	return &EloComparator{ratings: artifact.Rankings}, nil
}

// fitElo walks the warm-start seasons oldest first, carrying each season's final ratings into the
// next one. Teams absent from the prior season keep the base rating; that is a normal path, not
// an error, because the universe shifts between seasons.
func fitElo(deps BuildDeps, year int, division string, opts Options) (*store.ModelArtifact, error) {
	years := warmStartYears(deps, year, division, opts.WarmStartYears)

	var prior map[string]float64
	var ratings map[string]float64
	for _, y := range years {
		summary, err := deps.Summaries.Get(y, division)
		if err != nil {
			return nil, err
		}

		ratings = fitEloSeason(summary, prior, opts.InitialRating)
		prior = ratings

		logrus.WithFields(logrus.Fields{
			"model":    ModelElo,
			"year":     y,
			"division": division,
			"teams":    len(ratings),
		}).Debug("fitted elo season")
	}

	return &store.ModelArtifact{
		Year:     year,
		Division: division,
		Model:    ModelElo,
		Rankings: ratings,
	}, nil
}

// fitEloSeason processes every qualifying game in the summary's given order. The ordering is
// assumed chronological; the summary does not carry dates so this is not verified here.
func fitEloSeason(summary shared.SeasonSummary, prior map[string]float64, initialRating float64) map[string]float64 {
	teams := summary.TeamUniverse()
	index := universeIndex(teams)

	ratings := make(map[string]float64, len(teams))
	for _, name := range teams {
		ratings[name] = initialRating
		if prior != nil {
			if prev, ok := prior[name]; ok {
				ratings[name] = prev
			}
		}
	}

	for _, game := range summary.Games {
		if !qualifies(game, index) {
			continue
		}

		winner, loser := game.TeamA, game.TeamB

		qWin := math.Pow(10, ratings[winner]/400)
		qLose := math.Pow(10, ratings[loser]/400)
		eWin := qWin / (qWin + qLose)
		eLose := qLose / (qWin + qLose)

		k := kFactor(math.Min(ratings[winner], ratings[loser]))

		ratings[winner] += k * (1 - eWin)
		ratings[loser] += k * (0 - eLose)
	}

	return ratings
}

// kFactor tiers the update size by the lower of the two pre-game ratings. The gap [1500,1700) and
// everything above 2000 fall through to 16.
func kFactor(minRating float64) float64 {
	if minRating < 1500 {
		return 32
	}
	if minRating >= 1700 && minRating <= 2000 {
		return 24
	}
	return 16
}
