/* models.go
 * This file contains the structs and helper functions that are shared between sub packages
 */

package shared

import (
	"sort"
)

// Team identifies one tournament participant. Equality is by name; Seed is
// bracket-local context assigned when the bracket is built, not a season
// attribute.
type Team struct {
	Name string
	Seed int
}

// GameRecord is one completed game as produced by the (external) cleaning
// stage. The four-factor fields are ratios in [0,1]; a record with a zero
// input denominator arrives here as 0, never NaN. Summaries carry each
// physical game once per participating team's gamelog, so the same game
// appears twice with the roles swapped; consumers must count only the
// TeamAWon perspective to avoid double counting.
type GameRecord struct {
	TeamA    string  `bson:"team_a"`
	TeamB    string  `bson:"team_b"`
	TeamAWon bool    `bson:"team_a_won"`
	ScoreA   int     `bson:"score_a"`
	ScoreB   int     `bson:"score_b"`
	EFGPctA  float64 `bson:"efg_pct_a"`
	EFGPctB  float64 `bson:"efg_pct_b"`
	TOVPctA  float64 `bson:"tov_pct_a"`
	TOVPctB  float64 `bson:"tov_pct_b"`
	ORBPctA  float64 `bson:"orb_pct_a"`
	ORBPctB  float64 `bson:"orb_pct_b"`
	FTRA     float64 `bson:"ftr_a"`
	FTRB     float64 `bson:"ftr_b"`
}

// SeasonSummary is the ordered collection of game records for one
// (year, division) pair. All ranking models consume this and nothing else.
type SeasonSummary struct {
	Year     int
	Division string
	Games    []GameRecord
}

// TeamUniverse returns the sorted set of distinct team names appearing as
// TeamA across the summary's records. This set is the "universe" a ranking
// model ranks; games against teams outside it are ignored by every model.
func (s SeasonSummary) TeamUniverse() []string {
	set := make(map[string]struct{})
	for _, game := range s.Games {
		set[game.TeamA] = struct{}{}
	}

	teams := make([]string, 0, len(set))
	for name := range set {
		teams = append(teams, name)
	}
	sort.Strings(teams)
	return teams
}

// TeamChance is one entry of a GameResult distribution
type TeamChance struct {
	Seed        int
	Probability float64
}

// GameResult is a probability distribution over the teams that could occupy
// one bracket slot at a given tournament stage. Probabilities over all keys
// sum to 1 within floating tolerance. A single-team distribution with
// probability 1 represents a fixed bracket seed.
type GameResult map[string]TeamChance

// NewGameResult returns a distribution that places all probability mass on
// the given team.
func NewGameResult(team Team) GameResult {
	return GameResult{team.Name: {Seed: team.Seed, Probability: 1}}
}

// MostProbable returns the team carrying the largest probability mass.
// Ties break towards the lexicographically smaller name so callers get a
// deterministic answer.
func (g GameResult) MostProbable() Team {
	var best Team
	bestProb := -1.0
	for name, chance := range g {
		if chance.Probability > bestProb || (chance.Probability == bestProb && name < best.Name) {
			best = Team{Name: name, Seed: chance.Seed}
			bestProb = chance.Probability
		}
	}
	return best
}

// TotalMass returns the sum of all probabilities in the distribution
func (g GameResult) TotalMass() float64 {
	total := 0.0
	for _, chance := range g {
		total += chance.Probability
	}
	return total
}

// Teams returns the distribution's teams sorted by descending probability,
// ties broken by name.
func (g GameResult) Teams() []Team {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if g[names[i]].Probability != g[names[j]].Probability {
			return g[names[i]].Probability > g[names[j]].Probability
		}
		return names[i] < names[j]
	})

	teams := make([]Team, 0, len(names))
	for _, name := range names {
		teams = append(teams, Team{Name: name, Seed: g[name].Seed})
	}
	return teams
}
