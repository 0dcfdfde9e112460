/* models_test.go
 * Contains unit tests for the shared data model helpers
 */

package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTeamUniverse tests that the universe is the distinct set of TeamA names
func TestTeamUniverse(t *testing.T) {
	summary := SeasonSummary{
		Year:     2023,
		Division: "mens",
		Games: []GameRecord{
			{TeamA: "kansas", TeamB: "howard", TeamAWon: true},
			{TeamA: "duke", TeamB: "kansas", TeamAWon: true},
			{TeamA: "kansas", TeamB: "non-division-team", TeamAWon: true},
			{TeamA: "gonzaga", TeamB: "duke", TeamAWon: false},
		},
	}

	teams := summary.TeamUniverse()

	assert.Equal(t, []string{"duke", "gonzaga", "kansas"}, teams)
}

// TestTeamUniverse_Empty tests that an empty summary yields an empty universe
func TestTeamUniverse_Empty(t *testing.T) {
	summary := SeasonSummary{Year: 2023, Division: "mens"}
	assert.Empty(t, summary.TeamUniverse())
}

// TestNewGameResult tests that a fresh distribution carries all mass on one team
func TestNewGameResult(t *testing.T) {
	result := NewGameResult(Team{Name: "kansas", Seed: 1})

	assert.Len(t, result, 1)
	assert.Equal(t, 1.0, result["kansas"].Probability)
	assert.Equal(t, 1, result["kansas"].Seed)
	assert.Equal(t, 1.0, result.TotalMass())
}

// TestMostProbable tests argmax selection and the deterministic tie break
func TestMostProbable(t *testing.T) {
	result := GameResult{
		"kansas": {Seed: 1, Probability: 0.7},
		"howard": {Seed: 16, Probability: 0.3},
	}
	assert.Equal(t, Team{Name: "kansas", Seed: 1}, result.MostProbable())

	tied := GameResult{
		"duke":   {Seed: 5, Probability: 0.5},
		"baylor": {Seed: 4, Probability: 0.5},
	}
	assert.Equal(t, Team{Name: "baylor", Seed: 4}, tied.MostProbable())
}

// TestTeams tests that teams are listed by descending probability
func TestTeams(t *testing.T) {
	result := GameResult{
		"kansas":  {Seed: 1, Probability: 0.5},
		"howard":  {Seed: 16, Probability: 0.1},
		"gonzaga": {Seed: 4, Probability: 0.4},
	}

	teams := result.Teams()

	assert.Equal(t, []Team{
		{Name: "kansas", Seed: 1},
		{Name: "gonzaga", Seed: 4},
		{Name: "howard", Seed: 16},
	}, teams)
}
