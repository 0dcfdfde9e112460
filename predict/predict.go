/* predict.go
 * This file contains the public methods for interacting with the prediction engine. For
 * consistent results, callers should go through this file, not the sub packages for comparators
 * and tournament simulation
 */

package predict

import (
	"fmt"
	"strings"

	"ncaa-predictions/predict/comparators"
	"ncaa-predictions/predict/shared"
	"ncaa-predictions/predict/store"
	"ncaa-predictions/predict/summary"
	"ncaa-predictions/predict/tournament"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Predictor wires the data layer to the ranking models and the bracket simulator
type Predictor struct {
	Store     store.Interface
	Summaries *summary.Provider
}

// NewPredictor creates a new Predictor backed by a live database connection. The harvester may be
// nil; season summaries then have to exist in the db already
func NewPredictor(dbName string, mongoURI string, harvester summary.Harvester) (*Predictor, error) {
	s, err := store.NewStore(dbName, mongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	return NewPredictorWithStore(s, harvester), nil
}

// NewPredictorWithStore creates a Predictor on an existing store implementation. This is the
// entry point for tests and for callers that manage the db connection themselves
func NewPredictorWithStore(s store.Interface, harvester summary.Harvester) *Predictor {
	return &Predictor{
		Store:     s,
		Summaries: summary.NewProvider(s, harvester),
	}
}

// Function to build a fitted comparator for a season
// Preconditions: Receives a registered model name, the year the championship game takes place,
// the division and model options
// Postconditions: Returns the fitted TeamComparator, fitting and persisting model state on the
// first build and reloading it afterwards
func (p *Predictor) BuildComparator(model string, year int, division string, opts comparators.Options) (comparators.TeamComparator, error) {
	deps := comparators.BuildDeps{
		Summaries: p.Summaries,
		Artifacts: p.Store,
	}
	return comparators.Build(model, deps, year, division, opts)
}

// RoundReport captures one completed simulation round for rendering
type RoundReport struct {
	Round    int
	Name     string
	Outcomes []tournament.GameOutcome
	Winners  []shared.Team
}

// Function to simulate a tournament to completion
// Preconditions: Receives a bracket tree and a fitted comparator. The tree is normalized here, so
// brackets with byes are fine
// Postconditions: Returns the per-round reports and the champion distribution. The input tree is
// not mutated
func (p *Predictor) SimulateTournament(bracket *tournament.Tournament, comparator comparators.TeamComparator) ([]RoundReport, shared.GameResult, error) {
	tree := bracket.Normalize()

	var reports []RoundReport
	round := 1
	for !tree.IsLeaf() {
		slots := len(tree.Leaves())

		next, outcomes, err := tree.PlayRound(comparator)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to play round %d: %w", round, err)
		}

		reports = append(reports, RoundReport{
			Round:    round,
			Name:     roundName(slots),
			Outcomes: outcomes,
			Winners:  next.RoundWinners(),
		})
		tree = next
		round++
	}

	return reports, tree.Result, nil
}

// roundName maps the number of remaining slots to the usual March naming
func roundName(slots int) string {
	switch slots {
	case 2:
		return "Championship"
	case 4:
		return "Final Four"
	case 8:
		return "Elite Eight"
	case 16:
		return "Sweet Sixteen"
	}
	return fmt.Sprintf("Round of %d", slots)
}

// NormalizeTeamName converts a display name to the canonical summary key format: lower case with
// dashes for spaces, e.g. "North Carolina" -> "north-carolina"
func NormalizeTeamName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(name), "-")
}

// ResolveTeamNames processes team names from user input and checks if they are valid.
// Preconditions: receives two string slices; one containing the caller's team names and another
// that is the list of valid team names (the season's team universe)
// Postconditions: returns two string slices, a slice of canonical team names and a slice
// containing the names that matched nothing
func ResolveTeamNames(inputs []string, validTeams []string) ([]string, []string) {
	var resolved []string
	var invalid []string

	// Normalize the universe for better matching
	lookup := make(map[string]string)
	var normalizedTeams []string
	for _, name := range validTeams {
		normalized := NormalizeTeamName(name)
		lookup[normalized] = name
		normalizedTeams = append(normalizedTeams, normalized)
	}

	for _, input := range inputs {
		normalized := NormalizeTeamName(input)
		fuzzyResults := fuzzy.RankFind(normalized, normalizedTeams)
		// If there is no valid team name, add it to the invalid teams list
		if len(fuzzyResults) == 0 {
			invalid = append(invalid, input)
			continue
		}

		// With multiple matches, prefer an exact match over the best ranked one
		best := ""
		for i := range fuzzyResults {
			if fuzzyResults[i].Target == normalized {
				best = fuzzyResults[i].Target
			}
		}
		if best == "" {
			best = fuzzyResults[0].Target
		}
		resolved = append(resolved, lookup[best])
	}
	return resolved, invalid
}
