/* comparator.go
 * Contains the TeamComparator interface, the model registry and the helper functions shared by
 * every concrete comparator: build dependencies, summary access and artifact persistence
 */

package comparators

import (
	"errors"
	"fmt"
	"sort"

	"ncaa-predictions/predict/shared"
	"ncaa-predictions/predict/store"
)

// ErrUnknownTeam is returned when Compare is invoked with a team absent from the fitted universe.
// Score based models treat this as fatal; the graph distance models fall back instead.
var ErrUnknownTeam = errors.New("comparators: team not in fitted universe")

// ErrUnknownModel is returned by Build for a model name not present in the registry
var ErrUnknownModel = errors.New("comparators: unknown model name")

// TeamComparator compares two teams and gives an expected probability of a team winning.
// The only requirements for a comparator model are:
//  1. It is built once per (year, division) through its registered builder; all tunables beyond
//     year and division must come from Options with sensible defaults.
//  2. Compare returns the probability that teamA beats teamB, in [0,1], with
//     Compare(a,b) + Compare(b,a) = 1 and Compare(a,a) = 0.5. Compare is a pure function of the
//     fitted state, so one comparator instance is safe to share between tournaments.
type TeamComparator interface {
	Name() string
	Compare(teamA shared.Team, teamB shared.Team) (float64, error)
}

// SummarySource provides season summaries. Implemented by summary.Provider; ranking models only
// ever call Get, never the storage underneath.
type SummarySource interface {
	Get(year int, division string) (shared.SeasonSummary, error)
}

// ArtifactStore is the persistence boundary for fitted model state. A nil ArtifactStore in
// BuildDeps disables persistence, which is how tests run
type ArtifactStore interface {
	FetchModelArtifact(year int, division string, model string) (*store.ModelArtifact, error)
	UpsertModelArtifact(artifact *store.ModelArtifact) error
}

// BuildDeps carries the external collaborators a model builder needs
type BuildDeps struct {
	Summaries SummarySource
	Artifacts ArtifactStore
}

// BuilderFunc constructs a fitted comparator for one (year, division) pair
type BuilderFunc func(deps BuildDeps, year int, division string, opts Options) (TeamComparator, error)

// builders is the closed set of valid models. The set is enumerable so callers can list what
// they can ask for; registration happens in each model's file
var builders = map[string]BuilderFunc{}

func registerBuilder(name string, builder BuilderFunc) {
	builders[name] = builder
}

// Function to build a fitted comparator by registry name
// Preconditions: Receives a registered model name, build dependencies, the year and division to
// fit on, and model options (use DefaultOptions() as a base)
// Postconditions: Returns the fitted TeamComparator, or an error if the name is not registered
// or the model could not be fitted
func Build(name string, deps BuildDeps, year int, division string, opts Options) (TeamComparator, error) {
	builder, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	return builder(deps, year, division, opts)
}

// Models returns the sorted names of all registered models
func Models() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// qualifies reports whether a game record counts for model fitting: both participants must be in
// the universe and the record must be from the winner's perspective. Summaries contain each
// physical game once per side, so only counting first-team wins avoids double counting.
func qualifies(game shared.GameRecord, universe map[string]int) bool {
	if !game.TeamAWon {
		return false
	}
	if _, ok := universe[game.TeamA]; !ok {
		return false
	}
	_, ok := universe[game.TeamB]
	return ok
}

// universeIndex maps each universe team name to its row index in fitting matrices
func universeIndex(teams []string) map[string]int {
	index := make(map[string]int, len(teams))
	for i, name := range teams {
		index[name] = i
	}
	return index
}

// loadArtifact fetches a previously persisted artifact, treating a nil store and a not-yet-built
// key the same way: no artifact, no error
func loadArtifact(deps BuildDeps, year int, division string, model string) (*store.ModelArtifact, error) {
	if deps.Artifacts == nil {
		return nil, nil
	}
	artifact, err := deps.Artifacts.FetchModelArtifact(year, division, model)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return artifact, nil
}

// saveArtifact persists fitted state when a store is configured. Builds stay usable without
// persistence, so the write happening or not never changes the fitted model
func saveArtifact(deps BuildDeps, artifact *store.ModelArtifact) error {
	if deps.Artifacts == nil {
		return nil
	}
	return deps.Artifacts.UpsertModelArtifact(artifact)
}

// unknownTeam wraps ErrUnknownTeam with the offending name
func unknownTeam(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownTeam, name)
}
