/* comparator_test.go
 * Contains the in-memory fakes shared by the model tests plus tests for the registry and for the
 * probability contract every comparator must satisfy
 */

package comparators

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ncaa-predictions/predict/shared"
	"ncaa-predictions/predict/store"
)

// fakeSummaries serves seasons from memory and counts lookups
type fakeSummaries struct {
	summaries map[string]shared.SeasonSummary
	calls     int
}

func summaryKey(year int, division string) string {
	return fmt.Sprintf("%d/%s", year, division)
}

func newFakeSummaries(summaries ...shared.SeasonSummary) *fakeSummaries {
	f := &fakeSummaries{summaries: map[string]shared.SeasonSummary{}}
	for _, s := range summaries {
		f.summaries[summaryKey(s.Year, s.Division)] = s
	}
	return f
}

func (f *fakeSummaries) Get(year int, division string) (shared.SeasonSummary, error) {
	f.calls++
	s, ok := f.summaries[summaryKey(year, division)]
	if !ok {
		return shared.SeasonSummary{}, errors.New("no summary for season")
	}
	return s, nil
}

// fakeArtifacts is an in-memory ArtifactStore
type fakeArtifacts struct {
	artifacts map[string]*store.ModelArtifact
	upserts   int
}

func newFakeArtifacts() *fakeArtifacts {
	return &fakeArtifacts{artifacts: map[string]*store.ModelArtifact{}}
}

func artifactKey(year int, division string, model string) string {
	return fmt.Sprintf("%d/%s/%s", year, division, model)
}

func (f *fakeArtifacts) FetchModelArtifact(year int, division string, model string) (*store.ModelArtifact, error) {
	artifact, ok := f.artifacts[artifactKey(year, division, model)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return artifact, nil
}

func (f *fakeArtifacts) UpsertModelArtifact(artifact *store.ModelArtifact) error {
	f.upserts++
	f.artifacts[artifactKey(artifact.Year, artifact.Division, artifact.Model)] = artifact
	return nil
}

// dominantWin records a game where the winner led every four-factor stat
func dominantWin(winner, loser string) shared.GameRecord {
	return shared.GameRecord{
		TeamA:    winner,
		TeamB:    loser,
		TeamAWon: true,
		ScoreA:   80,
		ScoreB:   60,
		EFGPctA:  0.60, EFGPctB: 0.40,
		TOVPctA: 0.10, TOVPctB: 0.25,
		ORBPctA: 0.40, ORBPctB: 0.20,
		FTRA: 0.35, FTRB: 0.15,
	}
}

// lossView is the loser's gamelog perspective of the same game; it never qualifies for fitting
// but does place the loser in the team universe
func lossView(loser, winner string) shared.GameRecord {
	g := dominantWin(winner, loser)
	return shared.GameRecord{
		TeamA:    loser,
		TeamB:    winner,
		TeamAWon: false,
		ScoreA:   g.ScoreB,
		ScoreB:   g.ScoreA,
		EFGPctA:  g.EFGPctB, EFGPctB: g.EFGPctA,
		TOVPctA: g.TOVPctB, TOVPctB: g.TOVPctA,
		ORBPctA: g.ORBPctB, ORBPctB: g.ORBPctA,
		FTRA: g.FTRB, FTRB: g.FTRA,
	}
}

// testSeason is a three-team season where alabama beats baylor beats creighton, with alabama also
// beating creighton head to head
func testSeason(year int) shared.SeasonSummary {
	return shared.SeasonSummary{
		Year:     year,
		Division: "mens",
		Games: []shared.GameRecord{
			dominantWin("alabama", "baylor"),
			lossView("baylor", "alabama"),
			dominantWin("baylor", "creighton"),
			lossView("creighton", "baylor"),
			dominantWin("alabama", "creighton"),
			lossView("creighton", "alabama"),
		},
	}
}

func testDeps(summaries ...shared.SeasonSummary) BuildDeps {
	if len(summaries) == 0 {
		summaries = []shared.SeasonSummary{testSeason(2024)}
	}
	return BuildDeps{Summaries: newFakeSummaries(summaries...), Artifacts: newFakeArtifacts()}
}

func quickOptions() Options {
	opts := DefaultOptions()
	opts.Iterations = 200
	return opts
}

func TestModels(t *testing.T) {
	assert.Equal(t, []string{
		ModelBradleyTerry,
		ModelElo,
		ModelHybrid,
		ModelPageRank,
		ModelPathWeight,
		ModelResistance,
		ModelSeed,
	}, Models())
}

func TestBuildUnknownModel(t *testing.T) {
	_, err := Build("madeup", testDeps(), 2024, "mens", DefaultOptions())
	assert.ErrorIs(t, err, ErrUnknownModel)
}

// Every registered model must return complementary probabilities and a 0.5 self comparison
func TestCompareContract(t *testing.T) {
	a := shared.Team{Name: "alabama", Seed: 1}
	b := shared.Team{Name: "creighton", Seed: 8}

	for _, name := range Models() {
		t.Run(name, func(t *testing.T) {
			cmp, err := Build(name, testDeps(), 2024, "mens", quickOptions())
			require.NoError(t, err)

			ab, err := cmp.Compare(a, b)
			require.NoError(t, err)
			ba, err := cmp.Compare(b, a)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, ab, 0.0)
			assert.LessOrEqual(t, ab, 1.0)
			assert.InDelta(t, 1.0, ab+ba, 1e-6)

			self, err := cmp.Compare(a, a)
			require.NoError(t, err)
			assert.InDelta(t, 0.5, self, 1e-9)
		})
	}
}

// A second build for the same key must load the persisted artifact instead of refitting
func TestBuildReusesArtifact(t *testing.T) {
	deps := testDeps()
	summaries := deps.Summaries.(*fakeSummaries)
	artifacts := deps.Artifacts.(*fakeArtifacts)

	_, err := Build(ModelPageRank, deps, 2024, "mens", quickOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, artifacts.upserts)
	fitCalls := summaries.calls
	assert.Greater(t, fitCalls, 0)

	_, err = Build(ModelPageRank, deps, 2024, "mens", quickOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, artifacts.upserts)
	assert.Equal(t, fitCalls, summaries.calls)
}

func TestUnknownTeamError(t *testing.T) {
	cmp, err := Build(ModelElo, testDeps(), 2024, "mens", quickOptions())
	require.NoError(t, err)

	_, err = cmp.Compare(shared.Team{Name: "nowhere state"}, shared.Team{Name: "alabama"})
	assert.ErrorIs(t, err, ErrUnknownTeam)
}
