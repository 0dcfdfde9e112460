/* provider_test.go
 * Contains unit tests for the season summary provider
 */

package summary

import (
	"errors"
	"fmt"
	"testing"

	"ncaa-predictions/predict/shared"
	"ncaa-predictions/predict/store"

	"github.com/stretchr/testify/assert"
)

// fakeStore implements store.Interface backed by in-memory maps
type fakeStore struct {
	summaries map[string]shared.SeasonSummary
	artifacts map[string]*store.ModelArtifact
	fetchErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		summaries: make(map[string]shared.SeasonSummary),
		artifacts: make(map[string]*store.ModelArtifact),
	}
}

func summaryKey(year int, division string) string {
	return fmt.Sprintf("%d/%s", year, division)
}

func (f *fakeStore) FetchSeasonSummary(year int, division string) (shared.SeasonSummary, error) {
	if f.fetchErr != nil {
		return shared.SeasonSummary{}, f.fetchErr
	}
	summary, ok := f.summaries[summaryKey(year, division)]
	if !ok {
		return shared.SeasonSummary{}, store.ErrNotFound
	}
	return summary, nil
}

func (f *fakeStore) InsertSeasonSummary(summary shared.SeasonSummary) error {
	f.summaries[summaryKey(summary.Year, summary.Division)] = summary
	return nil
}

func (f *fakeStore) FetchModelArtifact(year int, division string, model string) (*store.ModelArtifact, error) {
	artifact, ok := f.artifacts[fmt.Sprintf("%d/%s/%s", year, division, model)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return artifact, nil
}

func (f *fakeStore) UpsertModelArtifact(artifact *store.ModelArtifact) error {
	f.artifacts[fmt.Sprintf("%d/%s/%s", artifact.Year, artifact.Division, artifact.Model)] = artifact
	return nil
}

// fakeHarvester records calls and optionally writes a summary into the store when invoked
type fakeHarvester struct {
	store   *fakeStore
	summary *shared.SeasonSummary
	err     error
	calls   int
}

func (h *fakeHarvester) Harvest(year int, division string) error {
	h.calls++
	if h.err != nil {
		return h.err
	}
	if h.summary != nil {
		return h.store.InsertSeasonSummary(*h.summary)
	}
	return nil
}

// TestGet_SummaryExists tests the cache hit path where no harvest is needed
func TestGet_SummaryExists(t *testing.T) {
	fs := newFakeStore()
	want := shared.SeasonSummary{
		Year:     2023,
		Division: "mens",
		Games:    []shared.GameRecord{{TeamA: "kansas", TeamB: "duke", TeamAWon: true}},
	}
	assert.NoError(t, fs.InsertSeasonSummary(want))

	harvester := &fakeHarvester{store: fs}
	provider := NewProvider(fs, harvester)

	got, err := provider.Get(2023, "mens")

	assert.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 0, harvester.calls)
}

// TestGet_MissThenRebuild tests that a cache miss triggers the harvester once and retries once
func TestGet_MissThenRebuild(t *testing.T) {
	fs := newFakeStore()
	want := shared.SeasonSummary{
		Year:     2023,
		Division: "mens",
		Games:    []shared.GameRecord{{TeamA: "kansas", TeamB: "duke", TeamAWon: true}},
	}
	harvester := &fakeHarvester{store: fs, summary: &want}
	provider := NewProvider(fs, harvester)

	got, err := provider.Get(2023, "mens")

	assert.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, harvester.calls)
}

// TestGet_MissAndHarvestFails tests that a failed rebuild surfaces ErrMissingSummary
func TestGet_MissAndHarvestFails(t *testing.T) {
	fs := newFakeStore()
	harvester := &fakeHarvester{store: fs, err: errors.New("scrape failed")}
	provider := NewProvider(fs, harvester)

	_, err := provider.Get(2023, "mens")

	assert.ErrorIs(t, err, ErrMissingSummary)
	assert.Equal(t, 1, harvester.calls)
}

// TestGet_MissAndHarvestProducesNothing tests that a harvest that stores nothing is still a miss
func TestGet_MissAndHarvestProducesNothing(t *testing.T) {
	fs := newFakeStore()
	harvester := &fakeHarvester{store: fs}
	provider := NewProvider(fs, harvester)

	_, err := provider.Get(2023, "mens")

	assert.ErrorIs(t, err, ErrMissingSummary)
	assert.Equal(t, 1, harvester.calls)
}

// TestGet_NoHarvester tests that a missing summary with no harvester configured is fatal
func TestGet_NoHarvester(t *testing.T) {
	fs := newFakeStore()
	provider := NewProvider(fs, nil)

	_, err := provider.Get(2023, "mens")

	assert.ErrorIs(t, err, ErrMissingSummary)
}

// TestGet_StoreError tests that unexpected store errors are not treated as cache misses
func TestGet_StoreError(t *testing.T) {
	fs := newFakeStore()
	fs.fetchErr = errors.New("connection reset")
	harvester := &fakeHarvester{store: fs}
	provider := NewProvider(fs, harvester)

	_, err := provider.Get(2023, "mens")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingSummary)
	assert.Equal(t, 0, harvester.calls)
}
