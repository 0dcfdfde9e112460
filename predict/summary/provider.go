/* provider.go
 * Contains the season summary provider. Ranking models never touch storage directly; they ask the
 * provider for a summary and the provider handles the cache miss and rebuild path
 */

package summary

import (
	"errors"
	"fmt"

	"ncaa-predictions/predict/shared"
	"ncaa-predictions/predict/store"

	"github.com/sirupsen/logrus"
)

// ErrMissingSummary is returned when no season summary exists for a (year, division) pair and the
// rebuild path also failed. This is fatal for the caller; there is no retry beyond the one
// automatic rebuild attempt.
var ErrMissingSummary = errors.New("summary: no season summary available")

// Harvester triggers the external scrape and clean pipeline that produces a season summary.
// It is the boundary to the excluded data collection components.
type Harvester interface {
	Harvest(year int, division string) error
}

// Provider serves season summaries from the store, rebuilding them through the harvester on a
// cache miss. Get calls the harvester at most once per invocation.
type Provider struct {
	Store     store.Interface
	Harvester Harvester
}

// Function to create a new summary provider
// Preconditions: Receives a store implementation and an optional harvester (may be nil when the
// scrape pipeline is unavailable, e.g. in offline runs)
// Postconditions: Returns a pointer to the Provider
func NewProvider(s store.Interface, h Harvester) *Provider {
	return &Provider{Store: s, Harvester: h}
}

// Function to get the season summary for a (year, division) pair
// Preconditions: Receives the year the championship game takes place and the division name
// Postconditions: Returns the ordered SeasonSummary. On a cache miss the harvester is invoked
// exactly once and the fetch retried exactly once; if the summary is still missing, an error
// wrapping ErrMissingSummary is returned
func (p *Provider) Get(year int, division string) (shared.SeasonSummary, error) {
	summary, err := p.Store.FetchSeasonSummary(year, division)
	if err == nil {
		return summary, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return shared.SeasonSummary{}, err
	}

	logrus.WithFields(logrus.Fields{
		"year":     year,
		"division": division,
	}).Warn("no summary found, trying to create summary")

	if p.Harvester == nil {
		return shared.SeasonSummary{}, fmt.Errorf("%w: %s %d and no harvester configured", ErrMissingSummary, division, year)
	}

	if err := p.Harvester.Harvest(year, division); err != nil {
		return shared.SeasonSummary{}, fmt.Errorf("%w: could not make summary for %s %d: %v", ErrMissingSummary, division, year, err)
	}

	// Try again with the newly created summary
	summary, err = p.Store.FetchSeasonSummary(year, division)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return shared.SeasonSummary{}, fmt.Errorf("%w: harvest completed but no summary stored for %s %d", ErrMissingSummary, division, year)
		}
		return shared.SeasonSummary{}, err
	}
	return summary, nil
}
