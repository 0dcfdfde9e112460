/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import "ncaa-predictions/predict/shared"

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	FetchSeasonSummary(year int, division string) (shared.SeasonSummary, error)
	InsertSeasonSummary(summary shared.SeasonSummary) error
	FetchModelArtifact(year int, division string, model string) (*ModelArtifact, error)
	UpsertModelArtifact(artifact *ModelArtifact) error
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)
