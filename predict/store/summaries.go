/* summaries.go
 * Contains the methods for interacting with the season_summaries collection
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"ncaa-predictions/predict/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Function to retrieve a season summary from the DB
// Preconditions: Receives the year and division identifying the season
// Postconditions: Returns the SeasonSummary if the operation was successful, ErrNotFound if no
// summary exists for the (year, division) pair, or another error if one occurs
func (s *Store) FetchSeasonSummary(year int, division string) (shared.SeasonSummary, error) {
	filter := bson.D{{Key: "year", Value: year}, {Key: "division", Value: division}}

	var record SummaryRecord
	err := s.Collections.Summaries.FindOne(context.TODO(), filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return shared.SeasonSummary{}, ErrNotFound
		}
		return shared.SeasonSummary{}, fmt.Errorf("error fetching season summary from db: %w", err)
	}

	return shared.SeasonSummary{
		Year:     record.Year,
		Division: record.Division,
		Games:    record.Games,
	}, nil
}

// Function to insert or replace a season summary in the DB
// Preconditions: Receives a SeasonSummary produced by the cleaning stage
// Postconditions: The summary is upserted keyed by (year, division), or an error is returned
func (s *Store) InsertSeasonSummary(summary shared.SeasonSummary) error {
	filter := bson.D{{Key: "year", Value: summary.Year}, {Key: "division", Value: summary.Division}}
	record := SummaryRecord{
		Year:     summary.Year,
		Division: summary.Division,
		Games:    summary.Games,
	}

	opts := options.Replace().SetUpsert(true)
	_, err := s.Collections.Summaries.ReplaceOne(context.TODO(), filter, record, opts)
	if err != nil {
		return fmt.Errorf("error inserting season summary into db: %w", err)
	}
	return nil
}
