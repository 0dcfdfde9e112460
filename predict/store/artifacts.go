/* artifacts.go
 * Contains the methods for interacting with the model_artifacts collection
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Function to retrieve a fitted model artifact from the DB
// Preconditions: Receives the year, division and model name the artifact is keyed by
// Postconditions: Returns the ModelArtifact if one exists, ErrNotFound if the model has not been
// built for this key yet, or another error if one occurs
func (s *Store) FetchModelArtifact(year int, division string, model string) (*ModelArtifact, error) {
	filter := bson.D{
		{Key: "year", Value: year},
		{Key: "division", Value: division},
		{Key: "model", Value: model},
	}

	var artifact ModelArtifact
	err := s.Collections.Artifacts.FindOne(context.TODO(), filter).Decode(&artifact)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching model artifact from db: %w", err)
	}

	return &artifact, nil
}

// Function to insert or replace a fitted model artifact in the DB. Writes only happen after a
// model is fully fitted, so repeated builds for the same key are idempotent
// Preconditions: Receives a fully populated ModelArtifact
// Postconditions: The artifact is upserted keyed by (year, division, model), or an error is returned
func (s *Store) UpsertModelArtifact(artifact *ModelArtifact) error {
	if artifact == nil {
		return fmt.Errorf("artifact cannot be nil")
	}
	artifact.UpdatedAt = time.Now().UTC()

	filter := bson.D{
		{Key: "year", Value: artifact.Year},
		{Key: "division", Value: artifact.Division},
		{Key: "model", Value: artifact.Model},
	}

	opts := options.Replace().SetUpsert(true)
	_, err := s.Collections.Artifacts.ReplaceOne(context.TODO(), filter, artifact, opts)
	if err != nil {
		return fmt.Errorf("error upserting model artifact into db: %w", err)
	}
	return nil
}
