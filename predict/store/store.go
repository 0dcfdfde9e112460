/* store.go
 * Contains the Store struct and NewStore function. The methods for this package are split into two files:
 * summaries.go for the season_summaries collection and artifacts.go for the model_artifacts collection
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a requested summary or artifact does not exist in the db.
// For model artifacts this is the normal "not yet built" state, not a failure.
var ErrNotFound = errors.New("store: document not found")

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		Summaries *mongo.Collection
		Artifacts *mongo.Collection
	}
}

// Function for initialising Store. Initialises the db connection and sets collection values
// Preconditions: Receives strings containing dbName and mongoURI
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(dbName string, mongoURI string) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName cannot be empty")
	}

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
	}
	s.Collections.Summaries = db.Collection("season_summaries")
	s.Collections.Artifacts = db.Collection("model_artifacts")

	return s, nil
}
