/* models.go
 * This file contains the structs that relate to DB objects
 */

package store

import (
	"time"

	"ncaa-predictions/predict/shared"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SummaryRecord represents the way a season summary is stored in the DB.
// The games slice preserves the order produced by the cleaning stage.
type SummaryRecord struct {
	Id       primitive.ObjectID  `bson:"_id,omitempty"`
	Year     int                 `bson:"year"`
	Division string              `bson:"division"`
	Games    []shared.GameRecord `bson:"games"`
}

// DistanceRecord is one directed pairwise distance entry of a graph distance
// model. The table is partial: unreachable pairs have no record.
type DistanceRecord struct {
	From     string  `bson:"from"`
	To       string  `bson:"to"`
	Distance float64 `bson:"distance"`
}

// ModelArtifact represents the fitted state a ranking model persists, keyed
// by (year, division, model). Rankings holds the team -> score mapping and
// Vector the raw fitted vector; graph distance models store Distances
// instead. Absence of an artifact means "not yet built".
type ModelArtifact struct {
	Id        primitive.ObjectID `bson:"_id,omitempty"`
	Year      int                `bson:"year"`
	Division  string             `bson:"division"`
	Model     string             `bson:"model"`
	Rankings  map[string]float64 `bson:"rankings,omitempty"`
	Vector    []float64          `bson:"vector,omitempty"`
	Distances []DistanceRecord   `bson:"distances,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty"`
}
