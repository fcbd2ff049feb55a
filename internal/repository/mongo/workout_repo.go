// internal/repository/mongo/workout_repo.go
package mongo

import (
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultWorkoutCollectionName = "workouts"
	// The whole collection lives in one document so a replace is a single atomic write.
	workoutDocumentID = "workouts"
	workoutsField     = "workouts"
)

// workoutsEnvelope wraps the array so it can cross the JSON/BSON boundary as a document.
type workoutsEnvelope struct {
	Workouts []json.RawMessage `json:"workouts"`
}

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database, collectionName string) repository.WorkoutRepository {
	if collectionName == "" {
		collectionName = DefaultWorkoutCollectionName
	}
	return &mongoWorkoutRepository{
		collection: db.Collection(collectionName),
	}
}

// GetAll loads the collection document, initialising it on first use.
func (r *mongoWorkoutRepository) GetAll(ctx context.Context) ([]json.RawMessage, error) {
	raw, err := r.collection.FindOne(ctx, bson.M{"_id": workoutDocumentID}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if err := r.ReplaceAll(ctx, nil); err != nil {
				return nil, err
			}
			return []json.RawMessage{}, nil
		}
		return nil, err
	}
	value, err := raw.LookupErr(workoutsField)
	if err != nil {
		return []json.RawMessage{}, nil
	}
	return toJSON(value)
}

// ReplaceAll upserts the collection document with the given entries.
func (r *mongoWorkoutRepository) ReplaceAll(ctx context.Context, items []json.RawMessage) error {
	workouts, err := toBSON(items)
	if err != nil {
		return err
	}
	doc := bson.D{
		{Key: "_id", Value: workoutDocumentID},
		{Key: workoutsField, Value: workouts},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}
	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": workoutDocumentID}, doc, options.Replace().SetUpsert(true))
	return err
}

// Close disconnects the client that owns the collection.
func (r *mongoWorkoutRepository) Close(ctx context.Context) error {
	return DisconnectDB(r.collection.Database().Client())
}

// toBSON converts the JSON entries to a BSON array through relaxed extended JSON, keeping
// field names and order as sent.
func toBSON(items []json.RawMessage) (interface{}, error) {
	if items == nil {
		items = []json.RawMessage{}
	}
	payload, err := json.Marshal(workoutsEnvelope{Workouts: items})
	if err != nil {
		return nil, err
	}
	var envelope bson.D
	if err := bson.UnmarshalExtJSON(payload, false, &envelope); err != nil {
		return nil, fmt.Errorf("convert workouts to BSON: %w", err)
	}
	for _, elem := range envelope {
		if elem.Key == workoutsField {
			return elem.Value, nil
		}
	}
	return bson.A{}, nil
}

func toJSON(value bson.RawValue) ([]json.RawMessage, error) {
	payload, err := bson.MarshalExtJSON(bson.D{{Key: workoutsField, Value: value}}, false, false)
	if err != nil {
		return nil, fmt.Errorf("convert workouts to JSON: %w", err)
	}
	var envelope workoutsEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrCorrupt, err)
	}
	if envelope.Workouts == nil {
		return []json.RawMessage{}, nil
	}
	return envelope.Workouts, nil
}
