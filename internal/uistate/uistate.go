// Package uistate persists small per-user dashboard preferences, such
// as the last VIN a customer looked up, so they survive logout and
// reload.
package uistate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "UiState"

// Well-known keys. Handlers should stick to these rather than invent
// ad-hoc ones.
const (
	KeyLastVINLookup = "last_vin_lookup"
	KeyLastBookingID = "last_booking_id"
)

var ErrNotFound = errors.New("ui state not found")

type record struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Key       string    `bson:"key"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type Repository interface {
	Get(ctx context.Context, userID, key string) (json.RawMessage, error)
	Set(ctx context.Context, userID, key string, value json.RawMessage) error
	Delete(ctx context.Context, userID, key string) error
}

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		collection: db.Collection(CollectionName),
	}
}

func docID(userID, key string) string {
	return userID + ":" + key
}

// Get returns the stored value for a key. A value that is no longer
// valid JSON is deleted and reported as absent rather than surfaced to
// the caller.
func (r *mongoRepository) Get(ctx context.Context, userID, key string) (json.RawMessage, error) {
	var rec record
	err := r.collection.FindOne(ctx, bson.M{"_id": docID(userID, key)}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read ui state: %w", err)
	}

	if !json.Valid([]byte(rec.Value)) {
		_ = r.Delete(ctx, userID, key)
		return nil, ErrNotFound
	}

	return json.RawMessage(rec.Value), nil
}

func (r *mongoRepository) Set(ctx context.Context, userID, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("refusing to store invalid JSON for key %q", key)
	}

	rec := record{
		ID:        docID(userID, key),
		UserID:    userID,
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now(),
	}

	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": rec.ID},
		rec,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write ui state: %w", err)
	}
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, userID, key string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": docID(userID, key)}); err != nil {
		return fmt.Errorf("failed to delete ui state: %w", err)
	}
	return nil
}
