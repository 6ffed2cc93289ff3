package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"voltworks/pkg/model"
)

const CollectionName = "Sessions"

var ErrNotFound = errors.New("session not found")

// Record is one signed-in browser session. Sessions survive process restarts
// so a dashboard redeploy does not sign everybody out.
type Record struct {
	ID        string     `bson:"_id"`
	Token     string     `bson:"token"`
	User      model.User `bson:"user"`
	CreatedAt time.Time  `bson:"created_at"`
	ExpiresAt time.Time  `bson:"expires_at"`
}

type Repository interface {
	Insert(ctx context.Context, record *Record) error
	FindByID(ctx context.Context, id string) (*Record, error)
	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) ([]string, error)
}

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoRepository) Insert(ctx context.Context, record *Record) error {
	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id string) (*Record, error) {
	var record Record
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &record, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *mongoRepository) DeleteByUserID(ctx context.Context, userID string) ([]string, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user.id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to find sessions for user: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var record Record
		if err := cursor.Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to decode session: %w", err)
		}
		ids = append(ids, record.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("session cursor failed: %w", err)
	}

	if len(ids) > 0 {
		if _, err := r.collection.DeleteMany(ctx, bson.M{"user.id": userID}); err != nil {
			return nil, fmt.Errorf("failed to delete sessions for user: %w", err)
		}
	}
	return ids, nil
}
