package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/pageza/recipebook/backend/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps recipes and categories as documents in two collections
type MongoStore struct {
	client     *mongo.Client
	recipes    ownedCollection[model.Recipe]
	categories ownedCollection[model.Category]
}

// NewMongoStore uses the named collections of db
func NewMongoStore(client *mongo.Client, db *mongo.Database, recipes, categories string) *MongoStore {
	return &MongoStore{
		client:     client,
		recipes:    ownedCollection[model.Recipe]{coll: db.Collection(recipes)},
		categories: ownedCollection[model.Category]{coll: db.Collection(categories)},
	}
}

func (s *MongoStore) Recipes() Repository[model.Recipe] {
	return s.recipes
}

func (s *MongoStore) Categories() Repository[model.Category] {
	return s.categories
}

// Ping checks the primary is reachable
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the owner index on both collections
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	for _, coll := range []*mongo.Collection{s.recipes.coll, s.categories.coll} {
		_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "ownerId", Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("failed to create index on %s: %w", coll.Name(), err)
		}
	}
	return nil
}

type ownedCollection[T Entity] struct {
	coll *mongo.Collection
}

func ownedFilter(ownerID, id string) bson.M {
	return bson.M{"_id": id, "ownerId": ownerID}
}

func (c ownedCollection[T]) Create(ctx context.Context, v *T) error {
	if _, err := c.coll.InsertOne(ctx, v); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c ownedCollection[T]) Get(ctx context.Context, ownerID, id string) (*T, error) {
	var v T
	err := c.coll.FindOne(ctx, ownedFilter(ownerID, id)).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find in %s: %w", c.coll.Name(), err)
	}
	return &v, nil
}

func (c ownedCollection[T]) List(ctx context.Context, ownerID string) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := c.coll.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.coll.Name(), err)
	}
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.coll.Name(), err)
	}
	return out, nil
}

func (c ownedCollection[T]) Update(ctx context.Context, v *T) error {
	ownerID, id := (*v).Key()
	res, err := c.coll.ReplaceOne(ctx, ownedFilter(ownerID, id), v)
	if err != nil {
		return fmt.Errorf("failed to replace in %s: %w", c.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c ownedCollection[T]) Delete(ctx context.Context, ownerID, id string) error {
	res, err := c.coll.DeleteOne(ctx, ownedFilter(ownerID, id))
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", c.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
