package database

import (
	"context"
	"fmt"
	"time"

	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/infrastructure/repositories"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// OpenMongo connects to MongoDB, pings the primary and returns the database handle
func OpenMongo(ctx context.Context, uri, name string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(name), nil
}

// EnsureMongoIndexes creates the lookup indexes used by the account and post stores.
// Uniqueness stays a business rule because DELETED accounts keep their names.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	accounts := []mongo.IndexModel{
		{Keys: bson.D{{Key: domain.FieldUsername, Value: 1}, {Key: domain.FieldStatus, Value: 1}}},
		{Keys: bson.D{{Key: domain.FieldEmail, Value: 1}, {Key: domain.FieldStatus, Value: 1}}},
	}
	if _, err := db.Collection(repositories.AccountsCollection).Indexes().CreateMany(ctx, accounts); err != nil {
		return fmt.Errorf("account indexes: %w", err)
	}

	posts := []mongo.IndexModel{
		{Keys: bson.D{{Key: domain.FieldOwnerID, Value: 1}}},
		{Keys: bson.D{{Key: domain.FieldPublished, Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := db.Collection(repositories.PostsCollection).Indexes().CreateMany(ctx, posts); err != nil {
		return fmt.Errorf("post indexes: %w", err)
	}
	return nil
}
