package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const usersCollection = "users"

// NewClient connects to MongoDB and verifies the connection with a ping.
func NewClient(ctx context.Context, uri string, connectTimeout time.Duration) (*mongo.Client, error) {
	if uri == "" {
		return nil, errors.New("mongo connection uri is empty")
	}

	opts := options.Client().ApplyURI(uri)
	if connectTimeout > 0 {
		opts.SetServerSelectionTimeout(connectTimeout)
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeoutOrDefault(connectTimeout))
	defer cancel()

	client, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 3*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(pingCtx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the unique indexes backing the userId, userName and
// email uniqueness guarantees.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if db == nil {
		return errors.New("mongo: database not initialised")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userName", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("mongo: ensure user indexes: %w", err)
	}
	return nil
}

func timeoutOrDefault(value time.Duration) time.Duration {
	if value > 0 {
		return value
	}
	return 10 * time.Second
}
