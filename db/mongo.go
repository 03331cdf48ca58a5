package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"car-blog/config"
	"car-blog/internal/logger"
)

const (
	CollectionBlogs = "blogs"
	CollectionUsers = "users"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	db         *mongo.Database
)

// Init initializes the global Mongo client and database using config values.
func Init(ctx context.Context) error {
	var initErr error
	clientOnce.Do(func() {
		cfg := config.GetConfig().Mongo
		cl, d, err := Connect(ctx, cfg.URI, cfg.Database)
		if err != nil {
			initErr = err
			return
		}
		client = cl
		db = d
		logger.InfoWithFields("MongoDB connected and indexes ensured", logger.Fields{
			"database": cfg.Database,
		})
	})
	return initErr
}

// Connect dials uri, pings the primary and ensures indexes on dbName.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cl, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := cl.Ping(ctx, readpref.Primary()); err != nil {
		_ = cl.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	d := cl.Database(dbName)
	if err := EnsureIndexes(ctx, d); err != nil {
		_ = cl.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo indexes: %w", err)
	}
	return cl, d, nil
}

func Client() *mongo.Client { return client }

func Database() *mongo.Database { return db }

// Disconnect closes the global client if it was initialized.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// Ping runs the ping command against the global database.
func Ping(ctx context.Context) error {
	if db == nil {
		return fmt.Errorf("mongo not initialized")
	}
	return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

func EnsureIndexes(ctx context.Context, d *mongo.Database) error {
	// users: unique email
	if _, err := d.Collection(CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_email").SetUnique(true),
	}); err != nil {
		return err
	}

	// blogs: owner lookups and newest-first listing
	if _, err := d.Collection(CollectionBlogs).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("idx_owner_created_at"),
	}); err != nil {
		return err
	}
	if _, err := d.Collection(CollectionBlogs).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: -1}},
		Options: options.Index().SetName("idx_created_at_desc"),
	}); err != nil {
		return err
	}
	return nil
}
