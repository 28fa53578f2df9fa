// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection used by the whole app.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		PlumeMongoClient:   client,
		PlumeMongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the indexes Plume's stores rely on:
//
//   - users.username_ci unique — one account per case-folded username
//   - groups.slug unique — slugs are URL identity
//   - follows (user_id, author_id) unique — at most one edge per pair,
//     which is what makes the follow operation safely idempotent
//   - posts (created_at, _id) — the newest-first feed sort
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.PlumeMongoDatabase
	unique := options.Index().SetUnique(true)

	if _, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username_ci", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	if _, err := db.Collection("groups").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("groups index: %w", err)
	}

	if _, err := db.Collection("follows").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "author_id", Value: 1},
		},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("follows index: %w", err)
	}

	if _, err := db.Collection("posts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		},
	}); err != nil {
		return fmt.Errorf("posts index: %w", err)
	}

	logger.Info("schema indexes ensured")
	return nil
}
