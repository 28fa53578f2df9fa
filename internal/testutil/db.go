// internal/testutil/db.go
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// TestContext returns a context with a timeout suitable for test DB calls.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// SetupTestDB connects to a local MongoDB and hands the test a throwaway
// database that is dropped on cleanup. Tests are skipped when no server is
// reachable (set PLUME_TEST_MONGO_URI to point somewhere else).
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("PLUME_TEST_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("skipping: cannot connect to test MongoDB at %s: %v", uri, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		t.Skipf("skipping: test MongoDB at %s not reachable: %v", uri, err)
	}

	// One database per test so parallel packages never collide.
	name := fmt.Sprintf("plume_test_%d", time.Now().UnixNano())
	db := client.Database(name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	EnsureIndexes(t, db)

	return db
}

// EnsureIndexes creates the same unique indexes bootstrap creates in
// production, so store tests exercise real constraint behavior.
func EnsureIndexes(t *testing.T, db *mongo.Database) {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()

	unique := options.Index().SetUnique(true)

	if _, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username_ci", Value: 1}},
		Options: unique,
	}); err != nil {
		t.Fatalf("failed to create users index: %v", err)
	}
	if _, err := db.Collection("groups").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: unique,
	}); err != nil {
		t.Fatalf("failed to create groups index: %v", err)
	}
	if _, err := db.Collection("follows").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "author_id", Value: 1},
		},
		Options: unique,
	}); err != nil {
		t.Fatalf("failed to create follows index: %v", err)
	}
}
