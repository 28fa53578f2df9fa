// internal/app/store/follows/followstore.go
package followstore

import (
	"context"
	"time"

	"github.com/dalemusser/plume/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("follows")}
}

// Ensure makes sure exactly one follow edge (userID → authorID) exists.
//
// It is idempotent: following an already-followed author is success, not an
// error. A self-follow is silently ignored. Under a racing double-follow the
// unique (user_id, author_id) index rejects the second insert, which Ensure
// also absorbs — the store's uniqueness guarantee is what prevents duplicate
// edges, not this check.
func (s *Store) Ensure(ctx context.Context, userID, authorID primitive.ObjectID) error {
	if userID == authorID {
		return nil
	}
	f := models.Follow{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}
	count, err := s.c.CountDocuments(ctx, bson.M{"user_id": userID, "author_id": authorID})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		if wafflemongo.IsDup(err) {
			// Lost a race with a concurrent follow; the edge exists.
			return nil
		}
		return err
	}
	return nil
}

// Delete removes the exact (userID, authorID) edge.
//
// Unlike Ensure, a missing edge here is an error: it surfaces as
// mongo.ErrNoDocuments and callers render it as not-found. The asymmetry
// with the idempotent follow is intentional and covered by tests.
func (s *Store) Delete(ctx context.Context, userID, authorID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID, "author_id": authorID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Exists reports whether userID follows authorID.
func (s *Store) Exists(ctx context.Context, userID, authorID primitive.ObjectID) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"user_id": userID, "author_id": authorID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AuthorIDs returns the set of authors userID follows, for the followed feed.
func (s *Store) AuthorIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	var edges []models.Follow
	if err := cur.All(ctx, &edges); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.AuthorID)
	}
	return ids, nil
}

// Count returns the number of follow edges for a user (profile stats).
func (s *Store) Count(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"user_id": userID})
}
