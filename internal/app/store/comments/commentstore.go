// internal/app/store/comments/commentstore.go
package commentstore

import (
	"context"
	"time"

	"github.com/dalemusser/plume/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("comments")}
}

// Create persists a new comment linked to a post and its acting author.
// Comments are append-only; there is no update operation.
func (s *Store) Create(ctx context.Context, cm models.Comment) (models.Comment, error) {
	cm.ID = primitive.NewObjectID()
	cm.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, cm); err != nil {
		return models.Comment{}, err
	}
	return cm, nil
}

// ListByPost returns a post's comments oldest-first, the order a
// conversation reads in.
func (s *Store) ListByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})
	cur, err := s.c.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, err
	}
	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CountByPost returns the number of comments on a post.
func (s *Store) CountByPost(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"post_id": postID})
}
