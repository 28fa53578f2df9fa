// internal/app/store/posts/poststore.go
package poststore

import (
	"context"
	"time"

	"github.com/dalemusser/plume/internal/app/system/txn"
	"github.com/dalemusser/plume/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Store struct {
	db *mongo.Database
	c  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("posts")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Post, error) {
	var p models.Post
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// Create persists a new post. The author fields are fixed by the caller from
// the acting identity, never from client input. CreatedAt is set once here
// and is never touched again.
func (s *Store) Create(ctx context.Context, p models.Post) (models.Post, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// UpdateContent edits a post in place: text, group reference, and (when
// imagePath is non-empty) the image. CreatedAt and the author are immutable.
func (s *Store) UpdateContent(ctx context.Context, id primitive.ObjectID, text string, groupID *primitive.ObjectID, imagePath, imageName string) error {
	set := bson.M{
		"text":       text,
		"updated_at": time.Now().UTC(),
	}
	unset := bson.M{}
	if groupID != nil {
		set["group_id"] = *groupID
	} else {
		unset["group_id"] = ""
	}
	if imagePath != "" {
		set["image_path"] = imagePath
		set["image_name"] = imageName
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := s.c.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a post and its comments (cascade).
func (s *Store) Delete(ctx context.Context, log *zap.Logger, id primitive.ObjectID) error {
	return txn.Run(ctx, s.db, log, func(ctx context.Context) error {
		if _, err := s.db.Collection("comments").DeleteMany(ctx, bson.M{"post_id": id}); err != nil {
			return err
		}
		res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return mongo.ErrNoDocuments
		}
		return nil
	})
}

// CountByAuthor returns the author's total post count (profile header).
func (s *Store) CountByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"author_id": authorID})
}
