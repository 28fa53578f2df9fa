// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/plume/internal/app/system/txn"
	"github.com/dalemusser/plume/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func optsSortByTitle() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
}

var ErrDuplicateSlug = errors.New("a group with this slug already exists")

type Store struct {
	db *mongo.Database
	c  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("groups")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// GetBySlug resolves a group by its URL slug.
// Returns mongo.ErrNoDocuments when no group has that slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// List returns all groups ordered by title, for the post form's group picker.
func (s *Store) List(ctx context.Context) ([]models.Group, error) {
	cur, err := s.c.Find(ctx, bson.M{}, optsSortByTitle())
	if err != nil {
		return nil, err
	}
	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, ErrDuplicateSlug
		}
		return models.Group{}, err
	}
	return g, nil
}

func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, title, slug, desc string) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
		// Description can be cleared (set to empty)
		"description": desc,
	}
	if strings.TrimSpace(title) != "" {
		set["title"] = title
	}
	if strings.TrimSpace(slug) != "" {
		set["slug"] = slug
	}
	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

// Delete removes a group and clears the group reference on its posts.
// The posts themselves survive (set-null, not cascade).
func (s *Store) Delete(ctx context.Context, log *zap.Logger, id primitive.ObjectID) error {
	return txn.Run(ctx, s.db, log, func(ctx context.Context) error {
		if _, err := s.db.Collection("posts").UpdateMany(ctx,
			bson.M{"group_id": id},
			bson.M{"$unset": bson.M{"group_id": ""}},
		); err != nil {
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
