// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/plume/internal/app/system/txn"
	"github.com/dalemusser/plume/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var ErrDuplicateUsername = errors.New("a user with this username already exists")

type Store struct {
	db *mongo.Database
	c  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("users")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByUsername resolves a username case-insensitively.
// Returns mongo.ErrNoDocuments when no such user exists.
func (s *Store) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"username_ci": text.Fold(username)}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.UsernameCI = text.Fold(u.Username)
	if u.Role == "" {
		u.Role = "member"
	}
	if u.Status == "" {
		u.Status = "active"
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, err
	}
	return u, nil
}

// Delete removes a user and everything hanging off them:
//
//   - the user's posts, and every comment on those posts
//   - the user's own comments on other posts
//   - every follow edge where the user is follower or followed
//
// The foreign-key cascades live here, not in the database, so they are spelled
// out explicitly and run inside a transaction where the deployment allows one.
func (s *Store) Delete(ctx context.Context, log *zap.Logger, id primitive.ObjectID) error {
	return txn.Run(ctx, s.db, log, func(ctx context.Context) error {
		posts := s.db.Collection("posts")
		comments := s.db.Collection("comments")
		follows := s.db.Collection("follows")

		// Collect the user's post IDs so their comments can go too.
		cur, err := posts.Find(ctx, bson.M{"author_id": id})
		if err != nil {
			return err
		}
		var ownPosts []struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.All(ctx, &ownPosts); err != nil {
			return err
		}
		postIDs := make([]primitive.ObjectID, 0, len(ownPosts))
		for _, p := range ownPosts {
			postIDs = append(postIDs, p.ID)
		}

		if len(postIDs) > 0 {
			if _, err := comments.DeleteMany(ctx, bson.M{"post_id": bson.M{"$in": postIDs}}); err != nil {
				return err
			}
		}
		if _, err := comments.DeleteMany(ctx, bson.M{"author_id": id}); err != nil {
			return err
		}
		if _, err := posts.DeleteMany(ctx, bson.M{"author_id": id}); err != nil {
			return err
		}
		if _, err := follows.DeleteMany(ctx, bson.M{"$or": []bson.M{
			{"user_id": id},
			{"author_id": id},
		}}); err != nil {
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
