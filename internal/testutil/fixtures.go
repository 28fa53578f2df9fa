// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/plume/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db      *mongo.Database
	t       *testing.T
	postSeq int
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given username and role.
func (f *Fixtures) CreateUser(ctx context.Context, username, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		Username:   username,
		UsernameCI: text.Fold(username),
		FullName:   username,
		Role:       role,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateMember creates a test user with the member role.
func (f *Fixtures) CreateMember(ctx context.Context, username string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, username, "member")
}

// CreateAdmin creates a test user with the admin role.
func (f *Fixtures) CreateAdmin(ctx context.Context, username string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, username, "admin")
}

// CreateGroup creates a test group with the given title and slug.
func (f *Fixtures) CreateGroup(ctx context.Context, title, slug string) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Slug:        slug,
		Description: "Test group description",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// CreatePost creates a test post for the given author, optionally in a group.
// Successive posts get strictly increasing timestamps so feed ordering is
// deterministic.
func (f *Fixtures) CreatePost(ctx context.Context, author models.User, text string, groupID *primitive.ObjectID) models.Post {
	f.t.Helper()

	f.postSeq++
	created := time.Now().UTC().Add(time.Duration(f.postSeq) * time.Millisecond)
	post := models.Post{
		ID:         primitive.NewObjectID(),
		Text:       text,
		AuthorID:   author.ID,
		AuthorName: author.Username,
		GroupID:    groupID,
		CreatedAt:  created,
		UpdatedAt:  created,
	}

	if _, err := f.db.Collection("posts").InsertOne(ctx, post); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

// CreateComment creates a test comment on a post.
func (f *Fixtures) CreateComment(ctx context.Context, post models.Post, author models.User, text string) models.Comment {
	f.t.Helper()

	comment := models.Comment{
		ID:         primitive.NewObjectID(),
		PostID:     post.ID,
		AuthorID:   author.ID,
		AuthorName: author.Username,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := f.db.Collection("comments").InsertOne(ctx, comment); err != nil {
		f.t.Fatalf("failed to create test comment: %v", err)
	}
	return comment
}

// CreateFollow creates a follow edge from user to author.
func (f *Fixtures) CreateFollow(ctx context.Context, user, author models.User) models.Follow {
	f.t.Helper()

	follow := models.Follow{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		AuthorID:  author.ID,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("follows").InsertOne(ctx, follow); err != nil {
		f.t.Fatalf("failed to create test follow: %v", err)
	}
	return follow
}
