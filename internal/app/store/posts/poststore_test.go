package poststore

import (
	"errors"
	"testing"

	"github.com/dalemusser/plume/internal/domain/models"
	"github.com/dalemusser/plume/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestCreateSetsTimestamps(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fx.CreateMember(ctx, "author")

	created, err := store.Create(ctx, models.Post{
		Text:       "hello",
		AuthorID:   author.ID,
		AuthorName: author.Username,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps must be set on create")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Text != "hello" || got.AuthorID != author.ID {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestUpdateContentPreservesCreatedAt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fx.CreateMember(ctx, "author")
	group := fx.CreateGroup(ctx, "Cats", "cats")
	post := fx.CreatePost(ctx, author, "before", nil)

	if err := store.UpdateContent(ctx, post.ID, "after", &group.ID, "", ""); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := store.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Text != "after" {
		t.Errorf("expected text updated, got %q", got.Text)
	}
	if got.GroupID == nil || *got.GroupID != group.ID {
		t.Errorf("expected group set, got %v", got.GroupID)
	}
	if !got.CreatedAt.Equal(post.CreatedAt) {
		t.Errorf("created_at must never change on edit")
	}
}

func TestUpdateContentClearsGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fx.CreateMember(ctx, "author")
	group := fx.CreateGroup(ctx, "Cats", "cats")
	post := fx.CreatePost(ctx, author, "grouped", &group.ID)

	if err := store.UpdateContent(ctx, post.ID, "ungrouped", nil, "", ""); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := store.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.GroupID != nil {
		t.Errorf("expected group cleared, got %v", got.GroupID)
	}
}

func TestDeleteCascadesComments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fx.CreateMember(ctx, "author")
	reader := fx.CreateMember(ctx, "reader")
	doomed := fx.CreatePost(ctx, author, "doomed", nil)
	keep := fx.CreatePost(ctx, author, "kept", nil)
	fx.CreateComment(ctx, doomed, reader, "gone with the post")
	fx.CreateComment(ctx, keep, reader, "still here")

	if err := store.Delete(ctx, zap.NewNop(), doomed.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if n, _ := db.Collection("comments").CountDocuments(ctx, bson.M{"post_id": doomed.ID}); n != 0 {
		t.Errorf("comments on deleted post must be gone, got %d", n)
	}
	if n, _ := db.Collection("comments").CountDocuments(ctx, bson.M{"post_id": keep.ID}); n != 1 {
		t.Errorf("comments on other posts must survive, got %d", n)
	}

	_, err := store.GetByID(ctx, doomed.ID)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected post gone, got: %v", err)
	}
}
