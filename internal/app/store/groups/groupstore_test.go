package groupstore

import (
	"errors"
	"testing"

	"github.com/dalemusser/plume/internal/domain/models"
	"github.com/dalemusser/plume/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestGetBySlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	created := fx.CreateGroup(ctx, "Cats", "cats")

	got, err := store.GetBySlug(ctx, "cats")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("lookup returned wrong group")
	}

	_, err = store.GetBySlug(ctx, "no-such-slug")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected not-found for unknown slug, got: %v", err)
	}
}

func TestCreateDuplicateSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Group{Title: "Cats", Slug: "cats"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := store.Create(ctx, models.Group{Title: "More Cats", Slug: "cats"})
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got: %v", err)
	}
}

func TestDeleteClearsPostGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fx.CreateMember(ctx, "author")
	group := fx.CreateGroup(ctx, "Cats", "cats")
	post := fx.CreatePost(ctx, author, "grouped post", &group.ID)

	if err := store.Delete(ctx, zap.NewNop(), group.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// The post survives; only its group reference is cleared.
	var got models.Post
	if err := db.Collection("posts").FindOne(ctx, bson.M{"_id": post.ID}).Decode(&got); err != nil {
		t.Fatalf("post must survive group deletion: %v", err)
	}
	if got.GroupID != nil {
		t.Errorf("expected group reference cleared, got %v", got.GroupID)
	}

	_, err := store.GetByID(ctx, group.ID)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected group gone, got: %v", err)
	}
}

func TestListOrdersByTitle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateGroup(ctx, "Zebras", "zebras")
	fx.CreateGroup(ctx, "Ants", "ants")

	groups, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Title != "Ants" || groups[1].Title != "Zebras" {
		t.Errorf("groups not ordered by title: %q, %q", groups[0].Title, groups[1].Title)
	}
}
