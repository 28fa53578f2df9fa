package followstore

import (
	"errors"
	"testing"

	"github.com/dalemusser/plume/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestEnsureIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	reader := fx.CreateMember(ctx, "reader")
	author := fx.CreateMember(ctx, "author")

	if err := store.Ensure(ctx, reader.ID, author.ID); err != nil {
		t.Fatalf("first follow failed: %v", err)
	}
	if err := store.Ensure(ctx, reader.ID, author.ID); err != nil {
		t.Fatalf("repeat follow must succeed, got: %v", err)
	}

	n, err := store.Count(ctx, reader.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected exactly one follow edge, got %d", n)
	}
}

func TestEnsureIgnoresSelfFollow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateMember(ctx, "narcissus")

	if err := store.Ensure(ctx, user.ID, user.ID); err != nil {
		t.Fatalf("self-follow must be a silent no-op, got: %v", err)
	}

	n, err := store.Count(ctx, user.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("self-follow must not create an edge, got %d", n)
	}
}

func TestDeleteMissingEdgeIsNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	reader := fx.CreateMember(ctx, "reader")
	author := fx.CreateMember(ctx, "author")

	err := store.Delete(ctx, reader.ID, author.ID)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("unfollowing a non-followed author must be not-found, got: %v", err)
	}
}

func TestDeleteRemovesEdge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	reader := fx.CreateMember(ctx, "reader")
	author := fx.CreateMember(ctx, "author")
	fx.CreateFollow(ctx, reader, author)

	if err := store.Delete(ctx, reader.ID, author.ID); err != nil {
		t.Fatalf("unfollow failed: %v", err)
	}

	exists, err := store.Exists(ctx, reader.ID, author.ID)
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Error("edge must be gone after unfollow")
	}
}

func TestAuthorIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	reader := fx.CreateMember(ctx, "reader")
	a := fx.CreateMember(ctx, "alpha")
	b := fx.CreateMember(ctx, "beta")
	fx.CreateFollow(ctx, reader, a)
	fx.CreateFollow(ctx, reader, b)

	ids, err := store.AuthorIDs(ctx, reader.ID)
	if err != nil {
		t.Fatalf("author IDs failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 followed authors, got %d", len(ids))
	}
}
