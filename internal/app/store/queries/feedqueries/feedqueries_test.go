package feedqueries

import (
	"fmt"
	"testing"

	"github.com/dalemusser/plume/internal/app/system/paging"
	"github.com/dalemusser/plume/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGlobalPaginates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	feed := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fx.CreateMember(ctx, "author")
	for i := 0; i < 13; i++ {
		fx.CreatePost(ctx, author, fmt.Sprintf("post %d", i), nil)
	}

	page1, err := feed.Global(ctx, 1)
	if err != nil {
		t.Fatalf("page 1 failed: %v", err)
	}
	if len(page1.Items) != paging.PageSize {
		t.Errorf("expected full first page, got %d items", len(page1.Items))
	}
	if page1.Total != 13 || page1.Pages != 2 {
		t.Errorf("expected 13 posts over 2 pages, got total=%d pages=%d", page1.Total, page1.Pages)
	}
	if page1.Items[0].Text != "post 12" {
		t.Errorf("expected newest post first, got %q", page1.Items[0].Text)
	}

	page2, err := feed.Global(ctx, 2)
	if err != nil {
		t.Fatalf("page 2 failed: %v", err)
	}
	if len(page2.Items) != 3 {
		t.Errorf("expected 3 items on last page, got %d", len(page2.Items))
	}

	// A request past the end clamps to the last page instead of erroring.
	past, err := feed.Global(ctx, 99)
	if err != nil {
		t.Fatalf("past-end page failed: %v", err)
	}
	if past.Number != 2 || len(past.Items) != 3 {
		t.Errorf("expected clamp to page 2, got page %d with %d items", past.Number, len(past.Items))
	}
}

func TestGlobalEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	feed := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	page, err := feed.Global(ctx, 1)
	if err != nil {
		t.Fatalf("empty feed failed: %v", err)
	}
	if len(page.Items) != 0 || page.Pages != 1 || page.Number != 1 {
		t.Errorf("empty feed should be one empty page, got %+v", page)
	}
}

func TestByGroupFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	feed := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fx.CreateMember(ctx, "author")
	cats := fx.CreateGroup(ctx, "Cats", "cats")
	fx.CreatePost(ctx, author, "in group", &cats.ID)
	fx.CreatePost(ctx, author, "ungrouped", nil)

	page, err := feed.ByGroup(ctx, cats.ID, 1)
	if err != nil {
		t.Fatalf("group feed failed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Text != "in group" {
		t.Errorf("group feed must only contain the group's posts: %+v", page.Items)
	}
}

func TestByAuthorFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	feed := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fx.CreateMember(ctx, "alice")
	bob := fx.CreateMember(ctx, "bob")
	fx.CreatePost(ctx, alice, "by alice", nil)
	fx.CreatePost(ctx, bob, "by bob", nil)

	page, err := feed.ByAuthor(ctx, alice.ID, 1)
	if err != nil {
		t.Fatalf("author feed failed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].AuthorID != alice.ID {
		t.Errorf("author feed must only contain the author's posts: %+v", page.Items)
	}
}

func TestByAuthorsFollowedFeed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	feed := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	followed := fx.CreateMember(ctx, "followed")
	stranger := fx.CreateMember(ctx, "stranger")
	fx.CreatePost(ctx, followed, "visible", nil)
	fx.CreatePost(ctx, stranger, "hidden", nil)

	page, err := feed.ByAuthors(ctx, []primitive.ObjectID{followed.ID}, 1)
	if err != nil {
		t.Fatalf("followed feed failed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Text != "visible" {
		t.Errorf("followed feed must only contain followed authors' posts: %+v", page.Items)
	}

	// Following nobody yields an empty page, not an error.
	empty, err := feed.ByAuthors(ctx, nil, 1)
	if err != nil {
		t.Fatalf("empty followed feed failed: %v", err)
	}
	if len(empty.Items) != 0 || empty.Total != 0 {
		t.Errorf("expected empty feed for no follows, got %+v", empty)
	}
}
