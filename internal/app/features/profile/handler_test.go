package profile_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	"github.com/dalemusser/plume/internal/app/features/profile"
	"github.com/dalemusser/plume/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*profile.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return profile.NewHandler(db, uierrors.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db)
}

func TestHandleFollow_CreatesEdge(t *testing.T) {
	h, fx := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	reader := fx.CreateMember(ctx, "reader")
	author := fx.CreateMember(ctx, "author")

	req := testutil.WithUser(testutil.NewRequest(t, "POST", "/profile/author/follow", url.Values{}), reader)
	req = testutil.WithURLParams(req, map[string]string{"username": "author"})
	rec := httptest.NewRecorder()

	h.HandleFollow(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/profile/author" {
		t.Errorf("expected redirect to profile, got %q", loc)
	}
	n, _ := fx.DB().Collection("follows").CountDocuments(ctx, bson.M{
		"user_id": reader.ID, "author_id": author.ID,
	})
	if n != 1 {
		t.Errorf("expected one follow edge, got %d", n)
	}
}

func TestHandleFollow_TwiceStillOneEdge(t *testing.T) {
	h, fx := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	reader := fx.CreateMember(ctx, "reader")
	fx.CreateMember(ctx, "author")

	for i := 0; i < 2; i++ {
		req := testutil.WithUser(testutil.NewRequest(t, "POST", "/profile/author/follow", url.Values{}), reader)
		req = testutil.WithURLParams(req, map[string]string{"username": "author"})
		rec := httptest.NewRecorder()

		h.HandleFollow(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("attempt %d: expected 303, got %d", i+1, rec.Code)
		}
	}

	n, _ := fx.DB().Collection("follows").CountDocuments(ctx, bson.M{"user_id": reader.ID})
	if n != 1 {
		t.Errorf("repeat follow must not duplicate the edge, got %d", n)
	}
}

func TestHandleFollow_SelfIsNoOp(t *testing.T) {
	h, fx := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	user := fx.CreateMember(ctx, "narcissus")

	req := testutil.WithUser(testutil.NewRequest(t, "POST", "/profile/narcissus/follow", url.Values{}), user)
	req = testutil.WithURLParams(req, map[string]string{"username": "narcissus"})
	rec := httptest.NewRecorder()

	h.HandleFollow(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("self-follow must redirect quietly, got %d", rec.Code)
	}
	if n, _ := fx.DB().Collection("follows").CountDocuments(ctx, bson.M{}); n != 0 {
		t.Errorf("self-follow must not create an edge, got %d", n)
	}
}

func TestHandleUnfollow_RemovesEdge(t *testing.T) {
	h, fx := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	reader := fx.CreateMember(ctx, "reader")
	author := fx.CreateMember(ctx, "author")
	fx.CreateFollow(ctx, reader, author)

	req := testutil.WithUser(testutil.NewRequest(t, "POST", "/profile/author/unfollow", url.Values{}), reader)
	req = testutil.WithURLParams(req, map[string]string{"username": "author"})
	rec := httptest.NewRecorder()

	h.HandleUnfollow(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", rec.Code)
	}
	if n, _ := fx.DB().Collection("follows").CountDocuments(ctx, bson.M{}); n != 0 {
		t.Errorf("expected edge removed, got %d", n)
	}
}

func TestHandleUnfollow_MissingEdgeIsNotFound(t *testing.T) {
	h, fx := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	reader := fx.CreateMember(ctx, "reader")
	fx.CreateMember(ctx, "author")

	req := testutil.WithUser(testutil.NewRequest(t, "POST", "/profile/author/unfollow", url.Values{}), reader)
	req = testutil.WithURLParams(req, map[string]string{"username": "author"})
	rec := httptest.NewRecorder()

	// The not-found render may panic without a booted template engine; the
	// assertion is the 404 status written before the render.
	func() {
		defer func() { _ = recover() }()
		h.HandleUnfollow(rec, req)
	}()

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unfollowing a non-followed author must 404, got %d", rec.Code)
	}
}
