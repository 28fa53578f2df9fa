package posts_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	"github.com/dalemusser/plume/internal/app/features/posts"
	"github.com/dalemusser/plume/internal/domain/models"
	"github.com/dalemusser/plume/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Storage is nil in these tests; no form here carries an image, so the
// upload path is never reached.
func newTestHandler(t *testing.T) (*posts.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return posts.NewHandler(db, nil, uierrors.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db)
}

func TestHandleCreatePost_Success(t *testing.T) {
	h, fx := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	author := fx.CreateMember(ctx, "author")

	form := url.Values{"text": {"hello world"}}
	req := testutil.WithUser(testutil.NewRequest(t, "POST", "/posts/create", form), author)
	rec := httptest.NewRecorder()

	h.HandleCreatePost(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/profile/author" {
		t.Errorf("expected redirect to the author's profile, got %q", loc)
	}

	var created models.Post
	if err := fx.DB().Collection("posts").FindOne(ctx, bson.M{}).Decode(&created); err != nil {
		t.Fatalf("expected a post in the database: %v", err)
	}
	if created.Text != "hello world" {
		t.Errorf("text: got %q", created.Text)
	}
	// Author identity comes from the session, never the form.
	if created.AuthorID != author.ID || created.AuthorName != "author" {
		t.Errorf("author fields wrong: %+v", created)
	}
}

func TestHandleCreatePost_EmptyTextRejected(t *testing.T) {
	h, fx := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	author := fx.CreateMember(ctx, "author")

	form := url.Values{"text": {"   \n\t  "}}
	req := testutil.WithUser(testutil.NewRequest(t, "POST", "/posts/create", form), author)
	rec := httptest.NewRecorder()

	// The form re-render may panic without a booted template engine; the
	// assertion is that nothing was persisted.
	func() {
		defer func() { _ = recover() }()
		h.HandleCreatePost(rec, req)
	}()

	if n, _ := fx.DB().Collection("posts").CountDocuments(ctx, bson.M{}); n != 0 {
		t.Errorf("whitespace-only text must not create a post, found %d", n)
	}
}

func TestHandleEditPost_NonAuthorRedirectsUnchanged(t *testing.T) {
	h, fx := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	author := fx.CreateMember(ctx, "author")
	intruder := fx.CreateMember(ctx, "intruder")
	post := fx.CreatePost(ctx, author, "original text", nil)

	form := url.Values{"text": {"hijacked"}}
	req := testutil.WithUser(testutil.NewRequest(t, "POST", "/posts/"+post.ID.Hex()+"/edit", form), intruder)
	req = testutil.WithURLParams(req, map[string]string{"postID": post.ID.Hex()})
	rec := httptest.NewRecorder()

	h.HandleEditPost(rec, req)

	// A non-author is quietly bounced to the detail page, not shown an error.
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/posts/"+post.ID.Hex() {
		t.Errorf("expected redirect to the post, got %q", loc)
	}

	var got models.Post
	if err := fx.DB().Collection("posts").FindOne(ctx, bson.M{"_id": post.ID}).Decode(&got); err != nil {
		t.Fatalf("post lookup failed: %v", err)
	}
	if got.Text != "original text" {
		t.Errorf("non-author edit must not change the post, got %q", got.Text)
	}
}

func TestHandleEditPost_AuthorUpdates(t *testing.T) {
	h, fx := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	author := fx.CreateMember(ctx, "author")
	post := fx.CreatePost(ctx, author, "before", nil)

	form := url.Values{"text": {"after"}}
	req := testutil.WithUser(testutil.NewRequest(t, "POST", "/posts/"+post.ID.Hex()+"/edit", form), author)
	req = testutil.WithURLParams(req, map[string]string{"postID": post.ID.Hex()})
	rec := httptest.NewRecorder()

	h.HandleEditPost(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}

	var got models.Post
	if err := fx.DB().Collection("posts").FindOne(ctx, bson.M{"_id": post.ID}).Decode(&got); err != nil {
		t.Fatalf("post lookup failed: %v", err)
	}
	if got.Text != "after" {
		t.Errorf("expected text updated, got %q", got.Text)
	}
	if !got.CreatedAt.Equal(post.CreatedAt) {
		t.Error("created_at must never change on edit")
	}
}

func TestHandleDeletePost_CascadesComments(t *testing.T) {
	h, fx := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	author := fx.CreateMember(ctx, "author")
	reader := fx.CreateMember(ctx, "reader")
	post := fx.CreatePost(ctx, author, "doomed", nil)
	fx.CreateComment(ctx, post, reader, "gone too")

	req := testutil.WithUser(testutil.NewRequest(t, "POST", "/posts/"+post.ID.Hex()+"/delete", url.Values{}), author)
	req = testutil.WithURLParams(req, map[string]string{"postID": post.ID.Hex()})
	rec := httptest.NewRecorder()

	h.HandleDeletePost(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/profile/author" {
		t.Errorf("expected redirect to profile, got %q", loc)
	}
	if n, _ := fx.DB().Collection("posts").CountDocuments(ctx, bson.M{}); n != 0 {
		t.Errorf("expected post deleted, found %d", n)
	}
	if n, _ := fx.DB().Collection("comments").CountDocuments(ctx, bson.M{}); n != 0 {
		t.Errorf("expected comments cascade-deleted, found %d", n)
	}
}

func TestHandleAddComment_Success(t *testing.T) {
	h, fx := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	author := fx.CreateMember(ctx, "author")
	reader := fx.CreateMember(ctx, "reader")
	post := fx.CreatePost(ctx, author, "a post", nil)

	form := url.Values{"text": {"nice post"}}
	req := testutil.WithUser(testutil.NewRequest(t, "POST", "/posts/"+post.ID.Hex()+"/comment", form), reader)
	req = testutil.WithURLParams(req, map[string]string{"postID": post.ID.Hex()})
	rec := httptest.NewRecorder()

	h.HandleAddComment(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/posts/"+post.ID.Hex() {
		t.Errorf("expected redirect back to the post, got %q", loc)
	}

	var created models.Comment
	if err := fx.DB().Collection("comments").FindOne(ctx, bson.M{}).Decode(&created); err != nil {
		t.Fatalf("expected a comment in the database: %v", err)
	}
	if created.PostID != post.ID || created.AuthorName != "reader" {
		t.Errorf("comment fields wrong: %+v", created)
	}
}

func TestHandleAddComment_MissingPostIs404(t *testing.T) {
	h, fx := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	reader := fx.CreateMember(ctx, "reader")

	form := url.Values{"text": {"into the void"}}
	req := testutil.WithUser(testutil.NewRequest(t, "POST", "/posts/ffffffffffffffffffffffff/comment", form), reader)
	req = testutil.WithURLParams(req, map[string]string{"postID": "ffffffffffffffffffffffff"})
	rec := httptest.NewRecorder()

	func() {
		defer func() { _ = recover() }()
		h.HandleAddComment(rec, req)
	}()

	if rec.Code != http.StatusNotFound {
		t.Fatalf("commenting on a missing post must 404, got %d", rec.Code)
	}
	if n, _ := fx.DB().Collection("comments").CountDocuments(ctx, bson.M{}); n != 0 {
		t.Errorf("no comment may be created for a missing post, found %d", n)
	}
}
