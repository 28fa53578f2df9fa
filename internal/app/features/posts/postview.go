// internal/app/features/posts/postview.go
package posts

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	"github.com/dalemusser/plume/internal/app/features/shared"
	commentstore "github.com/dalemusser/plume/internal/app/store/comments"
	groupstore "github.com/dalemusser/plume/internal/app/store/groups"
	poststore "github.com/dalemusser/plume/internal/app/store/posts"
	"github.com/dalemusser/plume/internal/app/system/authz"
	"github.com/dalemusser/plume/internal/app/system/htmlsanitize"
	"github.com/dalemusser/plume/internal/app/system/navigation"
	"github.com/dalemusser/plume/internal/app/system/timeouts"
	"github.com/dalemusser/plume/internal/app/system/viewdata"
	"github.com/dalemusser/plume/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type commentVM struct {
	AuthorName string
	AuthorURL  string
	Text       template.HTML
	CreatedAt  time.Time
}

type postDetailData struct {
	viewdata.BaseVM
	Post       shared.PostVM
	GroupTitle string
	GroupURL   string
	CanEdit    bool
	Comments   []commentVM

	// CommentDraft and Error carry a rejected comment back into the form.
	CommentDraft string
}

// ServePostDetail handles GET /posts/{postID}: one post with its comments,
// oldest-first, plus the comment form for signed-in viewers.
func (h *Handler) ServePostDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	post, done := h.resolvePost(w, r, ctx)
	if done {
		return
	}

	h.renderDetail(w, r, ctx, post, "", "")
}

// renderDetail renders the detail page, optionally with a rejected comment
// draft and its validation message.
func (h *Handler) renderDetail(w http.ResponseWriter, r *http.Request, ctx context.Context, post models.Post, commentDraft, errMsg string) {
	comments, err := commentstore.New(h.DB).ListByPost(ctx, post.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "comment list failed", err, "A database error occurred.", "/")
		return
	}

	data := postDetailData{
		BaseVM:       viewdata.NewBaseVM(r, "Post by "+post.AuthorName, "/"),
		Post:         shared.NewPostVM(post),
		CommentDraft: commentDraft,
	}
	if errMsg != "" {
		data.SetError(errMsg)
	}

	if post.GroupID != nil {
		group, err := groupstore.New(h.DB).GetByID(ctx, *post.GroupID)
		switch {
		case err == nil:
			data.GroupTitle = group.Title
			data.GroupURL = "/group/" + group.Slug
		case errors.Is(err, mongo.ErrNoDocuments):
			// Group deleted between set-null passes; render without it.
		default:
			h.ErrLog.LogServerError(w, r, "group lookup failed", err, "A database error occurred.", "/")
			return
		}
	}

	if _, _, viewerID, ok := authz.UserCtx(r); ok {
		data.CanEdit = post.AuthorID == viewerID
	}

	for _, c := range comments {
		data.Comments = append(data.Comments, commentVM{
			AuthorName: c.AuthorName,
			AuthorURL:  navigation.ProfileURL(c.AuthorName),
			Text:       htmlsanitize.UGC(c.Text),
			CreatedAt:  c.CreatedAt,
		})
	}

	templates.Render(w, r, "post_detail", data)
}

// resolvePost loads the {postID} route target, rendering not-found or an
// error page itself. done reports whether a response was already written.
func (h *Handler) resolvePost(w http.ResponseWriter, r *http.Request, ctx context.Context) (models.Post, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "postID"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "No such post.", "/")
		return models.Post{}, true
	}

	post, err := poststore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, r, "No such post.", "/")
			return models.Post{}, true
		}
		h.ErrLog.LogServerError(w, r, "post lookup failed", err, "A database error occurred.", "/")
		return models.Post{}, true
	}
	return post, false
}
