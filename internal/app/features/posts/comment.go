// internal/app/features/posts/comment.go
package posts

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	commentstore "github.com/dalemusser/plume/internal/app/store/comments"
	"github.com/dalemusser/plume/internal/app/system/authz"
	"github.com/dalemusser/plume/internal/app/system/inputval"
	"github.com/dalemusser/plume/internal/app/system/navigation"
	"github.com/dalemusser/plume/internal/app/system/normalize"
	"github.com/dalemusser/plume/internal/app/system/timeouts"
	"github.com/dalemusser/plume/internal/domain/models"
)

// addCommentInput defines validation rules for comment text.
type addCommentInput struct {
	Text string `validate:"required,max=2000" label:"Comment"`
}

// HandleAddComment handles POST /posts/{postID}/comment.
//
// Comments are append-only. An empty comment re-renders the detail page with
// the draft preserved; success redirects back to the detail page so the new
// comment shows in the thread.
func (h *Handler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	_, username, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		uierrors.RenderForbidden(w, r, "Bad request.", "/")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, done := h.resolvePost(w, r, ctx)
	if done {
		return
	}

	text := normalize.Text(r.FormValue("text"))

	input := addCommentInput{Text: text}
	if result := inputval.Validate(input); result.HasErrors() {
		h.renderDetail(w, r, ctx, post, text, result.First())
		return
	}

	_, err := commentstore.New(h.DB).Create(ctx, models.Comment{
		PostID:     post.ID,
		AuthorID:   userID,
		AuthorName: username,
		Text:       text,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "comment create failed", err, "Failed to add comment.", navigation.PostURL(post.ID.Hex()))
		return
	}

	http.Redirect(w, r, navigation.PostURL(post.ID.Hex()), http.StatusSeeOther)
}
