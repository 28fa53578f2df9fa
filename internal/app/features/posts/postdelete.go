// internal/app/features/posts/postdelete.go
package posts

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	"github.com/dalemusser/plume/internal/app/policy/postpolicy"
	poststore "github.com/dalemusser/plume/internal/app/store/posts"
	"github.com/dalemusser/plume/internal/app/system/authz"
	"github.com/dalemusser/plume/internal/app/system/navigation"
	"github.com/dalemusser/plume/internal/app/system/timeouts"
)

// HandleDeletePost handles POST /posts/{postID}/delete.
//
// Author-only, like edit: a non-author is redirected to the detail page
// rather than shown an error. The post's comments go with it.
func (h *Handler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	_, username, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, done := h.resolvePost(w, r, ctx)
	if done {
		return
	}
	if !postpolicy.CanEdit(userID, post) {
		http.Redirect(w, r, navigation.PostURL(post.ID.Hex()), http.StatusSeeOther)
		return
	}

	if err := poststore.New(h.DB).Delete(ctx, h.Log, post.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "post delete failed", err, "Delete failed.", navigation.PostURL(post.ID.Hex()))
		return
	}

	http.Redirect(w, r, navigation.ProfileURL(username), http.StatusSeeOther)
}
