// internal/app/features/profile/follow.go
package profile

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	followstore "github.com/dalemusser/plume/internal/app/store/follows"
	userstore "github.com/dalemusser/plume/internal/app/store/users"
	"github.com/dalemusser/plume/internal/app/system/authz"
	"github.com/dalemusser/plume/internal/app/system/navigation"
	"github.com/dalemusser/plume/internal/app/system/normalize"
	"github.com/dalemusser/plume/internal/app/system/timeouts"
	"github.com/dalemusser/plume/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleFollow handles POST /profile/{username}/follow.
//
// Following is idempotent: re-following an already-followed author succeeds
// and changes nothing. Following yourself is a silent no-op redirect.
func (h *Handler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	_, _, viewerID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	author, done := h.resolveAuthor(w, r, ctx)
	if done {
		return
	}

	if err := followstore.New(h.DB).Ensure(ctx, viewerID, author.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "follow failed", err, "A database error occurred.", navigation.ProfileURL(author.Username))
		return
	}

	http.Redirect(w, r, navigation.ProfileURL(author.Username), http.StatusSeeOther)
}

// HandleUnfollow handles POST /profile/{username}/unfollow.
//
// Unlike follow, unfollowing an author you do not follow is 404: the edge
// being removed must exist. Unfollowing yourself is a silent no-op redirect
// (no self-edge can exist to remove).
func (h *Handler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	_, _, viewerID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	author, done := h.resolveAuthor(w, r, ctx)
	if done {
		return
	}

	if viewerID == author.ID {
		http.Redirect(w, r, navigation.ProfileURL(author.Username), http.StatusSeeOther)
		return
	}

	if err := followstore.New(h.DB).Delete(ctx, viewerID, author.ID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, r, "You are not following this user.", navigation.ProfileURL(author.Username))
			return
		}
		h.ErrLog.LogServerError(w, r, "unfollow failed", err, "A database error occurred.", navigation.ProfileURL(author.Username))
		return
	}

	http.Redirect(w, r, navigation.ProfileURL(author.Username), http.StatusSeeOther)
}

// resolveAuthor loads the {username} route target, rendering not-found or an
// error page itself. done reports whether a response was already written.
func (h *Handler) resolveAuthor(w http.ResponseWriter, r *http.Request, ctx context.Context) (models.User, bool) {
	username := normalize.Username(chi.URLParam(r, "username"))

	author, err := userstore.New(h.DB).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, r, "No such user.", "/")
			return models.User{}, true
		}
		h.ErrLog.LogServerError(w, r, "user lookup failed", err, "A database error occurred.", "/")
		return models.User{}, true
	}
	return author, false
}
