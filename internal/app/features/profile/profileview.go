// internal/app/features/profile/profileview.go
package profile

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	"github.com/dalemusser/plume/internal/app/features/shared"
	followstore "github.com/dalemusser/plume/internal/app/store/follows"
	"github.com/dalemusser/plume/internal/app/store/queries/feedqueries"
	userstore "github.com/dalemusser/plume/internal/app/store/users"
	"github.com/dalemusser/plume/internal/app/system/authz"
	"github.com/dalemusser/plume/internal/app/system/normalize"
	"github.com/dalemusser/plume/internal/app/system/paging"
	"github.com/dalemusser/plume/internal/app/system/timeouts"
	"github.com/dalemusser/plume/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

type profileData struct {
	viewdata.BaseVM
	Author     string
	AuthorFull string
	PostCount  int64
	IsSelf     bool
	Following  bool
	Posts      []shared.PostVM
	Pager      shared.PagerVM
}

// ServeProfile handles GET /profile/{username}: the author's posts plus
// follow state for the current viewer. Unknown usernames are 404.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	username := normalize.Username(chi.URLParam(r, "username"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	author, err := userstore.New(h.DB).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, r, "No such user.", "/")
			return
		}
		h.ErrLog.LogServerError(w, r, "profile lookup failed", err, "A database error occurred.", "/")
		return
	}

	page, err := feedqueries.New(h.DB).ByAuthor(ctx, author.ID, paging.ParsePage(r))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "author feed query failed", err, "A database error occurred.", "/")
		return
	}

	data := profileData{
		BaseVM:     viewdata.NewBaseVM(r, author.Username, "/"),
		Author:     author.Username,
		AuthorFull: author.FullName,
		PostCount:  page.Total,
	}
	data.Posts, data.Pager = shared.NewFeedVM(page)

	// Anonymous viewers see the profile with Following == false.
	if _, _, viewerID, ok := authz.UserCtx(r); ok {
		data.IsSelf = viewerID == author.ID
		if !data.IsSelf {
			following, err := followstore.New(h.DB).Exists(ctx, viewerID, author.ID)
			if err != nil {
				h.ErrLog.LogServerError(w, r, "follow lookup failed", err, "A database error occurred.", "/")
				return
			}
			data.Following = following
		}
	}

	templates.Render(w, r, "profile", data)
}
