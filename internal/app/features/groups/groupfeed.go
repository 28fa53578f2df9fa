// internal/app/features/groups/groupfeed.go
package groups

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	"github.com/dalemusser/plume/internal/app/features/shared"
	groupstore "github.com/dalemusser/plume/internal/app/store/groups"
	"github.com/dalemusser/plume/internal/app/store/queries/feedqueries"
	"github.com/dalemusser/plume/internal/app/system/normalize"
	"github.com/dalemusser/plume/internal/app/system/paging"
	"github.com/dalemusser/plume/internal/app/system/timeouts"
	"github.com/dalemusser/plume/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

type groupFeedData struct {
	viewdata.BaseVM
	GroupTitle       string
	GroupDescription string
	Posts            []shared.PostVM
	Pager            shared.PagerVM
}

// ServeGroupFeed handles GET /group/{slug} — one group's posts, paginated.
// An unknown slug is a 404, not an empty feed.
func (h *Handler) ServeGroupFeed(w http.ResponseWriter, r *http.Request) {
	slug := normalize.QueryParam(chi.URLParam(r, "slug"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	group, err := groupstore.New(h.DB).GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, r, "No such group.", "/")
			return
		}
		h.ErrLog.LogServerError(w, r, "group lookup failed", err, "A database error occurred.", "/")
		return
	}

	page, err := feedqueries.New(h.DB).ByGroup(ctx, group.ID, paging.ParsePage(r))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "group feed query failed", err, "A database error occurred.", "/")
		return
	}

	data := groupFeedData{
		BaseVM:           viewdata.NewBaseVM(r, group.Title, "/"),
		GroupTitle:       group.Title,
		GroupDescription: group.Description,
	}
	data.Posts, data.Pager = shared.NewFeedVM(page)

	templates.Render(w, r, "group_feed", data)
}
