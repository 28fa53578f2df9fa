// internal/app/features/feed/handler.go
package feed

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	"github.com/dalemusser/plume/internal/app/features/shared"
	followstore "github.com/dalemusser/plume/internal/app/store/follows"
	"github.com/dalemusser/plume/internal/app/store/queries/feedqueries"
	"github.com/dalemusser/plume/internal/app/system/authz"
	"github.com/dalemusser/plume/internal/app/system/paging"
	"github.com/dalemusser/plume/internal/app/system/timeouts"
	"github.com/dalemusser/plume/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the followed-authors feed.
type Handler struct {
	DB     *mongo.Database
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		ErrLog: errLog,
		Log:    logger,
	}
}

type followFeedData struct {
	viewdata.BaseVM
	FollowingAnyone bool
	Posts           []shared.PostVM
	Pager           shared.PagerVM
}

// ServeFollowFeed handles GET /follow — posts from the authors the signed-in
// viewer follows. Following nobody shows an empty feed, not an error.
func (h *Handler) ServeFollowFeed(w http.ResponseWriter, r *http.Request) {
	_, _, viewerID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	authorIDs, err := followstore.New(h.DB).AuthorIDs(ctx, viewerID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "follow list failed", err, "A database error occurred.", "/")
		return
	}

	page, err := feedqueries.New(h.DB).ByAuthors(ctx, authorIDs, paging.ParsePage(r))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "followed feed query failed", err, "A database error occurred.", "/")
		return
	}

	data := followFeedData{
		BaseVM:          viewdata.NewBaseVM(r, "Following", "/"),
		FollowingAnyone: len(authorIDs) > 0,
	}
	data.Posts, data.Pager = shared.NewFeedVM(page)

	templates.Render(w, r, "follow_feed", data)
}
