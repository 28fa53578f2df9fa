// internal/app/features/home/handler.go
package home

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	"github.com/dalemusser/plume/internal/app/features/shared"
	"github.com/dalemusser/plume/internal/app/store/queries/feedqueries"
	"github.com/dalemusser/plume/internal/app/system/paging"
	"github.com/dalemusser/plume/internal/app/system/timeouts"
	"github.com/dalemusser/plume/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the global feed on the landing page.
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

type feedData struct {
	viewdata.BaseVM
	Posts []shared.PostVM
	Pager shared.PagerVM
}

// ServeRoot handles GET / — the paginated global feed, newest first.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	page, err := feedqueries.New(h.DB).Global(ctx, paging.ParsePage(r))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "global feed query failed", err, "A database error occurred.", "/")
		return
	}

	data := feedData{
		BaseVM: viewdata.NewBaseVM(r, "Latest posts", "/"),
	}
	data.Posts, data.Pager = shared.NewFeedVM(page)

	templates.Render(w, r, "home", data)
}
