// internal/app/features/feed/routes.go
package feed

import (
	"github.com/dalemusser/plume/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes serves the followed-authors feed; mounted under /follow.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeFollowFeed)
	})
	return r
}
