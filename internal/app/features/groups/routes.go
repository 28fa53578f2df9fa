// internal/app/features/groups/routes.go
package groups

import (
	"github.com/dalemusser/plume/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// FeedRoutes serves the public per-group feed; mounted under /group.
func FeedRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{slug}", h.ServeGroupFeed)
	return r
}

// Routes serves the admin management pages; mounted under /groups.
// Role checks happen in the handlers so non-admins get a friendly
// forbidden page rather than a bare status.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		// LIST
		pr.Get("/", h.ServeGroupsList)

		// CREATE
		pr.Get("/new", h.ServeNewGroup)
		pr.Post("/new", h.HandleCreateGroup)

		// EDIT
		pr.Get("/{id}/edit", h.ServeEditGroup)
		pr.Post("/{id}/edit", h.HandleEditGroup)

		// DELETE
		pr.Post("/{id}/delete", h.HandleDeleteGroup)
	})

	return r
}
