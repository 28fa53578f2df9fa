// internal/app/features/profile/routes.go
package profile

import (
	"github.com/dalemusser/plume/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes serves profile pages; mounted under /profile.
// Viewing is public; follow/unfollow require a session.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/{username}", h.ServeProfile)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Post("/{username}/follow", h.HandleFollow)
		pr.Post("/{username}/unfollow", h.HandleUnfollow)
	})

	return r
}
