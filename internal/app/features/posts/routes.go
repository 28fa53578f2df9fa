// internal/app/features/posts/routes.go
package posts

import (
	"github.com/dalemusser/plume/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes serves the posts feature; mounted under /posts.
// Reading is public; every mutation requires a session. Author-only checks
// (edit/delete) happen in the handlers via postpolicy.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// /create is registered before /{postID} so "create" never parses as an ID.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/create", h.ServeCreatePost)
		pr.Post("/create", h.HandleCreatePost)

		pr.Get("/{postID}/edit", h.ServeEditPost)
		pr.Post("/{postID}/edit", h.HandleEditPost)
		pr.Post("/{postID}/delete", h.HandleDeletePost)
		pr.Post("/{postID}/comment", h.HandleAddComment)
	})

	// VIEW
	r.Get("/{postID}", h.ServePostDetail)

	return r
}
