// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes serves the sign-in pages; mounted under /login.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLoginForm)
	r.Post("/", h.HandleLogin)
	return r
}

// SignupRoutes serves account creation; mounted under /signup.
func SignupRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeSignupForm)
	r.Post("/", h.HandleSignup)
	return r
}
