// internal/app/features/home/routes.go
package home

import (
	"github.com/dalemusser/plume/internal/app/system/feedcache"
	"github.com/go-chi/chi/v5"
)

// Routes serves the landing feed. The cache middleware only applies here:
// the global feed is the hottest anonymous page and tolerates the cache's
// staleness window.
func Routes(h *Handler, cache *feedcache.Cache) chi.Router {
	r := chi.NewRouter()
	r.With(cache.Middleware).Get("/", h.ServeRoot)
	return r
}
