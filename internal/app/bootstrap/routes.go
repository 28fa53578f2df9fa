// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/plume/internal/app/features/errors"
	feedfeature "github.com/dalemusser/plume/internal/app/features/feed"
	groupsfeature "github.com/dalemusser/plume/internal/app/features/groups"
	healthfeature "github.com/dalemusser/plume/internal/app/features/health"
	homefeature "github.com/dalemusser/plume/internal/app/features/home"
	loginfeature "github.com/dalemusser/plume/internal/app/features/login"
	logoutfeature "github.com/dalemusser/plume/internal/app/features/logout"
	postsfeature "github.com/dalemusser/plume/internal/app/features/posts"
	profilefeature "github.com/dalemusser/plume/internal/app/features/profile"
	"github.com/dalemusser/plume/internal/app/system/auth"
	"github.com/dalemusser/plume/internal/app/system/feedcache"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connection, schema setup, and
// Startup have completed. Plume initializes the template engine, applies
// session + CSRF middleware, and mounts the feature routers: global feed,
// group feeds, profiles, posts, followed feed, auth, and health.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Storage provider for post images.
	files, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.StorageLocalPath,
		BaseURL:  appCfg.StorageLocalURL,
	})
	if err != nil {
		logger.Error("storage init failed", zap.Error(err))
		return nil, err
	}

	// Render cache for the global feed.
	cache, err := feedcache.New(appCfg.FeedCacheTTL)
	if err != nil {
		logger.Error("feed cache init failed", zap.Error(err))
		return nil, err
	}

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	db := deps.PlumeMongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// CSRF protection on every form post. The token rides in BaseVM.
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrf.Secure(secure), csrf.Path("/")))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.PlumeMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Uploaded post images (local storage backend)
	r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))

	// Global feed (TTL-cached for anonymous visitors)
	homeHandler := homefeature.NewHandler(db, errLog, logger)
	r.Mount("/", homefeature.Routes(homeHandler, cache))

	// Authentication
	loginHandler := loginfeature.NewHandler(db, sessionMgr, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))
	r.Mount("/signup", loginfeature.SignupRoutes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Group feeds (public) and group management (admin)
	groupsHandler := groupsfeature.NewHandler(db, errLog, logger)
	r.Mount("/group", groupsfeature.FeedRoutes(groupsHandler))
	r.Mount("/groups", groupsfeature.Routes(groupsHandler, sessionMgr))

	// Author profiles + follow/unfollow
	profileHandler := profilefeature.NewHandler(db, errLog, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, sessionMgr))

	// Posts: detail, create, edit, delete, comments
	postsHandler := postsfeature.NewHandler(db, files, errLog, logger)
	r.Mount("/posts", postsfeature.Routes(postsHandler, sessionMgr))

	// Followed-authors feed
	feedHandler := feedfeature.NewHandler(db, errLog, logger)
	r.Mount("/follow", feedfeature.Routes(feedHandler, sessionMgr))

	return r, nil
}
