// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, logging,
// CORS, body limits); AppConfig is everything specific to Plume.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: plume-session)
	SessionDomain string // Cookie domain (blank means current host)

	// CSRF protection
	CSRFKey string // 32-byte key for gorilla/csrf (must be strong in production)

	// File storage configuration for post images
	StorageLocalPath string // Local storage path (e.g., "./uploads/images")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files/images")

	// FeedCacheTTL is how long rendered global-feed pages stay cached.
	FeedCacheTTL time.Duration
}
