// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS). AppConfig is everything specific to TeamDesk: the
// Mongo connection, session cookies, the availability policy, and the
// reconciliation worker cadence.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: teamdesk-session)
	SessionDomain string // Cookie domain (blank means current host)

	// AvailabilityPolicy selects how staffing conflicts are judged:
	// "block_any_overlap" or "capacity".
	AvailabilityPolicy string

	// Edge reconciliation worker
	ReconcileEnabled  bool
	ReconcileInterval time.Duration
}
