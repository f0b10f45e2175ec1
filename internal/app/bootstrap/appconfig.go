// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level and format, CORS, and request body limits.
// AppConfig is where everything specific to TrainTrack lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max driver connection pool size
	MongoMinPoolSize uint64 // Min driver connection pool size

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: traintrack-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Session lifetime before re-login is required

	// Email/SMTP configuration. When MailSMTPHost is blank, decision
	// emails are logged instead of delivered (local development).
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty for unauthenticated relays)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., noreply@traintrack.app)
	MailFromName string // From display name (e.g., TrainTrack)

	// Base URL and display name used in outgoing email
	BaseURL  string // e.g., "https://traintrack.app" or "http://localhost:3000"
	SiteName string // Display name used in email subjects and bodies

	// Activity logging policy per event category:
	// "all" (db + log), "db", "log", or "off"
	ActivityLogAuth  string
	ActivityLogAdmin string

	// Activity log retention and purge cadence
	ActivityRetention     time.Duration // Entries older than this are purged
	ActivityPurgeInterval time.Duration // How often the purge worker runs

	// Admin bootstrap: creates or promotes this account to admin on startup
	AdminEmail string
}
