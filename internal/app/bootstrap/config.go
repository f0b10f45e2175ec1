// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for TrainTrack.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: TRAINTRACK_MONGO_URI, TRAINTRACK_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "traintrack", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "traintrack-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "720h", Desc: "Session lifetime (e.g., 720h, 24h)"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (blank logs emails instead of sending)"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@traintrack.app", Desc: "From email address"},
	{Name: "mail_from_name", Default: "TrainTrack", Desc: "From display name"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for email links"},
	{Name: "site_name", Default: "TrainTrack", Desc: "Display name used in outgoing email"},

	// Activity logging settings
	{Name: "activity_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "activity_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "activity_retention", Default: "2160h", Desc: "Activity log retention before purge (e.g., 2160h for 90 days)"},
	{Name: "activity_purge_interval", Default: "1h", Desc: "How often the activity purge worker runs"},

	// Admin bootstrap
	{Name: "admin_email", Default: "", Desc: "Email of the admin user (promotes/creates on startup)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, TRAINTRACK_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TRAINTRACK", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 30*24*time.Hour),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		BaseURL:  appValues.String("base_url"),
		SiteName: appValues.String("site_name"),

		ActivityLogAuth:       appValues.String("activity_log_auth"),
		ActivityLogAdmin:      appValues.String("activity_log_admin"),
		ActivityRetention:     appValues.Duration("activity_retention", 90*24*time.Hour),
		ActivityPurgeInterval: appValues.Duration("activity_purge_interval", time.Hour),

		AdminEmail: appValues.String("admin_email"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// TrainTrack validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.ActivityRetention <= 0 {
		return fmt.Errorf("activity_retention must be positive, got %s", appCfg.ActivityRetention)
	}
	if appCfg.ActivityPurgeInterval <= 0 {
		return fmt.Errorf("activity_purge_interval must be positive, got %s", appCfg.ActivityPurgeInterval)
	}

	switch appCfg.ActivityLogAuth {
	case "all", "db", "log", "off":
	default:
		return fmt.Errorf("activity_log_auth must be 'all', 'db', 'log', or 'off', got %q", appCfg.ActivityLogAuth)
	}
	switch appCfg.ActivityLogAdmin {
	case "all", "db", "log", "off":
	default:
		return fmt.Errorf("activity_log_admin must be 'all', 'db', 'log', or 'off', got %q", appCfg.ActivityLogAdmin)
	}

	return nil
}
