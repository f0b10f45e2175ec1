// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	analyticsfeature "github.com/kevharv/traintrack/internal/app/features/analytics"
	approvalsfeature "github.com/kevharv/traintrack/internal/app/features/approvals"
	healthfeature "github.com/kevharv/traintrack/internal/app/features/health"
	loginfeature "github.com/kevharv/traintrack/internal/app/features/login"
	signupfeature "github.com/kevharv/traintrack/internal/app/features/signup"
	"github.com/kevharv/traintrack/internal/app/store/activity"
	coursestore "github.com/kevharv/traintrack/internal/app/store/courses"
	enrollmentstore "github.com/kevharv/traintrack/internal/app/store/enrollments"
	pendingstore "github.com/kevharv/traintrack/internal/app/store/pendingusers"
	rejectedstore "github.com/kevharv/traintrack/internal/app/store/rejectedusers"
	sessionstore "github.com/kevharv/traintrack/internal/app/store/sessions"
	userstore "github.com/kevharv/traintrack/internal/app/store/users"
	"github.com/kevharv/traintrack/internal/app/system/activitylog"
	"github.com/kevharv/traintrack/internal/app/system/approval"
	"github.com/kevharv/traintrack/internal/app/system/auth"
	"github.com/kevharv/traintrack/internal/app/system/mailer"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// TrainTrack applies session middleware and mounts the feature routers:
// health, signup, login/logout, pending-user approvals, and analytics.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(
		appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain,
		appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Stores
	db := deps.MongoDatabase
	users := userstore.New(db)
	pending := pendingstore.New(db)
	rejected := rejectedstore.New(db)
	courses := coursestore.New(db)
	sessions := sessionstore.New(db)
	enrollments := enrollmentstore.New(db)
	activityStore := activity.New(db)

	// Outgoing email. Without an SMTP host configured, decision emails go
	// to the log instead of the wire.
	var sender mailer.Sender
	if appCfg.MailSMTPHost != "" {
		sender = mailer.New(mailer.Config{
			Host:     appCfg.MailSMTPHost,
			Port:     appCfg.MailSMTPPort,
			Username: appCfg.MailSMTPUser,
			Password: appCfg.MailSMTPPass,
			From:     appCfg.MailFrom,
			FromName: appCfg.MailFromName,
		}, logger)
	} else {
		logger.Warn("no SMTP host configured, emails will be logged only")
		sender = &mailer.Console{Log: logger}
	}

	// Activity logging with per-category policy.
	activityLog := activitylog.New(activityStore, logger, activitylog.Config{
		Auth:  appCfg.ActivityLogAuth,
		Admin: appCfg.ActivityLogAdmin,
	})

	// The approval workflow service.
	approvalSvc := approval.NewService(
		deps.MongoClient, pending, users, rejected,
		sender, activityLog, appCfg.SiteName, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Public signup: submissions land in pendingUsers for admin review
	signupHandler := signupfeature.NewHandler(pending, users, activityLog, logger)
	r.Mount("/signup", signupfeature.Routes(signupHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(users, sessionMgr, activityLog, logger)
	r.Mount("/", loginfeature.Routes(loginHandler, sessionMgr))

	// Admin review of pending signups
	approvalsHandler := approvalsfeature.NewHandler(pending, approvalSvc, logger)
	r.Mount("/approvals", approvalsfeature.Routes(approvalsHandler, sessionMgr))

	// Reporting for admins and trainers
	analyticsHandler := analyticsfeature.NewHandler(
		users, pending, courses, sessions, enrollments, activityStore, logger)
	r.Mount("/analytics", analyticsfeature.Routes(analyticsHandler, sessionMgr))

	return r, nil
}
