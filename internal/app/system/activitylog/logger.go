// internal/app/system/activitylog/logger.go
package activitylog

import (
	"context"
	"net/http"

	"github.com/kevharv/traintrack/internal/app/store/activity"
	"github.com/kevharv/traintrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config controls where each event category is recorded.
// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off".
type Config struct {
	Auth  string
	Admin string
}

// Logger provides convenience methods for recording activity events. It
// writes to both the activity_log collection (via activity.Store) and the
// structured log stream (via zap), per Config.
type Logger struct {
	store  *activity.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new activity Logger.
func New(store *activity.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

func (l *Logger) logToZap(e models.ActivityEntry) {
	fields := []zap.Field{
		zap.Bool("activity", true),
		zap.String("category", e.Category),
		zap.String("event_type", e.EventType),
		zap.Bool("success", e.Success),
		zap.String("ip", e.IP),
	}
	if e.ActorID != nil {
		fields = append(fields, zap.String("actor_id", e.ActorID.Hex()))
	}
	if e.SubjectID != nil {
		fields = append(fields, zap.String("subject_id", e.SubjectID.Hex()))
	}
	for k, v := range e.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if e.Success {
		l.zapLog.Info("activity event", fields...)
	} else {
		l.zapLog.Warn("activity event", fields...)
	}
}

// Log records an activity entry based on configuration. A nil Logger is a
// no-op so tests can skip activity logging entirely.
func (l *Logger) Log(ctx context.Context, e models.ActivityEntry) {
	if l == nil {
		return
	}

	var setting string
	switch e.Category {
	case activity.CategoryAuth:
		setting = l.config.Auth
	case activity.CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = "all"
	}
	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(e)
	}
	if setting == "all" || setting == "db" {
		if _, err := l.store.Record(ctx, e); err != nil {
			l.zapLog.Error("failed to store activity event",
				zap.Error(err),
				zap.String("event_type", e.EventType),
			)
		}
	}
}

// --- Approval decisions ---

// UserApproved records a pending signup resolved to the active state.
func (l *Logger) UserApproved(ctx context.Context, r *http.Request, actorID, pendingID primitive.ObjectID, actorName, email string) {
	l.Log(ctx, models.ActivityEntry{
		Category:  activity.CategoryAdmin,
		EventType: activity.EventUserApproved,
		ActorID:   &actorID,
		ActorName: actorName,
		SubjectID: &pendingID,
		IP:        getClientIP(r),
		Success:   true,
		Details:   map[string]string{"email": email},
	})
}

// UserRejected records a pending signup resolved to the rejected state.
func (l *Logger) UserRejected(ctx context.Context, r *http.Request, actorID, pendingID primitive.ObjectID, actorName, email string) {
	l.Log(ctx, models.ActivityEntry{
		Category:  activity.CategoryAdmin,
		EventType: activity.EventUserRejected,
		ActorID:   &actorID,
		ActorName: actorName,
		SubjectID: &pendingID,
		IP:        getClientIP(r),
		Success:   true,
		Details:   map[string]string{"email": email},
	})
}

// --- Authentication events ---

// LoginSuccess records a successful sign-in.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Log(ctx, models.ActivityEntry{
		Category:  activity.CategoryAuth,
		EventType: activity.EventLoginSuccess,
		SubjectID: &userID,
		IP:        getClientIP(r),
		Success:   true,
		Details:   map[string]string{"email": email},
	})
}

// LoginFailed records a failed sign-in attempt with the given event type.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, eventType, attemptedEmail string) {
	l.Log(ctx, models.ActivityEntry{
		Category:  activity.CategoryAuth,
		EventType: eventType,
		IP:        getClientIP(r),
		Success:   false,
		Details:   map[string]string{"attempted_email": attemptedEmail},
	})
}

// Logout records a sign-out.
func (l *Logger) Logout(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Log(ctx, models.ActivityEntry{
		Category:  activity.CategoryAuth,
		EventType: activity.EventLogout,
		SubjectID: &userID,
		IP:        getClientIP(r),
		Success:   true,
		Details:   map[string]string{"email": email},
	})
}

// SignupSubmitted records a new pending signup entering the review queue.
func (l *Logger) SignupSubmitted(ctx context.Context, r *http.Request, pendingID primitive.ObjectID, email string) {
	l.Log(ctx, models.ActivityEntry{
		Category:  activity.CategoryAuth,
		EventType: activity.EventSignupSubmitted,
		SubjectID: &pendingID,
		IP:        getClientIP(r),
		Success:   true,
		Details:   map[string]string{"email": email},
	})
}
