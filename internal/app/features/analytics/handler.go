// internal/app/features/analytics/handler.go
package analytics

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/kevharv/traintrack/internal/app/store/activity"
	coursestore "github.com/kevharv/traintrack/internal/app/store/courses"
	enrollmentstore "github.com/kevharv/traintrack/internal/app/store/enrollments"
	pendingstore "github.com/kevharv/traintrack/internal/app/store/pendingusers"
	sessionstore "github.com/kevharv/traintrack/internal/app/store/sessions"
	userstore "github.com/kevharv/traintrack/internal/app/store/users"
	"github.com/kevharv/traintrack/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler aggregates counts for the admin overview dashboard.
type Handler struct {
	Users       *userstore.Store
	Pending     *pendingstore.Store
	Courses     *coursestore.Store
	Sessions    *sessionstore.Store
	Enrollments *enrollmentstore.Store
	Activity    *activity.Store
	Log         *zap.Logger
}

func NewHandler(
	users *userstore.Store,
	pending *pendingstore.Store,
	courses *coursestore.Store,
	sessions *sessionstore.Store,
	enrollments *enrollmentstore.Store,
	act *activity.Store,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Users:       users,
		Pending:     pending,
		Courses:     courses,
		Sessions:    sessions,
		Enrollments: enrollments,
		Activity:    act,
		Log:         logger,
	}
}

type overview struct {
	UsersByRole      map[string]int64 `json:"users_by_role"`
	CoursesByStatus  map[string]int64 `json:"courses_by_status"`
	PendingSignups   int64            `json:"pending_signups"`
	TrainingSessions int64            `json:"training_sessions"`
	Enrollments      int64            `json:"enrollments"`
}

// Overview handles GET /analytics/overview.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var (
		o   overview
		err error
	)
	if o.UsersByRole, err = h.Users.CountByRole(ctx); err != nil {
		h.fail(w, "counting users", err)
		return
	}
	if o.CoursesByStatus, err = h.Courses.CountByStatus(ctx); err != nil {
		h.fail(w, "counting courses", err)
		return
	}
	if o.PendingSignups, err = h.Pending.Count(ctx); err != nil {
		h.fail(w, "counting pending signups", err)
		return
	}
	if o.TrainingSessions, err = h.Sessions.Count(ctx); err != nil {
		h.fail(w, "counting sessions", err)
		return
	}
	if o.Enrollments, err = h.Enrollments.Count(ctx); err != nil {
		h.fail(w, "counting enrollments", err)
		return
	}

	writeJSON(w, http.StatusOK, o)
}

// RecentActivity handles GET /analytics/activity: the latest audit entries,
// newest first.
func (h *Handler) RecentActivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Activity.ListRecent(ctx, 50)
	if err != nil {
		h.fail(w, "listing activity", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"activity": list, "count": len(list)})
}

func (h *Handler) fail(w http.ResponseWriter, what string, err error) {
	h.Log.Error("analytics query failed", zap.String("what", what), zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
