// internal/app/features/analytics/routes.go
package analytics

import (
	"github.com/go-chi/chi/v5"
	"github.com/kevharv/traintrack/internal/app/system/auth"
	"github.com/kevharv/traintrack/internal/app/system/authz"
)

// Routes returns the analytics endpoints, mounted under /analytics.
// Admins and trainers can read the overview; the activity feed is admin-only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.With(authz.RequireAnyRole("admin", "trainer")).Get("/overview", h.Overview)
	r.With(authz.RequireAnyRole("admin")).Get("/activity", h.RecentActivity)
	return r
}
