// internal/app/features/approvals/routes.go
package approvals

import (
	"github.com/go-chi/chi/v5"
	"github.com/kevharv/traintrack/internal/app/system/auth"
	"github.com/kevharv/traintrack/internal/app/system/authz"
)

// Routes returns the admin approval endpoints, mounted under /approvals.
// The whole subtree requires a signed-in admin; the service re-checks the
// role so a direct call cannot bypass it.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(authz.RequireAnyRole("admin"))
	r.Get("/", h.ListPending)
	r.Post("/resolve", h.Resolve)
	return r
}
