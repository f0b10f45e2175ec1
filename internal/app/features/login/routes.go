// internal/app/features/login/routes.go
package login

import (
	"github.com/go-chi/chi/v5"
	"github.com/kevharv/traintrack/internal/app/system/auth"
)

// Routes returns the session endpoints. SignIn is public; SignOut needs the
// session loaded so the activity entry can name the user.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.SignIn)
	r.With(sm.LoadSessionUser).Post("/logout", h.SignOut)
	return r
}
