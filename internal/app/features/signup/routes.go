// internal/app/features/signup/routes.go
package signup

import "github.com/go-chi/chi/v5"

// Routes returns the public signup endpoints, mounted under /signup.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Submit)
	r.Get("/status", h.Status)
	return r
}
