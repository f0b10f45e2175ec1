// internal/app/features/approvals/handler.go
package approvals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	pendingstore "github.com/kevharv/traintrack/internal/app/store/pendingusers"
	"github.com/kevharv/traintrack/internal/app/system/approval"
	"github.com/kevharv/traintrack/internal/app/system/auth"
	"github.com/kevharv/traintrack/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the admin review queue and the resolve endpoint.
type Handler struct {
	Pending *pendingstore.Store
	Service *approval.Service
	Log     *zap.Logger
}

func NewHandler(pending *pendingstore.Store, service *approval.Service, logger *zap.Logger) *Handler {
	return &Handler{Pending: pending, Service: service, Log: logger}
}

// ListPending handles GET /approvals: the pending signups, newest first.
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Pending.ListNewestFirst(ctx, 100)
	if err != nil {
		h.Log.Error("listing pending signups failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load pending signups"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"pending": list, "count": len(list)})
}

// Resolve handles POST /approvals/resolve with an approval.Request body.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var req approval.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	actor, _ := auth.CurrentUser(r)
	res, err := h.Service.Resolve(ctx, actor, req)
	if err != nil {
		status := approval.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			h.Log.Error("resolve failed", zap.Error(err))
			// Do not leak internal details to the operator.
			writeJSON(w, status, map[string]string{"error": "internal error"})
			return
		}
		writeJSON(w, status, map[string]string{"error": userFacingMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// userFacingMessage strips the sentinel prefix readers don't need.
func userFacingMessage(err error) string {
	switch {
	case errors.Is(err, approval.ErrInvalidArgument):
		return "invalid request: " + err.Error()
	case errors.Is(err, approval.ErrPermissionDenied):
		return "admin role required"
	case errors.Is(err, approval.ErrNotFound):
		return "pending signup not found"
	default:
		return err.Error()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
