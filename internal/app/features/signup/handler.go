// internal/app/features/signup/handler.go
package signup

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	pendingstore "github.com/kevharv/traintrack/internal/app/store/pendingusers"
	userstore "github.com/kevharv/traintrack/internal/app/store/users"
	"github.com/kevharv/traintrack/internal/app/system/activitylog"
	"github.com/kevharv/traintrack/internal/app/system/timeouts"
	"github.com/kevharv/traintrack/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler files new signups into the review queue.
type Handler struct {
	Pending  *pendingstore.Store
	Users    *userstore.Store
	Activity *activitylog.Logger
	Log      *zap.Logger
}

func NewHandler(pending *pendingstore.Store, users *userstore.Store, activity *activitylog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Pending: pending, Users: users, Activity: activity, Log: logger}
}

type signupRequest struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	RequestedRole string `json:"requested_role"`
}

// Submit handles POST /signup. The account is not usable until an admin
// approves it; the response carries the pending id so the UI can show a
// confirmation.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" || req.RequestedRole == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "full_name, email, password and requested_role are required"})
		return
	}
	if len(req.Password) < 8 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "password must be at least 8 characters"})
		return
	}

	// An email already attached to an active account cannot re-enter the
	// queue; the approval upsert would otherwise trip the unique index.
	exists, err := h.Users.EmailExists(ctx, req.Email)
	if err != nil {
		h.Log.Error("signup email lookup failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if exists {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "an account with this email already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("password hashing failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	created, err := h.Pending.Create(ctx, models.PendingUser{
		FullName:      req.FullName,
		Email:         req.Email,
		RequestedRole: req.RequestedRole,
		PasswordHash:  string(hash),
	})
	if err != nil {
		if errors.Is(err, pendingstore.ErrDuplicateEmail) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "a signup with this email is already pending review"})
			return
		}
		// Role validation and everything else from the store
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	h.Activity.SignupSubmitted(ctx, r, created.ID, created.Email)
	h.Log.Info("signup submitted",
		zap.String("pending_id", created.ID.Hex()),
		zap.String("requested_role", created.RequestedRole))

	writeJSON(w, http.StatusCreated, map[string]any{
		"pending_id":   created.ID.Hex(),
		"status_token": created.SignupToken,
		"message":      "Signup received. An administrator will review your request.",
	})
}

// Status handles GET /signup/status?token=<status_token>. The token is the
// opaque credential handed out by Submit; once an admin resolves the signup
// the pending record is gone and the lookup reports not found.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	token := r.URL.Query().Get("token")
	if token == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "token is required"})
		return
	}

	p, err := h.Pending.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pendingstore.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no pending signup for this token"})
			return
		}
		h.Log.Error("signup status lookup failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "pending",
		"full_name":    p.FullName,
		"submitted_at": p.SubmittedAt,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
