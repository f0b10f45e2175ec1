// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/kevharv/traintrack/internal/app/store/activity"
	userstore "github.com/kevharv/traintrack/internal/app/store/users"
	"github.com/kevharv/traintrack/internal/app/system/activitylog"
	"github.com/kevharv/traintrack/internal/app/system/auth"
	"github.com/kevharv/traintrack/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler signs users in and out against the users collection.
type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	Activity   *activitylog.Logger
	Log        *zap.Logger
}

func NewHandler(users *userstore.Store, sm *auth.SessionManager, act *activitylog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Users: users, SessionMgr: sm, Activity: act, Log: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn handles POST /login. Failed attempts all return the same 401 so a
// caller cannot probe which emails have accounts; the distinction is kept in
// the activity log.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and password are required"})
		return
	}

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Activity.LoginFailed(ctx, r, activity.EventLoginFailedUserNotFound, req.Email)
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
			return
		}
		h.Log.Error("login lookup failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	if u.Status != userstore.StatusActive {
		h.Activity.LoginFailed(ctx, r, activity.EventLoginFailedUserDisabled, req.Email)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		h.Activity.LoginFailed(ctx, r, activity.EventLoginFailedWrongPassword, req.Email)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
		return
	}

	if err := h.SessionMgr.SignIn(w, r, &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	}); err != nil {
		h.Log.Error("session creation failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	if err := h.Users.SetLastLogin(ctx, u.ID, time.Now().UTC()); err != nil {
		h.Log.Warn("failed to stamp last_login", zap.String("user_id", u.ID.Hex()), zap.Error(err))
	}
	h.Activity.LoginSuccess(ctx, r, u.ID, u.Email)

	writeJSON(w, http.StatusOK, map[string]any{
		"id":    u.ID.Hex(),
		"name":  u.FullName,
		"email": u.Email,
		"role":  u.Role,
	})
}

// SignOut handles POST /logout.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if u, ok := auth.CurrentUser(r); ok {
		if id, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			h.Activity.Logout(ctx, r, id, u.Email)
		}
	}

	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Warn("session teardown failed", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "signed out"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
