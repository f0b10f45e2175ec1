package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kevharv/traintrack/internal/app/system/auth"
	"github.com/kevharv/traintrack/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// testUserID returns a valid ObjectID hex string for tests.
func testUserID() string {
	return primitive.NewObjectID().Hex()
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestUserCtx_MalformedID_FailsClosed(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID:   "not-a-valid-objectid",
		Role: "admin",
	})

	role, _, userID, ok := authz.UserCtx(req)
	if ok {
		t.Error("expected ok=false for malformed user ID")
	}
	if role != "visitor" {
		t.Errorf("expected role 'visitor', got %q", role)
	}
	if userID != primitive.NilObjectID {
		t.Error("expected NilObjectID for malformed user ID")
	}
}

func TestUserCtx_ValidUser(t *testing.T) {
	id := primitive.NewObjectID()
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID:   id.Hex(),
		Name: "Test Admin",
		Role: "ADMIN",
	})

	role, name, userID, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("expected ok=true for valid user")
	}
	if role != "admin" {
		t.Errorf("expected lowercased role, got %q", role)
	}
	if name != "Test Admin" {
		t.Errorf("unexpected name %q", name)
	}
	if userID != id {
		t.Errorf("userID: got %v, want %v", userID, id)
	}
}

func TestHasAnyRole(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID:   testUserID(),
		Role: "trainer",
	})

	if !authz.HasAnyRole(req, "admin", "trainer") {
		t.Error("expected HasAnyRole to match trainer")
	}
	if authz.HasAnyRole(req, "admin", "user") {
		t.Error("expected HasAnyRole not to match")
	}

	anon := httptest.NewRequest("GET", "/test", nil)
	if authz.HasAnyRole(anon, "admin") {
		t.Error("expected HasAnyRole to be false when not signed in")
	}
}

func TestRequireAnyRole_NotSignedIn_Returns401(t *testing.T) {
	handler := authz.RequireAnyRole("admin")(okHandler())

	req := httptest.NewRequest("POST", "/approvals/resolve", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireAnyRole_WrongRole_Returns403(t *testing.T) {
	handler := authz.RequireAnyRole("admin")(okHandler())

	req := httptest.NewRequest("POST", "/approvals/resolve", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: testUserID(), Name: "User", Role: "trainer"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestRequireAnyRole_CaseInsensitive(t *testing.T) {
	handler := authz.RequireAnyRole("Admin")(okHandler())

	req := httptest.NewRequest("POST", "/approvals/resolve", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: testUserID(), Name: "Admin", Role: "ADMIN"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRequireAnyRole_MalformedID_FailsClosed(t *testing.T) {
	handler := authz.RequireAnyRole("admin")(okHandler())

	req := httptest.NewRequest("POST", "/approvals/resolve", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "garbage", Name: "Admin", Role: "admin"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}
