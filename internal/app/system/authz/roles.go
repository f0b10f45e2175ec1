// internal/app/system/authz/roles.go
package authz

import (
	"net/http"
	"strings"
)

// HasAnyRole reports whether the current request's user has any of the given
// roles. Returns false if no user is present (i.e., not signed in).
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == strings.ToLower(strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}

// RequireAnyRole gates a route subtree on role membership: 401 when no
// valid user is in context, 403 when the user holds none of the allowed
// roles. Role comparison is case-insensitive via UserCtx.
func RequireAnyRole(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, _, _, ok := UserCtx(r); !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !HasAnyRole(r, allowed...) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
