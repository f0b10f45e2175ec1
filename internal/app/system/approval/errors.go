// internal/app/system/approval/errors.go
package approval

import (
	"errors"
	"net/http"
)

// Sentinel error kinds for the approval workflow. Callers classify failures
// with errors.Is; the HTTP boundary maps them to status codes.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrInternal         = errors.New("internal error")
)

// HTTPStatus maps a workflow error to the status code the boundary returns.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
