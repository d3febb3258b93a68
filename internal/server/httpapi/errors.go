package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/medidesk/internal/common"
)

// Error is the JSON body of every non-2xx response.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // client may have gone away
		json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Error{Status: status, Message: message})
}

// statusFor maps an authentication outcome to its HTTP status and the
// message shown to the caller. Unknown errors are reported as 500 without
// detail.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, common.ErrInvalidCredentials.Error()
	case errors.Is(err, common.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, common.ErrRoleMismatch):
		return http.StatusForbidden, common.ErrRoleMismatch.Error()
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden, "insufficient role"
	case errors.Is(err, common.ErrStoreUnavailable):
		return http.StatusInternalServerError, "service temporarily unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func writeAuthError(w http.ResponseWriter, err error) {
	status, msg := statusFor(err)
	writeError(w, status, msg)
}
