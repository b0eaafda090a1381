package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkropacheva/storefront/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps service-layer sentinels to HTTP statuses. Both
// login failures collapse into one generic 401 so responses cannot be used
// to enumerate accounts; internal causes never reach the response body.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrAccountNotFound),
		errors.Is(err, common.ErrInvalidCredential),
		errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, "authentication failed")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
