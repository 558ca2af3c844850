package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kidzegeye/akoma-backend/internal/service"
	"github.com/kidzegeye/akoma-backend/pkg/httpx"
)

// decodeJSON parses the request body into dst. The caller responds with a
// validation failure when it returns an error.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeServiceError maps service-layer failures onto the wire contract.
// Unknown errors are logged with the failing operation's name and surface as
// a generic 500; raw error text never reaches the client.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteFailure(w, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrSessionNotFound):
		httpx.WriteFailure(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, service.ErrSessionExpired):
		httpx.WriteFailure(w, http.StatusBadRequest, "Session expired")
	case errors.Is(err, service.ErrUsernameTaken):
		httpx.WriteFailure(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, service.ErrFailedLogin):
		httpx.WriteFailure(w, http.StatusBadRequest, "Failed login")
	case errors.Is(err, service.ErrTransactionNotFound):
		httpx.WriteFailure(w, http.StatusNotFound, "Transaction not found")
	default:
		log.Error("operation failed", "op", op, "err", err)
		httpx.WriteFailure(w, http.StatusInternalServerError, "Internal server error")
	}
}
