package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Envelope is the uniform response body for every API endpoint. Code mirrors
// the HTTP status so clients can switch on either.
type Envelope struct {
	Success  bool `json:"success"`
	Code     int  `json:"code"`
	Response any  `json:"response"`
}

// ErrNoBearerToken reports a missing or malformed Authorization header.
var ErrNoBearerToken = errors.New("httpx: missing bearer token")

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a success envelope with the given payload.
func WriteSuccess(w http.ResponseWriter, code int, payload any) {
	WriteJSON(w, code, Envelope{Success: true, Code: code, Response: payload})
}

// WriteFailure writes a failure envelope carrying a short human-readable message.
func WriteFailure(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, Envelope{Success: false, Code: code, Response: msg})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is required for responses carrying session credentials.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// BearerToken extracts the opaque token from an "Authorization: Bearer x"
// header. Which token it is (session or refresh) depends on the endpoint.
func BearerToken(r *http.Request) (string, error) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return "", ErrNoBearerToken
	}

	token := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	if token == "" {
		return "", ErrNoBearerToken
	}
	return token, nil
}
