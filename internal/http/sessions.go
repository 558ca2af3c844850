package http

import (
	"net/http"

	"github.com/kidzegeye/akoma-backend/internal/domain"
	"github.com/kidzegeye/akoma-backend/internal/service"
	"github.com/kidzegeye/akoma-backend/pkg/httpx"
	"github.com/kidzegeye/akoma-backend/pkg/slogx"
)

// SessionsHandler serves the credential endpoints: registration, login,
// logout and session refresh. All of them begin or end a session.
type SessionsHandler struct {
	UserService *service.UserService
}

type registerRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	Region       string `json:"region"`
	NationalID   string `json:"nationalId"`
	BusinessName string `json:"businessName"`
	Industry     string `json:"industry"`
	Address      string `json:"address"`
}

// HandleRegister creates the account and returns session credentials.
// Registration implies login.
func (h *SessionsHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" {
		httpx.WriteFailure(w, http.StatusBadRequest, "username is required")
		return
	}
	if req.Password == "" {
		httpx.WriteFailure(w, http.StatusBadRequest, "password is required")
		return
	}

	creds, err := h.UserService.Register(ctx, service.Registration{
		Username: req.Username,
		Password: req.Password,
		Profile: domain.Profile{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        req.Email,
			PhoneNumber:  req.PhoneNumber,
			Region:       req.Region,
			NationalID:   req.NationalID,
			BusinessName: req.BusinessName,
			Industry:     req.Industry,
			Address:      req.Address,
		},
	})
	if err != nil {
		writeServiceError(w, log, "register", err)
		return
	}

	httpx.WriteSuccess(w, http.StatusCreated, creds)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin verifies the password and issues fresh session credentials.
func (h *SessionsHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" {
		httpx.WriteFailure(w, http.StatusBadRequest, "username is required")
		return
	}
	if req.Password == "" {
		httpx.WriteFailure(w, http.StatusBadRequest, "password is required")
		return
	}

	creds, err := h.UserService.Login(ctx, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, log, "login", err)
		return
	}

	httpx.WriteSuccess(w, http.StatusCreated, creds)
}

type usernameRequest struct {
	Username string `json:"username"`
}

// HandleLogout revokes the caller's session. The bearer token is the
// session token.
func (h *SessionsHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token, err := httpx.BearerToken(r)
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Authorization token required")
		return
	}

	var req usernameRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" {
		httpx.WriteFailure(w, http.StatusBadRequest, "username is required")
		return
	}

	if err := h.UserService.Logout(ctx, req.Username, token); err != nil {
		writeServiceError(w, log, "logout", err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Logged out")
}

// HandleRefresh rotates session credentials. The bearer token is the
// refresh token, not the session token, and may outlive an expired session.
func (h *SessionsHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token, err := httpx.BearerToken(r)
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Authorization token required")
		return
	}

	var req usernameRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" {
		httpx.WriteFailure(w, http.StatusBadRequest, "username is required")
		return
	}

	creds, err := h.UserService.RefreshSession(ctx, req.Username, token)
	if err != nil {
		writeServiceError(w, log, "refresh_session", err)
		return
	}

	httpx.WriteSuccess(w, http.StatusCreated, creds)
}
