package http

import (
	"net/http"

	"github.com/kidzegeye/akoma-backend/internal/domain"
	"github.com/kidzegeye/akoma-backend/internal/service"
	"github.com/kidzegeye/akoma-backend/pkg/httpx"
	"github.com/kidzegeye/akoma-backend/pkg/slogx"
)

// UsersHandler serves account reads and the authenticated profile
// update/delete operations.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleList returns the public projection of every account.
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.UserService.List(ctx)
	if err != nil {
		writeServiceError(w, log, "list_users", err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, users)
}

// HandleGet returns one account's public projection by username.
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req usernameRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" {
		httpx.WriteFailure(w, http.StatusBadRequest, "username is required")
		return
	}

	user, err := h.UserService.Get(ctx, req.Username)
	if err != nil {
		writeServiceError(w, log, "get_user", err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Username     string `json:"username"`
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

// HandleUpdate replaces the authorized caller's profile fields. Username and
// password are immutable through this endpoint.
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token, err := httpx.BearerToken(r)
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Authorization token required")
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" {
		httpx.WriteFailure(w, http.StatusBadRequest, "username is required")
		return
	}

	err = h.UserService.UpdateProfile(ctx, req.Username, token, domain.Profile{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Region:       req.Region,
		NationalID:   req.NationalID,
		BusinessName: req.BusinessName,
		Industry:     req.Industry,
		Address:      req.Address,
	})
	if err != nil {
		writeServiceError(w, log, "update_user", err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "User updated")
}

// HandleDelete removes the authorized caller's account. Sessions and
// transactions go with it.
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.UserService.Delete(ctx, req.Username, token); err != nil {
		writeServiceError(w, log, "delete_user", err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "User deleted")
}
