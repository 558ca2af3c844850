package service

import (
	"context"
	"errors"

	"github.com/kidzegeye/akoma-backend/internal/store"
)

// AuthorizeService resolves a (username, session token) pair into an
// authorized user id. Every protected operation passes through here before
// touching owned data; failures short-circuit ahead of any mutation.
type AuthorizeService struct {
	Store    store.Store
	Sessions *SessionService
}

// Authorize resolves username to a user id, then validates the session
// token against it. Returns ErrUserNotFound for an unknown username and
// passes SessionService validation errors through unchanged.
func (s *AuthorizeService) Authorize(ctx context.Context, username, sessionToken string) (int64, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	if err := s.Sessions.Validate(ctx, u.ID, sessionToken); err != nil {
		return 0, err
	}
	return u.ID, nil
}
