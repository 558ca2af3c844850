package service

import (
	"context"
	"errors"

	"github.com/kidzegeye/akoma-backend/internal/domain"
	"github.com/kidzegeye/akoma-backend/internal/store"
	"github.com/kidzegeye/akoma-backend/pkg/cryptox"
)

// UserService owns account lifecycle and the credential-based entry points
// (register, login, refresh). Session-protected operations authorize first.
type UserService struct {
	Store     store.Store
	Sessions  *SessionService
	Authorize *AuthorizeService
}

// Registration carries everything needed to create an account.
type Registration struct {
	Username string
	Password string
	Profile  domain.Profile
}

// Register creates the account and logs it in, returning fresh session
// credentials. A taken username is ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, reg Registration) (domain.SessionCredentials, error) {
	taken, err := s.Store.Users().UsernameExists(ctx, reg.Username)
	if err != nil {
		return domain.SessionCredentials{}, err
	}
	if taken {
		return domain.SessionCredentials{}, ErrUsernameTaken
	}

	// bcrypt is deliberately slow; hash outside any transaction.
	hash, err := cryptox.HashPassword(reg.Password)
	if err != nil {
		return domain.SessionCredentials{}, err
	}

	id, err := s.Store.Users().CreateUser(ctx, domain.User{
		Username:     reg.Username,
		PasswordHash: hash,
		Profile:      reg.Profile,
	})
	if err != nil {
		// The UNIQUE constraint is the source of truth; the pre-check above
		// only catches the common case without burning a bcrypt hash.
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.SessionCredentials{}, ErrUsernameTaken
		}
		return domain.SessionCredentials{}, err
	}

	return s.Sessions.Issue(ctx, id)
}

// Login verifies the password and issues fresh credentials. Unknown username
// and wrong password both map to ErrFailedLogin so the response does not
// reveal which half failed.
func (s *UserService) Login(ctx context.Context, username, password string) (domain.SessionCredentials, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.SessionCredentials{}, ErrFailedLogin
		}
		return domain.SessionCredentials{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.SessionCredentials{}, ErrFailedLogin
		}
		return domain.SessionCredentials{}, err
	}

	return s.Sessions.Issue(ctx, u.ID)
}

// Logout revokes the user's sessions after validating the presented token.
func (s *UserService) Logout(ctx context.Context, username, sessionToken string) error {
	userID, err := s.Authorize.Authorize(ctx, username, sessionToken)
	if err != nil {
		return err
	}
	return s.Sessions.Revoke(ctx, userID)
}

// RefreshSession rotates credentials given the user's refresh token. The
// session token is not required here, expired sessions are refreshable.
func (s *UserService) RefreshSession(ctx context.Context, username, refreshToken string) (domain.SessionCredentials, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.SessionCredentials{}, ErrUserNotFound
		}
		return domain.SessionCredentials{}, err
	}
	return s.Sessions.Refresh(ctx, u.ID, refreshToken)
}

// Get returns the public view of one user by username.
func (s *UserService) Get(ctx context.Context, username string) (domain.PublicUser, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicUser{}, ErrUserNotFound
		}
		return domain.PublicUser{}, err
	}
	return u.Public(), nil
}

// List returns the public view of every user.
func (s *UserService) List(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// UpdateProfile replaces the authorized user's profile fields. Username and
// password are not editable through this path.
func (s *UserService) UpdateProfile(ctx context.Context, username, sessionToken string, p domain.Profile) error {
	userID, err := s.Authorize.Authorize(ctx, username, sessionToken)
	if err != nil {
		return err
	}
	return s.Store.Users().UpdateProfile(ctx, userID, p)
}

// Delete removes the authorized user. Sessions and the account row go in one
// transaction; transactions cascade via the foreign key.
func (s *UserService) Delete(ctx context.Context, username, sessionToken string) error {
	userID, err := s.Authorize.Authorize(ctx, username, sessionToken)
	if err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Sessions().DeleteUserSessions(ctx, userID); err != nil {
			return err
		}
		return tx.Users().DeleteUser(ctx, userID)
	})
}
