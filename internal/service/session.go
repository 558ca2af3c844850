package service

import (
	"context"
	"errors"
	"time"

	"github.com/kidzegeye/akoma-backend/internal/domain"
	"github.com/kidzegeye/akoma-backend/internal/store"
	"github.com/kidzegeye/akoma-backend/pkg/cryptox"
)

const (
	// DefaultSessionTTL is the fixed session lifetime.
	DefaultSessionTTL = 24 * time.Hour

	// DefaultReapGrace is how long an expired session row survives before
	// housekeeping may delete it. Validation must be able to answer
	// "expired" rather than "not found" for recently expired sessions.
	DefaultReapGrace = 24 * time.Hour
)

// SessionService is the session state machine. Per user the states are
// NoSession -> Active -> (Expired | Revoked); Active is a stored row,
// Expired is computed from wall-clock time, Revoked is a hard delete.
type SessionService struct {
	Store     store.Store
	TTL       time.Duration // session lifetime; DefaultSessionTTL when zero
	ReapGrace time.Duration // retention past expiry; DefaultReapGrace when zero
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultSessionTTL
}

// Issue replaces any existing sessions for the user with a fresh one and
// returns the raw credentials. Delete-then-insert runs in one transaction so
// no observer sees a logged-in user with zero sessions and concurrent logins
// deterministically leave exactly one row (last writer wins).
func (s *SessionService) Issue(ctx context.Context, userID int64) (domain.SessionCredentials, error) {
	sessionToken, err := cryptox.GenerateToken(cryptox.TokenSize512)
	if err != nil {
		return domain.SessionCredentials{}, err
	}
	refreshToken, err := cryptox.GenerateToken(cryptox.TokenSize512)
	if err != nil {
		return domain.SessionCredentials{}, err
	}

	expiresAt := time.Now().Add(s.ttl())
	sess := domain.Session{
		UserID:      userID,
		TokenHash:   cryptox.FingerprintToken(sessionToken),
		RefreshHash: cryptox.FingerprintToken(refreshToken),
		ExpiresAt:   expiresAt,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Sessions().DeleteUserSessions(ctx, userID); err != nil {
			return err
		}
		return tx.Sessions().CreateSession(ctx, sess)
	})
	if err != nil {
		return domain.SessionCredentials{}, err
	}

	return domain.SessionCredentials{
		SessionToken: sessionToken,
		Expiration:   expiresAt.UnixMilli(),
		RefreshToken: refreshToken,
	}, nil
}

// Validate checks the session token for the user. Returns nil when the
// session is live, ErrSessionExpired when the row exists but is past expiry,
// and ErrSessionNotFound when no row matches. The two failure cases are
// mutually exclusive and exhaustive.
func (s *SessionService) Validate(ctx context.Context, userID int64, sessionToken string) error {
	sess, err := s.Store.Sessions().GetSessionByTokenHash(
		ctx, userID, cryptox.FingerprintToken(sessionToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	if !sess.ValidAt(time.Now()) {
		return ErrSessionExpired
	}
	return nil
}

// Refresh rotates the user's session given a matching refresh token. Expiry
// is deliberately not checked: the refresh token outlives the session token
// it was issued with. A wrong refresh token is ErrSessionNotFound.
func (s *SessionService) Refresh(ctx context.Context, userID int64, refreshToken string) (domain.SessionCredentials, error) {
	_, err := s.Store.Sessions().GetSessionByRefreshHash(
		ctx, userID, cryptox.FingerprintToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.SessionCredentials{}, ErrSessionNotFound
		}
		return domain.SessionCredentials{}, err
	}

	return s.Issue(ctx, userID)
}

// Revoke hard-deletes all sessions for the user (logout and user deletion).
func (s *SessionService) Revoke(ctx context.Context, userID int64) error {
	return s.Store.Sessions().DeleteUserSessions(ctx, userID)
}

// DeleteExpired reaps sessions that have been expired for longer than the
// grace window. Called by housekeeping.
func (s *SessionService) DeleteExpired(ctx context.Context) error {
	grace := s.ReapGrace
	if grace <= 0 {
		grace = DefaultReapGrace
	}
	return s.Store.Sessions().DeleteSessionsExpiredBefore(ctx, time.Now().Add(-grace))
}
