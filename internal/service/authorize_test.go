package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	users, _, st := newTestServices(t)
	authorize := users.Authorize

	creds := registerTestUser(t, users, "alice")
	u, err := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)

	t.Run("valid session resolves the user id", func(t *testing.T) {
		id, err := authorize.Authorize(ctx, "alice", creds.SessionToken)
		require.NoError(t, err)
		require.Equal(t, u.ID, id)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := authorize.Authorize(ctx, "nobody", creds.SessionToken)
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong token", func(t *testing.T) {
		_, err := authorize.Authorize(ctx, "alice", "bogus")
		require.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("expired session", func(t *testing.T) {
		expiredToken, _ := insertSession(t, st, u.ID, time.Now().Add(-time.Minute))
		_, err := authorize.Authorize(ctx, "alice", expiredToken)
		require.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("tokens do not cross users", func(t *testing.T) {
		bobCreds := registerTestUser(t, users, "bob")
		_, err := authorize.Authorize(ctx, "alice", bobCreds.SessionToken)
		require.ErrorIs(t, err, ErrSessionNotFound)
	})
}
