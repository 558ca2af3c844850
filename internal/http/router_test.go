package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kidzegeye/akoma-backend/internal/domain"
	"github.com/kidzegeye/akoma-backend/internal/service"
	"github.com/kidzegeye/akoma-backend/internal/store/drivers/sqlite"
	"github.com/kidzegeye/akoma-backend/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success  bool            `json:"success"`
	Code     int             `json:"code"`
	Response json.RawMessage `json:"response"`
}

func newTestServer(t *testing.T) (*httptest.Server, *sqlite.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	sessions := &service.SessionService{Store: st}
	authorize := &service.AuthorizeService{Store: st, Sessions: sessions}

	router := NewRouter("test", st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	router.UserService = &service.UserService{Store: st, Sessions: sessions, Authorize: authorize}
	router.TransactionService = &service.TransactionService{Store: st, Authorize: authorize}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, st
}

// call issues a JSON request and decodes the response envelope.
func call(t *testing.T, srv *httptest.Server, method, path, bearer string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Equal(t, resp.StatusCode, env.Code)
	return resp.StatusCode, env
}

func register(t *testing.T, srv *httptest.Server, username string) domain.SessionCredentials {
	t.Helper()

	status, env := call(t, srv, http.MethodPost, "/user", "", map[string]any{
		"username":  username,
		"password":  "hunter2",
		"firstName": "Test",
		"lastName":  "User",
		"email":     username + "@example.com",
	})
	require.Equal(t, http.StatusCreated, status)
	require.True(t, env.Success)

	var creds domain.SessionCredentials
	require.NoError(t, json.Unmarshal(env.Response, &creds))
	require.NotEmpty(t, creds.SessionToken)
	require.NotEmpty(t, creds.RefreshToken)
	return creds
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/livez", "/readyz"} {
		resp, err := srv.Client().Get(srv.URL + path)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
}

func TestUserLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	creds := register(t, srv, "alice")

	t.Run("duplicate username conflicts", func(t *testing.T) {
		status, env := call(t, srv, http.MethodPost, "/user", "", map[string]any{
			"username": "alice", "password": "other",
		})
		require.Equal(t, http.StatusBadRequest, status)
		require.JSONEq(t, `"User already exists"`, string(env.Response))
	})

	t.Run("wrong password fails login", func(t *testing.T) {
		status, env := call(t, srv, http.MethodPost, "/user/login", "", map[string]any{
			"username": "alice", "password": "wrong",
		})
		require.Equal(t, http.StatusBadRequest, status)
		require.JSONEq(t, `"Failed login"`, string(env.Response))
	})

	t.Run("listing includes the public record", func(t *testing.T) {
		status, env := call(t, srv, http.MethodGet, "/user", "", nil)
		require.Equal(t, http.StatusOK, status)

		var users []domain.PublicUser
		require.NoError(t, json.Unmarshal(env.Response, &users))
		require.Len(t, users, 1)
		require.Equal(t, "alice", users[0].Username)
	})

	t.Run("fetch by username", func(t *testing.T) {
		status, env := call(t, srv, http.MethodPost, "/user/get", "", map[string]any{
			"username": "alice",
		})
		require.Equal(t, http.StatusOK, status)

		var user domain.PublicUser
		require.NoError(t, json.Unmarshal(env.Response, &user))
		require.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("unknown username is not found", func(t *testing.T) {
		status, env := call(t, srv, http.MethodPost, "/user/get", "", map[string]any{
			"username": "nobody",
		})
		require.Equal(t, http.StatusNotFound, status)
		require.JSONEq(t, `"User not found"`, string(env.Response))
	})

	t.Run("profile update requires the session", func(t *testing.T) {
		status, env := call(t, srv, http.MethodPut, "/user", creds.SessionToken, map[string]any{
			"username": "alice", "firstName": "Alicia", "email": "alicia@example.com",
		})
		require.Equal(t, http.StatusOK, status)
		require.JSONEq(t, `"User updated"`, string(env.Response))

		status, env = call(t, srv, http.MethodPut, "/user", "bogus", map[string]any{
			"username": "alice",
		})
		require.Equal(t, http.StatusNotFound, status)
		require.JSONEq(t, `"Session not found"`, string(env.Response))
	})

	t.Run("delete removes the account", func(t *testing.T) {
		status, env := call(t, srv, http.MethodDelete, "/user", creds.SessionToken, map[string]any{
			"username": "alice",
		})
		require.Equal(t, http.StatusOK, status)
		require.JSONEq(t, `"User deleted"`, string(env.Response))

		status, _ = call(t, srv, http.MethodPost, "/user/get", "", map[string]any{
			"username": "alice",
		})
		require.Equal(t, http.StatusNotFound, status)
	})
}

func TestSessionFlow(t *testing.T) {
	srv, st := newTestServer(t)
	creds := register(t, srv, "alice")

	t.Run("logout revokes the session", func(t *testing.T) {
		status, env := call(t, srv, http.MethodPost, "/user/logout", creds.SessionToken, map[string]any{
			"username": "alice",
		})
		require.Equal(t, http.StatusOK, status)
		require.JSONEq(t, `"Logged out"`, string(env.Response))

		status, env = call(t, srv, http.MethodPost, "/user/logout", creds.SessionToken, map[string]any{
			"username": "alice",
		})
		require.Equal(t, http.StatusNotFound, status)
		require.JSONEq(t, `"Session not found"`, string(env.Response))
	})

	t.Run("expired session is reported as expired", func(t *testing.T) {
		ctx := context.Background()
		u, err := st.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)

		sessionToken, err := cryptox.GenerateToken(cryptox.TokenSize512)
		require.NoError(t, err)
		refreshToken, err := cryptox.GenerateToken(cryptox.TokenSize512)
		require.NoError(t, err)
		require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{
			UserID:      u.ID,
			TokenHash:   cryptox.FingerprintToken(sessionToken),
			RefreshHash: cryptox.FingerprintToken(refreshToken),
			ExpiresAt:   time.Now().Add(-time.Minute),
		}))

		status, env := call(t, srv, http.MethodPost, "/user/logout", sessionToken, map[string]any{
			"username": "alice",
		})
		require.Equal(t, http.StatusBadRequest, status)
		require.JSONEq(t, `"Session expired"`, string(env.Response))

		// The refresh token still rotates the expired session.
		status, env = call(t, srv, http.MethodPost, "/user/session", refreshToken, map[string]any{
			"username": "alice",
		})
		require.Equal(t, http.StatusCreated, status)

		var next domain.SessionCredentials
		require.NoError(t, json.Unmarshal(env.Response, &next))
		require.NotEqual(t, sessionToken, next.SessionToken)
		require.Greater(t, next.Expiration, time.Now().UnixMilli())
	})

	t.Run("wrong refresh token is not found", func(t *testing.T) {
		status, env := call(t, srv, http.MethodPost, "/user/session", "bogus", map[string]any{
			"username": "alice",
		})
		require.Equal(t, http.StatusNotFound, status)
		require.JSONEq(t, `"Session not found"`, string(env.Response))
	})

	t.Run("missing bearer token is rejected", func(t *testing.T) {
		status, env := call(t, srv, http.MethodPost, "/user/logout", "", map[string]any{
			"username": "alice",
		})
		require.Equal(t, http.StatusBadRequest, status)
		require.JSONEq(t, `"Authorization token required"`, string(env.Response))
	})
}

func TestTransactionFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	creds := register(t, srv, "alice")

	t.Run("create", func(t *testing.T) {
		status, env := call(t, srv, http.MethodPost, "/transaction", creds.SessionToken, map[string]any{
			"username":        "alice",
			"startDate":       1000,
			"endDate":         2000,
			"transactionType": 2,
			"frequency":       "monthly",
			"transactionName": "rent",
			"amount":          1200.50,
		})
		require.Equal(t, http.StatusCreated, status)
		require.JSONEq(t, `"Transaction Added"`, string(env.Response))
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		status, env := call(t, srv, http.MethodPost, "/transaction", creds.SessionToken, map[string]any{
			"username": "alice", "startDate": 1000,
		})
		require.Equal(t, http.StatusBadRequest, status)
		require.JSONEq(t, `"transactionName is required"`, string(env.Response))
	})

	t.Run("list returns the created transaction", func(t *testing.T) {
		status, env := call(t, srv, http.MethodPost, "/transaction/get", creds.SessionToken, map[string]any{
			"username": "alice",
		})
		require.Equal(t, http.StatusOK, status)

		var txns []domain.Transaction
		require.NoError(t, json.Unmarshal(env.Response, &txns))
		require.Len(t, txns, 1)
		require.Equal(t, "rent", txns[0].Name)
		require.Equal(t, "Expense", txns[0].TypeLabel)

		t.Run("get-one matches", func(t *testing.T) {
			status, env := call(t, srv, http.MethodPost, "/transaction/get-one", creds.SessionToken, map[string]any{
				"username": "alice", "id": txns[0].ID,
			})
			require.Equal(t, http.StatusOK, status)

			var txn domain.Transaction
			require.NoError(t, json.Unmarshal(env.Response, &txn))
			require.Equal(t, txns[0].ID, txn.ID)
		})

		t.Run("edit updates in place", func(t *testing.T) {
			status, env := call(t, srv, http.MethodPut, "/transaction", creds.SessionToken, map[string]any{
				"username":        "alice",
				"id":              txns[0].ID,
				"startDate":       1000,
				"endDate":         2500,
				"transactionType": 2,
				"frequency":       "monthly",
				"transactionName": "rent + utilities",
				"amount":          1350,
				"received":        true,
			})
			require.Equal(t, http.StatusOK, status)
			require.JSONEq(t, `"Transaction Updated"`, string(env.Response))
		})
	})

	t.Run("filters narrow the listing", func(t *testing.T) {
		status, env := call(t, srv, http.MethodPost, "/transaction/get", creds.SessionToken, map[string]any{
			"username": "alice", "transactionType": 1,
		})
		require.Equal(t, http.StatusOK, status)
		require.JSONEq(t, `[]`, string(env.Response))
	})

	t.Run("editing a missing transaction", func(t *testing.T) {
		status, env := call(t, srv, http.MethodPut, "/transaction", creds.SessionToken, map[string]any{
			"username":        "alice",
			"id":              9999,
			"startDate":       1,
			"endDate":         2,
			"transactionType": 1,
			"frequency":       "once",
			"transactionName": "ghost",
			"amount":          1,
		})
		require.Equal(t, http.StatusNotFound, status)
		require.JSONEq(t, `"Transaction not found"`, string(env.Response))
	})
}
