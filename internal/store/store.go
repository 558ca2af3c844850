package store

import (
	"context"
	"errors"
	"time"

	"github.com/kidzegeye/akoma-backend/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Users() Users
	Sessions() Sessions
	Transactions() Transactions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., session
	// replacement). The caller MUST call Commit() or Rollback() on the
	// returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user and returns the store-generated id.
	// Returns ErrAlreadyExists if the username is taken (UNIQUE constraint
	// is the source of truth).
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// GetUserByUsername is used during login and authorization.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// ListUsers returns all users. Callers project to PublicUser before
	// anything leaves the service layer.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// UsernameExists is a cheap pre-insert check. Racy by nature; the
	// UNIQUE constraint on the insert remains authoritative.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// UpdateProfile mutates the profile fields and bumps updated_at.
	// Username and password are not touched.
	UpdateProfile(ctx context.Context, userID int64, p domain.Profile) error

	// DeleteUser cascades to sessions and transactions (per schema).
	DeleteUser(ctx context.Context, userID int64) error
}

type Sessions interface {
	// CreateSession stores a new session record (token fingerprints, not
	// raw tokens).
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash returns the newest session matching
	// (userID, session-token fingerprint), regardless of expiry.
	GetSessionByTokenHash(ctx context.Context, userID int64, hash string) (domain.Session, error)

	// GetSessionByRefreshHash returns the session matching
	// (userID, refresh-token fingerprint), regardless of expiry.
	GetSessionByRefreshHash(ctx context.Context, userID int64, hash string) (domain.Session, error)

	// DeleteUserSessions removes all session rows for a user (logout,
	// replacement, account deletion).
	DeleteUserSessions(ctx context.Context, userID int64) error

	// DeleteSessionsExpiredBefore reaps sessions whose expiry is older than
	// cutoff. Housekeeping only; fresh-expired rows must survive so
	// validation can report Expired rather than NotFound.
	DeleteSessionsExpiredBefore(ctx context.Context, cutoff time.Time) error
}

type Transactions interface {
	// CreateTransaction inserts a transaction and returns the
	// store-generated id. An absent DueDate is omitted from the insert.
	CreateTransaction(ctx context.Context, t domain.Transaction) (int64, error)

	// GetTransaction returns one transaction scoped to its owner, with the
	// type label joined in.
	GetTransaction(ctx context.Context, userID, id int64) (domain.Transaction, error)

	// ListTransactions returns the owner's transactions narrowed by filter,
	// with type labels joined in.
	ListTransactions(ctx context.Context, userID int64, f domain.TransactionFilter) ([]domain.Transaction, error)

	// UpdateTransaction rewrites all mutable fields of the transaction,
	// scoped to (id, owner). Returns ErrNotFound when no row matched.
	UpdateTransaction(ctx context.Context, t domain.Transaction) error
}
