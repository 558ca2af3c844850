package service

import (
	"context"
	"errors"

	"github.com/kidzegeye/akoma-backend/internal/domain"
	"github.com/kidzegeye/akoma-backend/internal/store"
)

// TransactionService exposes the per-user transaction operations. Every
// method authorizes the session first and scopes storage access to the
// resolved user id.
type TransactionService struct {
	Store     store.Store
	Authorize *AuthorizeService
}

// List returns the user's transactions narrowed by the given filters. All
// supplied filters apply together; with none supplied the full set returns.
func (s *TransactionService) List(ctx context.Context, username, sessionToken string, f domain.TransactionFilter) ([]domain.Transaction, error) {
	userID, err := s.Authorize.Authorize(ctx, username, sessionToken)
	if err != nil {
		return nil, err
	}
	return s.Store.Transactions().ListTransactions(ctx, userID, f)
}

// Get fetches one transaction owned by the user. A transaction belonging to
// someone else is ErrTransactionNotFound, same as a missing one.
func (s *TransactionService) Get(ctx context.Context, username, sessionToken string, id int64) (domain.Transaction, error) {
	userID, err := s.Authorize.Authorize(ctx, username, sessionToken)
	if err != nil {
		return domain.Transaction{}, err
	}

	t, err := s.Store.Transactions().GetTransaction(ctx, userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Transaction{}, ErrTransactionNotFound
		}
		return domain.Transaction{}, err
	}
	return t, nil
}

// Create records a new transaction for the authorized user and returns the
// assigned id. Ownership comes from the session, not the payload.
func (s *TransactionService) Create(ctx context.Context, username, sessionToken string, t domain.Transaction) (int64, error) {
	userID, err := s.Authorize.Authorize(ctx, username, sessionToken)
	if err != nil {
		return 0, err
	}

	t.UserID = userID
	return s.Store.Transactions().CreateTransaction(ctx, t)
}

// Edit replaces the fields of one owned transaction in full.
func (s *TransactionService) Edit(ctx context.Context, username, sessionToken string, t domain.Transaction) error {
	userID, err := s.Authorize.Authorize(ctx, username, sessionToken)
	if err != nil {
		return err
	}

	t.UserID = userID
	if err := s.Store.Transactions().UpdateTransaction(ctx, t); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}
	return nil
}
