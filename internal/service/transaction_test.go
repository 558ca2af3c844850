package service

import (
	"context"
	"testing"

	"github.com/kidzegeye/akoma-backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestCreateAndGetTransaction(t *testing.T) {
	ctx := context.Background()
	users, transactions, _ := newTestServices(t)
	creds := registerTestUser(t, users, "alice")

	due := int64Ptr(1500)
	id, err := transactions.Create(ctx, "alice", creds.SessionToken, domain.Transaction{
		StartDate: 1000, EndDate: 2000, DueDate: due, Type: 3,
		Frequency: "once", Name: "equipment loan", Amount: 550.25, Received: true,
	})
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := transactions.Get(ctx, "alice", creds.SessionToken, id)
	require.NoError(t, err)
	require.Equal(t, "equipment loan", got.Name)
	require.Equal(t, 550.25, got.Amount)
	require.Equal(t, "Loan", got.TypeLabel)
	require.NotNil(t, got.DueDate)
	require.Equal(t, int64(1500), *got.DueDate)
	require.True(t, got.Received)

	t.Run("due date may be absent", func(t *testing.T) {
		id, err := transactions.Create(ctx, "alice", creds.SessionToken, domain.Transaction{
			StartDate: 1000, EndDate: 2000, Type: 1,
			Frequency: "weekly", Name: "sales", Amount: 90,
		})
		require.NoError(t, err)

		got, err := transactions.Get(ctx, "alice", creds.SessionToken, id)
		require.NoError(t, err)
		require.Nil(t, got.DueDate)
	})

	t.Run("missing transaction", func(t *testing.T) {
		_, err := transactions.Get(ctx, "alice", creds.SessionToken, 9999)
		require.ErrorIs(t, err, ErrTransactionNotFound)
	})
}

func TestListTransactionsFilters(t *testing.T) {
	ctx := context.Background()
	users, transactions, _ := newTestServices(t)
	creds := registerTestUser(t, users, "alice")

	seed := []domain.Transaction{
		{StartDate: 100, EndDate: 200, Type: 1, Frequency: "once", Name: "early income", Amount: 10},
		{StartDate: 300, EndDate: 400, Type: 2, Frequency: "once", Name: "mid expense", Amount: 20},
		{StartDate: 500, EndDate: 600, Type: 1, Frequency: "once", Name: "late income", Amount: 30},
	}
	for _, txn := range seed {
		_, err := transactions.Create(ctx, "alice", creds.SessionToken, txn)
		require.NoError(t, err)
	}

	list := func(f domain.TransactionFilter) []domain.Transaction {
		out, err := transactions.List(ctx, "alice", creds.SessionToken, f)
		require.NoError(t, err)
		return out
	}

	t.Run("no filters returns everything", func(t *testing.T) {
		require.Len(t, list(domain.TransactionFilter{}), 3)
	})

	t.Run("start date is a lower bound", func(t *testing.T) {
		out := list(domain.TransactionFilter{StartDate: int64Ptr(300)})
		require.Len(t, out, 2)
		require.Equal(t, "mid expense", out[0].Name)
	})

	t.Run("end date is an upper bound", func(t *testing.T) {
		out := list(domain.TransactionFilter{EndDate: int64Ptr(400)})
		require.Len(t, out, 2)
		require.Equal(t, "early income", out[0].Name)
	})

	t.Run("type matches exactly", func(t *testing.T) {
		out := list(domain.TransactionFilter{Type: int64Ptr(1)})
		require.Len(t, out, 2)
	})

	t.Run("filters intersect", func(t *testing.T) {
		out := list(domain.TransactionFilter{
			StartDate: int64Ptr(300),
			EndDate:   int64Ptr(600),
			Type:      int64Ptr(1),
		})
		require.Len(t, out, 1)
		require.Equal(t, "late income", out[0].Name)
	})

	t.Run("disjoint filters return empty", func(t *testing.T) {
		out := list(domain.TransactionFilter{StartDate: int64Ptr(700)})
		require.Empty(t, out)
	})
}

func TestEditTransaction(t *testing.T) {
	ctx := context.Background()
	users, transactions, _ := newTestServices(t)
	creds := registerTestUser(t, users, "alice")

	id, err := transactions.Create(ctx, "alice", creds.SessionToken, domain.Transaction{
		StartDate: 100, EndDate: 200, Type: 2,
		Frequency: "monthly", Name: "rent", Amount: 1200,
	})
	require.NoError(t, err)

	err = transactions.Edit(ctx, "alice", creds.SessionToken, domain.Transaction{
		ID: id, StartDate: 100, EndDate: 250, DueDate: int64Ptr(240), Type: 2,
		Frequency: "monthly", Name: "rent + utilities", Amount: 1350.50, Received: true,
	})
	require.NoError(t, err)

	got, err := transactions.Get(ctx, "alice", creds.SessionToken, id)
	require.NoError(t, err)
	require.Equal(t, "rent + utilities", got.Name)
	require.Equal(t, 1350.50, got.Amount)
	require.Equal(t, int64(250), got.EndDate)
	require.NotNil(t, got.DueDate)
	require.True(t, got.Received)

	t.Run("editing a missing transaction", func(t *testing.T) {
		err := transactions.Edit(ctx, "alice", creds.SessionToken, domain.Transaction{
			ID: 9999, StartDate: 1, EndDate: 2, Type: 1, Frequency: "once", Name: "x",
		})
		require.ErrorIs(t, err, ErrTransactionNotFound)
	})
}

func TestTransactionOwnershipIsEnforced(t *testing.T) {
	ctx := context.Background()
	users, transactions, _ := newTestServices(t)
	aliceCreds := registerTestUser(t, users, "alice")
	bobCreds := registerTestUser(t, users, "bob")

	id, err := transactions.Create(ctx, "alice", aliceCreds.SessionToken, domain.Transaction{
		StartDate: 100, EndDate: 200, Type: 1, Frequency: "once", Name: "private", Amount: 5,
	})
	require.NoError(t, err)

	t.Run("another user cannot fetch it", func(t *testing.T) {
		_, err := transactions.Get(ctx, "bob", bobCreds.SessionToken, id)
		require.ErrorIs(t, err, ErrTransactionNotFound)
	})

	t.Run("another user cannot edit it", func(t *testing.T) {
		err := transactions.Edit(ctx, "bob", bobCreds.SessionToken, domain.Transaction{
			ID: id, StartDate: 1, EndDate: 2, Type: 1, Frequency: "once", Name: "stolen",
		})
		require.ErrorIs(t, err, ErrTransactionNotFound)

		got, err := transactions.Get(ctx, "alice", aliceCreds.SessionToken, id)
		require.NoError(t, err)
		require.Equal(t, "private", got.Name)
	})

	t.Run("listings never mix owners", func(t *testing.T) {
		out, err := transactions.List(ctx, "bob", bobCreds.SessionToken, domain.TransactionFilter{})
		require.NoError(t, err)
		require.Empty(t, out)
	})
}
