package http

import (
	"net/http"

	"github.com/kidzegeye/akoma-backend/internal/domain"
	"github.com/kidzegeye/akoma-backend/internal/service"
	"github.com/kidzegeye/akoma-backend/pkg/httpx"
	"github.com/kidzegeye/akoma-backend/pkg/slogx"
)

// TransactionsHandler serves the per-user transaction operations. Every
// endpoint requires a bearer session token alongside the username.
type TransactionsHandler struct {
	TransactionService *service.TransactionService
}

type listTransactionsRequest struct {
	Username  string `json:"username"`
	StartDate *int64 `json:"startDate"`
	EndDate   *int64 `json:"endDate"`
	Type      *int64 `json:"transactionType"`
}

// HandleList returns the caller's transactions, narrowed by whichever
// filters are present in the request.
func (h *TransactionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token, err := httpx.BearerToken(r)
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Authorization token required")
		return
	}

	var req listTransactionsRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" {
		httpx.WriteFailure(w, http.StatusBadRequest, "username is required")
		return
	}

	txns, err := h.TransactionService.List(ctx, req.Username, token, domain.TransactionFilter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Type:      req.Type,
	})
	if err != nil {
		writeServiceError(w, log, "list_transactions", err)
		return
	}

	// Encode an empty listing as [] rather than null.
	if txns == nil {
		txns = []domain.Transaction{}
	}
	httpx.WriteSuccess(w, http.StatusOK, txns)
}

type getTransactionRequest struct {
	Username string `json:"username"`
	ID       int64  `json:"id"`
}

// HandleGetOne returns a single owned transaction by id.
func (h *TransactionsHandler) HandleGetOne(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token, err := httpx.BearerToken(r)
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Authorization token required")
		return
	}

	var req getTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" {
		httpx.WriteFailure(w, http.StatusBadRequest, "username is required")
		return
	}
	if req.ID == 0 {
		httpx.WriteFailure(w, http.StatusBadRequest, "id is required")
		return
	}

	txn, err := h.TransactionService.Get(ctx, req.Username, token, req.ID)
	if err != nil {
		writeServiceError(w, log, "get_transaction", err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, txn)
}

type writeTransactionRequest struct {
	Username  string  `json:"username"`
	ID        int64   `json:"id"`
	StartDate int64   `json:"startDate"`
	EndDate   int64   `json:"endDate"`
	DueDate   *int64  `json:"dueDate"`
	Type      int64   `json:"transactionType"`
	Frequency string  `json:"frequency"`
	Name      string  `json:"transactionName"`
	Amount    float64 `json:"amount"`
	Received  bool    `json:"received"`
}

func (req *writeTransactionRequest) validate() string {
	switch {
	case req.Username == "":
		return "username is required"
	case req.Name == "":
		return "transactionName is required"
	case req.Frequency == "":
		return "frequency is required"
	case req.Type == 0:
		return "transactionType is required"
	case req.StartDate == 0:
		return "startDate is required"
	case req.EndDate == 0:
		return "endDate is required"
	}
	return ""
}

func (req *writeTransactionRequest) transaction() domain.Transaction {
	return domain.Transaction{
		ID:        req.ID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		DueDate:   req.DueDate,
		Type:      req.Type,
		Frequency: req.Frequency,
		Name:      req.Name,
		Amount:    req.Amount,
		Received:  req.Received,
	}
}

// HandleCreate records a new transaction for the caller. Every field except
// dueDate is required.
func (h *TransactionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token, err := httpx.BearerToken(r)
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Authorization token required")
		return
	}

	var req writeTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		httpx.WriteFailure(w, http.StatusBadRequest, msg)
		return
	}

	if _, err := h.TransactionService.Create(ctx, req.Username, token, req.transaction()); err != nil {
		writeServiceError(w, log, "create_transaction", err)
		return
	}

	httpx.WriteSuccess(w, http.StatusCreated, "Transaction Added")
}

// HandleEdit replaces one owned transaction in full.
func (h *TransactionsHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token, err := httpx.BearerToken(r)
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Authorization token required")
		return
	}

	var req writeTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID == 0 {
		httpx.WriteFailure(w, http.StatusBadRequest, "id is required")
		return
	}
	if msg := req.validate(); msg != "" {
		httpx.WriteFailure(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.TransactionService.Edit(ctx, req.Username, token, req.transaction()); err != nil {
		writeServiceError(w, log, "edit_transaction", err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Transaction Updated")
}
