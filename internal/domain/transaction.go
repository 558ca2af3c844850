package domain

// Transaction is a single tracked money movement owned by exactly one user.
// Dates travel as Unix milliseconds; no ordering is enforced between start,
// end and due dates beyond presence. DueDate is optional.
type Transaction struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"userId"`
	StartDate int64   `json:"startDate"`
	EndDate   int64   `json:"endDate"`
	DueDate   *int64  `json:"dueDate,omitempty"`
	Type      int64   `json:"transactionType"`
	TypeLabel string  `json:"transactionTypeLabel,omitempty"`
	Frequency string  `json:"frequency"`
	Name      string  `json:"transactionName"`
	Amount    float64 `json:"amount"`
	Received  bool    `json:"received"`
}

// TransactionFilter narrows a transaction listing. Nil fields are absent
// filters; present fields combine with AND in the fixed order start, end,
// type.
type TransactionFilter struct {
	StartDate *int64 // inclusive lower bound on StartDate
	EndDate   *int64 // inclusive upper bound on EndDate
	Type      *int64 // equality on Type
}
