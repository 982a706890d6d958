package transaction

import (
	"errors"
	"time"

	"github.com/carson-networks/expense-tracker/internal/category"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/event"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/notify"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID           string `json:"id" doc:"Transaction id"`
	Type         string `json:"type" enum:"income,expense" doc:"Transaction type"`
	Amount       string `json:"amount" doc:"Decimal amount with two places"`
	Description  string `json:"description" doc:"What the money was for"`
	Category     string `json:"category" doc:"Category id, scoped to the type"`
	CategoryName string `json:"categoryName" doc:"Display name, Unknown if the id no longer resolves"`
	CategoryIcon string `json:"categoryIcon" doc:"Display icon"`
	Date         string `json:"date" doc:"RFC3339 transaction date"`
	CreatedAt    string `json:"createdAt" doc:"RFC3339 creation time"`
}

// TransactionResult is returned by create and update: the record plus the
// notifications the change raised.
type TransactionResult struct {
	Transaction
	Events         []event.Event `json:"events"`
	BudgetExceeded bool          `json:"budgetExceeded" doc:"True when this change took the month over budget"`
}

func toResult(tx ledger.Transaction, events []notify.Event) TransactionResult {
	return TransactionResult{
		Transaction:    toAPI(tx),
		Events:         event.List(events),
		BudgetExceeded: event.BudgetExceeded(events),
	}
}

func toAPI(tx ledger.Transaction) Transaction {
	display := category.Display(tx.Type, tx.Category)
	return Transaction{
		ID:           tx.ID,
		Type:         string(tx.Type),
		Amount:       tx.Amount.StringFixed(2),
		Description:  tx.Description,
		Category:     tx.Category,
		CategoryName: display.Name,
		CategoryIcon: display.Icon,
		Date:         tx.Date.Format(time.RFC3339),
		CreatedAt:    tx.CreatedAt.Format(time.RFC3339),
	}
}

func toAPIList(txs []ledger.Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	for i, tx := range txs {
		out[i] = toAPI(tx)
	}
	return out
}

// parseDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates. A plain
// date is read as the start of that day in UTC, or its last instant when
// endOfDay is set.
func parseDate(field, value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, ledger.NewValidationError(field, "Expected an RFC3339 timestamp or YYYY-MM-DD date")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// collect merges a field parse error into verr.
func collect(verr *ledger.ValidationError, err error) {
	var fieldErr *ledger.ValidationError
	if errors.As(err, &fieldErr) {
		verr.Merge(fieldErr)
	}
}
