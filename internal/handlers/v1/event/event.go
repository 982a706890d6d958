// Package event renders the notifications a mutation raised, so the client can
// show them the same way it shows the response.
package event

import (
	"time"

	"github.com/carson-networks/expense-tracker/internal/notify"
)

// Event is the API model of one notification.
type Event struct {
	Kind          string    `json:"kind" enum:"transaction_added,transaction_updated,transaction_deleted,budget_updated,budget_exceeded,currency_updated"`
	TransactionID string    `json:"transactionId,omitempty"`
	Message       string    `json:"message"`
	At            time.Time `json:"at"`
}

// List converts events for a response body. It never returns nil.
func List(events []notify.Event) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = Event{
			Kind:          string(e.Kind),
			TransactionID: e.TransactionID,
			Message:       e.Message,
			At:            e.At,
		}
	}
	return out
}

// BudgetExceeded reports whether events contain the over-budget crossing.
func BudgetExceeded(events []notify.Event) bool {
	for _, e := range events {
		if e.Kind == notify.BudgetExceeded {
			return true
		}
	}
	return false
}
