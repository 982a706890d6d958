package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/expense-tracker/internal/notify"
)

func TestList(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	out := List([]notify.Event{
		{Kind: notify.TransactionAdded, UserID: "u1", TransactionID: "tx-1", Message: "added", At: at},
		{Kind: notify.BudgetExceeded, UserID: "u1", Message: "over", At: at},
	})

	assert.Equal(t, []Event{
		{Kind: "transaction_added", TransactionID: "tx-1", Message: "added", At: at},
		{Kind: "budget_exceeded", Message: "over", At: at},
	}, out)
	assert.NotNil(t, List(nil))
}

func TestBudgetExceeded(t *testing.T) {
	assert.False(t, BudgetExceeded(nil))
	assert.False(t, BudgetExceeded([]notify.Event{{Kind: notify.BudgetUpdated}}))
	assert.True(t, BudgetExceeded([]notify.Event{{Kind: notify.BudgetUpdated}, {Kind: notify.BudgetExceeded}}))
}
