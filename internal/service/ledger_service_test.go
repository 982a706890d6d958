package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/category"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/notify"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, userID string, action actions.IAction) error {
	return m.Called(ctx, userID, action).Error(0)
}

func lunchInput() ledger.TransactionInput {
	return ledger.TransactionInput{
		Type:        category.Expense,
		Amount:      decimal.RequireFromString("12.50"),
		Description: "Lunch",
		Category:    "food",
	}
}

// -- Routing tests (mock operator) --

func TestAddTransaction_RoutesCreateAction(t *testing.T) {
	op := new(mockProcessor)
	op.On("Process", mock.Anything, "u1", mock.AnythingOfType("*actions.CreateTransaction")).
		Run(func(args mock.Arguments) {
			action := args.Get(2).(*actions.CreateTransaction)
			action.Transaction = ledger.Transaction{ID: "tx-9"}
			action.Events = []notify.Event{{Kind: notify.TransactionAdded, TransactionID: "tx-9"}}
		}).
		Return(nil)

	tx, events, err := NewLedgerService(op).AddTransaction(context.Background(), "u1", lunchInput())

	assert.NoError(t, err)
	assert.Equal(t, "tx-9", tx.ID)
	require.Len(t, events, 1)
	assert.Equal(t, notify.TransactionAdded, events[0].Kind)
	op.AssertExpectations(t)
}

func TestAddTransaction_StorageErrorStillReturnsRecord(t *testing.T) {
	saveErr := &storage.StorageError{Op: "save", Key: "transactions_u1", Err: errors.New("quota exceeded")}
	op := new(mockProcessor)
	op.On("Process", mock.Anything, "u1", mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(2).(*actions.CreateTransaction).Transaction = ledger.Transaction{ID: "tx-9"}
		}).
		Return(saveErr)

	tx, _, err := NewLedgerService(op).AddTransaction(context.Background(), "u1", lunchInput())

	assert.ErrorIs(t, err, saveErr)
	assert.Equal(t, "tx-9", tx.ID)
}

func TestDeleteTransaction_RoutesDeleteAction(t *testing.T) {
	op := new(mockProcessor)
	op.On("Process", mock.Anything, "u1", mock.MatchedBy(func(a actions.IAction) bool {
		d, ok := a.(*actions.DeleteTransaction)
		return ok && d.ID == "tx-1"
	})).Return(nil)

	_, err := NewLedgerService(op).DeleteTransaction(context.Background(), "u1", "tx-1")

	assert.NoError(t, err)
	op.AssertExpectations(t)
}

func TestStats_OperatorError(t *testing.T) {
	op := new(mockProcessor)
	op.On("Process", mock.Anything, "u1", mock.AnythingOfType("*actions.Read")).
		Return(context.DeadlineExceeded)

	_, err := NewLedgerService(op).Stats(context.Background(), "u1")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// -- End to end tests (real operator, memory storage) --

func TestLedgerService_EndToEnd(t *testing.T) {
	env := newTestEnv(t)
	svc := env.svc.Ledger
	ctx := context.Background()

	tx, _, err := svc.AddTransaction(ctx, "u1", lunchInput())
	require.NoError(t, err)

	salary := lunchInput()
	salary.Type = category.Income
	salary.Category = "salary"
	salary.Amount = decimal.RequireFromString("100")
	salary.Description = "Paycheck"
	_, _, err = svc.AddTransaction(ctx, "u1", salary)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, stats.Balance.Equal(decimal.RequireFromString("87.5")))

	recent, err := svc.RecentTransactions(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
	assert.Equal(t, "Paycheck", recent[0].Description)

	listed, err := svc.ListTransactions(ctx, "u1", ledger.FilterSpec{Type: "expense"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, tx.ID, listed[0].ID)

	totals, err := svc.CategoryTotals(ctx, "u1", category.Expense)
	require.NoError(t, err)
	assert.Equal(t, "food", totals[0].ID)

	series, err := svc.TimeSeries(ctx, "u1", category.Expense)
	require.NoError(t, err)
	require.Len(t, series, 1)

	breakdown, err := svc.Breakdown(ctx, "u1", category.Income)
	require.NoError(t, err)
	require.Len(t, breakdown, 1)
	assert.True(t, breakdown[0].Percent.Equal(decimal.NewFromInt(100)))

	status, events, err := svc.SetBudget(ctx, "u1", decimal.RequireFromString("10"))
	require.NoError(t, err)
	assert.True(t, status.IsOverBudget)
	assert.Equal(t, []notify.Kind{notify.BudgetUpdated, notify.BudgetExceeded}, kinds(events))

	status, err = svc.Budget(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, status.Limit.Equal(decimal.RequireFromString("10")))

	selected, _, err := svc.SetCurrency(ctx, "u1", "JPY")
	require.NoError(t, err)
	assert.Equal(t, "¥", selected.Symbol)
	current, err := svc.Currency(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "JPY", current.Code)

	desc := "Dinner"
	updated, events, err := svc.UpdateTransaction(ctx, "u1", tx.ID, ledger.TransactionPatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Dinner", updated.Description)
	assert.Equal(t, []notify.Kind{notify.TransactionUpdated}, kinds(events))

	events, err = svc.DeleteTransaction(ctx, "u1", tx.ID)
	require.NoError(t, err)
	assert.Equal(t, []notify.Kind{notify.TransactionDeleted}, kinds(events))
	_, err = svc.DeleteTransaction(ctx, "u1", tx.ID)
	var notFound *ledger.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	persisted, err := env.store.LoadTransactions(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, persisted, 1)
}

func TestLedgerService_BudgetExceededReturnedOnce(t *testing.T) {
	env := newTestEnv(t)
	svc := env.svc.Ledger
	ctx := context.Background()

	_, events, err := svc.SetBudget(ctx, "u1", decimal.RequireFromString("20"))
	require.NoError(t, err)
	assert.Equal(t, []notify.Kind{notify.BudgetUpdated}, kinds(events))

	_, events, err = svc.AddTransaction(ctx, "u1", lunchInput())
	require.NoError(t, err)
	assert.Equal(t, []notify.Kind{notify.TransactionAdded}, kinds(events))

	_, events, err = svc.AddTransaction(ctx, "u1", lunchInput())
	require.NoError(t, err)
	assert.Equal(t, []notify.Kind{notify.TransactionAdded, notify.BudgetExceeded}, kinds(events))

	_, events, err = svc.AddTransaction(ctx, "u1", lunchInput())
	require.NoError(t, err)
	assert.Equal(t, []notify.Kind{notify.TransactionAdded}, kinds(events))
}

func kinds(events []notify.Event) []notify.Kind {
	out := make([]notify.Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}
