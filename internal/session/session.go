// Package session holds the in-memory ledger state of one signed-in user and
// keeps it in step with storage.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/budget"
	"github.com/carson-networks/expense-tracker/internal/category"
	"github.com/carson-networks/expense-tracker/internal/currency"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/notify"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

// Session is one user's working state. A mutation is applied in memory first
// and then persisted; when the save fails the change is kept and the
// StorageError is returned so the caller can warn that it is not durable.
type Session struct {
	UserID string

	mu          sync.Mutex
	store       storage.Adapter
	sink        notify.Sink
	logger      *logrus.Logger
	now         func() time.Time
	ledger      ledger.Ledger
	budgetLimit decimal.Decimal
	tracker     *budget.Tracker
	currency    currency.Currency
}

func (s *Session) Add(ctx context.Context, input ledger.TransactionInput) (ledger.Transaction, []notify.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, tx, err := s.ledger.Add(input)
	if err != nil {
		return ledger.Transaction{}, nil, err
	}
	s.ledger = next

	title := "Expense Added"
	if tx.Type == category.Income {
		title = "Income Added"
	}
	events := []notify.Event{s.event(notify.TransactionAdded, tx.ID,
		fmt.Sprintf("%s: %s has been added successfully.", title, tx.Description))}
	events = s.checkBudget(events)

	err = s.saveTransactions(ctx)
	s.publish(ctx, events)
	return tx, events, err
}

func (s *Session) Update(ctx context.Context, id string, patch ledger.TransactionPatch) (ledger.Transaction, []notify.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, tx, err := s.ledger.Update(id, patch)
	if err != nil {
		return ledger.Transaction{}, nil, err
	}
	s.ledger = next

	events := []notify.Event{s.event(notify.TransactionUpdated, tx.ID,
		"Transaction Updated: Your transaction has been updated successfully.")}
	events = s.checkBudget(events)

	err = s.saveTransactions(ctx)
	s.publish(ctx, events)
	return tx, events, err
}

func (s *Session) Delete(ctx context.Context, id string) ([]notify.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.ledger.Delete(id)
	if err != nil {
		return nil, err
	}
	s.ledger = next

	events := []notify.Event{s.event(notify.TransactionDeleted, id,
		"Transaction Deleted: Your transaction has been deleted successfully.")}
	events = s.checkBudget(events)

	err = s.saveTransactions(ctx)
	s.publish(ctx, events)
	return events, err
}

func (s *Session) SetBudgetLimit(ctx context.Context, limit decimal.Decimal) (budget.Status, []notify.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := budget.ValidateLimit(limit); err != nil {
		return budget.Status{}, nil, err
	}
	s.budgetLimit = limit

	events := []notify.Event{s.event(notify.BudgetUpdated, "",
		fmt.Sprintf("Budget Updated: Monthly budget set to %s", currency.Format(limit, s.currency)))}
	events = s.checkBudget(events)

	var err error
	if saveErr := s.store.SaveBudgetLimit(ctx, s.UserID, limit); saveErr != nil {
		s.logger.WithError(saveErr).WithField("userID", s.UserID).Error("Session.SetBudgetLimit.save")
		err = saveErr
	}
	s.publish(ctx, events)
	return s.budgetStatus(), events, err
}

func (s *Session) SetCurrency(ctx context.Context, code string) (currency.Currency, []notify.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected, err := currency.Lookup(code)
	if err != nil {
		return currency.Currency{}, nil, ledger.NewValidationError("currency", err.Error())
	}
	s.currency = selected

	events := []notify.Event{s.event(notify.CurrencyUpdated, "",
		fmt.Sprintf("Currency Updated: Amounts are now shown in %s", selected.Name))}

	if saveErr := s.store.SaveCurrency(ctx, s.UserID, selected.Code); saveErr != nil {
		s.logger.WithError(saveErr).WithField("userID", s.UserID).Error("Session.SetCurrency.save")
		err = saveErr
	}
	s.publish(ctx, events)
	return selected, events, err
}

// Rollover re-evaluates the budget against the current clock. At a month
// boundary this clears the over-budget flag so the next crossing alerts again.
func (s *Session) Rollover(ctx context.Context) []notify.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.checkBudget(nil)
	s.publish(ctx, events)
	return events
}

func (s *Session) saveTransactions(ctx context.Context) error {
	err := s.store.SaveTransactions(ctx, s.UserID, s.ledger.Transactions())
	if err != nil {
		s.logger.WithError(err).WithField("userID", s.UserID).Error("Session.saveTransactions")
	}
	return err
}

// checkBudget appends a budget_exceeded event when the latest evaluation
// crosses from under to over the limit.
func (s *Session) checkBudget(events []notify.Event) []notify.Event {
	status := s.budgetStatus()
	if s.tracker.Observe(status) {
		events = append(events, s.event(notify.BudgetExceeded, "",
			fmt.Sprintf("Budget Exceeded: You have spent %s of your %s monthly budget",
				currency.Format(status.Consumed, s.currency), currency.Format(status.Limit, s.currency))))
	}
	return events
}

func (s *Session) budgetStatus() budget.Status {
	return budget.Evaluate(s.ledger.Transactions(), s.budgetLimit, s.now())
}

func (s *Session) event(kind notify.Kind, transactionID, message string) notify.Event {
	return notify.Event{
		Kind:          kind,
		UserID:        s.UserID,
		TransactionID: transactionID,
		Message:       message,
		At:            s.now(),
	}
}

func (s *Session) publish(ctx context.Context, events []notify.Event) {
	for _, event := range events {
		if err := s.sink.Publish(ctx, event); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"userID": s.UserID,
				"kind":   event.Kind,
			}).Warn("Session.publish")
		}
	}
}
