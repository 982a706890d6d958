package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/budget"
	"github.com/carson-networks/expense-tracker/internal/category"
	"github.com/carson-networks/expense-tracker/internal/currency"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/notify"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/session"
)

const DefaultRecentLimit = 5

type processor interface {
	Process(ctx context.Context, userID string, action actions.IAction) error
}

// LedgerService runs every ledger read and write through the user's operator
// queue, so a read always sees the user's earlier writes.
type LedgerService struct {
	operator processor
}

func NewLedgerService(op processor) *LedgerService {
	return &LedgerService{operator: op}
}

// AddTransaction returns the new record and the events it raised, even when
// err is a storage error.
func (s *LedgerService) AddTransaction(ctx context.Context, userID string, input ledger.TransactionInput) (ledger.Transaction, []notify.Event, error) {
	action := &actions.CreateTransaction{Input: input}
	err := s.operator.Process(ctx, userID, action)
	return action.Transaction, action.Events, err
}

func (s *LedgerService) UpdateTransaction(ctx context.Context, userID, id string, patch ledger.TransactionPatch) (ledger.Transaction, []notify.Event, error) {
	action := &actions.UpdateTransaction{ID: id, Patch: patch}
	err := s.operator.Process(ctx, userID, action)
	return action.Transaction, action.Events, err
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, userID, id string) ([]notify.Event, error) {
	action := &actions.DeleteTransaction{ID: id}
	err := s.operator.Process(ctx, userID, action)
	return action.Events, err
}

func (s *LedgerService) ListTransactions(ctx context.Context, userID string, spec ledger.FilterSpec) ([]ledger.Transaction, error) {
	var out []ledger.Transaction
	err := s.read(ctx, userID, func(sess *session.Session) {
		out = sess.Filter(spec)
	})
	return out, err
}

func (s *LedgerService) RecentTransactions(ctx context.Context, userID string, limit int) ([]ledger.Transaction, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	var out []ledger.Transaction
	err := s.read(ctx, userID, func(sess *session.Session) {
		out = sess.Recent(limit)
	})
	return out, err
}

func (s *LedgerService) Stats(ctx context.Context, userID string) (ledger.Stats, error) {
	var out ledger.Stats
	err := s.read(ctx, userID, func(sess *session.Session) {
		out = sess.Stats()
	})
	return out, err
}

func (s *LedgerService) CategoryTotals(ctx context.Context, userID string, t category.Type) ([]ledger.CategoryTotal, error) {
	var out []ledger.CategoryTotal
	err := s.read(ctx, userID, func(sess *session.Session) {
		out = sess.CategoryTotals(t)
	})
	return out, err
}

func (s *LedgerService) TimeSeries(ctx context.Context, userID string, t category.Type) ([]ledger.DailyAmount, error) {
	var out []ledger.DailyAmount
	err := s.read(ctx, userID, func(sess *session.Session) {
		out = sess.TimeSeries(t)
	})
	return out, err
}

func (s *LedgerService) Breakdown(ctx context.Context, userID string, t category.Type) ([]ledger.CategoryShare, error) {
	var out []ledger.CategoryShare
	err := s.read(ctx, userID, func(sess *session.Session) {
		out = sess.Breakdown(t)
	})
	return out, err
}

func (s *LedgerService) Budget(ctx context.Context, userID string) (budget.Status, error) {
	var out budget.Status
	err := s.read(ctx, userID, func(sess *session.Session) {
		out = sess.Budget()
	})
	return out, err
}

// SetBudget returns the re-evaluated status even when err is a storage error.
func (s *LedgerService) SetBudget(ctx context.Context, userID string, limit decimal.Decimal) (budget.Status, []notify.Event, error) {
	action := &actions.SetBudget{Limit: limit}
	err := s.operator.Process(ctx, userID, action)
	return action.Status, action.Events, err
}

func (s *LedgerService) Currency(ctx context.Context, userID string) (currency.Currency, error) {
	var out currency.Currency
	err := s.read(ctx, userID, func(sess *session.Session) {
		out = sess.Currency()
	})
	return out, err
}

func (s *LedgerService) SetCurrency(ctx context.Context, userID, code string) (currency.Currency, []notify.Event, error) {
	action := &actions.SetCurrency{Code: code}
	err := s.operator.Process(ctx, userID, action)
	return action.Currency, action.Events, err
}

func (s *LedgerService) read(ctx context.Context, userID string, fn func(*session.Session)) error {
	return s.operator.Process(ctx, userID, &actions.Read{Fn: fn})
}
