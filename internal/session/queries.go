package session

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/budget"
	"github.com/carson-networks/expense-tracker/internal/category"
	"github.com/carson-networks/expense-tracker/internal/currency"
	"github.com/carson-networks/expense-tracker/internal/ledger"
)

func (s *Session) Transactions() []ledger.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Transactions()
}

func (s *Session) Stats() ledger.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Stats()
}

func (s *Session) CategoryTotals(t category.Type) []ledger.CategoryTotal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.CategoryTotals(t)
}

func (s *Session) TimeSeries(t category.Type) []ledger.DailyAmount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.TimeSeries(t)
}

func (s *Session) Breakdown(t category.Type) []ledger.CategoryShare {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Breakdown(t)
}

func (s *Session) Filter(spec ledger.FilterSpec) []ledger.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Filter(spec)
}

func (s *Session) Recent(n int) []ledger.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Recent(n)
}

// Budget evaluates the stored limit against the current month.
func (s *Session) Budget() budget.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgetStatus()
}

func (s *Session) BudgetLimit() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgetLimit
}

func (s *Session) Currency() currency.Currency {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}
