// Package budget evaluates a monthly spending limit against a ledger.
package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/category"
	"github.com/carson-networks/expense-tracker/internal/ledger"
)

var hundred = decimal.NewFromInt(100)

// Status is the result of one evaluation. A zero Limit means no budget is set.
type Status struct {
	Limit        decimal.Decimal `json:"limit"`
	Consumed     decimal.Decimal `json:"consumed"`
	Remaining    decimal.Decimal `json:"remaining"`
	IsOverBudget bool            `json:"isOverBudget"`
	Percent      decimal.Decimal `json:"percent"`
}

// Evaluate sums the expenses dated in the UTC calendar month of now and
// compares them against limit. Remaining may be negative.
func Evaluate(transactions []ledger.Transaction, limit decimal.Decimal, now time.Time) Status {
	consumed := decimal.Zero
	year, month, _ := now.UTC().Date()
	for _, tx := range transactions {
		if tx.Type != category.Expense {
			continue
		}
		y, m, _ := tx.Date.UTC().Date()
		if y == year && m == month {
			consumed = consumed.Add(tx.Amount)
		}
	}
	consumed = consumed.Round(2)

	status := Status{
		Limit:     limit,
		Consumed:  consumed,
		Remaining: limit.Sub(consumed),
		Percent:   decimal.Zero,
	}
	if limit.IsPositive() {
		status.IsOverBudget = consumed.GreaterThan(limit)
		status.Percent = consumed.Div(limit).Mul(hundred).Round(1)
	}
	return status
}

// ValidateLimit rejects limits the entry form would not accept.
func ValidateLimit(limit decimal.Decimal) error {
	if !limit.IsPositive() {
		return ledger.NewValidationError("limit", "Budget limit must be a positive number")
	}
	return nil
}

// Tracker detects the moment spending crosses over the limit so callers can
// alert once per crossing instead of on every evaluation.
type Tracker struct {
	over bool
}

// NewTracker starts from a known state, typically the first evaluation of a session.
func NewTracker(initial Status) *Tracker {
	return &Tracker{over: initial.IsOverBudget}
}

// Observe records status and reports whether it is a transition from under to over budget.
func (t *Tracker) Observe(status Status) bool {
	crossed := status.IsOverBudget && !t.over
	t.over = status.IsOverBudget
	return crossed
}

// Over reports the last observed state.
func (t *Tracker) Over() bool {
	return t.over
}

// Reset forgets the previous state; the next over-budget observation alerts again.
func (t *Tracker) Reset() {
	t.over = false
}
