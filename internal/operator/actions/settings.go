package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/budget"
	"github.com/carson-networks/expense-tracker/internal/currency"
	"github.com/carson-networks/expense-tracker/internal/notify"
	"github.com/carson-networks/expense-tracker/internal/session"
)

type SetBudget struct {
	Limit decimal.Decimal

	Status budget.Status
	Events []notify.Event
}

func (b *SetBudget) Perform(ctx context.Context, s *session.Session) error {
	var err error
	b.Status, b.Events, err = s.SetBudgetLimit(ctx, b.Limit)
	return err
}

type SetCurrency struct {
	Code string

	Currency currency.Currency
	Events   []notify.Event
}

func (c *SetCurrency) Perform(ctx context.Context, s *session.Session) error {
	var err error
	c.Currency, c.Events, err = s.SetCurrency(ctx, c.Code)
	return err
}

// Rollover re-evaluates the monthly budget, used by the scheduler.
type Rollover struct {
	Events []notify.Event
}

func (r *Rollover) Perform(ctx context.Context, s *session.Session) error {
	r.Events = s.Rollover(ctx)
	return nil
}
