package actions

import (
	"context"

	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/notify"
	"github.com/carson-networks/expense-tracker/internal/session"
)

type CreateTransaction struct {
	Input ledger.TransactionInput

	Transaction ledger.Transaction
	Events      []notify.Event
}

func (c *CreateTransaction) Perform(ctx context.Context, s *session.Session) error {
	var err error
	c.Transaction, c.Events, err = s.Add(ctx, c.Input)
	return err
}

type UpdateTransaction struct {
	ID    string
	Patch ledger.TransactionPatch

	Transaction ledger.Transaction
	Events      []notify.Event
}

func (u *UpdateTransaction) Perform(ctx context.Context, s *session.Session) error {
	var err error
	u.Transaction, u.Events, err = s.Update(ctx, u.ID, u.Patch)
	return err
}

type DeleteTransaction struct {
	ID string

	Events []notify.Event
}

func (d *DeleteTransaction) Perform(ctx context.Context, s *session.Session) error {
	var err error
	d.Events, err = s.Delete(ctx, d.ID)
	return err
}
