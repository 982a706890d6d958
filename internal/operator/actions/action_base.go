package actions

import (
	"context"

	"github.com/carson-networks/expense-tracker/internal/session"
)

// IAction is one unit of work run against a user's session by an operator.
// Result fields are filled in before Perform returns, including when it
// returns a storage error after the in-memory change was applied.
type IAction interface {
	Perform(ctx context.Context, s *session.Session) error
}

// Read runs fn in the user's queue, so it observes every earlier mutation.
type Read struct {
	Fn func(s *session.Session)
}

func (r *Read) Perform(_ context.Context, s *session.Session) error {
	r.Fn(s)
	return nil
}
