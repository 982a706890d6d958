package operator

import (
	"context"

	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/session"
)

// Operator is a worker that owns one queue. Every user is pinned to a single
// operator, so a user's actions run one at a time in arrival order.
type Operator struct {
	sessions *session.Manager
	queue    chan ActionItem
}

func NewOperator(sessions *session.Manager, queue chan ActionItem) *Operator {
	return &Operator{
		sessions: sessions,
		queue:    queue,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	// the caller gave up while the item was queued
	if err := item.ctx.Err(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	s := o.sessions.Open(item.ctx, item.userID)
	err := item.action.Perform(item.ctx, s)
	item.response <- ActionItemResponse{err: err}
}

type ActionItem struct {
	ctx      context.Context
	userID   string
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
