// Package notify carries ledger events out of the process: to the log and,
// when configured, to a RabbitMQ exchange.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

type Kind string

const (
	TransactionAdded   Kind = "transaction_added"
	TransactionUpdated Kind = "transaction_updated"
	TransactionDeleted Kind = "transaction_deleted"
	BudgetUpdated      Kind = "budget_updated"
	BudgetExceeded     Kind = "budget_exceeded"
	CurrencyUpdated    Kind = "currency_updated"
)

// Event describes one change to a user's ledger state.
type Event struct {
	Kind          Kind      `json:"kind"`
	UserID        string    `json:"userId"`
	TransactionID string    `json:"transactionId,omitempty"`
	Message       string    `json:"message"`
	At            time.Time `json:"at"`
}

type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// LogSink writes each event as a structured log line.
type LogSink struct {
	Logger *logrus.Logger
}

func NewLogSink(logger *logrus.Logger) *LogSink {
	return &LogSink{Logger: logger}
}

func (s *LogSink) Publish(_ context.Context, event Event) error {
	entry := s.Logger.WithFields(logrus.Fields{
		"kind":   event.Kind,
		"userID": event.UserID,
		"at":     event.At,
	})
	if event.TransactionID != "" {
		entry = entry.WithField("transactionID", event.TransactionID)
	}

	if event.Kind == BudgetExceeded {
		entry.Warn(event.Message)
		return nil
	}
	entry.Info(event.Message)
	return nil
}

// Multi fans an event out to every sink and joins their errors.
type Multi []Sink

func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every event.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }
