package service

import (
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/operator"
	"github.com/carson-networks/expense-tracker/internal/session"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Auth   *AuthService
	Ledger *LedgerService
}

// NewService wires the services over shared sessions and the operator queue.
func NewService(
	store storage.Adapter,
	sessions *session.Manager,
	op *operator.OperatorDelegator,
	authenticator *auth.StaticAuthenticator,
	tokens *auth.Tokens,
	logger *logrus.Logger,
) *Service {
	return &Service{
		Auth:   NewAuthService(authenticator, tokens, store, sessions, logger),
		Ledger: NewLedgerService(op),
	}
}
