package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// Adapter is the persistence contract a session depends on.
type Adapter interface {
	LoadTransactions(ctx context.Context, userID string) ([]ledger.Transaction, error)
	SaveTransactions(ctx context.Context, userID string, transactions []ledger.Transaction) error
	LoadBudgetLimit(ctx context.Context, userID string) (decimal.Decimal, error)
	SaveBudgetLimit(ctx context.Context, userID string, limit decimal.Decimal) error
	LoadCurrency(ctx context.Context, userID string) (string, error)
	SaveCurrency(ctx context.Context, userID string, code string) error
	LoadProfile(ctx context.Context, userID string) (*UserProfile, error)
	SaveProfile(ctx context.Context, profile UserProfile) error
	DeleteProfile(ctx context.Context, userID string) error
}

var _ Adapter = (*Storage)(nil)

// UserProfile is the stored identity of a signed-in user.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func TransactionsKey(userID string) string { return "transactions_" + userID }
func BudgetKey(userID string) string       { return "budget_" + userID }
func CurrencyKey(userID string) string     { return "selectedCurrency_" + userID }
func ProfileKey(userID string) string      { return "expenseTrackerUser_" + userID }

// LoadTransactions returns nil when nothing has ever been stored for the user,
// and a non-nil slice once a collection has been saved, even an empty one.
func (s *Storage) LoadTransactions(ctx context.Context, userID string) ([]ledger.Transaction, error) {
	key := TransactionsKey(userID)
	raw, ok, err := s.get(ctx, "load", key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var transactions []ledger.Transaction
	if err := json.Unmarshal([]byte(raw), &transactions); err != nil {
		return nil, &StorageError{Op: "decode", Key: key, Err: err}
	}
	if transactions == nil {
		transactions = []ledger.Transaction{}
	}
	return transactions, nil
}

func (s *Storage) SaveTransactions(ctx context.Context, userID string, transactions []ledger.Transaction) error {
	key := TransactionsKey(userID)
	if transactions == nil {
		transactions = []ledger.Transaction{}
	}
	raw, err := json.Marshal(transactions)
	if err != nil {
		return &StorageError{Op: "encode", Key: key, Err: err}
	}
	return s.set(ctx, "save", key, string(raw))
}

// LoadBudgetLimit returns zero when no limit is stored.
func (s *Storage) LoadBudgetLimit(ctx context.Context, userID string) (decimal.Decimal, error) {
	key := BudgetKey(userID)
	raw, ok, err := s.get(ctx, "load", key)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, nil
	}

	limit, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &StorageError{Op: "decode", Key: key, Err: err}
	}
	return limit, nil
}

func (s *Storage) SaveBudgetLimit(ctx context.Context, userID string, limit decimal.Decimal) error {
	return s.set(ctx, "save", BudgetKey(userID), limit.String())
}

// LoadCurrency returns "" when the user never picked a currency.
func (s *Storage) LoadCurrency(ctx context.Context, userID string) (string, error) {
	raw, _, err := s.get(ctx, "load", CurrencyKey(userID))
	return raw, err
}

func (s *Storage) SaveCurrency(ctx context.Context, userID string, code string) error {
	return s.set(ctx, "save", CurrencyKey(userID), code)
}

// LoadProfile returns nil without error when no profile is stored.
func (s *Storage) LoadProfile(ctx context.Context, userID string) (*UserProfile, error) {
	key := ProfileKey(userID)
	raw, ok, err := s.get(ctx, "load", key)
	if err != nil || !ok {
		return nil, err
	}

	var profile UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, &StorageError{Op: "decode", Key: key, Err: err}
	}
	return &profile, nil
}

func (s *Storage) SaveProfile(ctx context.Context, profile UserProfile) error {
	key := ProfileKey(profile.ID)
	if profile.ID == "" {
		return &StorageError{Op: "save", Key: key, Err: errors.New("profile id is empty")}
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return &StorageError{Op: "encode", Key: key, Err: err}
	}
	return s.set(ctx, "save", key, string(raw))
}

func (s *Storage) DeleteProfile(ctx context.Context, userID string) error {
	key := ProfileKey(userID)
	if err := s.KV.Delete(ctx, key); err != nil {
		return &StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}
