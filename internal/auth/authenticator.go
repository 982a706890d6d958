// Package auth checks demo credentials and issues the bearer tokens that
// identify a user to the API. It is a stand-in, not a security boundary.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// userNamespace seeds the deterministic uuid v5 user ids.
var userNamespace = uuid.Must(uuid.FromString("6f1d2c0e-4b5a-4e7f-9a61-3c2d8b7e5f10"))

type Credentials struct {
	Email    string
	Password string
}

// Account is what the authenticator knows about a user.
type Account struct {
	UserID string
	Email  string
	Name   string
}

type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (Account, error)
}

// UserID derives the stable id for an email address.
func UserID(email string) string {
	return uuid.NewV5(userNamespace, normalizeEmail(email)).String()
}

type account struct {
	Account
	passwordHash []byte
}

// StaticAuthenticator holds the configured demo account plus any accounts
// registered since the process started.
type StaticAuthenticator struct {
	mu       sync.RWMutex
	accounts map[string]account
}

func NewStaticAuthenticator(email, password, name string) (*StaticAuthenticator, error) {
	a := &StaticAuthenticator{accounts: make(map[string]account)}
	if _, err := a.Register(context.Background(), email, password, name); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *StaticAuthenticator) Authenticate(_ context.Context, creds Credentials) (Account, error) {
	a.mu.RLock()
	acct, ok := a.accounts[normalizeEmail(creds.Email)]
	a.mu.RUnlock()
	if !ok {
		return Account{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(creds.Password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return acct.Account, nil
}

// Register adds an account for the lifetime of the process.
func (a *StaticAuthenticator) Register(_ context.Context, email, password, name string) (Account, error) {
	key := normalizeEmail(email)
	if key == "" || password == "" {
		return Account{}, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.accounts[key]; exists {
		return Account{}, ErrEmailTaken
	}

	acct := account{
		Account: Account{
			UserID: UserID(key),
			Email:  key,
			Name:   name,
		},
		passwordHash: hash,
	}
	a.accounts[key] = acct
	return acct.Account, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
