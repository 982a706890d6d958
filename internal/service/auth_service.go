package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/session"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

// LoginResult is handed back to the client after login or registration.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Profile   storage.UserProfile
}

// AuthService signs users in and out and keeps their stored profile.
type AuthService struct {
	authenticator *auth.StaticAuthenticator
	tokens        *auth.Tokens
	store         storage.Adapter
	sessions      *session.Manager
	logger        *logrus.Logger
	now           func() time.Time
}

func NewAuthService(
	authenticator *auth.StaticAuthenticator,
	tokens *auth.Tokens,
	store storage.Adapter,
	sessions *session.Manager,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		tokens:        tokens,
		store:         store,
		sessions:      sessions,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	acct, err := s.authenticator.Authenticate(ctx, auth.Credentials{Email: email, Password: password})
	if err != nil {
		return LoginResult{}, err
	}
	return s.signIn(ctx, acct)
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (LoginResult, error) {
	acct, err := s.authenticator.Register(ctx, email, password, name)
	if err != nil {
		return LoginResult{}, err
	}
	s.logger.WithField("userID", acct.UserID).Info("AuthService.Register")
	return s.signIn(ctx, acct)
}

// Logout revokes the token, forgets the cached session and removes the stored profile.
func (s *AuthService) Logout(ctx context.Context, userID, token string) error {
	if err := s.tokens.Revoke(token); err != nil {
		return err
	}
	s.sessions.Close(userID)
	return s.store.DeleteProfile(ctx, userID)
}

func (s *AuthService) signIn(ctx context.Context, acct auth.Account) (LoginResult, error) {
	profile := s.profile(ctx, acct)

	token, expiresAt, err := s.tokens.Issue(acct.UserID)
	if err != nil {
		return LoginResult{}, err
	}

	s.sessions.Open(ctx, acct.UserID)
	return LoginResult{Token: token, ExpiresAt: expiresAt, Profile: profile}, nil
}

// profile loads the stored profile or creates it. Storage failures are
// logged and do not block sign in.
func (s *AuthService) profile(ctx context.Context, acct auth.Account) storage.UserProfile {
	log := s.logger.WithField("userID", acct.UserID)

	stored, err := s.store.LoadProfile(ctx, acct.UserID)
	if err != nil {
		log.WithError(err).Warn("AuthService.profile.load")
	}
	if stored != nil {
		return *stored
	}

	name := acct.Name
	if name == "" {
		name, _, _ = strings.Cut(acct.Email, "@")
	}
	profile := storage.UserProfile{
		ID:        acct.UserID,
		Email:     acct.Email,
		Name:      name,
		CreatedAt: s.now(),
	}
	if err := s.store.SaveProfile(ctx, profile); err != nil {
		log.WithError(err).Warn("AuthService.profile.save")
	}
	return profile
}
