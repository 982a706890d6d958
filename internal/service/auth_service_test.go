package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/notify"
	"github.com/carson-networks/expense-tracker/internal/operator"
	"github.com/carson-networks/expense-tracker/internal/session"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	svc      *Service
	store    *storage.Storage
	sessions *session.Manager
	tokens   *auth.Tokens
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := storage.NewMemoryStorage()
	sessions := session.NewManager(store, notify.Discard{}, logger, session.Options{
		Now: func() time.Time { return testNow },
	})
	op := operator.NewOperatorDelegator(sessions, 2)
	op.Start()
	t.Cleanup(op.Stop)

	authenticator, err := auth.NewStaticAuthenticator("demo@example.com", "password", "Demo User")
	require.NoError(t, err)
	tokens := auth.NewTokens("secret", 0, func() time.Time { return testNow })

	svc := NewService(store, sessions, op, authenticator, tokens, logger)
	svc.Auth.now = func() time.Time { return testNow }
	return testEnv{svc: svc, store: store, sessions: sessions, tokens: tokens}
}

// -- Login tests --

func TestLogin_CreatesProfileAndSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.svc.Auth.Login(ctx, "demo@example.com", "password")

	require.NoError(t, err)
	userID := auth.UserID("demo@example.com")
	assert.Equal(t, userID, result.Profile.ID)
	assert.Equal(t, "Demo User", result.Profile.Name)
	assert.Equal(t, testNow, result.Profile.CreatedAt)

	verified, err := env.tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, verified)

	_, open := env.sessions.Get(userID)
	assert.True(t, open)

	stored, err := env.store.LoadProfile(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "demo@example.com", stored.Email)
}

func TestLogin_KeepsExistingProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := auth.UserID("demo@example.com")
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, env.store.SaveProfile(ctx, storage.UserProfile{ID: userID, Email: "demo@example.com", Name: "Renamed", CreatedAt: created}))

	result, err := env.svc.Auth.Login(ctx, "demo@example.com", "password")

	require.NoError(t, err)
	assert.Equal(t, "Renamed", result.Profile.Name)
	assert.Equal(t, created, result.Profile.CreatedAt)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Auth.Login(context.Background(), "demo@example.com", "wrong")

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

// -- Register tests --

func TestRegister_NameDefaultsToEmailLocalPart(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.svc.Auth.Register(context.Background(), "sam@example.com", "pw", "")

	require.NoError(t, err)
	assert.Equal(t, "sam", result.Profile.Name)
	assert.Equal(t, auth.UserID("sam@example.com"), result.Profile.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Auth.Register(context.Background(), "demo@example.com", "pw", "Dup")

	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

// -- Logout tests --

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	result, err := env.svc.Auth.Login(ctx, "demo@example.com", "password")
	require.NoError(t, err)
	userID := result.Profile.ID

	require.NoError(t, env.svc.Auth.Logout(ctx, userID, result.Token))

	_, err = env.tokens.Verify(result.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	_, open := env.sessions.Get(userID)
	assert.False(t, open)
	stored, err := env.store.LoadProfile(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}
