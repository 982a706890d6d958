package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- StaticAuthenticator tests --

func TestStaticAuthenticator_DemoAccount(t *testing.T) {
	a, err := NewStaticAuthenticator("demo@example.com", "password", "Demo User")
	require.NoError(t, err)

	acct, err := a.Authenticate(context.Background(), Credentials{Email: " Demo@Example.com ", Password: "password"})

	require.NoError(t, err)
	assert.Equal(t, UserID("demo@example.com"), acct.UserID)
	assert.Equal(t, "Demo User", acct.Name)
}

func TestStaticAuthenticator_WrongPassword(t *testing.T) {
	a, err := NewStaticAuthenticator("demo@example.com", "password", "Demo User")
	require.NoError(t, err)

	_, err = a.Authenticate(context.Background(), Credentials{Email: "demo@example.com", Password: "nope"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStaticAuthenticator_UnknownEmail(t *testing.T) {
	a, err := NewStaticAuthenticator("demo@example.com", "password", "Demo User")
	require.NoError(t, err)

	_, err = a.Authenticate(context.Background(), Credentials{Email: "who@example.com", Password: "password"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStaticAuthenticator_Register(t *testing.T) {
	a, err := NewStaticAuthenticator("demo@example.com", "password", "Demo User")
	require.NoError(t, err)
	ctx := context.Background()

	acct, err := a.Register(ctx, "new@example.com", "s3cret", "New User")
	require.NoError(t, err)

	loggedIn, err := a.Authenticate(ctx, Credentials{Email: "new@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, acct.UserID, loggedIn.UserID)

	_, err = a.Register(ctx, "NEW@example.com", "other", "Dup")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserID_Deterministic(t *testing.T) {
	assert.Equal(t, UserID("a@example.com"), UserID("A@example.com"))
	assert.NotEqual(t, UserID("a@example.com"), UserID("b@example.com"))
}

// -- Tokens tests --

func TestTokens_IssueVerify(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	tokens := NewTokens("secret", 0, func() time.Time { return now })

	token, expiresAt, err := tokens.Issue("user-1")
	require.NoError(t, err)
	assert.Equal(t, now.Add(DefaultTokenTTL), expiresAt)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestTokens_Expired(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	tokens := NewTokens("secret", time.Hour, func() time.Time { return now })
	token, _, err := tokens.Issue("user-1")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = tokens.Verify(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_WrongSecret(t *testing.T) {
	token, _, err := NewTokens("secret", 0, nil).Issue("user-1")
	require.NoError(t, err)

	_, err = NewTokens("other", 0, nil).Verify(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_Revoke(t *testing.T) {
	tokens := NewTokens("secret", 0, nil)
	token, _, err := tokens.Issue("user-1")
	require.NoError(t, err)
	other, _, err := tokens.Issue("user-1")
	require.NoError(t, err)

	require.NoError(t, tokens.Revoke(token))

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = tokens.Verify(other)
	assert.NoError(t, err)
}

// -- Middleware tests --

type whoAmIOutput struct {
	Body struct {
		UserID string `json:"userId"`
	}
}

func newProtectedAPI(t *testing.T, tokens *Tokens) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(Middleware(api, tokens))

	huma.Register(api, huma.Operation{
		OperationID: "who-am-i",
		Method:      http.MethodGet,
		Path:        "/me",
		Security:    []map[string][]string{{SchemeName: {}}},
	}, func(ctx context.Context, _ *struct{}) (*whoAmIOutput, error) {
		out := &whoAmIOutput{}
		out.Body.UserID, _ = UserIDFrom(ctx)
		return out, nil
	})
	huma.Register(api, huma.Operation{
		OperationID: "open",
		Method:      http.MethodGet,
		Path:        "/open",
	}, func(context.Context, *struct{}) (*struct{}, error) {
		return nil, nil
	})
	return api
}

func TestMiddleware(t *testing.T) {
	tokens := NewTokens("secret", 0, nil)
	api := newProtectedAPI(t, tokens)
	token, _, err := tokens.Issue("user-1")
	require.NoError(t, err)

	resp := api.Get("/me", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"userId":"user-1"`)

	assert.Equal(t, http.StatusUnauthorized, api.Get("/me").Code)
	assert.Equal(t, http.StatusUnauthorized, api.Get("/me", "Authorization: Bearer garbage").Code)
	assert.Equal(t, http.StatusNoContent, api.Get("/open").Code)
}
