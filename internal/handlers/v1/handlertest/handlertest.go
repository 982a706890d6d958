// Package handlertest builds humatest APIs with the bearer middleware installed.
package handlertest

import (
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"

	"github.com/carson-networks/expense-tracker/internal/auth"
)

const UserID = "user-1"

// NewAPI returns a test API and an Authorization header valid for UserID.
func NewAPI(t *testing.T) (humatest.TestAPI, string) {
	t.Helper()
	_, api := humatest.New(t)

	tokens := auth.NewTokens("test-secret", 0, nil)
	api.UseMiddleware(auth.Middleware(api, tokens))

	token, _, err := tokens.Issue(UserID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return api, "Authorization: Bearer " + token
}
