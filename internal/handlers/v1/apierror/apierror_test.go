package apierror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	return statusErr.GetStatus()
}

func TestFrom(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &ledger.ValidationError{Fields: map[string]string{"amount": "Please enter a valid amount"}}, http.StatusUnprocessableEntity},
		{"wrapped not found", fmt.Errorf("update: %w", &ledger.NotFoundError{ID: "x"}), http.StatusNotFound},
		{"storage", &storage.StorageError{Op: "save", Key: "k", Err: errors.New("disk")}, http.StatusInternalServerError},
		{"credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"email taken", auth.ErrEmailTaken, http.StatusConflict},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, statusOf(t, From(tt.err, "failed")))
		})
	}
}

func TestFrom_StorageMessage(t *testing.T) {
	err := From(&storage.StorageError{Op: "save", Key: "k", Err: errors.New("disk")}, "failed")

	var model *huma.ErrorModel
	require.ErrorAs(t, err, &model)
	assert.Equal(t, NotPersistedMessage, model.Detail)
}

func TestValidation_ListsEveryField(t *testing.T) {
	err := Validation(&ledger.ValidationError{Fields: map[string]string{
		"description": "Description is required",
		"amount":      "Please enter a valid amount",
	}})

	var model *huma.ErrorModel
	require.ErrorAs(t, err, &model)
	require.Len(t, model.Errors, 2)
	assert.Equal(t, "body.amount", model.Errors[0].Location)
	assert.Equal(t, "body.description", model.Errors[1].Location)
}

func TestUserID(t *testing.T) {
	_, err := UserID(context.Background())
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	userID, err := UserID(auth.WithUserID(context.Background(), "u1"))
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}
