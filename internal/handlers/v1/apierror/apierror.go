// Package apierror maps domain errors onto huma status errors.
package apierror

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

const NotPersistedMessage = "saved in memory but not persisted"

// From converts err into a huma status error. msg is used for unexpected failures.
func From(err error, msg string) error {
	var validationErr *ledger.ValidationError
	var notFoundErr *ledger.NotFoundError
	var storageErr *storage.StorageError

	switch {
	case errors.As(err, &validationErr):
		return Validation(validationErr)
	case errors.As(err, &notFoundErr):
		return huma.Error404NotFound(notFoundErr.Error())
	case errors.As(err, &storageErr):
		return huma.NewError(http.StatusInternalServerError, NotPersistedMessage, err)
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return huma.Error401Unauthorized("invalid email or password")
	case errors.Is(err, auth.ErrEmailTaken):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return huma.Error503ServiceUnavailable("request cancelled", err)
	default:
		return huma.NewError(http.StatusInternalServerError, msg, err)
	}
}

// Validation reports every invalid field as a body.<field> error detail.
func Validation(err *ledger.ValidationError) error {
	fields := make([]string, 0, len(err.Fields))
	for field := range err.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]error, len(fields))
	for i, field := range fields {
		details[i] = &huma.ErrorDetail{
			Location: "body." + field,
			Message:  err.Fields[field],
		}
	}
	return huma.NewError(http.StatusUnprocessableEntity, "validation failed", details...)
}

// UserID returns the authenticated caller or a 401.
func UserID(ctx context.Context) (string, error) {
	userID, ok := auth.UserIDFrom(ctx)
	if !ok {
		return "", huma.Error401Unauthorized("authentication required")
	}
	return userID, nil
}
