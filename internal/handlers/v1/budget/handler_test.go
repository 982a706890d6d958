package budget

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	evaluator "github.com/carson-networks/expense-tracker/internal/budget"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/handlertest"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/notify"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

type mockBudgetService struct {
	mock.Mock
}

func (m *mockBudgetService) Budget(ctx context.Context, userID string) (evaluator.Status, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(evaluator.Status), args.Error(1)
}

func (m *mockBudgetService) SetBudget(ctx context.Context, userID string, limit decimal.Decimal) (evaluator.Status, []notify.Event, error) {
	args := m.Called(ctx, userID, limit)
	events, _ := args.Get(1).([]notify.Event)
	return args.Get(0).(evaluator.Status), events, args.Error(2)
}

func newTestAPI(t *testing.T, svc *mockBudgetService) (humatest.TestAPI, string) {
	t.Helper()
	api, authHeader := handlertest.NewAPI(t)
	NewHandler(svc).Register(api)
	return api, authHeader
}

func overBudget() evaluator.Status {
	return evaluator.Status{
		Limit:        decimal.RequireFromString("1000"),
		Consumed:     decimal.RequireFromString("1260"),
		Remaining:    decimal.RequireFromString("-260"),
		IsOverBudget: true,
		Percent:      decimal.RequireFromString("126"),
	}
}

// -- parseSetBudgetInput unit tests --

func TestParseSetBudgetInput(t *testing.T) {
	limit, err := parseSetBudgetInput(&SetBudgetInput{Body: SetBudgetBody{Limit: "1500.25"}})
	require.NoError(t, err)
	assert.True(t, limit.Equal(decimal.RequireFromString("1500.25")))

	for _, bad := range []string{"", "abc", "0", "-10"} {
		_, err := parseSetBudgetInput(&SetBudgetInput{Body: SetBudgetBody{Limit: bad}})
		var validationErr *ledger.ValidationError
		assert.ErrorAs(t, err, &validationErr, bad)
	}
}

// -- HTTP integration tests --

func TestHTTP_GetBudget(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("Budget", mock.Anything, handlertest.UserID).Return(overBudget(), nil)
	api, authHeader := newTestAPI(t, svc)

	resp := api.Get("/v1/budget", authHeader)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, Status{
		Limit:        "1000.00",
		Consumed:     "1260.00",
		Remaining:    "-260.00",
		IsOverBudget: true,
		Percent:      "126.0",
	}, body)
}

func TestHTTP_SetBudget(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("SetBudget", mock.Anything, handlertest.UserID, mock.MatchedBy(func(l decimal.Decimal) bool {
		return l.Equal(decimal.NewFromInt(1000))
	})).Return(overBudget(), []notify.Event{
		{Kind: notify.BudgetUpdated, Message: "Budget Updated: Monthly budget set to $1000.00"},
		{Kind: notify.BudgetExceeded, Message: "Budget Exceeded: You have spent $1260.00 of your $1000.00 monthly budget"},
	}, nil)
	api, authHeader := newTestAPI(t, svc)

	resp := api.Put("/v1/budget", authHeader, SetBudgetBody{Limit: "1000"})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body SetBudgetResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.IsOverBudget)
	assert.True(t, body.BudgetExceeded)
	require.Len(t, body.Events, 2)
	assert.Equal(t, "budget_exceeded", body.Events[1].Kind)
	svc.AssertExpectations(t)
}

func TestHTTP_SetBudget_Invalid(t *testing.T) {
	svc := new(mockBudgetService)
	api, authHeader := newTestAPI(t, svc)

	resp := api.Put("/v1/budget", authHeader, SetBudgetBody{Limit: "-5"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, resp.Body.String(), "body.limit")
	svc.AssertNotCalled(t, "SetBudget")
}

func TestHTTP_SetBudget_NotPersisted(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("SetBudget", mock.Anything, mock.Anything, mock.Anything).
		Return(overBudget(), nil, &storage.StorageError{Op: "save", Key: "budget_user-1", Err: errors.New("disk full")})
	api, authHeader := newTestAPI(t, svc)

	resp := api.Put("/v1/budget", authHeader, SetBudgetBody{Limit: "1000"})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
