package reference

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/currency"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/handlertest"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/notify"
)

type mockCurrencyService struct {
	mock.Mock
}

func (m *mockCurrencyService) Currency(ctx context.Context, userID string) (currency.Currency, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(currency.Currency), args.Error(1)
}

func (m *mockCurrencyService) SetCurrency(ctx context.Context, userID, code string) (currency.Currency, []notify.Event, error) {
	args := m.Called(ctx, userID, code)
	events, _ := args.Get(1).([]notify.Event)
	return args.Get(0).(currency.Currency), events, args.Error(2)
}

func newTestAPI(t *testing.T, svc *mockCurrencyService) (humatest.TestAPI, string) {
	t.Helper()
	api, authHeader := handlertest.NewAPI(t)
	NewHandler(svc).Register(api)
	return api, authHeader
}

func TestHTTP_Categories_All(t *testing.T) {
	api, _ := newTestAPI(t, new(mockCurrencyService))

	resp := api.Get("/v1/categories")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Categories []Category `json:"categories"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Categories, 15)
	assert.Equal(t, Category{ID: "food", Type: "expense", Name: "Food & Dining", Icon: "🍔"}, body.Categories[0])
	assert.Equal(t, "other", body.Categories[14].ID)
	assert.Equal(t, "income", body.Categories[14].Type)
}

func TestHTTP_Categories_ByType(t *testing.T) {
	api, _ := newTestAPI(t, new(mockCurrencyService))

	resp := api.Get("/v1/categories?type=income")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Categories []Category `json:"categories"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Categories, 5)
	assert.Equal(t, "salary", body.Categories[0].ID)
}

func TestHTTP_Currencies(t *testing.T) {
	api, _ := newTestAPI(t, new(mockCurrencyService))

	resp := api.Get("/v1/currencies")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"code":"INR"`)
}

func TestHTTP_GetCurrency(t *testing.T) {
	svc := new(mockCurrencyService)
	svc.On("Currency", mock.Anything, handlertest.UserID).Return(currency.Default, nil)
	api, authHeader := newTestAPI(t, svc)

	resp := api.Get("/v1/currency", authHeader)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"symbol":"$"`)
	assert.Equal(t, http.StatusUnauthorized, api.Get("/v1/currency").Code)
}

func TestHTTP_SetCurrency(t *testing.T) {
	eur, err := currency.Lookup("EUR")
	require.NoError(t, err)
	svc := new(mockCurrencyService)
	svc.On("SetCurrency", mock.Anything, handlertest.UserID, "EUR").
		Return(eur, []notify.Event{{Kind: notify.CurrencyUpdated, Message: "Currency Updated: Amounts are now shown in Euro"}}, nil)
	svc.On("SetCurrency", mock.Anything, handlertest.UserID, "XYZ").
		Return(currency.Currency{}, nil, ledger.NewValidationError("currency", `unsupported currency "XYZ"`))
	api, authHeader := newTestAPI(t, svc)

	resp := api.Put("/v1/currency", authHeader, SetCurrencyBody{Code: "EUR"})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"code":"EUR"`)
	assert.Contains(t, resp.Body.String(), `"kind":"currency_updated"`)

	resp = api.Put("/v1/currency", authHeader, SetCurrencyBody{Code: "XYZ"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertExpectations(t)
}
