package transaction

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/category"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/handlertest"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/notify"
)

func strPtr(s string) *string { return &s }

// -- parseUpdateTransactionInput unit tests --

func TestParseUpdateTransactionInput_OnlyGivenFields(t *testing.T) {
	patch, err := parseUpdateTransactionInput(&UpdateTransactionInput{
		ID:   "tx-1",
		Body: UpdateTransactionBody{Amount: strPtr("20"), Type: strPtr("income")},
	})

	require.NoError(t, err)
	require.NotNil(t, patch.Amount)
	assert.True(t, patch.Amount.Equal(decimal.NewFromInt(20)))
	require.NotNil(t, patch.Type)
	assert.Equal(t, category.Income, *patch.Type)
	assert.Nil(t, patch.Description)
	assert.Nil(t, patch.Category)
	assert.Nil(t, patch.Date)
}

func TestParseUpdateTransactionInput_BadAmount(t *testing.T) {
	_, err := parseUpdateTransactionInput(&UpdateTransactionInput{Body: UpdateTransactionBody{Amount: strPtr("-3")}})

	var validationErr *ledger.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestParseUpdateTransactionInput_BadAmountReportsOtherFields(t *testing.T) {
	_, err := parseUpdateTransactionInput(&UpdateTransactionInput{Body: UpdateTransactionBody{
		Amount:      strPtr("abc"),
		Description: strPtr(" "),
		Type:        strPtr("income"),
		Category:    strPtr("food"),
	}})

	var validationErr *ledger.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "amount")
	assert.Contains(t, validationErr.Fields, "description")
	assert.Contains(t, validationErr.Fields, "category")
}

// -- HTTP integration tests --

func TestHTTP_UpdateTransaction_Success(t *testing.T) {
	updated := storedLunch()
	updated.Description = "Dinner"
	svc := new(mockTransactionService)
	svc.On("UpdateTransaction", mock.Anything, handlertest.UserID, "tx-1", mock.MatchedBy(func(p ledger.TransactionPatch) bool {
		return p.Description != nil && *p.Description == "Dinner" && p.Amount == nil
	})).Return(updated, nil, nil)
	api, authHeader := newTestAPI(t, svc)

	resp := api.Patch("/v1/transaction/tx-1", authHeader, map[string]any{"description": "Dinner"})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"description":"Dinner"`)
	svc.AssertExpectations(t)
}

func TestHTTP_UpdateTransaction_NotFound(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("UpdateTransaction", mock.Anything, mock.Anything, "missing", mock.Anything).
		Return(ledger.Transaction{}, nil, &ledger.NotFoundError{ID: "missing"})
	api, authHeader := newTestAPI(t, svc)

	resp := api.Patch("/v1/transaction/missing", authHeader, map[string]any{"description": "Dinner"})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_UpdateTransaction_InvalidAmount(t *testing.T) {
	svc := new(mockTransactionService)
	api, authHeader := newTestAPI(t, svc)

	resp := api.Patch("/v1/transaction/tx-1", authHeader, map[string]any{"amount": "0"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "UpdateTransaction")
}

func TestHTTP_DeleteTransaction(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("DeleteTransaction", mock.Anything, handlertest.UserID, "tx-1").
		Return([]notify.Event{{Kind: notify.TransactionDeleted, TransactionID: "tx-1", Message: "Transaction Deleted"}}, nil)
	svc.On("DeleteTransaction", mock.Anything, handlertest.UserID, "missing").Return(nil, &ledger.NotFoundError{ID: "missing"})
	api, authHeader := newTestAPI(t, svc)

	resp := api.Delete("/v1/transaction/tx-1", authHeader)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"kind":"transaction_deleted"`)
	assert.Contains(t, resp.Body.String(), `"budgetExceeded":false`)
	assert.Equal(t, http.StatusNotFound, api.Delete("/v1/transaction/missing", authHeader).Code)
	svc.AssertExpectations(t)
}
