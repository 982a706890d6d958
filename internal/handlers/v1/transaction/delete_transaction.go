package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/event"
	"github.com/carson-networks/expense-tracker/internal/notify"
)

type DeleteTransactionInput struct {
	ID string `path:"id" doc:"Transaction id"`
}

// DeleteTransactionOutput carries the notifications the removal raised.
type DeleteTransactionOutput struct {
	Body struct {
		Events         []event.Event `json:"events"`
		BudgetExceeded bool          `json:"budgetExceeded"`
	}
}

type transactionDeleter interface {
	DeleteTransaction(ctx context.Context, userID, id string) ([]notify.Event, error)
}

// DeleteTransactionHandler handles DELETE /v1/transaction/{id}.
type DeleteTransactionHandler struct {
	TransactionService transactionDeleter
}

func NewDeleteTransactionHandler(svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/v1/transaction/{id}",
		Summary:     "Delete transaction",
		Tags:        []string{"Transactions"},
		Security:    []map[string][]string{{auth.SchemeName: {}}},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	userID, err := apierror.UserID(ctx)
	if err != nil {
		return nil, err
	}

	events, err := h.TransactionService.DeleteTransaction(ctx, userID, input.ID)
	if err != nil {
		return nil, apierror.From(err, "failed to delete transaction")
	}

	out := &DeleteTransactionOutput{}
	out.Body.Events = event.List(events)
	out.Body.BudgetExceeded = event.BudgetExceeded(events)
	return out, nil
}
