package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/category"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/notify"
)

// UpdateTransactionBody holds the fields to change. Omitted fields are kept.
type UpdateTransactionBody struct {
	Type        *string `json:"type,omitempty" enum:"income,expense" doc:"Transaction type"`
	Amount      *string `json:"amount,omitempty" doc:"Positive decimal amount"`
	Description *string `json:"description,omitempty" doc:"What the money was for"`
	Category    *string `json:"category,omitempty" doc:"Category id for the type"`
	Date        *string `json:"date,omitempty" doc:"RFC3339 or YYYY-MM-DD date"`
}

type UpdateTransactionInput struct {
	ID   string `path:"id" doc:"Transaction id"`
	Body UpdateTransactionBody
}

type UpdateTransactionOutput struct {
	Body TransactionResult
}

type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, userID, id string, patch ledger.TransactionPatch) (ledger.Transaction, []notify.Event, error)
}

// UpdateTransactionHandler handles PATCH /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Merges the given fields onto a transaction and re-validates it.",
		Tags:        []string{"Transactions"},
		Security:    []map[string][]string{{auth.SchemeName: {}}},
	}, h.handle)
}

// parseUpdateTransactionInput converts the body into a patch. A field that
// cannot be parsed is reported together with the other invalid fields the
// patch sets.
func parseUpdateTransactionInput(input *UpdateTransactionInput) (ledger.TransactionPatch, error) {
	var patch ledger.TransactionPatch
	verr := &ledger.ValidationError{}
	body := input.Body

	if body.Type != nil {
		t := category.Type(*body.Type)
		patch.Type = &t
	}
	patch.Description = body.Description
	patch.Category = body.Category
	if body.Amount != nil {
		amount, err := ledger.ParseAmount(*body.Amount)
		if err != nil {
			collect(verr, err)
		} else {
			patch.Amount = &amount
		}
	}
	if body.Date != nil {
		date, err := parseDate("date", *body.Date, false)
		if err != nil {
			collect(verr, err)
		} else {
			patch.Date = &date
		}
	}

	if len(verr.Fields) > 0 {
		verr.Merge(ledger.ValidatePatch(patch))
		return ledger.TransactionPatch{}, verr
	}
	return patch, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	userID, err := apierror.UserID(ctx)
	if err != nil {
		return nil, err
	}

	patch, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, apierror.From(err, "invalid transaction")
	}

	tx, events, err := h.TransactionService.UpdateTransaction(ctx, userID, input.ID, patch)
	if err != nil {
		return nil, apierror.From(err, "failed to update transaction")
	}
	return &UpdateTransactionOutput{Body: toResult(tx, events)}, nil
}
