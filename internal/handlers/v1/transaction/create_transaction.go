package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/category"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/notify"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Type        string `json:"type" required:"true" enum:"income,expense" doc:"Transaction type"`
	Amount      string `json:"amount" required:"true" doc:"Positive decimal amount"`
	Description string `json:"description" required:"true" doc:"What the money was for"`
	Category    string `json:"category" required:"true" doc:"Category id for the type"`
	Date        string `json:"date,omitempty" doc:"RFC3339 or YYYY-MM-DD date, defaults to now"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Body TransactionResult
}

type transactionCreator interface {
	AddTransaction(ctx context.Context, userID string, input ledger.TransactionInput) (ledger.Transaction, []notify.Event, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transaction",
		Summary:       "Create transaction",
		Description:   "Validates and records a new income or expense.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{auth.SchemeName: {}}},
	}, h.handle)
}

// parseCreateTransactionInput converts the body into a ledger input. When a
// field cannot be parsed, the remaining fields are checked too so every
// problem is reported at once.
func parseCreateTransactionInput(input *CreateTransactionInput) (ledger.TransactionInput, error) {
	verr := &ledger.ValidationError{}
	parsed := ledger.TransactionInput{
		Type:        category.Type(input.Body.Type),
		Description: input.Body.Description,
		Category:    input.Body.Category,
	}

	amount, err := ledger.ParseAmount(input.Body.Amount)
	if err != nil {
		collect(verr, err)
	}
	parsed.Amount = amount

	if input.Body.Date != "" {
		date, err := parseDate("date", input.Body.Date, false)
		if err != nil {
			collect(verr, err)
		}
		parsed.Date = &date
	}

	if len(verr.Fields) > 0 {
		verr.Merge(ledger.ValidateInput(parsed))
		return ledger.TransactionInput{}, verr
	}
	return parsed, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	userID, err := apierror.UserID(ctx)
	if err != nil {
		return nil, err
	}

	txInput, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, apierror.From(err, "invalid transaction")
	}

	var stopTimer func()
	logData := logging.GetLogData(ctx)
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	tx, events, err := h.TransactionService.AddTransaction(ctx, userID, txInput)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.From(err, "failed to create transaction")
	}

	if logData != nil {
		logData.AddData("transactionID", tx.ID)
	}
	return &CreateTransactionOutput{Body: toResult(tx, events)}, nil
}

