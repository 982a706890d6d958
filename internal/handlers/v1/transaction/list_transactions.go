package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/logging"
)

// ListTransactionsBody is the filter for listing transactions. Every field is
// optional and an empty body returns the whole ledger.
type ListTransactionsBody struct {
	Type       string `json:"type,omitempty" enum:"all,income,expense" doc:"Restrict to one type"`
	Category   string `json:"category,omitempty" doc:"Category id, or all"`
	DateFrom   string `json:"dateFrom,omitempty" doc:"Inclusive lower bound, RFC3339 or YYYY-MM-DD"`
	DateTo     string `json:"dateTo,omitempty" doc:"Inclusive upper bound, RFC3339 or YYYY-MM-DD"`
	SearchText string `json:"searchText,omitempty" doc:"Case-insensitive description substring"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	Body ListTransactionsBody
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction `json:"transactions" doc:"Matching transactions, most recent first"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, userID string, spec ledger.FilterSpec) ([]ledger.Transaction, error)
}

// ListTransactionsHandler handles POST /v1/transaction/list.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/list",
		Summary:     "List transactions",
		Description: "Returns the transactions matching every given filter, in ledger order.",
		Tags:        []string{"Transactions"},
		Security:    []map[string][]string{{auth.SchemeName: {}}},
	}, h.handle)
}

// parseListTransactionsInput parses the API filter into a ledger FilterSpec.
// A plain dateTo covers that whole day.
func parseListTransactionsInput(input *ListTransactionsInput) (ledger.FilterSpec, error) {
	spec := ledger.FilterSpec{
		Type:       input.Body.Type,
		Category:   input.Body.Category,
		SearchText: input.Body.SearchText,
	}

	if input.Body.DateFrom != "" {
		from, err := parseDate("dateFrom", input.Body.DateFrom, false)
		if err != nil {
			return spec, err
		}
		spec.DateFrom = &from
	}
	if input.Body.DateTo != "" {
		to, err := parseDate("dateTo", input.Body.DateTo, true)
		if err != nil {
			return spec, err
		}
		spec.DateTo = &to
	}
	return spec, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	userID, err := apierror.UserID(ctx)
	if err != nil {
		return nil, err
	}

	spec, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, apierror.From(err, "invalid filter")
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	transactions, err := h.TransactionService.ListTransactions(ctx, userID, spec)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.From(err, "failed to list transactions")
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	return &ListTransactionsOutput{Body: ListTransactionsResponseBody{
		Transactions: toAPIList(transactions),
	}}, nil
}
