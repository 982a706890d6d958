package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/ledger"
)

type RecentTransactionsInput struct {
	Limit int `query:"limit" default:"5" minimum:"1" maximum:"100" doc:"Number of transactions to return"`
}

type RecentTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

type recentLister interface {
	RecentTransactions(ctx context.Context, userID string, limit int) ([]ledger.Transaction, error)
}

// RecentTransactionsHandler handles GET /v1/transaction/recent for the dashboard.
type RecentTransactionsHandler struct {
	TransactionService recentLister
}

func NewRecentTransactionsHandler(svc recentLister) *RecentTransactionsHandler {
	return &RecentTransactionsHandler{TransactionService: svc}
}

func (h *RecentTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "recent-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/recent",
		Summary:     "Recent transactions",
		Tags:        []string{"Transactions"},
		Security:    []map[string][]string{{auth.SchemeName: {}}},
	}, h.handle)
}

func (h *RecentTransactionsHandler) handle(ctx context.Context, input *RecentTransactionsInput) (*RecentTransactionsOutput, error) {
	userID, err := apierror.UserID(ctx)
	if err != nil {
		return nil, err
	}

	transactions, err := h.TransactionService.RecentTransactions(ctx, userID, input.Limit)
	if err != nil {
		return nil, apierror.From(err, "failed to load recent transactions")
	}
	return &RecentTransactionsOutput{Body: ListTransactionsResponseBody{
		Transactions: toAPIList(transactions),
	}}, nil
}
