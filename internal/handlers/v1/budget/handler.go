package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/auth"
	evaluator "github.com/carson-networks/expense-tracker/internal/budget"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/event"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/notify"
)

// Status is the API response model for the monthly budget.
type Status struct {
	Limit        string `json:"limit" doc:"Monthly limit, 0.00 when unset"`
	Consumed     string `json:"consumed" doc:"Expenses dated in the current month"`
	Remaining    string `json:"remaining" doc:"Limit minus consumed, may be negative"`
	IsOverBudget bool   `json:"isOverBudget"`
	Percent      string `json:"percent" doc:"Consumed as a percentage of the limit"`
}

type SetBudgetBody struct {
	Limit string `json:"limit" required:"true" doc:"Positive decimal monthly limit"`
}

type SetBudgetInput struct {
	Body SetBudgetBody
}

type StatusOutput struct {
	Body Status
}

// SetBudgetResult is the status after the change plus the notifications it raised.
type SetBudgetResult struct {
	Status
	Events         []event.Event `json:"events"`
	BudgetExceeded bool          `json:"budgetExceeded" doc:"True when the new limit is already exceeded this month"`
}

type SetBudgetOutput struct {
	Body SetBudgetResult
}

type budgetService interface {
	Budget(ctx context.Context, userID string) (evaluator.Status, error)
	SetBudget(ctx context.Context, userID string, limit decimal.Decimal) (evaluator.Status, []notify.Event, error)
}

// Handler serves GET and PUT /v1/budget.
type Handler struct {
	BudgetService budgetService
}

func NewHandler(svc budgetService) *Handler {
	return &Handler{BudgetService: svc}
}

func (h *Handler) Register(api huma.API) {
	security := []map[string][]string{{auth.SchemeName: {}}}

	huma.Register(api, huma.Operation{
		OperationID: "get-budget",
		Method:      http.MethodGet,
		Path:        "/v1/budget",
		Summary:     "Current month budget status",
		Tags:        []string{"Budget"},
		Security:    security,
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "set-budget",
		Method:      http.MethodPut,
		Path:        "/v1/budget",
		Summary:     "Set the monthly budget limit",
		Tags:        []string{"Budget"},
		Security:    security,
	}, h.set)
}

func parseSetBudgetInput(input *SetBudgetInput) (decimal.Decimal, error) {
	limit, err := decimal.NewFromString(input.Body.Limit)
	if err != nil {
		return decimal.Zero, ledger.NewValidationError("limit", "Budget limit must be a positive number")
	}
	if err := evaluator.ValidateLimit(limit); err != nil {
		return decimal.Zero, err
	}
	return limit, nil
}

func (h *Handler) get(ctx context.Context, _ *struct{}) (*StatusOutput, error) {
	userID, err := apierror.UserID(ctx)
	if err != nil {
		return nil, err
	}

	status, err := h.BudgetService.Budget(ctx, userID)
	if err != nil {
		return nil, apierror.From(err, "failed to evaluate budget")
	}
	return &StatusOutput{Body: toStatus(status)}, nil
}

func (h *Handler) set(ctx context.Context, input *SetBudgetInput) (*SetBudgetOutput, error) {
	userID, err := apierror.UserID(ctx)
	if err != nil {
		return nil, err
	}

	limit, err := parseSetBudgetInput(input)
	if err != nil {
		return nil, apierror.From(err, "invalid budget")
	}

	status, events, err := h.BudgetService.SetBudget(ctx, userID, limit)
	if err != nil {
		return nil, apierror.From(err, "failed to set budget")
	}
	return &SetBudgetOutput{Body: SetBudgetResult{
		Status:         toStatus(status),
		Events:         event.List(events),
		BudgetExceeded: event.BudgetExceeded(events),
	}}, nil
}

func toStatus(s evaluator.Status) Status {
	return Status{
		Limit:        s.Limit.StringFixed(2),
		Consumed:     s.Consumed.StringFixed(2),
		Remaining:    s.Remaining.StringFixed(2),
		IsOverBudget: s.IsOverBudget,
		Percent:      s.Percent.StringFixed(1),
	}
}
