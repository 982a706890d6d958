// Package reference serves the category and currency lists and the user's
// selected display currency.
package reference

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/category"
	"github.com/carson-networks/expense-tracker/internal/currency"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/event"
	"github.com/carson-networks/expense-tracker/internal/notify"
)

type CategoriesInput struct {
	Type string `query:"type" enum:"income,expense" doc:"Restrict to one type, both when omitted"`
}

type Category struct {
	ID   string `json:"id"`
	Type string `json:"type" enum:"income,expense"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type CategoriesOutput struct {
	Body struct {
		Categories []Category `json:"categories"`
	}
}

type CurrenciesOutput struct {
	Body struct {
		Currencies []currency.Currency `json:"currencies"`
	}
}

type SetCurrencyBody struct {
	Code string `json:"code" required:"true" doc:"ISO currency code"`
}

type SetCurrencyInput struct {
	Body SetCurrencyBody
}

type CurrencyOutput struct {
	Body currency.Currency
}

// SetCurrencyResult is the selected currency plus the notifications the change raised.
type SetCurrencyResult struct {
	currency.Currency
	Events []event.Event `json:"events"`
}

type SetCurrencyOutput struct {
	Body SetCurrencyResult
}

type currencyService interface {
	Currency(ctx context.Context, userID string) (currency.Currency, error)
	SetCurrency(ctx context.Context, userID, code string) (currency.Currency, []notify.Event, error)
}

type Handler struct {
	CurrencyService currencyService
}

func NewHandler(svc currencyService) *Handler {
	return &Handler{CurrencyService: svc}
}

func (h *Handler) Register(api huma.API) {
	security := []map[string][]string{{auth.SchemeName: {}}}

	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Tags:        []string{"Reference"},
	}, h.categories)

	huma.Register(api, huma.Operation{
		OperationID: "list-currencies",
		Method:      http.MethodGet,
		Path:        "/v1/currencies",
		Summary:     "List display currencies",
		Tags:        []string{"Reference"},
	}, h.currencies)

	huma.Register(api, huma.Operation{
		OperationID: "get-currency",
		Method:      http.MethodGet,
		Path:        "/v1/currency",
		Summary:     "Selected display currency",
		Tags:        []string{"Reference"},
		Security:    security,
	}, h.getCurrency)

	huma.Register(api, huma.Operation{
		OperationID: "set-currency",
		Method:      http.MethodPut,
		Path:        "/v1/currency",
		Summary:     "Select display currency",
		Tags:        []string{"Reference"},
		Security:    security,
	}, h.setCurrency)
}

func (h *Handler) categories(_ context.Context, input *CategoriesInput) (*CategoriesOutput, error) {
	types := []category.Type{category.Expense, category.Income}
	if input.Type != "" {
		types = []category.Type{category.Type(input.Type)}
	}

	out := &CategoriesOutput{}
	out.Body.Categories = []Category{}
	for _, t := range types {
		for _, c := range category.For(t) {
			out.Body.Categories = append(out.Body.Categories, Category{
				ID:   c.ID,
				Type: string(t),
				Name: c.Name,
				Icon: c.Icon,
			})
		}
	}
	return out, nil
}

func (h *Handler) currencies(context.Context, *struct{}) (*CurrenciesOutput, error) {
	out := &CurrenciesOutput{}
	out.Body.Currencies = currency.Supported()
	return out, nil
}

func (h *Handler) getCurrency(ctx context.Context, _ *struct{}) (*CurrencyOutput, error) {
	userID, err := apierror.UserID(ctx)
	if err != nil {
		return nil, err
	}

	selected, err := h.CurrencyService.Currency(ctx, userID)
	if err != nil {
		return nil, apierror.From(err, "failed to load currency")
	}
	return &CurrencyOutput{Body: selected}, nil
}

func (h *Handler) setCurrency(ctx context.Context, input *SetCurrencyInput) (*SetCurrencyOutput, error) {
	userID, err := apierror.UserID(ctx)
	if err != nil {
		return nil, err
	}

	selected, events, err := h.CurrencyService.SetCurrency(ctx, userID, input.Body.Code)
	if err != nil {
		return nil, apierror.From(err, "failed to set currency")
	}
	return &SetCurrencyOutput{Body: SetCurrencyResult{Currency: selected, Events: event.List(events)}}, nil
}
