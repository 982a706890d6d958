package summary

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/category"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/ledger"
)

type summaryService interface {
	Stats(ctx context.Context, userID string) (ledger.Stats, error)
	CategoryTotals(ctx context.Context, userID string, t category.Type) ([]ledger.CategoryTotal, error)
	TimeSeries(ctx context.Context, userID string, t category.Type) ([]ledger.DailyAmount, error)
	Breakdown(ctx context.Context, userID string, t category.Type) ([]ledger.CategoryShare, error)
}

type StatsOutput struct {
	Body Stats
}

type CategoryTotalsOutput struct {
	Body struct {
		Categories []CategoryTotal `json:"categories" doc:"Every category of the type, largest total first"`
	}
}

type SeriesOutput struct {
	Body struct {
		Days []DailyAmount `json:"days" doc:"Up to the last seven days with activity, oldest first"`
	}
}

type BreakdownOutput struct {
	Body struct {
		Categories []CategoryShare `json:"categories" doc:"Categories with a non-zero total"`
	}
}

// Handler serves the dashboard summaries under /v1/summary.
type Handler struct {
	SummaryService summaryService
}

func NewHandler(svc summaryService) *Handler {
	return &Handler{SummaryService: svc}
}

func (h *Handler) Register(api huma.API) {
	security := []map[string][]string{{auth.SchemeName: {}}}

	huma.Register(api, huma.Operation{
		OperationID: "summary-stats",
		Method:      http.MethodGet,
		Path:        "/v1/summary/stats",
		Summary:     "Income, expenses and balance",
		Tags:        []string{"Summary"},
		Security:    security,
	}, h.stats)

	huma.Register(api, huma.Operation{
		OperationID: "summary-categories",
		Method:      http.MethodGet,
		Path:        "/v1/summary/categories",
		Summary:     "Totals per category",
		Tags:        []string{"Summary"},
		Security:    security,
	}, h.categories)

	huma.Register(api, huma.Operation{
		OperationID: "summary-series",
		Method:      http.MethodGet,
		Path:        "/v1/summary/series",
		Summary:     "Daily totals",
		Tags:        []string{"Summary"},
		Security:    security,
	}, h.series)

	huma.Register(api, huma.Operation{
		OperationID: "summary-breakdown",
		Method:      http.MethodGet,
		Path:        "/v1/summary/breakdown",
		Summary:     "Category share of the total",
		Tags:        []string{"Summary"},
		Security:    security,
	}, h.breakdown)
}

func (h *Handler) stats(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
	userID, err := apierror.UserID(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := h.SummaryService.Stats(ctx, userID)
	if err != nil {
		return nil, apierror.From(err, "failed to load stats")
	}
	return &StatsOutput{Body: toStats(stats)}, nil
}

func (h *Handler) categories(ctx context.Context, input *TypeQuery) (*CategoryTotalsOutput, error) {
	userID, err := apierror.UserID(ctx)
	if err != nil {
		return nil, err
	}

	totals, err := h.SummaryService.CategoryTotals(ctx, userID, category.Type(input.Type))
	if err != nil {
		return nil, apierror.From(err, "failed to load category totals")
	}
	out := &CategoryTotalsOutput{}
	out.Body.Categories = toCategoryTotals(totals)
	return out, nil
}

func (h *Handler) series(ctx context.Context, input *TypeQuery) (*SeriesOutput, error) {
	userID, err := apierror.UserID(ctx)
	if err != nil {
		return nil, err
	}

	days, err := h.SummaryService.TimeSeries(ctx, userID, category.Type(input.Type))
	if err != nil {
		return nil, apierror.From(err, "failed to load time series")
	}
	out := &SeriesOutput{}
	out.Body.Days = toDailyAmounts(days)
	return out, nil
}

func (h *Handler) breakdown(ctx context.Context, input *TypeQuery) (*BreakdownOutput, error) {
	userID, err := apierror.UserID(ctx)
	if err != nil {
		return nil, err
	}

	shares, err := h.SummaryService.Breakdown(ctx, userID, category.Type(input.Type))
	if err != nil {
		return nil, apierror.From(err, "failed to load breakdown")
	}
	out := &BreakdownOutput{}
	out.Body.Categories = toCategoryShares(shares)
	return out, nil
}
