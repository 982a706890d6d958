package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/category"
)

const (
	// SeriesWindow is the maximum number of days returned by TimeSeries.
	SeriesWindow = 7

	dayKeyLayout = "2006-01-02"
)

var hundred = decimal.NewFromInt(100)

// breakdownColors is the chart palette, assigned in breakdown order.
var breakdownColors = []string{
	"#6366F1", "#8B5CF6", "#EC4899", "#F43F5E", "#F97316",
	"#FBBF24", "#10B981", "#06B6D4", "#3B82F6", "#A855F7",
}

// Stats is the income/expense roll-up of a ledger.
type Stats struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// CategoryTotal is the summed amount of one registry category.
type CategoryTotal struct {
	category.Category
	Total decimal.Decimal `json:"total"`
}

// CategoryShare is a non-empty category with its share of the type total.
type CategoryShare struct {
	CategoryTotal
	Percent decimal.Decimal `json:"percent"`
	Color   string          `json:"color"`
}

// DailyAmount is one calendar-day bucket of a time series.
type DailyAmount struct {
	Date   string          `json:"date"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Stats sums income and expenses to two decimal places.
func (l Ledger) Stats() Stats {
	income := l.sum(category.Income)
	expenses := l.sum(category.Expense)
	return Stats{
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}
}

func (l Ledger) sum(t category.Type) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range l.transactions {
		if tx.Type == t {
			total = total.Add(tx.Amount)
		}
	}
	return total.Round(2)
}

// CategoryTotals returns one entry per registry category of t, including empty
// ones, ordered by total descending. Ties keep registry declaration order.
func (l Ledger) CategoryTotals(t category.Type) []CategoryTotal {
	cats := category.For(t)
	index := make(map[string]int, len(cats))
	totals := make([]CategoryTotal, len(cats))
	for i, c := range cats {
		index[c.ID] = i
		totals[i] = CategoryTotal{Category: c, Total: decimal.Zero}
	}

	for _, tx := range l.transactions {
		if tx.Type != t {
			continue
		}
		if i, ok := index[tx.Category]; ok {
			totals[i].Total = totals[i].Total.Add(tx.Amount)
		}
	}

	for i := range totals {
		totals[i].Total = totals[i].Total.Round(2)
	}
	sort.SliceStable(totals, func(a, b int) bool {
		return totals[a].Total.GreaterThan(totals[b].Total)
	})
	return totals
}

// Breakdown returns the categories of t with a positive total and their
// percentage of the overall total, rounded to one decimal place.
func (l Ledger) Breakdown(t category.Type) []CategoryShare {
	var (
		shares []CategoryShare
		sum    = decimal.Zero
	)
	for _, ct := range l.CategoryTotals(t) {
		if !ct.Total.IsPositive() {
			continue
		}
		sum = sum.Add(ct.Total)
		shares = append(shares, CategoryShare{CategoryTotal: ct})
	}

	for i := range shares {
		shares[i].Percent = shares[i].Total.Div(sum).Mul(hundred).Round(1)
		shares[i].Color = breakdownColors[i%len(breakdownColors)]
	}
	return shares
}

// TimeSeries groups transactions of t by the UTC calendar day of their date
// and returns the chronologically last SeriesWindow days in ascending order.
func (l Ledger) TimeSeries(t category.Type) []DailyAmount {
	buckets := make(map[string]*DailyAmount)
	for _, tx := range l.transactions {
		if tx.Type != t {
			continue
		}
		date := tx.Date.UTC()
		key := date.Format(dayKeyLayout)
		b, ok := buckets[key]
		if !ok {
			b = &DailyAmount{
				Date:   key,
				Label:  date.Format("1/2"),
				Amount: decimal.Zero,
			}
			buckets[key] = b
		}
		b.Amount = b.Amount.Add(tx.Amount)
	}

	series := make([]DailyAmount, 0, len(buckets))
	for _, b := range buckets {
		b.Amount = b.Amount.Round(2)
		series = append(series, *b)
	}
	sort.Slice(series, func(a, b int) bool {
		return series[a].Date < series[b].Date
	})

	if len(series) > SeriesWindow {
		series = series[len(series)-SeriesWindow:]
	}
	return series
}
