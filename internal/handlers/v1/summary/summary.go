package summary

import (
	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// Stats is the API response model for the income/expense roll-up.
type Stats struct {
	Income   string `json:"income" doc:"Total income"`
	Expenses string `json:"expenses" doc:"Total expenses"`
	Balance  string `json:"balance" doc:"Income minus expenses, may be negative"`
}

type CategoryTotal struct {
	ID    string `json:"id" doc:"Category id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Total string `json:"total" doc:"Summed amount"`
}

type CategoryShare struct {
	CategoryTotal
	Percent string `json:"percent" doc:"Share of the type total, one decimal place"`
	Color   string `json:"color" doc:"Chart color"`
}

type DailyAmount struct {
	Date   string `json:"date" doc:"Calendar day, YYYY-MM-DD"`
	Label  string `json:"label" doc:"Axis label, M/D"`
	Amount string `json:"amount"`
}

// TypeQuery selects which side of the ledger a summary covers.
type TypeQuery struct {
	Type string `query:"type" default:"expense" enum:"income,expense" doc:"Transaction type"`
}

func toStats(s ledger.Stats) Stats {
	return Stats{
		Income:   s.Income.StringFixed(2),
		Expenses: s.Expenses.StringFixed(2),
		Balance:  s.Balance.StringFixed(2),
	}
}

func toCategoryTotal(c ledger.CategoryTotal) CategoryTotal {
	return CategoryTotal{ID: c.ID, Name: c.Name, Icon: c.Icon, Total: c.Total.StringFixed(2)}
}

func toCategoryTotals(in []ledger.CategoryTotal) []CategoryTotal {
	out := make([]CategoryTotal, len(in))
	for i, c := range in {
		out[i] = toCategoryTotal(c)
	}
	return out
}

func toCategoryShares(in []ledger.CategoryShare) []CategoryShare {
	out := make([]CategoryShare, len(in))
	for i, c := range in {
		out[i] = CategoryShare{
			CategoryTotal: toCategoryTotal(c.CategoryTotal),
			Percent:       c.Percent.StringFixed(1),
			Color:         c.Color,
		}
	}
	return out
}

func toDailyAmounts(in []ledger.DailyAmount) []DailyAmount {
	out := make([]DailyAmount, len(in))
	for i, d := range in {
		out[i] = DailyAmount{Date: d.Date, Label: d.Label, Amount: d.Amount.StringFixed(2)}
	}
	return out
}
