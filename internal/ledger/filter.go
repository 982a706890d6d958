package ledger

import (
	"strings"
	"time"

	"github.com/carson-networks/expense-tracker/internal/category"
)

// MatchAll is the no-op value for the type and category predicates.
const MatchAll = "all"

// FilterSpec selects transactions for the list view. Zero values and MatchAll
// disable a predicate; all enabled predicates must hold.
type FilterSpec struct {
	Type       string
	Category   string
	DateFrom   *time.Time
	DateTo     *time.Time
	SearchText string
}

// Filter returns the matching transactions in collection order.
func (l Ledger) Filter(spec FilterSpec) []Transaction {
	search := strings.ToLower(spec.SearchText)
	out := make([]Transaction, 0, len(l.transactions))
	for _, tx := range l.transactions {
		if spec.matches(tx, search) {
			out = append(out, tx)
		}
	}
	return out
}

func (spec FilterSpec) matches(tx Transaction, search string) bool {
	if spec.Type != "" && spec.Type != MatchAll && tx.Type != category.Type(spec.Type) {
		return false
	}
	if spec.Category != "" && spec.Category != MatchAll && tx.Category != spec.Category {
		return false
	}
	if spec.DateFrom != nil && tx.Date.Before(*spec.DateFrom) {
		return false
	}
	if spec.DateTo != nil && tx.Date.After(*spec.DateTo) {
		return false
	}
	if search != "" && !strings.Contains(strings.ToLower(tx.Description), search) {
		return false
	}
	return true
}
