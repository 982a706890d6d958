package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/category"
)

// Transaction is a single income or expense record.
type Transaction struct {
	ID          string          `json:"id"`
	Type        category.Type   `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// TransactionInput is the input for adding a transaction.
type TransactionInput struct {
	Type        category.Type
	Amount      decimal.Decimal
	Description string
	Category    string
	Date        *time.Time // defaults to now if nil
}

// TransactionPatch holds the fields to merge onto an existing transaction.
// Nil fields are left untouched. The id is never patchable.
type TransactionPatch struct {
	Type        *category.Type
	Amount      *decimal.Decimal
	Description *string
	Category    *string
	Date        *time.Time
}

func (p TransactionPatch) apply(tx Transaction) Transaction {
	if p.Type != nil {
		tx.Type = *p.Type
	}
	if p.Amount != nil {
		tx.Amount = *p.Amount
	}
	if p.Description != nil {
		tx.Description = *p.Description
	}
	if p.Category != nil {
		tx.Category = *p.Category
	}
	if p.Date != nil {
		tx.Date = *p.Date
	}
	return tx
}
