package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/category"
)

const invalidAmount = "Please enter a valid amount"

func validate(tx Transaction) error {
	verr := &ValidationError{}
	checkDescription(verr, tx.Description)
	checkAmount(verr, tx.Amount)
	checkCategory(verr, tx.Type, tx.Category)
	return verr.Err()
}

// ValidateInput reports every invalid field of input the way Add would.
func ValidateInput(input TransactionInput) *ValidationError {
	verr := &ValidationError{}
	checkDescription(verr, input.Description)
	checkAmount(verr, input.Amount)
	checkCategory(verr, input.Type, input.Category)
	return verr
}

// ValidatePatch checks the fields a patch sets. Type and category are only
// checked together when the patch carries both.
func ValidatePatch(patch TransactionPatch) *ValidationError {
	verr := &ValidationError{}
	if patch.Description != nil {
		checkDescription(verr, *patch.Description)
	}
	if patch.Amount != nil {
		checkAmount(verr, *patch.Amount)
	}
	if patch.Type != nil && !patch.Type.Valid() {
		verr.add("type", "Type must be income or expense")
	}
	if patch.Type != nil && patch.Category != nil {
		checkCategory(verr, *patch.Type, *patch.Category)
	}
	return verr
}

func checkDescription(verr *ValidationError, description string) {
	if strings.TrimSpace(description) == "" {
		verr.add("description", "Description is required")
	}
}

func checkAmount(verr *ValidationError, amount decimal.Decimal) {
	if !amount.GreaterThan(decimal.Zero) {
		verr.add("amount", invalidAmount)
	}
}

func checkCategory(verr *ValidationError, t category.Type, id string) {
	switch {
	case !t.Valid():
		verr.add("type", "Type must be income or expense")
	case id == "":
		verr.add("category", "Category is required")
	default:
		if _, ok := category.Lookup(t, id); !ok {
			verr.add("category", "Unknown "+string(t)+" category "+id)
		}
	}
}

// ParseAmount parses a user-entered decimal string. Non-numeric and non-positive
// values, and values finer than a cent, are rejected with a ValidationError on
// the amount field.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !amount.GreaterThan(decimal.Zero) {
		return decimal.Zero, NewValidationError("amount", invalidAmount)
	}
	if !amount.Equal(amount.Round(2)) {
		return decimal.Zero, NewValidationError("amount", "Amount can have at most 2 decimal places")
	}
	return amount, nil
}
