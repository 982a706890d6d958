package category

import "fmt"

// Type classifies a transaction and selects the category set it may use.
type Type string

const (
	Expense Type = "expense"
	Income  Type = "income"
)

// Valid reports whether t is one of the known transaction types.
func (t Type) Valid() bool {
	return t == Expense || t == Income
}

// ParseType converts user input into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
	return t, nil
}

// Category is a fixed reference entry. Ids are only unique within their own type's set.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

const (
	unknownName = "Unknown"
	unknownIcon = "❓"
)

var expenseCategories = []Category{
	{ID: "food", Name: "Food & Dining", Icon: "🍔"},
	{ID: "transport", Name: "Transportation", Icon: "🚗"},
	{ID: "shopping", Name: "Shopping", Icon: "🛍️"},
	{ID: "entertainment", Name: "Entertainment", Icon: "🎬"},
	{ID: "housing", Name: "Housing", Icon: "🏠"},
	{ID: "utilities", Name: "Utilities", Icon: "💡"},
	{ID: "health", Name: "Healthcare", Icon: "⚕️"},
	{ID: "education", Name: "Education", Icon: "📚"},
	{ID: "travel", Name: "Travel", Icon: "✈️"},
	{ID: "other", Name: "Other", Icon: "📝"},
}

var incomeCategories = []Category{
	{ID: "salary", Name: "Salary", Icon: "💰"},
	{ID: "business", Name: "Business", Icon: "💼"},
	{ID: "investment", Name: "Investment", Icon: "📈"},
	{ID: "gift", Name: "Gift", Icon: "🎁"},
	{ID: "other", Name: "Other", Icon: "📝"},
}

// For returns the categories of t in declaration order. Unknown types yield nil.
func For(t Type) []Category {
	var src []Category
	switch t {
	case Expense:
		src = expenseCategories
	case Income:
		src = incomeCategories
	default:
		return nil
	}
	out := make([]Category, len(src))
	copy(out, src)
	return out
}

// All returns expense categories followed by income categories.
func All() []Category {
	return append(For(Expense), For(Income)...)
}

// Lookup resolves id within the set of t.
func Lookup(t Type, id string) (Category, bool) {
	for _, c := range For(t) {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Display resolves id for rendering and falls back to an Unknown placeholder.
// The mutation path must use Lookup instead.
func Display(t Type, id string) Category {
	if c, ok := Lookup(t, id); ok {
		return c
	}
	return Category{ID: id, Name: unknownName, Icon: unknownIcon}
}
