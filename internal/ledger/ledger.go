// Package ledger holds a user's transaction collection and the pure functions
// that derive summaries from it. A Ledger value is never modified in place;
// every mutator returns a new Ledger and leaves the receiver untouched.
package ledger

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Options controls how new records get their id and timestamps.
type Options struct {
	Now   func() time.Time
	NewID func() string
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = func() string {
			return uuid.Must(uuid.NewV4()).String()
		}
	}
	return o
}

// Ledger is an ordered collection of transactions, most recent first.
type Ledger struct {
	transactions []Transaction
	opts         Options
}

// New wraps transactions in a Ledger. The slice is copied.
func New(transactions []Transaction, opts Options) Ledger {
	return Ledger{
		transactions: clone(transactions),
		opts:         opts.withDefaults(),
	}
}

// Transactions returns a copy of the collection in order.
func (l Ledger) Transactions() []Transaction {
	return clone(l.transactions)
}

// Len returns the number of transactions.
func (l Ledger) Len() int {
	return len(l.transactions)
}

// Find returns the transaction with id.
func (l Ledger) Find(id string) (Transaction, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.transactions[i], true
	}
	return Transaction{}, false
}

// Add validates input, assigns an id and prepends the new record.
func (l Ledger) Add(input TransactionInput) (Ledger, Transaction, error) {
	opts := l.opts.withDefaults()
	now := opts.Now()
	tx := Transaction{
		Type:        input.Type,
		Amount:      input.Amount,
		Description: input.Description,
		Category:    input.Category,
		Date:        now,
		CreatedAt:   now,
	}
	if input.Date != nil {
		tx.Date = *input.Date
	}
	if err := validate(tx); err != nil {
		return l, Transaction{}, err
	}
	tx.ID = opts.NewID()

	next := make([]Transaction, 0, len(l.transactions)+1)
	next = append(next, tx)
	next = append(next, l.transactions...)
	return l.with(next), tx, nil
}

// Update merges patch onto the record with id and re-validates the result.
func (l Ledger) Update(id string, patch TransactionPatch) (Ledger, Transaction, error) {
	i := l.indexOf(id)
	if i < 0 {
		return l, Transaction{}, &NotFoundError{ID: id}
	}

	updated := patch.apply(l.transactions[i])
	updated.ID = id
	if err := validate(updated); err != nil {
		return l, Transaction{}, err
	}

	next := clone(l.transactions)
	next[i] = updated
	return l.with(next), updated, nil
}

// Delete removes the record with id. Unknown ids fail with NotFoundError.
func (l Ledger) Delete(id string) (Ledger, error) {
	i := l.indexOf(id)
	if i < 0 {
		return l, &NotFoundError{ID: id}
	}

	next := make([]Transaction, 0, len(l.transactions)-1)
	next = append(next, l.transactions[:i]...)
	next = append(next, l.transactions[i+1:]...)
	return l.with(next), nil
}

// Recent returns up to n transactions from the front of the collection.
func (l Ledger) Recent(n int) []Transaction {
	if n < 0 {
		n = 0
	}
	if n > len(l.transactions) {
		n = len(l.transactions)
	}
	return clone(l.transactions[:n])
}

func (l Ledger) with(transactions []Transaction) Ledger {
	return Ledger{transactions: transactions, opts: l.opts}
}

func (l Ledger) indexOf(id string) int {
	for i, tx := range l.transactions {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

func clone(in []Transaction) []Transaction {
	out := make([]Transaction, len(in))
	copy(out, in)
	return out
}
