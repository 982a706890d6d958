package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/carson-networks/expense-tracker/internal/budget"
	"github.com/carson-networks/expense-tracker/internal/category"
	"github.com/carson-networks/expense-tracker/internal/currency"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/notify"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

type Options struct {
	Now   func() time.Time
	NewID func() string

	// SeedDemoData fills a brand new user's ledger with sample transactions.
	SeedDemoData bool
}

// Manager opens sessions on login and caches them until logout.
type Manager struct {
	store  storage.Adapter
	sink   notify.Sink
	logger *logrus.Logger
	opts   Options

	mu       sync.Mutex
	sessions map[string]*Session
	loads    singleflight.Group
}

func NewManager(store storage.Adapter, sink notify.Sink, logger *logrus.Logger, opts Options) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if sink == nil {
		sink = notify.Discard{}
	}
	return &Manager{
		store:    store,
		sink:     sink,
		logger:   logger,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Open returns the cached session for userID, loading it from storage on
// first use. Load failures are logged and the session starts empty.
// Concurrent opens of the same user share one load; other users are not
// blocked while it runs.
func (m *Manager) Open(ctx context.Context, userID string) *Session {
	if s, ok := m.Get(userID); ok {
		return s
	}
	v, _, _ := m.loads.Do(userID, func() (interface{}, error) {
		if s, ok := m.Get(userID); ok {
			return s, nil
		}
		s := m.load(ctx, userID)

		m.mu.Lock()
		defer m.mu.Unlock()
		if existing, ok := m.sessions[userID]; ok {
			return existing, nil
		}
		m.sessions[userID] = s
		return s, nil
	})
	return v.(*Session)
}

// Get returns an already open session.
func (m *Manager) Get(userID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	return s, ok
}

// Close drops the cached session so the next Open reloads from storage.
func (m *Manager) Close(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Each calls fn for every open session in user id order.
func (m *Manager) Each(fn func(*Session)) {
	m.mu.Lock()
	open := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		open = append(open, s)
	}
	m.mu.Unlock()

	sort.Slice(open, func(i, j int) bool { return open[i].UserID < open[j].UserID })
	for _, s := range open {
		fn(s)
	}
}

func (m *Manager) load(ctx context.Context, userID string) *Session {
	log := m.logger.WithField("userID", userID)
	ledgerOpts := ledger.Options{Now: m.opts.Now, NewID: m.opts.NewID}

	transactions, err := m.store.LoadTransactions(ctx, userID)
	seed := false
	if err != nil {
		log.WithError(err).Error("Manager.load.transactions")
		transactions = nil
	} else if transactions == nil && m.opts.SeedDemoData {
		seed = true
	}

	limit, err := m.store.LoadBudgetLimit(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Manager.load.budget")
		limit = decimal.Zero
	}

	selected := currency.Default
	code, err := m.store.LoadCurrency(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Manager.load.currency")
	} else if code != "" {
		if c, lookupErr := currency.Lookup(code); lookupErr == nil {
			selected = c
		} else {
			log.WithError(lookupErr).Warn("Manager.load.currency")
		}
	}

	s := &Session{
		UserID:      userID,
		store:       m.store,
		sink:        m.sink,
		logger:      m.logger,
		now:         m.opts.Now,
		ledger:      ledger.New(transactions, ledgerOpts),
		budgetLimit: limit,
		currency:    selected,
	}

	if seed {
		s.ledger = ledger.New(demoTransactions(m.opts.Now(), ledgerOpts), ledgerOpts)
		if err := s.saveTransactions(ctx); err == nil {
			log.WithField("count", s.ledger.Len()).Info("Manager.load.seeded")
		}
	}

	// Start the tracker from the loaded state so reopening an already
	// over-budget user does not alert again.
	s.tracker = budget.NewTracker(s.budgetStatus())
	return s
}

type demoEntry struct {
	day         int
	txType      category.Type
	amount      int64
	description string
	category    string
}

var demoEntries = []demoEntry{
	{18, category.Expense, 60, "Electric Bill", "utilities"},
	{15, category.Expense, 200, "New Headphones", "shopping"},
	{12, category.Expense, 35, "Gas", "transport"},
	{10, category.Income, 500, "Freelance Project", "business"},
	{7, category.Expense, 45, "Netflix Subscription", "entertainment"},
	{5, category.Expense, 120, "Grocery Shopping", "food"},
	{3, category.Expense, 800, "Apartment Rent", "housing"},
	{1, category.Income, 3000, "Monthly Salary", "salary"},
}

// demoTransactions builds the sample ledger dated within now's UTC month,
// newest first.
func demoTransactions(now time.Time, opts ledger.Options) []ledger.Transaction {
	l := ledger.New(nil, opts)
	year, month, _ := now.UTC().Date()
	out := make([]ledger.Transaction, 0, len(demoEntries))
	for _, e := range demoEntries {
		date := time.Date(year, month, e.day, 0, 0, 0, 0, time.UTC)
		next, tx, err := l.Add(ledger.TransactionInput{
			Type:        e.txType,
			Amount:      decimal.NewFromInt(e.amount),
			Description: e.description,
			Category:    e.category,
			Date:        &date,
		})
		if err != nil {
			continue
		}
		l = next
		tx.CreatedAt = date
		out = append(out, tx)
	}
	return out
}
