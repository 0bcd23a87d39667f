package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/samiul132/anginar-bazar/internal/store"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long after the last mutation the cart is
// written back to the store, so rapid quantity taps coalesce into a
// single write.
const DefaultDebounce = 500 * time.Millisecond

// Manager holds the authoritative in-memory cart per browser session
// and mirrors it to the key-value store with a write-behind timer. The
// timer always serializes the current snapshot at fire time, never a
// queued copy, so the most recent state wins. Storage failures are
// logged and swallowed; the cart keeps working in memory.
type Manager struct {
	store    store.Store
	log      logrus.FieldLogger
	debounce time.Duration

	mu    sync.Mutex
	carts map[string]*state
}

type state struct {
	items []Item
	timer *time.Timer
	dirty bool
}

func NewManager(st store.Store, log logrus.FieldLogger, debounce time.Duration) *Manager {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Manager{
		store:    st,
		log:      log,
		debounce: debounce,
		carts:    make(map[string]*state),
	}
}

func key(sid string) string {
	return "cart:" + sid
}

// load fetches the session's cart into memory on first touch. A
// missing or unparseable blob starts an empty cart. Must be called
// with m.mu held. Nothing is persisted before this load has run, so a
// transient empty cart can never clobber stored data.
func (m *Manager) load(ctx context.Context, sid string) *state {
	if st, ok := m.carts[sid]; ok {
		return st
	}

	st := &state{}
	data, err := m.store.Get(ctx, key(sid))
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &st.items); err != nil {
			m.log.WithError(err).WithField("sid", sid).Warn("stored cart unreadable, starting empty")
			st.items = nil
		}
	case !errors.Is(err, store.ErrNotFound):
		m.log.WithError(err).WithField("sid", sid).Warn("loading cart failed, starting empty")
	}
	m.carts[sid] = st
	return st
}

// Add merges quantity into an existing line for the same product, or
// appends a new line. Quantity sanity is the caller's responsibility.
func (m *Manager) Add(ctx context.Context, sid string, item Item, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.load(ctx, sid)
	if i := findLine(st.items, item.ProductID); i >= 0 {
		st.items[i].Quantity += quantity
	} else {
		item.Quantity = quantity
		st.items = append(st.items, item)
	}
	m.schedule(sid, st)
}

// UpdateQuantity sets the line to exactly quantity; zero or below
// removes the line entirely.
func (m *Manager) UpdateQuantity(ctx context.Context, sid string, productID, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.load(ctx, sid)
	i := findLine(st.items, productID)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		st.items = append(st.items[:i], st.items[i+1:]...)
	} else {
		st.items[i].Quantity = quantity
	}
	m.schedule(sid, st)
}

// Remove deletes the line unconditionally; absent lines are a no-op.
func (m *Manager) Remove(ctx context.Context, sid string, productID int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.load(ctx, sid)
	i := findLine(st.items, productID)
	if i < 0 {
		return
	}
	st.items = append(st.items[:i], st.items[i+1:]...)
	m.schedule(sid, st)
}

// Clear empties the cart, called after a successful order or an
// explicit clear.
func (m *Manager) Clear(ctx context.Context, sid string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.load(ctx, sid)
	st.items = nil
	m.schedule(sid, st)
}

// Items returns a copy of the cart lines.
func (m *Manager) Items(ctx context.Context, sid string) []Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.load(ctx, sid)
	out := make([]Item, len(st.items))
	copy(out, st.items)
	return out
}

// Total is the sum of price*quantity over all lines.
func (m *Manager) Total(ctx context.Context, sid string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return total(m.load(ctx, sid).items)
}

// Count is the number of distinct lines, not total units.
func (m *Manager) Count(ctx context.Context, sid string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.load(ctx, sid).items)
}

// ItemQuantity returns the quantity of the matching line, or 0.
func (m *Manager) ItemQuantity(ctx context.Context, sid string, productID int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.load(ctx, sid)
	if i := findLine(st.items, productID); i >= 0 {
		return st.items[i].Quantity
	}
	return 0
}

// Contains reports whether the product has a line in the cart.
func (m *Manager) Contains(ctx context.Context, sid string, productID int) bool {
	return m.ItemQuantity(ctx, sid, productID) > 0
}

// schedule marks the session dirty and (re)arms its write-behind
// timer. Must be called with m.mu held.
func (m *Manager) schedule(sid string, st *state) {
	st.dirty = true
	if st.timer != nil {
		st.timer.Stop()
	}
	st.timer = time.AfterFunc(m.debounce, func() {
		m.persist(context.Background(), sid)
	})
}

// persist writes the session's current snapshot if it is still dirty.
func (m *Manager) persist(ctx context.Context, sid string) {
	m.mu.Lock()
	st, ok := m.carts[sid]
	if !ok || !st.dirty {
		m.mu.Unlock()
		return
	}
	st.dirty = false
	data, err := json.Marshal(st.items)
	m.mu.Unlock()

	if err != nil {
		m.log.WithError(err).WithField("sid", sid).Error("encoding cart failed")
		return
	}
	if err := m.store.Set(ctx, key(sid), data); err != nil {
		m.log.WithError(err).WithField("sid", sid).Error("saving cart failed")
	}
}

// Flush writes every pending cart unconditionally. Called on shutdown.
func (m *Manager) Flush(ctx context.Context) {
	m.mu.Lock()
	sids := make([]string, 0, len(m.carts))
	for sid, st := range m.carts {
		if st.timer != nil {
			st.timer.Stop()
		}
		if st.dirty {
			sids = append(sids, sid)
		}
	}
	m.mu.Unlock()

	for _, sid := range sids {
		m.persist(ctx, sid)
	}
}
