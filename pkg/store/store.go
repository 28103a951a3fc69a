// Package store provides the shared cart store: the single source of truth
// for the current cart, safe for use from any number of consumers, backed by
// a durable repository keyed per tenant page.
package store

import (
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Store wraps an in-memory cart with locking and persistence. Every mutation
// recomputes the grand total and writes the whole cart through to the
// repository. Persistence failures are logged and do not roll back the
// in-memory mutation: while the process lives the memory copy is the source
// of truth and the repository is a recovery aid, so a full disk must not
// discard a user action.
type Store struct {
	mu     sync.RWMutex
	pageID string
	cart   *types.Cart
	repo   types.CartRepository
	log    *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence failures. The default is a
// no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// New hydrates a store for the given page from the repository. A load failure
// degrades to an empty cart and is logged, never surfaced: a cart that cannot
// be read back must not block shopping. A stored cart whose grand total is
// zero or absent while lines exist is recomputed rather than trusted.
func New(pageID string, repo types.CartRepository, opts ...Option) *Store {
	s := &Store{
		pageID: pageID,
		repo:   repo,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	cart, err := repo.LoadCart(pageID)
	if err != nil {
		s.log.Warn("cart hydration failed, starting empty",
			zap.String("page", pageID), zap.Error(err))
		cart = types.NewCart()
	}
	if cart.GrandTotal == 0 && len(cart.Items) > 0 {
		cart.Recompute()
	}
	s.cart = cart
	return s
}

// Add applies the merge rule to the payload and persists. Malformed payload
// values are coerced, never rejected.
func (s *Store) Add(in types.ItemInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(in)
	s.persist()
}

// Remove deletes the line at index and persists. Out-of-range indexes are a
// silent no-op but still persist the (unchanged) cart.
func (s *Store) Remove(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(index)
	s.persist()
}

// SetQuantity sets a line's quantity and persists. No clamping is performed
// here; interactive callers keep quantities at or above 1 themselves.
func (s *Store) SetQuantity(index, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetQuantity(index, qty)
	s.persist()
}

// Clear resets the cart to empty and persists. Idempotent.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.persist()
}

// Snapshot returns a deep copy of the current cart, safe to hand to a
// checkout flow or display layer without observing later mutations.
func (s *Store) Snapshot() types.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

// Len returns the current number of lines.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Len()
}

// GrandTotal returns the current derived grand total.
func (s *Store) GrandTotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.GrandTotal
}

// persist writes the cart through to the repository. Called with the write
// lock held. Failures are logged and swallowed; the in-memory and persisted
// carts may diverge until the next successful write.
func (s *Store) persist() {
	if err := s.repo.SaveCart(s.pageID, s.cart); err != nil {
		s.log.Error("cart persistence failed",
			zap.String("page", s.pageID),
			zap.Int("lines", s.cart.Len()),
			zap.Error(err))
	}
}
