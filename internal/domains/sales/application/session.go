package application

import (
	"sync"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
)

// CartSession holds the working cart for one sales session. It replaces
// the ambient "current cart" the UI used to observe: callers get an
// explicit handle, and interested parties register a callback instead
// of subscribing to a global.
//
// Mutations are serialized by the mutex; whichever caller mutates last
// wins, which is the documented arbitration for a single-operator till.
type CartSession struct {
	mu          sync.Mutex
	cart        *domain.Cart
	subscribers []func(*domain.Cart)
}

func NewCartSession() *CartSession {
	return &CartSession{}
}

// Current returns a deep copy of the working cart, nil when no sale is
// in progress.
func (s *CartSession) Current() *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// Replace installs cart as the working cart and notifies subscribers.
func (s *CartSession) Replace(cart *domain.Cart) {
	s.mu.Lock()
	s.cart = cart.Clone()
	snapshot := s.cart.Clone()
	subscribers := s.subscribers
	s.mu.Unlock()
	for _, notify := range subscribers {
		notify(snapshot)
	}
}

// Mutate applies fn to the working cart under the session lock and
// notifies subscribers with the result. An empty cart is materialized
// on first use so a fresh session can accept items.
func (s *CartSession) Mutate(fn func(*domain.Cart) error) (*domain.Cart, error) {
	s.mu.Lock()
	if s.cart == nil {
		s.cart = &domain.Cart{}
	}
	if err := fn(s.cart); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	snapshot := s.cart.Clone()
	subscribers := s.subscribers
	s.mu.Unlock()
	for _, notify := range subscribers {
		notify(snapshot.Clone())
	}
	return snapshot, nil
}

// Clear resets the session to no-sale-in-progress and notifies
// subscribers with nil.
func (s *CartSession) Clear() {
	s.mu.Lock()
	s.cart = nil
	subscribers := s.subscribers
	s.mu.Unlock()
	for _, notify := range subscribers {
		notify(nil)
	}
}

// Subscribe registers a callback invoked after every cart change. The
// callback receives a private copy and must not block for long; it runs
// on the mutating caller's goroutine.
func (s *CartSession) Subscribe(fn func(*domain.Cart)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}
