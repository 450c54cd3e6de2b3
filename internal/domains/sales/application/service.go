package application

import (
	"context"
	"errors"
	"time"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
	"github.com/openretail/pos-api-server/internal/domains/sales/ports"
)

// DefaultPaymentMethod is assumed until the operator picks one at
// checkout.
const DefaultPaymentMethod = "Cash"

// Service orchestrates the sales bounded context: the working cart, the
// draft/complete lifecycle, and order history queries.
type Service struct {
	repo      ports.Repository
	session   *CartSession
	allocator *SequenceAllocator
	publisher ports.EventPublisher
	workflows ports.WorkflowOrchestrator
}

// NewService wires the sales service with its dependencies. A nil
// publisher disables event publishing; sequenceStart seeds the order
// counter on first use.
func NewService(repo ports.Repository, publisher ports.EventPublisher, sequenceStart string) *Service {
	if publisher == nil {
		publisher = ports.NoopPublisher
	}
	return &Service{
		repo:      repo,
		session:   NewCartSession(),
		allocator: NewSequenceAllocator(repo, sequenceStart),
		publisher: publisher,
	}
}

// UseOrchestrator routes CompleteOrder through a durable orchestrator.
// Without one, completion runs inline against this service.
func (s *Service) UseOrchestrator(workflows ports.WorkflowOrchestrator) {
	s.workflows = workflows
}

// Session exposes the working-cart session so collaborators can
// subscribe to cart changes.
func (s *Service) Session() *CartSession {
	return s.session
}

// AddToCart merges a product selection into the working cart and
// refreshes the aggregate amounts.
func (s *Service) AddToCart(ctx context.Context, incoming domain.LineItem) (*domain.Cart, error) {
	_ = ctx
	if incoming.Product == nil {
		return nil, mapError(domain.ErrInvalidLineItem)
	}
	now := time.Now()
	return s.session.Mutate(func(cart *domain.Cart) error {
		if err := cart.AddItem(incoming); err != nil {
			return mapError(err)
		}
		if cart.CreatedAt.IsZero() {
			cart.CreatedAt = now
			cart.CartDate = now.UTC().Format("2006-01-02")
		}
		if cart.PaymentMethod == "" {
			cart.PaymentMethod = DefaultPaymentMethod
		}
		cart.UpdatedAt = now
		return nil
	})
}

// RemoveItem drops a line item from the working cart.
func (s *Service) RemoveItem(ctx context.Context, productKey string) (*domain.Cart, error) {
	_ = ctx
	return s.session.Mutate(func(cart *domain.Cart) error {
		cart.RemoveItem(productKey)
		cart.UpdatedAt = time.Now()
		return nil
	})
}

// AdjustQuantity shifts a discrete line item's quantity, removing the
// item when it reaches zero.
func (s *Service) AdjustQuantity(ctx context.Context, productKey string, delta int) (*domain.Cart, error) {
	_ = ctx
	return s.session.Mutate(func(cart *domain.Cart) error {
		cart.AdjustQuantity(productKey, delta)
		cart.UpdatedAt = time.Now()
		return nil
	})
}

// CurrentCart returns a copy of the working cart, nil when no sale is
// in progress.
func (s *Service) CurrentCart() *domain.Cart {
	return s.session.Current()
}

// ClearCart abandons the working cart without persisting anything.
func (s *Service) ClearCart() {
	s.session.Clear()
}

// SaveDraft persists the working cart as a draft order and clears the
// session on success. An already-assigned explicit status survives; the
// draft flip never overwrites it.
func (s *Service) SaveDraft(ctx context.Context) (*domain.Cart, error) {
	cart := s.session.Current()
	if cart.Empty() {
		return nil, mapError(domain.ErrEmptyCart)
	}
	cart.IsDraft = true
	if cart.Status == "" {
		cart.Status = domain.StatusDraft
	}
	cart.UpdatedAt = time.Now()
	cart.StripImages()
	saved, err := s.persist(ctx, cart)
	if err != nil {
		return nil, err
	}
	s.session.Clear()
	return saved, nil
}

// CompleteOrder turns the working cart into a completed order and
// clears the session on success. On failure the working cart is left
// exactly as it was so the operator can retry.
func (s *Service) CompleteOrder(ctx context.Context) (*domain.Cart, error) {
	cart := s.session.Current()
	if cart.Empty() {
		return nil, mapError(domain.ErrEmptyCart)
	}
	var (
		saved *domain.Cart
		err   error
	)
	if s.workflows != nil {
		saved, err = s.workflows.CompleteCart(ctx, cart)
	} else {
		saved, err = s.CompleteCart(ctx, cart)
	}
	if err != nil {
		return nil, err
	}
	s.session.Clear()
	return saved, nil
}

// CompleteCart is the stateless half of completion: number the cart,
// mark it completed, persist it, and announce it. Restored drafts keep
// the order number they already carry and do not advance the counter.
func (s *Service) CompleteCart(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if cart.Empty() {
		return nil, mapError(domain.ErrEmptyCart)
	}
	completed := cart.Clone()
	restoredDraft := completed.ID != "" && completed.IsDraft
	if !restoredDraft {
		number, err := s.allocator.Allocate(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		completed.OrderNumber = number
	}
	completed.IsDraft = false
	completed.Status = domain.StatusCompleted
	completed.UpdatedAt = time.Now()
	completed.StripImages()
	saved, err := s.persist(ctx, completed)
	if err != nil {
		return nil, err
	}
	// Best-effort announcement; the publisher logs its own failures.
	_ = s.publisher.OrderCompleted(ctx, saved)
	return saved, nil
}

// RestoreDraft loads a persisted draft into the working cart for
// continued editing. The persisted status does not change until the
// restored cart is saved or completed again.
func (s *Service) RestoreDraft(ctx context.Context, draftID string) (*domain.Cart, error) {
	cart, err := s.repo.GetOrder(ctx, draftID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	if !cart.IsDraft {
		return nil, ErrDraftNotFound
	}
	s.session.Replace(cart)
	return s.session.Current(), nil
}

// DeleteOrder removes a persisted order outright.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	return s.repo.DeleteOrder(ctx, id)
}

// ListOrders fetches order history matching the filter.
func (s *Service) ListOrders(ctx context.Context, filter domain.Filter) (*ports.OrderPage, error) {
	return s.repo.ListOrders(ctx, filter)
}

func (s *Service) persist(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if cart.ID != "" {
		return s.repo.UpdateOrder(ctx, cart.ID, cart)
	}
	return s.repo.CreateOrder(ctx, cart)
}

var _ ports.Service = (*Service)(nil)
