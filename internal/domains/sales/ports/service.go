package ports

import (
	"context"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
)

// Service exposes the sales bounded context use cases to adapters.
type Service interface {
	// Working-cart operations. Each mutation returns the refreshed cart.
	AddToCart(ctx context.Context, incoming domain.LineItem) (*domain.Cart, error)
	RemoveItem(ctx context.Context, productKey string) (*domain.Cart, error)
	AdjustQuantity(ctx context.Context, productKey string, delta int) (*domain.Cart, error)
	CurrentCart() *domain.Cart
	ClearCart()

	// Lifecycle transitions.
	SaveDraft(ctx context.Context) (*domain.Cart, error)
	CompleteOrder(ctx context.Context) (*domain.Cart, error)
	CompleteCart(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
	RestoreDraft(ctx context.Context, draftID string) (*domain.Cart, error)
	DeleteOrder(ctx context.Context, id string) error

	// History.
	ListOrders(ctx context.Context, filter domain.Filter) (*OrderPage, error)
}
