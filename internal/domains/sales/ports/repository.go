package ports

import (
	"context"
	"errors"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
)

var ErrNotFound = errors.New("order not found")

// OrderPage is one page of persisted orders plus the unpaged count.
type OrderPage struct {
	Items      []*domain.Cart
	TotalCount int64
}

// Repository persists orders and the shared order-number sequence.
// Implemented by the postgres, mongo, remote-API, and memory adapters;
// the sales service never knows which one it is talking to.
type Repository interface {
	CreateOrder(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
	UpdateOrder(ctx context.Context, id string, cart *domain.Cart) (*domain.Cart, error)
	GetOrder(ctx context.Context, id string) (*domain.Cart, error)
	ListOrders(ctx context.Context, filter domain.Filter) (*OrderPage, error)
	DeleteOrder(ctx context.Context, id string) error

	// LoadSequence returns the shared counter record, ErrNotFound when
	// no record exists yet.
	LoadSequence(ctx context.Context) (*domain.OrderSequence, error)
	SaveSequence(ctx context.Context, seq *domain.OrderSequence) (*domain.OrderSequence, error)
}
