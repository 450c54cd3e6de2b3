package ports

import (
	"context"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
)

// EventPublisher announces completed orders to downstream consumers.
// Publishing is best-effort: a failed publish never fails the sale.
type EventPublisher interface {
	OrderCompleted(ctx context.Context, order *domain.Cart) error
}

// NoopPublisher is the safe default when no broker is configured.
var NoopPublisher EventPublisher = noopPublisher{}

type noopPublisher struct{}

func (noopPublisher) OrderCompleted(_ context.Context, _ *domain.Cart) error { return nil }
