package ports

import (
	"context"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
)

// WorkflowOrchestrator runs the durable part of order completion: the
// stateless persist-and-number step. The session-clearing half stays
// with the caller, which owns the working cart.
type WorkflowOrchestrator interface {
	CompleteCart(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
}
