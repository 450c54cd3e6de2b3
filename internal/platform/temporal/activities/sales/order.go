package sales

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
	salesports "github.com/openretail/pos-api-server/internal/domains/sales/ports"
)

const (
	// CompleteCartActivityName allocates an order number and persists the completed order.
	CompleteCartActivityName = "sales.activities.CompleteCart"
)

// Activities groups activities that operate on the sales bounded context.
type Activities struct {
	completeService salesports.Service
}

// NewActivities wires the sales collaborators into the Temporal activities bundle.
// completeService should be constructed without an orchestrator dependency to avoid recursion.
func NewActivities(completeService salesports.Service) *Activities {
	return &Activities{completeService: completeService}
}

// CompleteCart finalizes a cart as a completed order and returns the persisted aggregate.
func (a *Activities) CompleteCart(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	logger := activity.GetLogger(ctx)
	orderID := ""
	if cart != nil {
		orderID = cart.ID
	}
	if a == nil || a.completeService == nil {
		logger.Error("complete cart activity not initialized", "orderId", orderID)
		return nil, errors.New("complete cart activity not initialized")
	}
	logger.Info("CompleteCart activity started", "orderId", orderID)
	completed, err := a.completeService.CompleteCart(ctx, cart)
	if err != nil {
		logger.Error("CompleteCart activity failed", "orderId", orderID, "error", err)
		return nil, err
	}
	logger.Info("CompleteCart activity completed", "orderId", completed.ID, "orderNumber", completed.OrderNumber)
	return completed, nil
}
