package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
	salesactivities "github.com/openretail/pos-api-server/internal/platform/temporal/activities/sales"
)

// RunOrderPersistenceSequence executes the ordered set of activities needed to complete and persist an order.
func RunOrderPersistenceSequence(ctx workflow.Context, cart *domain.Cart) (*domain.Cart, error) {
	logger := workflow.GetLogger(ctx)
	orderID := ""
	if cart != nil {
		orderID = cart.ID
	}
	logger.Info("order persistence sequence started", "orderId", orderID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var completed domain.Cart
	err := workflow.ExecuteActivity(ctx, salesactivities.CompleteCartActivityName, cart).Get(ctx, &completed)
	if err != nil {
		logger.Error("order persistence sequence failed", "orderId", orderID, "error", err)
		return nil, err
	}
	logger.Info("order persistence sequence completed", "orderId", completed.ID, "orderNumber", completed.OrderNumber)
	return &completed, nil
}
