package sales

import (
	"go.temporal.io/sdk/workflow"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
	"github.com/openretail/pos-api-server/internal/durable/temporal/sequences"
)

const (
	// OrderCompletionWorkflowName is the public identifier for registering the workflow.
	OrderCompletionWorkflowName = "sales.workflows.OrderCompletion"
	// OrderCompletionTaskQueue is the queue consumed by the worker processing order workflows.
	OrderCompletionTaskQueue = "ORDER_COMPLETION"
)

// OrderCompletionWorkflowInput captures the cart payload to complete and persist.
type OrderCompletionWorkflowInput struct {
	Cart    *domain.Cart
	TraceID string
}

// OrderCompletionWorkflow orchestrates the activities needed to turn a cart into a completed order.
func OrderCompletionWorkflow(ctx workflow.Context, input OrderCompletionWorkflowInput) (*domain.Cart, error) {
	logger := workflow.GetLogger(ctx)
	orderID := ""
	if input.Cart != nil {
		orderID = input.Cart.ID
	}
	logger.Info("OrderCompletionWorkflow started", withTraceID(input.TraceID, "orderId", orderID)...)
	completed, err := sequences.RunOrderPersistenceSequence(ctx, input.Cart)
	if err != nil {
		logger.Error("OrderCompletionWorkflow failed", withTraceID(input.TraceID, "orderId", orderID, "error", err)...)
		return nil, err
	}
	if completed != nil {
		logger.Info("OrderCompletionWorkflow completed", withTraceID(input.TraceID, "orderId", completed.ID, "orderNumber", completed.OrderNumber)...)
	} else {
		logger.Info("OrderCompletionWorkflow completed", withTraceID(input.TraceID)...)
	}
	return completed, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
