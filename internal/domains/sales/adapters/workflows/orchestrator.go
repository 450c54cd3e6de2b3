package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
	"github.com/openretail/pos-api-server/internal/domains/sales/ports"
	salesworkflows "github.com/openretail/pos-api-server/internal/durable/temporal/workflows/sales"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts order workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: salesworkflows.OrderCompletionTaskQueue}
}

// CompleteCart starts the Temporal workflow that allocates a number and persists the order.
func (o *TemporalOrderWorkflows) CompleteCart(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        buildOrderCompletionWorkflowID(cart, traceComponent),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		salesworkflows.OrderCompletionWorkflow,
		salesworkflows.OrderCompletionWorkflowInput{Cart: cart, TraceID: traceComponent},
	)
	if err != nil {
		return nil, err
	}
	var completed domain.Cart
	if err := run.Get(ctx, &completed); err != nil {
		return nil, err
	}
	return &completed, nil
}

// InlineOrderWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service ports.Service
}

// NewInlineOrderWorkflows wraps the sales service for synchronous execution.
func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

// CompleteCart delegates to the application service without durable orchestration.
func (o *InlineOrderWorkflows) CompleteCart(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.CompleteCart(ctx, cart)
}

func buildOrderCompletionWorkflowID(cart *domain.Cart, traceComponent string) string {
	idComponent := ""
	if cart != nil {
		idComponent = cart.ID
	}
	if idComponent == "" {
		idComponent = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("order-completion-%s-%s", idComponent, traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
