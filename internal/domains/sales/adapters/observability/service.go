package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
	"github.com/openretail/pos-api-server/internal/domains/sales/ports"
)

const tracerName = "github.com/openretail/pos-api-server/internal/domains/sales/adapters/observability/service"

// Service decorates the sales application port with tracing, logging,
// and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core sales service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// AddToCart merges a selection into the working cart with instrumentation.
func (s *Service) AddToCart(ctx context.Context, incoming domain.LineItem) (*domain.Cart, error) {
	ctx, span := s.startSpan(ctx, "Service.AddToCart", attribute.String("product.id", incoming.Key()))
	defer span.End()

	result, err := s.inner.AddToCart(ctx, incoming)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add to cart", slog.String("product.id", incoming.Key()))
	}
	s.metrics.recordItemAdded(ctx)
	s.logInfo(ctx, "added to cart",
		slog.String("product.id", incoming.Key()),
		slog.Int("cart.items", len(result.Items)),
		slog.Float64("cart.total", result.TotalAmount))
	return result, nil
}

// RemoveItem drops a line item from the working cart.
func (s *Service) RemoveItem(ctx context.Context, productKey string) (*domain.Cart, error) {
	ctx, span := s.startSpan(ctx, "Service.RemoveItem", attribute.String("product.id", productKey))
	defer span.End()

	result, err := s.inner.RemoveItem(ctx, productKey)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove cart item", slog.String("product.id", productKey))
	}
	s.logInfo(ctx, "removed cart item", slog.String("product.id", productKey), slog.Int("cart.items", len(result.Items)))
	return result, nil
}

// AdjustQuantity shifts a discrete line item's quantity.
func (s *Service) AdjustQuantity(ctx context.Context, productKey string, delta int) (*domain.Cart, error) {
	ctx, span := s.startSpan(ctx, "Service.AdjustQuantity",
		attribute.String("product.id", productKey),
		attribute.Int("delta", delta),
	)
	defer span.End()

	result, err := s.inner.AdjustQuantity(ctx, productKey, delta)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to adjust quantity", slog.String("product.id", productKey))
	}
	return result, nil
}

// CurrentCart returns the working cart snapshot.
func (s *Service) CurrentCart() *domain.Cart {
	return s.inner.CurrentCart()
}

// ClearCart abandons the working cart.
func (s *Service) ClearCart() {
	s.inner.ClearCart()
	s.logInfo(context.Background(), "cart cleared")
}

// SaveDraft persists the working cart as a draft order.
func (s *Service) SaveDraft(ctx context.Context) (*domain.Cart, error) {
	ctx, span := s.startSpan(ctx, "Service.SaveDraft")
	defer span.End()

	result, err := s.inner.SaveDraft(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to save draft")
	}
	s.metrics.recordDraftSaved(ctx)
	s.logInfo(ctx, "draft saved", slog.String("order.id", result.ID), slog.Float64("order.total", result.TotalAmount))
	return result, nil
}

// CompleteOrder turns the working cart into a completed order.
func (s *Service) CompleteOrder(ctx context.Context) (*domain.Cart, error) {
	ctx, span := s.startSpan(ctx, "Service.CompleteOrder")
	defer span.End()

	result, err := s.inner.CompleteOrder(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to complete order")
	}
	span.SetAttributes(attribute.String("order.number", result.OrderNumber))
	s.metrics.recordCompleted(ctx, result.PaymentMethod)
	s.logInfo(ctx, "order completed",
		slog.String("order.id", result.ID),
		slog.String("order.number", result.OrderNumber),
		slog.Float64("order.total", result.TotalAmount))
	return result, nil
}

// CompleteCart runs the stateless completion step.
func (s *Service) CompleteCart(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	ctx, span := s.startSpan(ctx, "Service.CompleteCart")
	defer span.End()

	result, err := s.inner.CompleteCart(ctx, cart)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to persist completed order")
	}
	return result, nil
}

// RestoreDraft loads a persisted draft back into the working cart.
func (s *Service) RestoreDraft(ctx context.Context, draftID string) (*domain.Cart, error) {
	ctx, span := s.startSpan(ctx, "Service.RestoreDraft", attribute.String("order.id", draftID))
	defer span.End()

	result, err := s.inner.RestoreDraft(ctx, draftID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to restore draft", slog.String("order.id", draftID))
	}
	s.metrics.recordDraftRestored(ctx)
	s.logInfo(ctx, "draft restored", slog.String("order.id", draftID), slog.String("order.number", result.OrderNumber))
	return result, nil
}

// DeleteOrder removes a persisted order.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	ctx, span := s.startSpan(ctx, "Service.DeleteOrder", attribute.String("order.id", id))
	defer span.End()

	if err := s.inner.DeleteOrder(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.String("order.id", id))
	}
	s.logInfo(ctx, "order deleted", slog.String("order.id", id))
	return nil
}

// ListOrders fetches order history matching the filter.
func (s *Service) ListOrders(ctx context.Context, filter domain.Filter) (*ports.OrderPage, error) {
	ctx, span := s.startSpan(ctx, "Service.ListOrders", attribute.Int("filter.keys", len(filter)))
	defer span.End()

	result, err := s.inner.ListOrders(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int64("orders.total", result.TotalCount))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	itemsAdded      metric.Int64Counter
	draftsSaved     metric.Int64Counter
	draftsRestored  metric.Int64Counter
	ordersCompleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	itemsAdded, _ := m.Int64Counter("sales.cart.items_added", metric.WithDescription("Number of line item merges"))
	draftsSaved, _ := m.Int64Counter("sales.orders.drafts_saved", metric.WithDescription("Number of carts saved as drafts"))
	draftsRestored, _ := m.Int64Counter("sales.orders.drafts_restored", metric.WithDescription("Number of drafts restored to the cart"))
	ordersCompleted, _ := m.Int64Counter("sales.orders.completed", metric.WithDescription("Number of completed orders"))
	return serviceMetrics{
		itemsAdded:      itemsAdded,
		draftsSaved:     draftsSaved,
		draftsRestored:  draftsRestored,
		ordersCompleted: ordersCompleted,
	}
}

func (m serviceMetrics) recordItemAdded(ctx context.Context) {
	addCounter(ctx, m.itemsAdded, 1)
}

func (m serviceMetrics) recordDraftSaved(ctx context.Context) {
	addCounter(ctx, m.draftsSaved, 1)
}

func (m serviceMetrics) recordDraftRestored(ctx context.Context) {
	addCounter(ctx, m.draftsRestored, 1)
}

func (m serviceMetrics) recordCompleted(ctx context.Context, paymentMethod string) {
	addCounter(ctx, m.ordersCompleted, 1, attribute.String("order.payment_method", paymentMethod))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
