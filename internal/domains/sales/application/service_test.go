package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	salesmemory "github.com/openretail/pos-api-server/internal/domains/sales/adapters/memory"
	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
)

func espresso() *domain.ProductRef {
	return &domain.ProductRef{ID: "p-espresso", Name: "Espresso", Price: 3.5, IsAvailable: true}
}

func beans() *domain.ProductRef {
	return &domain.ProductRef{
		ID:               "p-beans",
		Name:             "Coffee Beans",
		Price:            20,
		IsAvailable:      true,
		IsPartialAllowed: true,
	}
}

func newTestService() (*Service, *salesmemory.Repository) {
	repo := salesmemory.NewRepository()
	return NewService(repo, nil, "100"), repo
}

func TestAddToCart_InitializesCart(t *testing.T) {
	svc, _ := newTestService()

	cart, err := svc.AddToCart(context.Background(), domain.LineItem{Product: espresso(), Quantity: 1, Total: 3.5})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, DefaultPaymentMethod, cart.PaymentMethod)
	require.False(t, cart.CreatedAt.IsZero())
	require.NotEmpty(t, cart.CartDate)
	require.Equal(t, 3.5, cart.Subtotal)
}

func TestAddToCart_MissingProduct(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddToCart(context.Background(), domain.LineItem{Quantity: 1})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Nil(t, svc.CurrentCart())
}

func TestRemoveItemAndAdjustQuantity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, domain.LineItem{Product: espresso(), Quantity: 2, Total: 7})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, domain.LineItem{Product: beans(), Size: "100", Total: 2})
	require.NoError(t, err)

	cart, err := svc.AdjustQuantity(ctx, "p-espresso", -1)
	require.NoError(t, err)
	require.Equal(t, 1, cart.Items[0].Quantity)
	require.Equal(t, 3.5, cart.Items[0].Total)

	cart, err = svc.RemoveItem(ctx, "p-beans")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 3.5, cart.Subtotal)
}

func TestSaveDraft_PersistsAndClearsSession(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, domain.LineItem{Product: espresso(), Quantity: 1, Total: 3.5})
	require.NoError(t, err)

	draft, err := svc.SaveDraft(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, draft.ID)
	require.True(t, draft.IsDraft)
	require.Equal(t, domain.StatusDraft, draft.Status)
	require.Nil(t, svc.CurrentCart())

	stored, err := repo.GetOrder(ctx, draft.ID)
	require.NoError(t, err)
	require.True(t, stored.IsDraft)
}

func TestSaveDraft_EmptyCart(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.SaveDraft(context.Background())
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSaveDraft_KeepsExplicitStatus(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	svc.Session().Replace(&domain.Cart{
		Status: domain.StatusPending,
		Items:  []domain.LineItem{{ProductID: "p-espresso", Quantity: 1, Total: 3.5}},
	})

	draft, err := svc.SaveDraft(ctx)
	require.NoError(t, err)
	require.True(t, draft.IsDraft)
	require.Equal(t, domain.StatusPending, draft.Status)
}

func TestCompleteOrder_AllocatesSequenceAndClearsSession(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, domain.LineItem{Product: espresso(), Quantity: 1, Total: 3.5})
	require.NoError(t, err)

	order, err := svc.CompleteOrder(ctx)
	require.NoError(t, err)
	require.Equal(t, "100", order.OrderNumber)
	require.Equal(t, domain.StatusCompleted, order.Status)
	require.False(t, order.IsDraft)
	require.Nil(t, svc.CurrentCart())

	// The next completed order advances the counter.
	_, err = svc.AddToCart(ctx, domain.LineItem{Product: espresso(), Quantity: 1, Total: 3.5})
	require.NoError(t, err)
	second, err := svc.CompleteOrder(ctx)
	require.NoError(t, err)
	require.Equal(t, "101", second.OrderNumber)
}

func TestCompleteOrder_EmptyCart(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CompleteOrder(context.Background())
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompleteOrder_FailureKeepsWorkingCart(t *testing.T) {
	repo := &failingCreateRepo{Repository: salesmemory.NewRepository()}
	svc := NewService(repo, nil, "100")
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, domain.LineItem{Product: espresso(), Quantity: 1, Total: 3.5})
	require.NoError(t, err)

	_, err = svc.CompleteOrder(ctx)
	require.Error(t, err)

	cart := svc.CurrentCart()
	require.NotNil(t, cart)
	require.Len(t, cart.Items, 1)
}

func TestRestoreDraft_CompletionKeepsNumber(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	svc.Session().Replace(&domain.Cart{
		OrderNumber: "775",
		Items:       []domain.LineItem{{ProductID: "p-espresso", Quantity: 1, Total: 3.5}},
	})
	draft, err := svc.SaveDraft(ctx)
	require.NoError(t, err)

	restored, err := svc.RestoreDraft(ctx, draft.ID)
	require.NoError(t, err)
	require.Equal(t, "775", restored.OrderNumber)
	require.True(t, restored.IsDraft)

	order, err := svc.CompleteOrder(ctx)
	require.NoError(t, err)
	// A restored draft keeps its number; the counter does not advance.
	require.Equal(t, "775", order.OrderNumber)
	require.Equal(t, draft.ID, order.ID)
	require.Equal(t, domain.StatusCompleted, order.Status)

	_, err = svc.AddToCart(ctx, domain.LineItem{Product: espresso(), Quantity: 1, Total: 3.5})
	require.NoError(t, err)
	fresh, err := svc.CompleteOrder(ctx)
	require.NoError(t, err)
	require.Equal(t, "100", fresh.OrderNumber)
}

func TestRestoreDraft_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.RestoreDraft(context.Background(), "missing")
	require.ErrorIs(t, err, ErrDraftNotFound)
}

func TestRestoreDraft_RejectsCompletedOrder(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	completed, err := repo.CreateOrder(ctx, &domain.Cart{
		Status: domain.StatusCompleted,
		Items:  []domain.LineItem{{ProductID: "p-espresso", Quantity: 1, Total: 3.5}},
	})
	require.NoError(t, err)

	_, err = svc.RestoreDraft(ctx, completed.ID)
	require.ErrorIs(t, err, ErrDraftNotFound)
}

func TestCompleteOrder_PublishesEvent(t *testing.T) {
	publisher := &capturingPublisher{}
	svc := NewService(salesmemory.NewRepository(), publisher, "100")
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, domain.LineItem{Product: espresso(), Quantity: 1, Total: 3.5})
	require.NoError(t, err)

	order, err := svc.CompleteOrder(ctx)
	require.NoError(t, err)
	require.Len(t, publisher.published, 1)
	require.Equal(t, order.ID, publisher.published[0].ID)
}

func TestCompleteCart_StripsImagesBeforePersist(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	product := espresso()
	product.Image = "data:image/png;base64,AAAA"
	_, err := svc.AddToCart(ctx, domain.LineItem{Product: product, Quantity: 1, Total: 3.5})
	require.NoError(t, err)

	order, err := svc.CompleteOrder(ctx)
	require.NoError(t, err)

	stored, err := repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Empty(t, stored.Items[0].Product.Image)
}

type failingCreateRepo struct {
	*salesmemory.Repository
}

func (r *failingCreateRepo) CreateOrder(context.Context, *domain.Cart) (*domain.Cart, error) {
	return nil, errors.New("storage unavailable")
}

type capturingPublisher struct {
	published []*domain.Cart
}

func (p *capturingPublisher) OrderCompleted(_ context.Context, order *domain.Cart) error {
	p.published = append(p.published, order.Clone())
	return nil
}
