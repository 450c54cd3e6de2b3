package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openretail/pos-api-server/internal/domains/sales/adapters/http/mapper"
	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
	"github.com/openretail/pos-api-server/internal/domains/sales/ports"
	problems "github.com/openretail/pos-api-server/internal/shared/errors"
)

// OrdersAPI serves the cart and order endpoints. The repository is
// exposed alongside the service for the order-number sequence routes
// other registers consume in remote mode.
type OrdersAPI struct {
	service ports.Service
	repo    ports.Repository
}

// NewOrdersAPI wires the sales endpoints.
func NewOrdersAPI(service ports.Service, repo ports.Repository) *OrdersAPI {
	return &OrdersAPI{service: service, repo: repo}
}

// CurrentCart returns the working cart, null when no sale is in
// progress.
func (a *OrdersAPI) CurrentCart(c *gin.Context) {
	cart := a.service.CurrentCart()
	if cart == nil {
		respondOK(c, nil, "")
		return
	}
	respondOK(c, mapper.FromDomainOrder(cart), "")
}

// AddToCart merges a selection into the working cart.
func (a *OrdersAPI) AddToCart(c *gin.Context) {
	var item mapper.LineItem
	if err := c.ShouldBindJSON(&item); err != nil {
		responder.BadRequest(c, "invalid line item payload: "+err.Error())
		return
	}
	cart, err := a.service.AddToCart(c.Request.Context(), mapper.ToDomainLineItem(item))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromDomainOrder(cart), "item added")
}

// RemoveCartItem drops a line item from the working cart.
func (a *OrdersAPI) RemoveCartItem(c *gin.Context) {
	cart, err := a.service.RemoveItem(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromDomainOrder(cart), "item removed")
}

type quantityRequest struct {
	Delta int `json:"delta"`
}

// AdjustCartQuantity shifts a discrete line item's quantity.
func (a *OrdersAPI) AdjustCartQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responder.BadRequest(c, "invalid quantity payload: "+err.Error())
		return
	}
	cart, err := a.service.AdjustQuantity(c.Request.Context(), c.Param("productId"), req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromDomainOrder(cart), "quantity adjusted")
}

// ClearCart abandons the working cart.
func (a *OrdersAPI) ClearCart(c *gin.Context) {
	a.service.ClearCart()
	c.Status(http.StatusNoContent)
}

// SaveDraft persists the working cart as a draft order.
func (a *OrdersAPI) SaveDraft(c *gin.Context) {
	order, err := a.service.SaveDraft(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, mapper.FromDomainOrder(order), "draft saved")
}

// CompleteOrder finalizes the working cart as a completed order.
func (a *OrdersAPI) CompleteOrder(c *gin.Context) {
	order, err := a.service.CompleteOrder(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, mapper.FromDomainOrder(order), "order completed")
}

// RestoreDraft loads a draft back into the working cart.
func (a *OrdersAPI) RestoreDraft(c *gin.Context) {
	cart, err := a.service.RestoreDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromDomainOrder(cart), "draft restored")
}

// ListOrders returns order history matching the query filter.
func (a *OrdersAPI) ListOrders(c *gin.Context) {
	filter := mapper.FilterFromQuery(c.Request.URL.Query())
	page, err := a.service.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, mapper.FromDomainOrderList(page.Items), page.TotalCount)
}

// GetOrder fetches one persisted order.
func (a *OrdersAPI) GetOrder(c *gin.Context) {
	order, err := a.repo.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromDomainOrder(order), "")
}

// CreateOrder persists an order payload as-is. Used by registers running
// against this instance in remote mode.
func (a *OrdersAPI) CreateOrder(c *gin.Context) {
	var order mapper.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		responder.BadRequest(c, "invalid order payload: "+err.Error())
		return
	}
	created, err := a.repo.CreateOrder(c.Request.Context(), mapper.ToDomainOrder(order))
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, mapper.FromDomainOrder(created), "order created")
}

// UpdateOrder replaces a persisted order.
func (a *OrdersAPI) UpdateOrder(c *gin.Context) {
	var order mapper.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		responder.BadRequest(c, "invalid order payload: "+err.Error())
		return
	}
	updated, err := a.repo.UpdateOrder(c.Request.Context(), c.Param("id"), mapper.ToDomainOrder(order))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromDomainOrder(updated), "order updated")
}

// DeleteOrder removes a persisted order.
func (a *OrdersAPI) DeleteOrder(c *gin.Context) {
	if err := a.service.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil, "order deleted")
}

type sequencePayload struct {
	ID    string `json:"id,omitempty"`
	Value string `json:"value"`
}

// GetSequence returns the shared order-number counter.
func (a *OrdersAPI) GetSequence(c *gin.Context) {
	seq, err := a.repo.LoadSequence(c.Request.Context())
	if errors.Is(err, ports.ErrNotFound) {
		responder.Respond(c, problems.ErrNotFound.WithDetail("order sequence not initialized"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, sequencePayload{ID: seq.ID, Value: seq.Value}, "")
}

// PutSequence replaces the shared order-number counter.
func (a *OrdersAPI) PutSequence(c *gin.Context) {
	var payload sequencePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		responder.BadRequest(c, "invalid sequence payload: "+err.Error())
		return
	}
	saved, err := a.repo.SaveSequence(c.Request.Context(), &domain.OrderSequence{ID: payload.ID, Value: payload.Value})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, sequencePayload{ID: saved.ID, Value: saved.Value}, "sequence saved")
}

func parseIntDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
