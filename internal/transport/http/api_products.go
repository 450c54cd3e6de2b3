package http

import (
	"github.com/gin-gonic/gin"

	"github.com/openretail/pos-api-server/internal/domains/catalog/adapters/http/mapper"
	"github.com/openretail/pos-api-server/internal/domains/catalog/ports"
)

// ProductsAPI serves the catalog endpoints.
type ProductsAPI struct {
	service ports.Service
}

// NewProductsAPI wires the catalog endpoints.
func NewProductsAPI(service ports.Service) *ProductsAPI {
	return &ProductsAPI{service: service}
}

// ListProducts returns a page of products matching the query filter.
func (a *ProductsAPI) ListProducts(c *gin.Context) {
	filter := ports.Filter{
		NamePrefix:    c.Query("name"),
		Category:      c.Query("category"),
		AvailableOnly: c.Query("availableOnly") == "true",
		Page:          parseIntDefault(c.Query("pageNumber"), 1),
		PageSize:      parseIntDefault(c.Query("pageSize"), 0),
	}
	page, err := a.service.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	list := mapper.FromDomainPage(page)
	respondList(c, list.Items, list.TotalCount)
}

// GetProduct fetches one product.
func (a *ProductsAPI) GetProduct(c *gin.Context) {
	product, err := a.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromDomain(product), "")
}

// CreateProduct stores a new product.
func (a *ProductsAPI) CreateProduct(c *gin.Context) {
	var payload mapper.Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		responder.BadRequest(c, "invalid product payload: "+err.Error())
		return
	}
	created, err := a.service.CreateProduct(c.Request.Context(), mapper.ToDomain(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, mapper.FromDomain(created), "product created")
}

// UpdateProduct replaces an existing product.
func (a *ProductsAPI) UpdateProduct(c *gin.Context) {
	var payload mapper.Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		responder.BadRequest(c, "invalid product payload: "+err.Error())
		return
	}
	product := mapper.ToDomain(payload)
	product.ID = c.Param("id")
	updated, err := a.service.UpdateProduct(c.Request.Context(), product)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, mapper.FromDomain(updated), "product updated")
}

// DeleteProduct removes a product.
func (a *ProductsAPI) DeleteProduct(c *gin.Context) {
	if err := a.service.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil, "product deleted")
}
