package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Handlers bundles the per-context APIs the router exposes.
type Handlers struct {
	Orders   *OrdersAPI
	Products *ProductsAPI
	Users    *UsersAPI
	Settings *SettingsAPI
}

// NewRouter builds the gin engine with tracing middleware and all routes.
func NewRouter(serviceName string, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	if h.Orders != nil {
		cart := api.Group("/cart")
		cart.GET("", h.Orders.CurrentCart)
		cart.DELETE("", h.Orders.ClearCart)
		cart.POST("/items", h.Orders.AddToCart)
		cart.DELETE("/items/:productId", h.Orders.RemoveCartItem)
		cart.PATCH("/items/:productId/quantity", h.Orders.AdjustCartQuantity)
		cart.POST("/draft", h.Orders.SaveDraft)
		cart.POST("/complete", h.Orders.CompleteOrder)

		orders := api.Group("/orders")
		orders.GET("", h.Orders.ListOrders)
		orders.POST("", h.Orders.CreateOrder)
		orders.GET("/sequence", h.Orders.GetSequence)
		orders.PUT("/sequence", h.Orders.PutSequence)
		orders.GET("/:id", h.Orders.GetOrder)
		orders.PATCH("/:id", h.Orders.UpdateOrder)
		orders.DELETE("/:id", h.Orders.DeleteOrder)
		orders.POST("/:id/restore", h.Orders.RestoreDraft)
	}

	if h.Products != nil {
		products := api.Group("/products")
		products.GET("", h.Products.ListProducts)
		products.POST("", h.Products.CreateProduct)
		products.GET("/:id", h.Products.GetProduct)
		products.PATCH("/:id", h.Products.UpdateProduct)
		products.DELETE("/:id", h.Products.DeleteProduct)
	}

	if h.Users != nil {
		users := api.Group("/users")
		users.GET("", h.Users.ListUsers)
		users.POST("", h.Users.CreateUser)
		users.POST("/login", h.Users.Login)
		users.GET("/:username", h.Users.GetUser)
		users.PATCH("/:username", h.Users.UpdateUser)
		users.DELETE("/:username", h.Users.DeleteUser)
		users.POST("/:username/logout", h.Users.Logout)
	}

	if h.Settings != nil {
		settings := api.Group("/settings")
		settings.GET("/theme", h.Settings.GetTheme)
		settings.PUT("/theme", h.Settings.UpdateTheme)
		settings.GET("/profile", h.Settings.GetProfile)
		settings.PUT("/profile", h.Settings.UpdateProfile)
		settings.GET("/currency", h.Settings.GetCurrency)
	}

	return router
}
