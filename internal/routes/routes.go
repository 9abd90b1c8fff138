package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/handlers"
	"storefront/internal/review"
	"storefront/internal/session"
)

// Deps son los stores que atienden las rutas
type Deps struct {
	Catalog  *catalog.Store
	Reviews  *review.Store
	Carts    *session.Registry[*cart.Store]
	Sessions *session.Registry[*session.Auth]
	Checkout *checkout.Service
}

func RegisterRoutes(router *gin.Engine, deps Deps) {
	products := &handlers.ProductHandler{Catalog: deps.Catalog}
	reviews := &handlers.ReviewHandler{Reviews: deps.Reviews}
	carts := &handlers.CartHandler{Carts: deps.Carts, Catalog: deps.Catalog}
	orders := &handlers.CheckoutHandler{Carts: deps.Carts, Checkout: deps.Checkout}
	sessions := &handlers.SessionHandler{Sessions: deps.Sessions}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		v1.GET("/products", products.GetProducts)
		v1.GET("/products/featured", products.GetFeatured)
		v1.GET("/products/categories", products.GetCategories)
		v1.GET("/products/search", products.Search)
		v1.GET("/products/:id", products.GetProductByID)
		v1.GET("/categories/:category/products", products.GetByCategory)

		v1.GET("/products/:id/reviews", reviews.GetProductReviews)
		v1.POST("/products/:id/reviews", reviews.AddReview)
		v1.POST("/reviews/:id/helpful", reviews.MarkHelpful)

		admin := v1.Group("/admin")
		admin.POST("/products", products.CreateProduct)
		admin.PUT("/products/:id", products.UpdateProduct)
		admin.DELETE("/products/:id", products.DeleteProduct)
	}

	withSession := v1.Group("", handlers.SessionID())
	{
		withSession.GET("/cart", carts.GetCart)
		withSession.GET("/cart/stream", carts.Stream)
		withSession.POST("/cart/items", carts.AddItem)
		withSession.PATCH("/cart/items/:productId", carts.UpdateItem)
		withSession.DELETE("/cart/items/:productId", carts.RemoveItem)
		withSession.DELETE("/cart", carts.ClearCart)

		withSession.POST("/checkout", orders.Submit)

		withSession.POST("/session", sessions.Login)
		withSession.GET("/session", sessions.GetSession)
		withSession.DELETE("/session", sessions.Logout)
	}
}
