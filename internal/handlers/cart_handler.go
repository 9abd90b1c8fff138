package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/session"
)

type CartHandler struct {
	Carts   *session.Registry[*cart.Store]
	Catalog *catalog.Store
}

// MaxLineQuantity es la cantidad máxima aceptada por pedido a una línea
const MaxLineQuantity = 9999

type addItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  *int  `json:"quantity" binding:"omitempty,max=9999"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,max=9999"`
}

func (h *CartHandler) sessionCart(c *gin.Context) *cart.Store {
	return h.Carts.For(c.Request.Context(), sessionID(c))
}

// GET /v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessionCart(c).Snapshot())
}

// POST /v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	product, found := h.Catalog.GetProductByID(ctx, req.ProductID)
	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}

	store := h.sessionCart(c)
	store.AddToCart(ctx, product, quantity)
	c.JSON(http.StatusOK, store.Snapshot())
}

// PATCH /v1/cart/items/:productId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	productID, ok := parseID(c.Param("productId"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	store := h.sessionCart(c)
	store.UpdateQuantity(c.Request.Context(), productID, *req.Quantity)
	c.JSON(http.StatusOK, store.Snapshot())
}

// DELETE /v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, ok := parseID(c.Param("productId"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	store := h.sessionCart(c)
	store.RemoveFromCart(c.Request.Context(), productID)
	c.JSON(http.StatusOK, store.Snapshot())
}

// DELETE /v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	store := h.sessionCart(c)
	store.ClearCart(c.Request.Context())
	c.JSON(http.StatusOK, store.Snapshot())
}

// GET /v1/cart/stream
// Envía el estado actual y luego cada cambio como evento SSE "cart".
// Si el cliente es lento solo recibe el último estado.
func (h *CartHandler) Stream(c *gin.Context) {
	updates := make(chan models.CartSnapshot, 1)
	unsubscribe := h.sessionCart(c).Snapshots().Subscribe(func(s models.CartSnapshot) {
		select {
		case <-updates:
		default:
		}
		updates <- s
	})
	defer unsubscribe()

	done := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-done:
			return false
		case snap := <-updates:
			c.SSEvent("cart", snap)
			return true
		}
	})
}
