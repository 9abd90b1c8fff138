package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/session"
)

type CheckoutHandler struct {
	Carts    *session.Registry[*cart.Store]
	Checkout *checkout.Service
}

type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// POST /v1/checkout
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var form checkout.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	store := h.Carts.For(c.Request.Context(), sessionID(c))
	order, err := h.Checkout.Submit(c.Request.Context(), store, form)

	var verr *checkout.ValidationError
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, order)
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Error: "invalid checkout form", Fields: verr.Fields})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not submit order"})
	}
}
