package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
	"storefront/internal/review"
)

type ReviewHandler struct {
	Reviews *review.Store
}

// GET /v1/products/:id/reviews
func (h *ReviewHandler) GetProductReviews(c *gin.Context) {
	productID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}
	c.JSON(http.StatusOK, h.Reviews.Summary(c.Request.Context(), productID))
}

// POST /v1/products/:id/reviews
func (h *ReviewHandler) AddReview(c *gin.Context) {
	productID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	var in models.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, h.Reviews.AddReview(c.Request.Context(), productID, in))
}

// POST /v1/reviews/:id/helpful
func (h *ReviewHandler) MarkHelpful(c *gin.Context) {
	reviewID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid review ID"})
		return
	}

	r, found := h.Reviews.MarkHelpful(c.Request.Context(), reviewID)
	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "review not found"})
		return
	}
	c.JSON(http.StatusOK, r)
}
