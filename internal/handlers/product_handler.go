package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
	"storefront/internal/filter"
	"storefront/internal/models"
)

type ProductHandler struct {
	Catalog *catalog.Store
}

type ProductListResponse struct {
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Total    int              `json:"total"`
	Products []models.Product `json:"products"`
}

// GET /v1/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	cfg := filter.FromQuery(c.Request.URL.Query())
	products := filter.Apply(h.Catalog.Snapshot(), cfg)

	page, pageSize := getPaginationParams(c, len(products))
	c.JSON(http.StatusOK, ProductListResponse{
		Page:     page,
		PageSize: pageSize,
		Total:    len(products),
		Products: paginate(products, page, pageSize),
	})
}

// GET /v1/products/featured
func (h *ProductHandler) GetFeatured(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.GetFeatured())
}

// GET /v1/products/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.GetCategories())
}

// GET /v1/products/search?keyword=
func (h *ProductHandler) Search(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	c.JSON(http.StatusOK, h.Catalog.Search(ctx, c.Query("keyword")))
}

// GET /v1/categories/:category/products
func (h *ProductHandler) GetByCategory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	c.JSON(http.StatusOK, h.Catalog.ByCategory(ctx, c.Param("category")))
}

// GET /v1/products/:id
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	product, found := h.Catalog.GetProductByID(ctx, id)
	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// POST /v1/admin/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	c.JSON(http.StatusCreated, h.Catalog.CreateProduct(ctx, req))
}

// PUT /v1/admin/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	var update models.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if update.Empty() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no valid fields to update"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	product, found := h.Catalog.UpdateProduct(ctx, id, update)
	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// DELETE /v1/admin/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	if !h.Catalog.DeleteProduct(ctx, id) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "product deleted successfully"})
}

// getPaginationParams obtiene los parámetros de paginación. Sin page_size
// se retorna la lista completa en una sola página.
func getPaginationParams(c *gin.Context, total int) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if page < 1 {
		page = defaultPage
	}

	raw, ok := c.GetQuery("page_size")
	if !ok {
		return defaultPage, max(total, 1)
	}
	pageSize, _ = strconv.Atoi(raw)
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

func paginate(products []models.Product, page, pageSize int) []models.Product {
	// se compara antes de multiplicar para no desbordar con page enormes
	if page-1 > len(products)/pageSize {
		return []models.Product{}
	}
	start := (page - 1) * pageSize
	if start >= len(products) {
		return []models.Product{}
	}
	end := min(start+pageSize, len(products))
	return products[start:end]
}
