package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"storefront/internal/cache"
	"storefront/internal/models"
)

const (
	defaultTimeout = 5 * time.Second
	queryTimeout   = 10 * time.Second
	pageSize       = "100"
	maxBodyBytes   = 8 << 20
)

// Client consume el API REST de productos
type Client struct {
	baseURL    string
	httpClient *http.Client
	normalizer Normalizer
	products   *cache.Cache[models.Product]
	lists      *cache.Cache[[]models.Product]
}

// NewClient crea el cliente. Los cachés son opcionales.
func NewClient(baseURL string, httpClient *http.Client, products *cache.Cache[models.Product], lists *cache.Cache[[]models.Product]) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: queryTimeout}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		normalizer: Normalizer{APIBase: baseURL},
		products:   products,
		lists:      lists,
	}
}

// Normalizer retorna el normalizador configurado con la base del API
func (c *Client) Normalizer() Normalizer {
	return c.normalizer
}

// ListProducts obtiene el catálogo completo (GET /products?size=100).
// Un catálogo nuevo vacía los cachés de detalle y de listados.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	q := url.Values{"size": {pageSize}}
	products, err := c.getCollection(ctx, "/products", q, "")
	if err != nil {
		return nil, err
	}
	if c.products != nil {
		c.products.Clear()
	}
	if c.lists != nil {
		c.lists.Clear()
	}
	return products, nil
}

// SearchProducts busca por palabra clave (GET /products/search?keyword=...)
func (c *Client) SearchProducts(ctx context.Context, keyword string) ([]models.Product, error) {
	q := url.Values{"keyword": {keyword}}
	return c.getCollection(ctx, "/products/search", q, "products:search:"+keyword)
}

// ProductsByCategory filtra por categoría en el API (GET /products?category=...)
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	q := url.Values{"category": {category}, "size": {pageSize}}
	return c.getCollection(ctx, "/products", q, "products:category:"+category)
}

// GetProduct obtiene un producto por ID (con caché)
func (c *Client) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	cacheKey := productKey(id)
	if c.products != nil {
		if p, found := c.products.Get(cacheKey); found {
			return p, nil
		}
	}

	var resp productResponse
	if err := c.do(ctx, http.MethodGet, "/products/"+strconv.FormatInt(id, 10), nil, nil, &resp); err != nil {
		return models.Product{}, err
	}

	p := c.normalizer.FromResponse(resp)
	if c.products != nil {
		c.products.Set(cacheKey, p)
	}
	return p, nil
}

// CreateProduct crea un producto (POST /products)
func (c *Client) CreateProduct(ctx context.Context, req models.ProductRequest) (models.Product, error) {
	var resp productResponse
	if err := c.do(ctx, http.MethodPost, "/products", nil, req, &resp); err != nil {
		return models.Product{}, err
	}
	c.Invalidate(0)
	return c.normalizer.FromResponse(resp), nil
}

// UpdateProduct actualiza un producto (PUT /products/{id})
func (c *Client) UpdateProduct(ctx context.Context, id int64, update models.ProductUpdate) (models.Product, error) {
	var resp productResponse
	if err := c.do(ctx, http.MethodPut, "/products/"+strconv.FormatInt(id, 10), nil, update, &resp); err != nil {
		return models.Product{}, err
	}
	c.Invalidate(id)
	return c.normalizer.FromResponse(resp), nil
}

// DeleteProduct elimina un producto (DELETE /products/{id})
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, "/products/"+strconv.FormatInt(id, 10), nil, nil, nil); err != nil {
		return err
	}
	c.Invalidate(id)
	return nil
}

func (c *Client) getCollection(ctx context.Context, path string, q url.Values, cacheKey string) ([]models.Product, error) {
	if cacheKey != "" && c.lists != nil {
		if cached, found := c.lists.Get(cacheKey); found {
			return cached, nil
		}
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, q, nil, &raw); err != nil {
		return nil, err
	}

	items, err := decodeCollection(raw)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(items))
	for _, item := range items {
		products = append(products, c.normalizer.FromResponse(item))
	}

	if cacheKey != "" && c.lists != nil {
		c.lists.Set(cacheKey, products)
	}
	return products, nil
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	timeout := defaultTimeout
	if method == http.MethodGet {
		timeout = queryTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s %s: status %d", ErrUnavailable, method, path, resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Invalidate descarta el detalle cacheado de id (0 = ninguno) y todos los listados
func (c *Client) Invalidate(id int64) {
	if c.products != nil && id != 0 {
		c.products.Delete(productKey(id))
	}
	if c.lists != nil {
		c.lists.DeleteByPrefix("products:")
	}
}

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}
