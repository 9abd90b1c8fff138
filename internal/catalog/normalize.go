package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storefront/internal/models"
)

// productResponse acepta las distintas formas en que el API devuelve un producto
type productResponse struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	Price               *float64        `json:"price"`
	Stock               *int            `json:"stock"`
	StockQuantity       *int            `json:"stockQuantity"`
	InStock             *bool           `json:"inStock"`
	CategoryID          *int64          `json:"categoryId"`
	CategoryName        string          `json:"categoryName"`
	Category            json.RawMessage `json:"category"`
	ImageFilename       *string         `json:"imageFilename"`
	ImageURL            *string         `json:"imageUrl"`
	IsOrganic           *bool           `json:"isOrganic"`
	Certifications      *string         `json:"certifications"`
	OriginCountry       *string         `json:"originCountry"`
	EcoRating           *int            `json:"ecoRating"`
	SustainabilityScore *int            `json:"sustainabilityScore"`
	CarbonFootprint     *float64        `json:"carbonFootprint"`
	Tags                []string        `json:"tags"`
	IsActive            *bool           `json:"isActive"`
	IsFeatured          *bool           `json:"isFeatured"`
	CreatedAt           string          `json:"createdAt"`
	UpdatedAt           string          `json:"updatedAt"`
}

// categoryObject es la forma anidada {id, name} que usan algunas versiones del API
type categoryObject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Normalizer convierte respuestas del API en models.Product
type Normalizer struct {
	// APIBase es la base para construir {APIBase}/images/{imageFilename}
	APIBase string
}

// FromResponse mapea una respuesta cruda aplicando valores por defecto
func (n Normalizer) FromResponse(r productResponse) models.Product {
	p := models.Product{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		CategoryName: r.CategoryName,
		Tags:         r.Tags,
		IsActive:     true,
		CreatedAt:    parseTime(r.CreatedAt),
		UpdatedAt:    parseTime(r.UpdatedAt),
	}

	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.CategoryID != nil {
		p.CategoryID = *r.CategoryID
	}
	n.applyCategory(&p, r.Category)

	switch {
	case r.Stock != nil:
		p.Stock = *r.Stock
	case r.StockQuantity != nil:
		p.Stock = *r.StockQuantity
	}
	hasStock := r.Stock != nil || r.StockQuantity != nil
	switch {
	case r.InStock != nil:
		p.InStock = *r.InStock
	case hasStock:
		p.InStock = p.Stock > 0
	}

	if r.ImageFilename != nil {
		p.ImageFilename = *r.ImageFilename
	}
	if r.ImageURL != nil {
		p.ImageURL = *r.ImageURL
	}
	if r.IsOrganic != nil {
		p.IsOrganic = *r.IsOrganic
	}
	if r.Certifications != nil {
		p.Certifications = *r.Certifications
	}
	if r.OriginCountry != nil {
		p.OriginCountry = *r.OriginCountry
	}
	if r.EcoRating != nil {
		p.EcoRating = *r.EcoRating
	}
	if r.SustainabilityScore != nil {
		p.SustainabilityScore = *r.SustainabilityScore
	}
	if r.CarbonFootprint != nil {
		p.CarbonFootprint = *r.CarbonFootprint
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	if r.IsFeatured != nil {
		p.IsFeatured = *r.IsFeatured
	}

	return n.Finalize(p)
}

// Finalize impone los invariantes de un producto listo para mostrarse
func (n Normalizer) Finalize(p models.Product) models.Product {
	if p.Price < 0 {
		p.Price = 0
	}
	if p.Stock < 0 {
		p.Stock = 0
	}

	// category y categoryName son alias
	switch {
	case p.CategoryName == "" && p.Category != "":
		p.CategoryName = p.Category
	case p.Category == "" && p.CategoryName != "":
		p.Category = p.CategoryName
	}

	if p.Tags == nil {
		p.Tags = []string{}
	}

	p.ImageURL = ImageURL(n.APIBase, p.ImageURL, p.ImageFilename, p.CategoryName)
	return p
}

func (n Normalizer) applyCategory(p *models.Product, raw json.RawMessage) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		p.Category = name
		return
	}

	var obj categoryObject
	if err := json.Unmarshal(raw, &obj); err == nil {
		p.Category = obj.Name
		if p.CategoryName == "" {
			p.CategoryName = obj.Name
		}
		if p.CategoryID == 0 {
			p.CategoryID = obj.ID
		}
	}
}

// decodeCollection acepta una colección directa o un sobre {content|data|products: [...]}
func decodeCollection(body []byte) ([]productResponse, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	if body[0] == '[' {
		var items []productResponse
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("decode product collection: %w", err)
		}
		return items, nil
	}

	var envelope struct {
		Content  []productResponse `json:"content"`
		Data     []productResponse `json:"data"`
		Products []productResponse `json:"products"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode product envelope: %w", err)
	}
	switch {
	case envelope.Content != nil:
		return envelope.Content, nil
	case envelope.Data != nil:
		return envelope.Data, nil
	default:
		return envelope.Products, nil
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// derivedImage indica si la imagen de p salió de la cadena de respaldo y no de una URL explícita
func (n Normalizer) derivedImage(p models.Product) bool {
	return p.ImageURL == ImageURL(n.APIBase, "", p.ImageFilename, p.CategoryName)
}
