package models

import (
	"time"
)

// Product representa un producto del catálogo ya normalizado
type Product struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Price               float64   `json:"price"`
	Stock               int       `json:"stock"`
	InStock             bool      `json:"inStock"`
	CategoryID          int64     `json:"categoryId"`
	CategoryName        string    `json:"categoryName"`
	Category            string    `json:"category"`
	ImageFilename       string    `json:"imageFilename,omitempty"`
	ImageURL            string    `json:"imageUrl"`
	IsOrganic           bool      `json:"isOrganic"`
	Certifications      string    `json:"certifications,omitempty"`
	OriginCountry       string    `json:"originCountry,omitempty"`
	EcoRating           int       `json:"ecoRating"`
	SustainabilityScore int       `json:"sustainabilityScore"`
	CarbonFootprint     float64   `json:"carbonFootprint"`
	Tags                []string  `json:"tags"`
	IsActive            bool      `json:"isActive"`
	IsFeatured          bool      `json:"isFeatured"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// ProductRequest es el cuerpo que se envía al API de productos en POST/PUT
type ProductRequest struct {
	Name                string   `json:"name" binding:"required"`
	Description         string   `json:"description"`
	Price               float64  `json:"price" binding:"gte=0"`
	Stock               int      `json:"stock" binding:"gte=0"`
	CategoryID          int64    `json:"categoryId,omitempty"`
	Category            string   `json:"category" binding:"required"`
	ImageURL            string   `json:"imageUrl,omitempty"`
	ImageFilename       string   `json:"imageFilename,omitempty"`
	IsOrganic           bool     `json:"isOrganic"`
	Certifications      string   `json:"certifications,omitempty"`
	OriginCountry       string   `json:"originCountry,omitempty"`
	EcoRating           int      `json:"ecoRating" binding:"gte=0,lte=5"`
	SustainabilityScore int      `json:"sustainabilityScore" binding:"gte=0,lte=100"`
	CarbonFootprint     float64  `json:"carbonFootprint" binding:"gte=0"`
	Tags                []string `json:"tags,omitempty"`
	InStock             *bool    `json:"inStock,omitempty"`
}

// ToProduct construye el producto local que se usa para la mutación optimista
func (r ProductRequest) ToProduct() Product {
	p := Product{
		Name:                r.Name,
		Description:         r.Description,
		Price:               r.Price,
		Stock:               r.Stock,
		CategoryID:          r.CategoryID,
		CategoryName:        r.Category,
		Category:            r.Category,
		ImageURL:            r.ImageURL,
		ImageFilename:       r.ImageFilename,
		IsOrganic:           r.IsOrganic,
		Certifications:      r.Certifications,
		OriginCountry:       r.OriginCountry,
		EcoRating:           r.EcoRating,
		SustainabilityScore: r.SustainabilityScore,
		CarbonFootprint:     r.CarbonFootprint,
		Tags:                append([]string{}, r.Tags...),
		IsActive:            true,
		InStock:             r.Stock > 0,
	}
	if r.InStock != nil {
		p.InStock = *r.InStock
	}
	return p
}

// ProductUpdate representa los campos actualizables de un producto
type ProductUpdate struct {
	Name                *string  `json:"name,omitempty"`
	Description         *string  `json:"description,omitempty"`
	Price               *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	Stock               *int     `json:"stock,omitempty" binding:"omitempty,gte=0"`
	Category            *string  `json:"category,omitempty"`
	ImageURL            *string  `json:"imageUrl,omitempty"`
	ImageFilename       *string  `json:"imageFilename,omitempty"`
	IsOrganic           *bool    `json:"isOrganic,omitempty"`
	EcoRating           *int     `json:"ecoRating,omitempty" binding:"omitempty,gte=0,lte=5"`
	SustainabilityScore *int     `json:"sustainabilityScore,omitempty" binding:"omitempty,gte=0,lte=100"`
	CarbonFootprint     *float64 `json:"carbonFootprint,omitempty" binding:"omitempty,gte=0"`
	Tags                []string `json:"tags,omitempty"`
	InStock             *bool    `json:"inStock,omitempty"`
}

// Empty indica si la actualización no trae ningún campo
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil && u.Stock == nil &&
		u.Category == nil && u.ImageURL == nil && u.ImageFilename == nil && u.IsOrganic == nil &&
		u.EcoRating == nil && u.SustainabilityScore == nil && u.CarbonFootprint == nil &&
		u.Tags == nil && u.InStock == nil
}

// Apply devuelve una copia de p con los campos presentes en u
func (u ProductUpdate) Apply(p Product) Product {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
		p.InStock = p.Stock > 0
	}
	if u.Category != nil {
		p.Category = *u.Category
		p.CategoryName = *u.Category
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
	if u.ImageFilename != nil {
		p.ImageFilename = *u.ImageFilename
	}
	if u.IsOrganic != nil {
		p.IsOrganic = *u.IsOrganic
	}
	if u.EcoRating != nil {
		p.EcoRating = *u.EcoRating
	}
	if u.SustainabilityScore != nil {
		p.SustainabilityScore = *u.SustainabilityScore
	}
	if u.CarbonFootprint != nil {
		p.CarbonFootprint = *u.CarbonFootprint
	}
	if u.Tags != nil {
		p.Tags = append([]string{}, u.Tags...)
	}
	if u.InStock != nil {
		p.InStock = *u.InStock
	}
	return p
}
