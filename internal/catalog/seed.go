package catalog

import (
	"time"

	"storefront/internal/models"
)

var seedTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// seedProducts retorna el catálogo de demostración ya normalizado
func (s *Store) seedProducts() []models.Product {
	products := make([]models.Product, 0, len(demoProducts))
	for _, p := range demoProducts {
		p.Tags = append([]string{}, p.Tags...)
		p.IsActive = true
		p.InStock = p.Stock > 0
		p.CreatedAt = seedTime
		p.UpdatedAt = seedTime
		products = append(products, s.normalizer.Finalize(p))
	}
	return products
}

var demoProducts = []models.Product{
	{
		ID:                  1,
		Name:                "Bolsa de Tela Reciclada",
		Description:         "Bolsa resistente hecha de materiales reciclados, perfecta para compras ecológicas.",
		Price:               25.99,
		Stock:               40,
		CategoryName:        "Accesorios",
		ImageURL:            "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400&h=300&fit=crop",
		EcoRating:           5,
		SustainabilityScore: 95,
		CarbonFootprint:     2.5,
		Tags:                []string{"reciclado", "bolsa", "ecológico"},
	},
	{
		ID:                  2,
		Name:                "Maceta de Plástico Reciclado",
		Description:         "Maceta biodegradable para tus plantas, hecha 100% de plástico reciclado.",
		Price:               15.50,
		Stock:               25,
		CategoryName:        "Jardinería",
		ImageURL:            "https://images.unsplash.com/photo-1416879595882-3373a0480b5b?w=400&h=300&fit=crop",
		EcoRating:           4,
		SustainabilityScore: 88,
		CarbonFootprint:     1.8,
		Tags:                []string{"plástico reciclado", "maceta", "biodegradable"},
	},
	{
		ID:                  3,
		Name:                "Cartera de Cuero Vegano",
		Description:         "Cartera elegante hecha de cuero vegano, sostenible y duradera.",
		Price:               45.00,
		Stock:               12,
		CategoryName:        "Accesorios",
		ImageURL:            "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400&h=300&fit=crop",
		EcoRating:           5,
		SustainabilityScore: 92,
		CarbonFootprint:     3.2,
		Tags:                []string{"cuero vegano", "cartera", "sostenible"},
	},
	{
		ID:                  4,
		Name:                "Botella de Agua Reutilizable",
		Description:         "Botella de acero inoxidable, mantiene el agua fría por horas.",
		Price:               18.99,
		Stock:               60,
		CategoryName:        "Lifestyle",
		ImageURL:            "https://images.unsplash.com/photo-1523362628745-0c100150b504?w=400&h=300&fit=crop",
		EcoRating:           4,
		SustainabilityScore: 90,
		CarbonFootprint:     1.5,
		Tags:                []string{"acero inoxidable", "botella", "reutilizable"},
	},
	{
		ID:                  5,
		Name:                "Juguete de Madera Reciclada",
		Description:         "Juguete educativo para niños, hecho de madera reciclada.",
		Price:               12.99,
		Stock:               0,
		CategoryName:        "Niños",
		ImageURL:            "https://images.unsplash.com/photo-1558877385-1199c1af40a0?w=400&h=300&fit=crop",
		EcoRating:           4,
		SustainabilityScore: 85,
		CarbonFootprint:     2.0,
		Tags:                []string{"madera reciclada", "juguete", "educativo"},
	},
	{
		ID:                  6,
		Name:                "Camiseta Orgánica",
		Description:         "Camiseta cómoda hecha de algodón orgánico certificado.",
		Price:               22.50,
		Stock:               30,
		CategoryName:        "Ropa",
		ImageURL:            "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400&h=300&fit=crop",
		IsOrganic:           true,
		Certifications:      "GOTS",
		EcoRating:           5,
		SustainabilityScore: 93,
		CarbonFootprint:     2.8,
		Tags:                []string{"algodón orgánico", "camiseta", "certificado"},
	},
}
