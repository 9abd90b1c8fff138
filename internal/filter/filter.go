// Package filter deriva la lista visible de productos a partir del catálogo
// y de los filtros de la vista. No guarda estado ni modifica su entrada.
package filter

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"storefront/internal/models"
)

const (
	SortName      = "name"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"

	// AllCategories desactiva el filtro de categoría
	AllCategories = "all"
)

// DefaultLocale es el idioma de la tienda para ordenar por nombre
var DefaultLocale = language.Spanish

// Config son los filtros que mantiene la vista de productos
type Config struct {
	Search   string
	Category string
	MinPrice float64
	// MaxPrice <= 0 significa sin límite superior
	MaxPrice          float64
	ShowOnlyAvailable bool
	// MinEcoRating 0 desactiva el filtro
	MinEcoRating int
	SortBy       string
	// Locale vacío usa DefaultLocale
	Locale language.Tag
}

// Apply filtra y ordena products: categoría, texto, precio, disponibilidad,
// calificación ecológica y por último el orden estable.
func Apply(products []models.Product, cfg Config) []models.Product {
	out := slices.Clone(products)
	if out == nil {
		out = []models.Product{}
	}

	out = byCategory(out, cfg.Category)
	out = bySearch(out, cfg.Search)
	out = byPrice(out, cfg.MinPrice, cfg.MaxPrice)
	out = byAvailability(out, cfg.ShowOnlyAvailable)
	out = byEcoRating(out, cfg.MinEcoRating)

	sortProducts(out, cfg.SortBy, cfg.Locale)
	return out
}

func keep(products []models.Product, pred func(models.Product) bool) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

func byCategory(products []models.Product, category string) []models.Product {
	if category == "" || category == AllCategories {
		return products
	}
	return keep(products, func(p models.Product) bool {
		return p.CategoryName == category
	})
}

func bySearch(products []models.Product, search string) []models.Product {
	if search == "" {
		return products
	}
	fold := newFolder()
	needle := fold(search)
	return keep(products, func(p models.Product) bool {
		return strings.Contains(fold(p.Name), needle) ||
			strings.Contains(fold(p.Description), needle)
	})
}

func byPrice(products []models.Product, minPrice, maxPrice float64) []models.Product {
	return keep(products, func(p models.Product) bool {
		if p.Price < minPrice {
			return false
		}
		return maxPrice <= 0 || p.Price <= maxPrice
	})
}

func byAvailability(products []models.Product, onlyAvailable bool) []models.Product {
	if !onlyAvailable {
		return products
	}
	return keep(products, func(p models.Product) bool {
		return p.Stock > 0
	})
}

func byEcoRating(products []models.Product, minRating int) []models.Product {
	if minRating <= 0 {
		return products
	}
	return keep(products, func(p models.Product) bool {
		return p.EcoRating >= minRating
	})
}

func sortProducts(products []models.Product, sortBy string, locale language.Tag) {
	switch sortBy {
	case SortPriceLow:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortPriceHigh:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	default:
		if locale == language.Und {
			locale = DefaultLocale
		}
		// collate.Collator no es seguro entre goroutines: uno por llamada
		col := collate.New(locale)
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return col.CompareString(a.Name, b.Name)
		})
	}
}
