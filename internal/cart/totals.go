package cart

import (
	"slices"

	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

// Total suma precio por cantidad en decimal y redondea a centavos
func Total(items []models.CartLineItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Product.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}
	return sum.Round(2).InexactFloat64()
}

// Count suma las cantidades de todas las líneas
func Count(items []models.CartLineItem) int {
	count := 0
	for _, item := range items {
		count = addQuantity(count, item.Quantity)
	}
	return count
}

// Snapshot arma la vista derivada de items
func Snapshot(items []models.CartLineItem) models.CartSnapshot {
	return models.CartSnapshot{
		Items: slices.Clone(items),
		Total: Total(items),
		Count: Count(items),
	}
}
