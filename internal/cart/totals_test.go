package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/models"
)

func TestSnapshotOfEmptyCart(t *testing.T) {
	snap := Snapshot([]models.CartLineItem{})
	assert.NotNil(t, snap.Items)
	assert.Equal(t, 0.0, snap.Total)
	assert.Equal(t, 0, snap.Count)
}

func TestTotalRoundsToCents(t *testing.T) {
	items := []models.CartLineItem{
		{Product: models.Product{ID: 1, Price: 19.999}, Quantity: 1},
		{Product: models.Product{ID: 2, Price: 0.005}, Quantity: 1},
	}
	assert.Equal(t, 20.0, Total(items))
}
