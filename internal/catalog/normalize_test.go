package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeOne(t *testing.T, body string) productResponse {
	t.Helper()
	var r productResponse
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	return r
}

func TestFromResponseImageFallbackChain(t *testing.T) {
	n := Normalizer{APIBase: "http://api.test/ecomarket/api"}

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "explicit url wins",
			body: `{"id":1,"imageUrl":"https://cdn.test/a.jpg","imageFilename":"a.jpg","categoryName":"Hogar Eco-Friendly"}`,
			want: "https://cdn.test/a.jpg",
		},
		{
			name: "filename derived url",
			body: `{"id":1,"imageUrl":null,"imageFilename":"a.jpg"}`,
			want: "http://api.test/ecomarket/api/images/a.jpg",
		},
		{
			name: "category placeholder",
			body: `{"id":1,"categoryName":"Muebles Ecológicos"}`,
			want: categoryPlaceholders["Muebles Ecológicos"],
		},
		{
			name: "generic placeholder",
			body: `{"id":1,"categoryName":"Desconocida"}`,
			want: GenericPlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := n.FromResponse(decodeOne(t, tt.body))
			assert.Equal(t, tt.want, p.ImageURL)
		})
	}
}

func TestFromResponseStockAndAvailability(t *testing.T) {
	n := Normalizer{}

	p := n.FromResponse(decodeOne(t, `{"id":1,"stock":3}`))
	assert.Equal(t, 3, p.Stock)
	assert.True(t, p.InStock)

	p = n.FromResponse(decodeOne(t, `{"id":1,"stock":0}`))
	assert.False(t, p.InStock)

	p = n.FromResponse(decodeOne(t, `{"id":1,"stockQuantity":7}`))
	assert.Equal(t, 7, p.Stock)
	assert.True(t, p.InStock)

	// El flag explícito tiene prioridad sobre el stock
	p = n.FromResponse(decodeOne(t, `{"id":1,"stock":0,"inStock":true}`))
	assert.True(t, p.InStock)
	p = n.FromResponse(decodeOne(t, `{"id":1,"stock":5,"inStock":false}`))
	assert.False(t, p.InStock)

	p = n.FromResponse(decodeOne(t, `{"id":1,"stock":-4,"price":-1}`))
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, 0.0, p.Price)
}

func TestFromResponseCategoryAliases(t *testing.T) {
	n := Normalizer{}

	p := n.FromResponse(decodeOne(t, `{"id":1,"categoryName":"Ropa"}`))
	assert.Equal(t, "Ropa", p.Category)
	assert.Equal(t, "Ropa", p.CategoryName)

	p = n.FromResponse(decodeOne(t, `{"id":1,"category":"Accesorios"}`))
	assert.Equal(t, "Accesorios", p.Category)
	assert.Equal(t, "Accesorios", p.CategoryName)

	p = n.FromResponse(decodeOne(t, `{"id":1,"category":{"id":9,"name":"Hogar"}}`))
	assert.Equal(t, "Hogar", p.CategoryName)
	assert.Equal(t, int64(9), p.CategoryID)
}

func TestFromResponseEnrichmentDefaults(t *testing.T) {
	p := Normalizer{}.FromResponse(decodeOne(t, `{"id":1,"name":"Maceta","price":15.5}`))

	assert.Equal(t, 0, p.EcoRating)
	assert.Equal(t, 0, p.SustainabilityScore)
	assert.Equal(t, 0.0, p.CarbonFootprint)
	assert.NotNil(t, p.Tags)
	assert.Empty(t, p.Tags)
	assert.True(t, p.IsActive)
	assert.NotEmpty(t, p.ImageURL)
}

func TestFromResponseTimestamps(t *testing.T) {
	p := Normalizer{}.FromResponse(decodeOne(t, `{"id":1,"createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-11-05T10:30:00"}`))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), p.CreatedAt)
	assert.Equal(t, time.Date(2024, 11, 5, 10, 30, 0, 0, time.UTC), p.UpdatedAt)

	p = Normalizer{}.FromResponse(decodeOne(t, `{"id":1,"createdAt":"yesterday"}`))
	assert.True(t, p.CreatedAt.IsZero())
}

func TestDecodeCollectionShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "bare array", body: `[{"id":1},{"id":2}]`, want: 2},
		{name: "content envelope", body: `{"content":[{"id":1}],"totalElements":1}`, want: 1},
		{name: "data envelope", body: `{"data":[{"id":1},{"id":2},{"id":3}]}`, want: 3},
		{name: "empty body", body: ``, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := decodeCollection([]byte(tt.body))
			require.NoError(t, err)
			assert.Len(t, items, tt.want)
		})
	}

	_, err := decodeCollection([]byte(`{"content":`))
	assert.Error(t, err)
}
