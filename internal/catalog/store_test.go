package catalog

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

// stubAPI permite simular respuestas y fallos del API
type stubAPI struct {
	products  []models.Product
	listErr   error
	getErr    error
	searchErr error
	writeErr  error
	created   models.Product
	updated   models.Product

	// ids invalidados, en orden
	invalidated []int64
}

func (s *stubAPI) ListProducts(context.Context) ([]models.Product, error) {
	return s.products, s.listErr
}

func (s *stubAPI) GetProduct(_ context.Context, id int64) (models.Product, error) {
	if s.getErr != nil {
		return models.Product{}, s.getErr
	}
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

func (s *stubAPI) SearchProducts(context.Context, string) ([]models.Product, error) {
	return s.products[:1], s.searchErr
}

func (s *stubAPI) ProductsByCategory(context.Context, string) ([]models.Product, error) {
	return nil, s.searchErr
}

func (s *stubAPI) CreateProduct(context.Context, models.ProductRequest) (models.Product, error) {
	return s.created, s.writeErr
}

func (s *stubAPI) UpdateProduct(context.Context, int64, models.ProductUpdate) (models.Product, error) {
	return s.updated, s.writeErr
}

func (s *stubAPI) DeleteProduct(context.Context, int64) error {
	return s.writeErr
}

func (s *stubAPI) Invalidate(id int64) {
	s.invalidated = append(s.invalidated, id)
}

func sampleProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Bolsa de Tela Reciclada", Description: "bolsa", Price: 25.99, Stock: 4, CategoryName: "Accesorios"},
		{ID: 2, Name: "Maceta", Description: "plantas", Price: 15.5, CategoryName: "Jardinería"},
		{ID: 3, Name: "Cartera", Description: "cuero vegano", Price: 45, Stock: 1, CategoryName: "Accesorios"},
		{ID: 4, Name: "Camiseta", Description: "algodón", Price: 22.5, Stock: 2, CategoryName: "Ropa"},
	}
}

func quietLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.New(&buf, "", 0), &buf
}

func TestStoreLoadAndDerivedQueries(t *testing.T) {
	logger, _ := quietLogger()
	s := NewStore(Options{API: &stubAPI{products: sampleProducts()}, Logger: logger})

	var emitted [][]models.Product
	unsubscribe := s.Products().Subscribe(func(p []models.Product) { emitted = append(emitted, p) })
	defer unsubscribe()

	s.Load(context.Background())

	require.Len(t, emitted, 2)
	assert.Empty(t, emitted[0])
	assert.Len(t, emitted[1], 4)

	featured := s.GetFeatured()
	require.Len(t, featured, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{featured[0].ID, featured[1].ID, featured[2].ID})
	assert.Equal(t, []string{"Accesorios", "Jardinería", "Ropa"}, s.GetCategories())
}

func TestStoreLoadAsyncNotifiesSubscribers(t *testing.T) {
	logger, _ := quietLogger()
	s := NewStore(Options{API: &stubAPI{products: sampleProducts()}, Logger: logger})

	updates := make(chan int, 4)
	s.Products().Subscribe(func(p []models.Product) { updates <- len(p) })
	assert.Equal(t, 0, <-updates)

	done := s.LoadAsync(context.Background())
	select {
	case n := <-updates:
		assert.Equal(t, 4, n)
	case <-time.After(2 * time.Second):
		t.Fatal("no update after LoadAsync")
	}
	<-done
}

func TestStoreLoadFailureKeepsEmptyList(t *testing.T) {
	logger, buf := quietLogger()
	s := NewStore(Options{API: &stubAPI{listErr: ErrUnavailable}, Logger: logger})

	s.Load(context.Background())

	assert.Empty(t, s.Snapshot())
	assert.Empty(t, s.GetFeatured())
	assert.Contains(t, buf.String(), "Error loading products")
}

func TestStoreLoadFailureSeedsDemoCatalog(t *testing.T) {
	logger, _ := quietLogger()
	s := NewStore(Options{API: &stubAPI{listErr: ErrUnavailable}, SeedOnError: true, Logger: logger})

	s.Load(context.Background())

	products := s.Snapshot()
	require.Len(t, products, 6)
	assert.Equal(t, "Bolsa de Tela Reciclada", products[0].Name)
	assert.Equal(t, "Accesorios", products[0].Category)
	for _, p := range products {
		assert.NotEmpty(t, p.ImageURL)
		assert.NotNil(t, p.Tags)
	}
}

func TestStoreLoadFailureKeepsPreviousList(t *testing.T) {
	logger, _ := quietLogger()
	api := &stubAPI{products: sampleProducts()}
	s := NewStore(Options{API: api, Logger: logger})
	s.Load(context.Background())

	api.listErr = errors.New("boom")
	s.Load(context.Background())
	assert.Len(t, s.Snapshot(), 4)
}

func TestStoreGetProductByID(t *testing.T) {
	logger, _ := quietLogger()
	api := &stubAPI{products: sampleProducts()}
	s := NewStore(Options{API: api, Logger: logger})
	ctx := context.Background()

	p, ok := s.GetProductByID(ctx, 2)
	require.True(t, ok)
	assert.Equal(t, "Maceta", p.Name)

	_, ok = s.GetProductByID(ctx, 99)
	assert.False(t, ok)

	// Con el API caído se usa la lista local
	s.Load(ctx)
	api.getErr = ErrUnavailable
	p, ok = s.GetProductByID(ctx, 3)
	require.True(t, ok)
	assert.Equal(t, "Cartera", p.Name)
}

func TestStoreSearchFallsBackToLocalFilter(t *testing.T) {
	logger, _ := quietLogger()
	api := &stubAPI{products: sampleProducts()}
	s := NewStore(Options{API: api, Logger: logger})
	ctx := context.Background()
	s.Load(ctx)

	assert.Len(t, s.Search(ctx, "anything"), 1)

	api.searchErr = ErrUnavailable
	found := s.Search(ctx, "PLANTAS")
	require.Len(t, found, 1)
	assert.Equal(t, int64(2), found[0].ID)

	byCat := s.ByCategory(ctx, "Accesorios")
	assert.Len(t, byCat, 2)
}

func TestStoreCreateProductOptimistic(t *testing.T) {
	logger, _ := quietLogger()
	api := &stubAPI{created: models.Product{ID: 100, Name: "Cepillo", CategoryName: "Hogar", Tags: []string{}}}
	s := NewStore(Options{API: api, Logger: logger})
	s.now = func() time.Time { return time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	var sizes []int
	s.Products().Subscribe(func(p []models.Product) { sizes = append(sizes, len(p)) })

	created := s.CreateProduct(ctx, models.ProductRequest{Name: "Cepillo", Price: 4, Category: "Hogar"})
	assert.Equal(t, int64(100), created.ID)

	products := s.Snapshot()
	require.Len(t, products, 1)
	assert.Equal(t, int64(100), products[0].ID)
	// Inicial, optimista y reemplazo con la respuesta del API
	assert.Equal(t, []int{0, 1, 1}, sizes)
}

func TestStoreCreateProductKeepsLocalOnAPIFailure(t *testing.T) {
	logger, buf := quietLogger()
	api := &stubAPI{writeErr: ErrUnavailable}
	s := NewStore(Options{API: api, Logger: logger})
	now := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	created := s.CreateProduct(context.Background(), models.ProductRequest{Name: "Cepillo", Price: 4, Stock: 2, Category: "Muebles Ecológicos"})

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Muebles Ecológicos", created.CategoryName)
	assert.Equal(t, categoryPlaceholders["Muebles Ecológicos"], created.ImageURL)
	assert.True(t, created.InStock)
	assert.Len(t, s.Snapshot(), 1)
	assert.Contains(t, buf.String(), "keeping local copy")
}

func TestStoreUpdateProduct(t *testing.T) {
	logger, _ := quietLogger()
	api := &stubAPI{products: sampleProducts()}
	s := NewStore(Options{API: api, Logger: logger})
	ctx := context.Background()
	s.Load(ctx)

	price := 30.0
	api.updated = models.Product{ID: 1, Name: "Bolsa XL", Price: 30, Tags: []string{}}
	updated, ok := s.UpdateProduct(ctx, 1, models.ProductUpdate{Price: &price})
	require.True(t, ok)
	assert.Equal(t, "Bolsa XL", updated.Name)
	assert.Equal(t, "Bolsa XL", s.Snapshot()[0].Name)

	// Fallo del API: se mantiene la versión local
	api.writeErr = ErrUnavailable
	price = 10
	updated, ok = s.UpdateProduct(ctx, 2, models.ProductUpdate{Price: &price})
	require.True(t, ok)
	assert.Equal(t, 10.0, updated.Price)
	assert.Equal(t, 10.0, s.Snapshot()[1].Price)

	// Producto inexistente en local y en el API
	api.writeErr = ErrNotFound
	_, ok = s.UpdateProduct(ctx, 99, models.ProductUpdate{Price: &price})
	assert.False(t, ok)
}

func TestStoreDeleteProduct(t *testing.T) {
	logger, _ := quietLogger()
	api := &stubAPI{products: sampleProducts()}
	s := NewStore(Options{API: api, Logger: logger})
	ctx := context.Background()
	s.Load(ctx)

	assert.True(t, s.DeleteProduct(ctx, 2))
	assert.Len(t, s.Snapshot(), 3)

	api.writeErr = ErrUnavailable
	assert.True(t, s.DeleteProduct(ctx, 3))
	assert.Len(t, s.Snapshot(), 2)

	api.writeErr = ErrNotFound
	assert.False(t, s.DeleteProduct(ctx, 99))
	assert.Len(t, s.Snapshot(), 2)
}

func TestStoreWithoutAPIIsLocalOnly(t *testing.T) {
	s := NewStore(Options{})
	ctx := context.Background()
	s.Seed()

	_, ok := s.GetProductByID(ctx, 4)
	assert.True(t, ok)

	stock := 0
	updated, ok := s.UpdateProduct(ctx, 4, models.ProductUpdate{Stock: &stock})
	require.True(t, ok)
	assert.False(t, updated.InStock)

	assert.True(t, s.DeleteProduct(ctx, 4))
	assert.False(t, s.DeleteProduct(ctx, 4))
}

func TestStoreLocalIDsAreUnique(t *testing.T) {
	s := NewStore(Options{})
	s.now = func() time.Time { return time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	first := s.CreateProduct(ctx, models.ProductRequest{Name: "Cepillo", Category: "Hogar"})
	second := s.CreateProduct(ctx, models.ProductRequest{Name: "Jabón", Category: "Hogar"})
	require.NotEqual(t, first.ID, second.ID)

	assert.True(t, s.DeleteProduct(ctx, second.ID))
	products := s.Snapshot()
	require.Len(t, products, 1)
	assert.Equal(t, "Cepillo", products[0].Name)

	// Tras un catálogo cargado los ids locales siguen al mayor conocido
	s.Seed()
	third := s.CreateProduct(ctx, models.ProductRequest{Name: "Vela", Category: "Hogar"})
	assert.Equal(t, int64(7), third.ID)
}

func TestStoreServesUnconfirmedLocalChanges(t *testing.T) {
	logger, _ := quietLogger()
	// GetProduct responde siempre la versión vieja, como un caché sin invalidar
	api := &stubAPI{products: sampleProducts()}
	s := NewStore(Options{API: api, Logger: logger})
	ctx := context.Background()
	s.Load(ctx)

	api.writeErr = ErrUnavailable
	name := "Bolsa Nueva"
	_, ok := s.UpdateProduct(ctx, 1, models.ProductUpdate{Name: &name})
	require.True(t, ok)

	p, ok := s.GetProductByID(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, "Bolsa Nueva", p.Name)

	found := s.Search(ctx, "bolsa")
	require.Len(t, found, 1)
	assert.Equal(t, "Bolsa Nueva", found[0].Name)

	assert.True(t, s.DeleteProduct(ctx, 1))
	_, ok = s.GetProductByID(ctx, 1)
	assert.False(t, ok)
	assert.Empty(t, s.Search(ctx, "bolsa"))
	assert.Equal(t, []int64{1, 1}, api.invalidated)

	// Un catálogo nuevo del API vuelve a ser la fuente de verdad
	api.writeErr = nil
	s.Load(ctx)
	p, ok = s.GetProductByID(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, "Bolsa de Tela Reciclada", p.Name)
}

func TestStoreUpdateReResolvesDerivedImage(t *testing.T) {
	s := NewStore(Options{Normalizer: Normalizer{APIBase: "http://api"}})
	ctx := context.Background()

	created := s.CreateProduct(ctx, models.ProductRequest{Name: "Vela", Category: "Hogar Eco-Friendly"})
	assert.Equal(t, categoryPlaceholders["Hogar Eco-Friendly"], created.ImageURL)

	filename := "new.jpg"
	updated, ok := s.UpdateProduct(ctx, created.ID, models.ProductUpdate{ImageFilename: &filename})
	require.True(t, ok)
	assert.Equal(t, "http://api/images/new.jpg", updated.ImageURL)

	// Una URL explícita no se reemplaza
	explicit := s.CreateProduct(ctx, models.ProductRequest{Name: "Jarra", Category: "Hogar Eco-Friendly", ImageURL: "http://cdn/jarra.png"})
	updated, ok = s.UpdateProduct(ctx, explicit.ID, models.ProductUpdate{ImageFilename: &filename})
	require.True(t, ok)
	assert.Equal(t, "http://cdn/jarra.png", updated.ImageURL)
}
