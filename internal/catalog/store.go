package catalog

import (
	"context"
	"errors"
	"log"
	"slices"
	"sync"
	"time"

	"storefront/internal/filter"
	"storefront/internal/models"
	"storefront/internal/reactive"
)

// API es lo que el Store necesita del API de productos
type API interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (models.Product, error)
	SearchProducts(ctx context.Context, keyword string) ([]models.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
	CreateProduct(ctx context.Context, req models.ProductRequest) (models.Product, error)
	UpdateProduct(ctx context.Context, id int64, update models.ProductUpdate) (models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	// Invalidate descarta lo cacheado para id (0 = solo listados)
	Invalidate(id int64)
}

// Options configura el Store del catálogo
type Options struct {
	// API puede ser nil: el catálogo funciona solo en local
	API        API
	Normalizer Normalizer
	// SeedOnError carga los productos de demostración si la primera carga falla
	SeedOnError bool
	Logger      *log.Logger
}

// Store guarda la última lista de productos y la publica a los suscriptores
type Store struct {
	mu          sync.Mutex
	api         API
	normalizer  Normalizer
	seedOnError bool
	products    *reactive.Subject[[]models.Product]
	logger      *log.Logger
	now         func() time.Time

	// ids con cambios locales que el API aún no confirmó
	pending map[int64]struct{}
	lastID  int64
}

func NewStore(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		api:         opts.API,
		normalizer:  opts.Normalizer,
		seedOnError: opts.SeedOnError,
		products:    reactive.NewSubject([]models.Product{}),
		pending:     make(map[int64]struct{}),
		logger:      logger,
		now:         time.Now,
	}
}

// Products expone la lista actual como Observable
func (s *Store) Products() reactive.Observable[[]models.Product] {
	return s.products
}

// Snapshot retorna una copia de la lista actual
func (s *Store) Snapshot() []models.Product {
	return slices.Clone(s.products.Value())
}

// Load trae el catálogo del API. Si falla se conserva la lista actual
// (o los productos de demostración si así se configuró).
func (s *Store) Load(ctx context.Context) {
	if s.api == nil {
		return
	}

	products, err := s.api.ListProducts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Printf("⚠️ Error loading products: %v", err)
		current := s.products.Value()
		if len(current) == 0 && s.seedOnError {
			s.logger.Println("🌱 Seeding catalog with demo products")
			s.products.Next(s.seedProducts())
			return
		}
		s.products.Next(slices.Clone(current))
		return
	}

	clear(s.pending)
	s.products.Next(products)
}

// LoadAsync inicia la carga y retorna de inmediato. El canal se cierra al
// terminar; el resultado llega a los suscriptores de Products.
func (s *Store) LoadAsync(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Load(ctx)
	}()
	return done
}

// Seed reemplaza el catálogo con los productos de demostración
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products.Next(s.seedProducts())
}

// GetFeatured retorna los 3 primeros productos en orden de carga
func (s *Store) GetFeatured() []models.Product {
	current := s.products.Value()
	return slices.Clone(current[:min(3, len(current))])
}

// GetCategories retorna los nombres de categoría sin duplicados, en orden de aparición
func (s *Store) GetCategories() []string {
	seen := make(map[string]struct{})
	categories := []string{}
	for _, p := range s.products.Value() {
		if p.CategoryName == "" {
			continue
		}
		if _, ok := seen[p.CategoryName]; ok {
			continue
		}
		seen[p.CategoryName] = struct{}{}
		categories = append(categories, p.CategoryName)
	}
	return categories
}

// GetProductByID busca en el API y, si no responde, en la lista local
// Un producto con cambios locales sin confirmar se sirve desde la lista local.
func (s *Store) GetProductByID(ctx context.Context, id int64) (models.Product, bool) {
	if s.api != nil && !s.isPending(id) {
		p, err := s.api.GetProduct(ctx, id)
		if err == nil {
			return p, true
		}
		if errors.Is(err, ErrNotFound) {
			return models.Product{}, false
		}
		s.logger.Printf("⚠️ Error getting product %d: %v", id, err)
	}
	return s.findLocal(id)
}

// Search busca en el API; si falla filtra la lista local por nombre o descripción
func (s *Store) Search(ctx context.Context, keyword string) []models.Product {
	if s.api != nil {
		products, err := s.api.SearchProducts(ctx, keyword)
		if err == nil {
			return s.overlayPending(products)
		}
		s.logger.Printf("⚠️ Error searching products %q: %v", keyword, err)
	}
	return filter.Apply(s.products.Value(), filter.Config{Search: keyword})
}

// ByCategory consulta el API; si falla filtra la lista local por categoría
func (s *Store) ByCategory(ctx context.Context, category string) []models.Product {
	if s.api != nil {
		products, err := s.api.ProductsByCategory(ctx, category)
		if err == nil {
			return s.overlayPending(products)
		}
		s.logger.Printf("⚠️ Error getting products by category %q: %v", category, err)
	}
	return filter.Apply(s.products.Value(), filter.Config{Category: category})
}

// CreateProduct agrega el producto localmente y luego lo envía al API.
// La respuesta del API reemplaza a la versión local; si el API falla se
// conserva la versión local.
func (s *Store) CreateProduct(ctx context.Context, req models.ProductRequest) models.Product {
	now := s.now()
	local := req.ToProduct()
	local.CreatedAt = now
	local.UpdatedAt = now
	local = s.normalizer.Finalize(local)

	s.mu.Lock()
	local.ID = s.nextIDLocked()
	s.products.Next(append(slices.Clone(s.products.Value()), local))
	s.pending[local.ID] = struct{}{}
	s.mu.Unlock()

	if s.api == nil {
		return local
	}
	s.api.Invalidate(0)

	created, err := s.api.CreateProduct(ctx, req)
	if err != nil {
		s.logger.Printf("⚠️ Error creating product, keeping local copy: %v", err)
		return local
	}

	s.settle(local.ID, created)
	return created
}

// UpdateProduct aplica la actualización local y luego la envía al API
func (s *Store) UpdateProduct(ctx context.Context, id int64, update models.ProductUpdate) (models.Product, bool) {
	s.mu.Lock()
	current := slices.Clone(s.products.Value())
	idx := slices.IndexFunc(current, func(p models.Product) bool { return p.ID == id })
	var local models.Product
	if idx >= 0 {
		base := current[idx]
		// una imagen resuelta por la cadena de respaldo se vuelve a resolver
		if update.ImageURL == nil && s.normalizer.derivedImage(base) {
			base.ImageURL = ""
		}
		local = update.Apply(base)
		local.UpdatedAt = s.now()
		local = s.normalizer.Finalize(local)
		current[idx] = local
		s.products.Next(current)
		s.pending[id] = struct{}{}
	}
	s.mu.Unlock()

	if s.api == nil {
		return local, idx >= 0
	}
	s.api.Invalidate(id)

	updated, err := s.api.UpdateProduct(ctx, id, update)
	if err != nil {
		if idx < 0 {
			return models.Product{}, false
		}
		s.logger.Printf("⚠️ Error updating product %d, keeping local copy: %v", id, err)
		return local, true
	}

	s.settle(id, updated)
	return updated, true
}

// DeleteProduct quita el producto localmente y luego lo borra en el API
func (s *Store) DeleteProduct(ctx context.Context, id int64) bool {
	s.mu.Lock()
	current := s.products.Value()
	idx := slices.IndexFunc(current, func(p models.Product) bool { return p.ID == id })
	if idx >= 0 {
		s.products.Next(slices.Delete(slices.Clone(current), idx, idx+1))
		s.pending[id] = struct{}{}
	}
	s.mu.Unlock()

	if s.api == nil {
		return idx >= 0
	}
	s.api.Invalidate(id)

	if err := s.api.DeleteProduct(ctx, id); err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Printf("⚠️ Error deleting product %d, kept local deletion: %v", id, err)
		}
		return idx >= 0
	}

	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
	return true
}

// nextIDLocked genera un id local mayor que cualquier id conocido; requiere s.mu
func (s *Store) nextIDLocked() int64 {
	next := s.lastID
	for _, p := range s.products.Value() {
		next = max(next, p.ID)
	}
	s.lastID = next + 1
	return s.lastID
}

// settle sustituye la versión local id por la confirmada por el API
func (s *Store) settle(id int64, p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pending, id)
	delete(s.pending, p.ID)

	current := slices.Clone(s.products.Value())
	idx := slices.IndexFunc(current, func(x models.Product) bool { return x.ID == id })
	if idx < 0 {
		return
	}
	current[idx] = p
	s.products.Next(current)
}

// isPending indica si id tiene un cambio local que el API no confirmó
func (s *Store) isPending(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[id]
	return ok
}

// overlayPending reemplaza en una respuesta del API los productos con cambios
// locales sin confirmar por su versión local, o los quita si se borraron
func (s *Store) overlayPending(products []models.Product) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return products
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if _, ok := s.pending[p.ID]; ok {
			local, found := s.findLocal(p.ID)
			if !found {
				continue
			}
			p = local
		}
		out = append(out, p)
	}
	return out
}

func (s *Store) findLocal(id int64) (models.Product, bool) {
	for _, p := range s.products.Value() {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
