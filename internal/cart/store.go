// Package cart guarda el carrito de compras como una lista ordenada de líneas.
// Total y cantidad se derivan siempre de la lista; cada cambio persiste el
// carrito completo y lo vuelve a emitir a los suscriptores.
package cart

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"slices"
	"sync"

	"storefront/internal/models"
	"storefront/internal/reactive"
	"storefront/internal/storage"
)

// StorageKey es la clave bajo la que se persiste el carrito
const StorageKey = "cart"

// Store es el carrito de una sesión
type Store struct {
	mu     sync.Mutex
	kv     storage.Store
	items  *reactive.Subject[[]models.CartLineItem]
	logger *log.Logger
}

// NewStore restaura el carrito desde kv. Un valor corrupto se descarta.
func NewStore(ctx context.Context, kv storage.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{kv: kv, logger: logger}
	s.items = reactive.NewSubject(s.load(ctx))
	return s
}

func (s *Store) load(ctx context.Context) []models.CartLineItem {
	raw, ok := s.kv.Get(ctx, StorageKey)
	if !ok || raw == "" {
		return []models.CartLineItem{}
	}

	var stored []models.CartLineItem
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Printf("⚠️ Error loading cart from storage: %v", err)
		return []models.CartLineItem{}
	}

	// Se descartan líneas inválidas y se funden duplicados
	items := make([]models.CartLineItem, 0, len(stored))
	for _, item := range stored {
		if item.Quantity <= 0 {
			continue
		}
		if idx := indexOf(items, item.Product.ID); idx >= 0 {
			items[idx].Quantity = addQuantity(items[idx].Quantity, item.Quantity)
			continue
		}
		items = append(items, item)
	}
	return items
}

// Items expone las líneas del carrito. No modificar los slices recibidos.
func (s *Store) Items() reactive.Observable[[]models.CartLineItem] {
	return s.items
}

// Total expone la suma de precio por cantidad
func (s *Store) Total() reactive.Observable[float64] {
	return reactive.Map[[]models.CartLineItem, float64](s.items, Total)
}

// Count expone la suma de cantidades
func (s *Store) Count() reactive.Observable[int] {
	return reactive.Map[[]models.CartLineItem, int](s.items, Count)
}

// Snapshots expone el carrito completo con sus totales
func (s *Store) Snapshots() reactive.Observable[models.CartSnapshot] {
	return reactive.Map[[]models.CartLineItem, models.CartSnapshot](s.items, Snapshot)
}

// Snapshot retorna el estado actual del carrito
func (s *Store) Snapshot() models.CartSnapshot {
	return Snapshot(s.items.Value())
}

// AddToCart suma quantity a la línea del producto o crea una nueva.
// Una cantidad menor a 1 no hace nada.
func (s *Store) AddToCart(ctx context.Context, product models.Product, quantity int) {
	if quantity <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := slices.Clone(s.items.Value())
	if idx := indexOf(items, product.ID); idx >= 0 {
		items[idx].Quantity = addQuantity(items[idx].Quantity, quantity)
	} else {
		items = append(items, models.CartLineItem{Product: product, Quantity: quantity})
	}
	s.commit(ctx, items)
}

// RemoveFromCart quita la línea del producto; no falla si no existe
func (s *Store) RemoveFromCart(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(ctx, productID)
}

// UpdateQuantity fija la cantidad de una línea; 0 o menos la elimina
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items.Value()
	idx := indexOf(items, productID)
	if idx < 0 {
		return
	}
	if quantity <= 0 {
		s.removeLocked(ctx, productID)
		return
	}

	items = slices.Clone(items)
	items[idx].Quantity = quantity
	s.commit(ctx, items)
}

// ClearCart vacía el carrito
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(ctx, []models.CartLineItem{})
}

// Checkout toma el contenido del carrito y lo vacía en un solo paso.
// Retorna lo que había; un carrito vacío no se vuelve a escribir.
func (s *Store) Checkout(ctx context.Context) models.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	taken := Snapshot(s.items.Value())
	if len(taken.Items) == 0 {
		return taken
	}
	s.commit(ctx, []models.CartLineItem{})
	return taken
}

// InUse indica si alguien sigue suscrito al carrito (por ejemplo un stream abierto)
func (s *Store) InUse() bool {
	return s.items.Subscribers() > 0
}

func (s *Store) removeLocked(ctx context.Context, productID int64) {
	items := slices.DeleteFunc(slices.Clone(s.items.Value()), func(item models.CartLineItem) bool {
		return item.Product.ID == productID
	})
	s.commit(ctx, items)
}

// commit persiste y publica el nuevo estado; requiere s.mu
func (s *Store) commit(ctx context.Context, items []models.CartLineItem) {
	if data, err := json.Marshal(items); err != nil {
		s.logger.Printf("⚠️ Error saving cart to storage: %v", err)
	} else {
		s.kv.Set(ctx, StorageKey, string(data))
	}
	s.items.Next(items)
}

// addQuantity suma cantidades sin desbordar
func addQuantity(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}

func indexOf(items []models.CartLineItem, productID int64) int {
	return slices.IndexFunc(items, func(item models.CartLineItem) bool {
		return item.Product.ID == productID
	})
}
