package session

import (
	"context"
	"sync"
	"time"

	"storefront/internal/storage"
)

// entry guarda el valor de una sesión y su último uso
type entry[T any] struct {
	value    T
	lastSeen time.Time
}

// Registry crea y reutiliza un valor por sesión, cada uno con su propio
// espacio de claves dentro del almacenamiento compartido
type Registry[T any] struct {
	mu    sync.Mutex
	kv    storage.Store
	build func(ctx context.Context, kv storage.Store) T
	items map[string]*entry[T]
	now   func() time.Time
}

func NewRegistry[T any](kv storage.Store, build func(ctx context.Context, kv storage.Store) T) *Registry[T] {
	return &Registry[T]{
		kv:    kv,
		build: build,
		items: make(map[string]*entry[T]),
		now:   time.Now,
	}
}

// For retorna el valor de la sesión, construyéndolo la primera vez
func (r *Registry[T]) For(ctx context.Context, sessionID string) T {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.items[sessionID]; ok {
		e.lastSeen = r.now()
		return e.value
	}
	v := r.build(ctx, storage.WithPrefix(r.kv, KeyPrefix(sessionID)))
	r.items[sessionID] = &entry[T]{value: v, lastSeen: r.now()}
	return v
}

// Forget descarta el valor en memoria; lo persistido se conserva
func (r *Registry[T]) Forget(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, sessionID)
}

func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Evict descarta los valores sin uso durante idle. Los valores que reportan
// InUse() == true se conservan. Retorna cuántos se descartaron.
func (r *Registry[T]) Evict(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	evicted := 0
	for id, e := range r.items {
		if e.lastSeen.After(cutoff) {
			continue
		}
		if u, ok := any(e.value).(interface{ InUse() bool }); ok && u.InUse() {
			continue
		}
		delete(r.items, id)
		evicted++
	}
	return evicted
}

// StartEviction ejecuta Evict cada interval hasta que ctx se cancele
func (r *Registry[T]) StartEviction(ctx context.Context, idle, interval time.Duration) {
	if idle <= 0 || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.Evict(idle)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// KeyPrefix es el prefijo de claves de una sesión: session:{id}:
func KeyPrefix(sessionID string) string {
	return "session:" + sessionID + ":"
}
