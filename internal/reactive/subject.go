// Package reactive ofrece un publish/subscribe que repite el último valor;
// los stores lo usan para difundir su estado a cada vista suscrita.
package reactive

import (
	"slices"
	"sync"
)

// Observable es una vista de solo lectura sobre un valor que cambia
type Observable[T any] interface {
	// Value retorna el valor actual
	Value() T
	// Subscribe registra fn, la invoca de inmediato con el valor actual y
	// luego con cada valor nuevo. La función retornada cancela la suscripción.
	Subscribe(fn func(T)) (unsubscribe func())
}

// Subject guarda el último valor y lo reenvía a todos los suscriptores.
// Los callbacks no deben llamar a Next ni a Subscribe del mismo Subject.
type Subject[T any] struct {
	emitMu sync.Mutex
	mu     sync.RWMutex
	value  T
	subs   map[uint64]func(T)
	nextID uint64
}

func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{
		value: initial,
		subs:  make(map[uint64]func(T)),
	}
}

func (s *Subject[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Next publica v a todos los suscriptores en orden de alta
func (s *Subject[T]) Next(v T) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	s.value = v
	fns := s.snapshotLocked()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

func (s *Subject[T]) Subscribe(fn func(T)) func() {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	current := s.value
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Subscribers retorna cuántas suscripciones siguen activas
func (s *Subject[T]) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

func (s *Subject[T]) snapshotLocked() []func(T) {
	ids := make([]uint64, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	// ids crecen monótonamente: orden de alta
	slices.Sort(ids)
	fns := make([]func(T), len(ids))
	for i, id := range ids {
		fns[i] = s.subs[id]
	}
	return fns
}
