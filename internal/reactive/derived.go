package reactive

type mapped[S, T any] struct {
	src Observable[S]
	fn  func(S) T
}

// Map deriva un Observable recalculando fn sobre cada valor de src.
// No guarda estado propio, así que nunca queda desincronizado.
func Map[S, T any](src Observable[S], fn func(S) T) Observable[T] {
	return &mapped[S, T]{src: src, fn: fn}
}

func (m *mapped[S, T]) Value() T {
	return m.fn(m.src.Value())
}

func (m *mapped[S, T]) Subscribe(fn func(T)) func() {
	return m.src.Subscribe(func(v S) {
		fn(m.fn(v))
	})
}
