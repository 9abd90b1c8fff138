package storage

import "context"

type prefixed struct {
	inner  Store
	prefix string
}

// WithPrefix aísla las claves de una sesión dentro de un Store compartido
func WithPrefix(s Store, prefix string) Store {
	return &prefixed{inner: s, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) {
	p.inner.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Remove(ctx context.Context, key string) {
	p.inner.Remove(ctx, p.prefix+key)
}
