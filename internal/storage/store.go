// Package storage implementa el almacenamiento clave-valor persistente que
// usan el carrito y la sesión. El backend se elige al construirlo y los
// errores del backend nunca llegan a quien llama.
package storage

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store es el contrato que consumen los stores del frontend
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
	Remove(ctx context.Context, key string)
}

const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
)

// Options describe el backend disponible en este contexto de ejecución
type Options struct {
	Backend string
	Mongo   *mongo.Collection
	Redis   *redis.Client
	Logger  *log.Logger
}

// New elige el backend una sola vez. Si el backend pedido no está disponible
// se usa el almacenamiento en memoria.
func New(opts Options) Store {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	switch opts.Backend {
	case BackendMongo:
		if opts.Mongo != nil {
			logger.Println("💾 Using MongoDB key-value storage")
			return newDurable(&mongoBackend{collection: opts.Mongo}, logger)
		}
	case BackendRedis:
		if opts.Redis != nil {
			logger.Println("💾 Using Redis key-value storage")
			return newDurable(&redisBackend{client: opts.Redis}, logger)
		}
	case BackendMemory, "":
		return NewMemoryStore()
	}

	logger.Printf("⚠️ Storage backend %q unavailable, falling back to memory", opts.Backend)
	return NewMemoryStore()
}

// backend es un almacenamiento duradero que sí reporta errores
type backend interface {
	name() string
	get(ctx context.Context, key string) (string, bool, error)
	set(ctx context.Context, key, value string) error
	remove(ctx context.Context, key string) error
}

// durable envuelve un backend: los fallos se registran y la operación
// se resuelve contra una copia en memoria
type durable struct {
	primary  backend
	fallback *MemoryStore
	logger   *log.Logger
}

func newDurable(b backend, logger *log.Logger) *durable {
	return &durable{primary: b, fallback: NewMemoryStore(), logger: logger}
}

func (d *durable) Get(ctx context.Context, key string) (string, bool) {
	value, ok, err := d.primary.get(ctx, key)
	if err != nil {
		d.logger.Printf("⚠️ %s get %q failed: %v", d.primary.name(), key, err)
		return d.fallback.Get(ctx, key)
	}
	if !ok {
		return d.fallback.Get(ctx, key)
	}
	return value, true
}

func (d *durable) Set(ctx context.Context, key, value string) {
	if err := d.primary.set(ctx, key, value); err != nil {
		d.logger.Printf("⚠️ %s set %q failed: %v", d.primary.name(), key, err)
		d.fallback.Set(ctx, key, value)
		return
	}
	d.fallback.Remove(ctx, key)
}

func (d *durable) Remove(ctx context.Context, key string) {
	if err := d.primary.remove(ctx, key); err != nil {
		d.logger.Printf("⚠️ %s remove %q failed: %v", d.primary.name(), key, err)
	}
	d.fallback.Remove(ctx, key)
}
