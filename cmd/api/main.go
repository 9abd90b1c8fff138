package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/cache"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/models"
	"storefront/internal/redisx"
	"storefront/internal/review"
	"storefront/internal/routes"
	"storefront/internal/session"
	"storefront/internal/storage"
)

const kvCollection = "kv"

func main() {
	cfg := config.LoadConfig()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := log.Default()

	// Almacenamiento clave-valor: se elige una sola vez
	opts := storage.Options{Backend: cfg.StorageBackend, Logger: logger}
	switch cfg.StorageBackend {
	case storage.BackendMongo:
		client, err := database.Connect(ctx, cfg.MongoURI)
		if err != nil {
			log.Printf("⚠️ %v", err)
			break
		}
		defer disconnectMongo(client)
		opts.Mongo = client.Database(cfg.MongoDB).Collection(kvCollection)
	case storage.BackendRedis:
		rdb, err := redisx.New(ctx, cfg.RedisAddr)
		if err != nil {
			log.Printf("⚠️ %v", err)
			break
		}
		defer closeRedis(rdb)
		opts.Redis = rdb
	}
	kv := storage.New(opts)

	// Catálogo
	productCache := cache.New[models.Product](cfg.CatalogCacheTTL, time.Minute)
	defer productCache.Close()
	listCache := cache.New[[]models.Product](cfg.CatalogCacheTTL, time.Minute)
	defer listCache.Close()

	api := catalog.NewClient(cfg.ProductAPIURL, &http.Client{Timeout: 10 * time.Second}, productCache, listCache)
	products := catalog.NewStore(catalog.Options{
		API:         api,
		Normalizer:  api.Normalizer(),
		SeedOnError: cfg.CatalogSeedOnError,
		Logger:      logger,
	})
	products.LoadAsync(ctx)

	// Sesiones: los valores sin uso se descartan de memoria; lo persistido queda
	carts := session.NewRegistry(kv, func(ctx context.Context, scoped storage.Store) *cart.Store {
		return cart.NewStore(ctx, scoped, logger)
	})
	sessions := session.NewRegistry(kv, func(ctx context.Context, scoped storage.Store) *session.Auth {
		return session.NewAuth(ctx, scoped, logger)
	})
	carts.StartEviction(ctx, cfg.SessionIdleTTL, time.Minute)
	sessions.StartEviction(ctx, cfg.SessionIdleTTL, time.Minute)

	deps := routes.Deps{
		Catalog:  products,
		Reviews:  review.NewStore(),
		Carts:    carts,
		Sessions: sessions,
		Checkout: checkout.NewService(logger),
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", handlers.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", handlers.SessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.RegisterRoutes(router, deps)

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		log.Println("🚀 Server running on port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("🛑 Shutting down...")

	// cancelar el contexto base cierra los streams SSE abiertos
	cancel()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ shutdown: %v", err)
	}
	log.Printf("🗂️ Cache: %d productos, %d listados; %d carritos en memoria", productCache.Size(), listCache.Size(), carts.Len())
}

func disconnectMongo(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("⚠️ mongo disconnect: %v", err)
	}
}

func closeRedis(rdb *redis.Client) {
	if err := rdb.Close(); err != nil {
		log.Printf("⚠️ redis close: %v", err)
	}
}
