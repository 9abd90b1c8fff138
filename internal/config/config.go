package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	ProductAPIURL      string
	StorageBackend     string
	MongoURI           string
	MongoDB            string
	RedisAddr          string
	CatalogCacheTTL    time.Duration
	CatalogSeedOnError bool
	SessionIdleTTL     time.Duration
	CORSOrigins        []string
}

func LoadConfig() *Config {
	// Solo cargar .env en desarrollo local
	if _, err := os.Stat(".env"); err == nil {
		err := godotenv.Load()
		if err != nil {
			log.Println("⚠️ Error loading .env file:", err)
		} else {
			log.Println("✅ .env file loaded successfully")
		}
	} else {
		log.Println("🌐 Using system environment variables")
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		ProductAPIURL:      strings.TrimRight(getEnv("PRODUCT_API_URL", "http://localhost:8080/ecomarket/api"), "/"),
		StorageBackend:     getEnv("STORAGE_BACKEND", "memory"),
		MongoURI:           getEnv("MONGO_URI", ""),
		MongoDB:            getEnv("MONGO_DB", "storefront"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		CatalogCacheTTL:    getDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		CatalogSeedOnError: getBool("CATALOG_SEED_FALLBACK", false),
		SessionIdleTTL:     getDuration("SESSION_IDLE_TTL", 30*time.Minute),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200")),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using %v", key, raw, fallback)
		return fallback
	}
	return b
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
