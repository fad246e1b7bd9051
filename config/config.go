package config

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// App holds everything the storefront reads from the environment.
type App struct {
	Port           string
	Env            string
	AllowedOrigins []string

	// External store REST API (trailers, components, orders, auth, users).
	StoreAPIBaseURL string

	// Nova Poshta address lookup.
	NovaPoshtaAPIURL string
	NovaPoshtaAPIKey string

	// Shared secret of the store API's tokens. Optional: when set, admin
	// checks validate the token locally instead of round-tripping /auth/me.
	JWTSecret string

	// Cloudinary credentials for admin product image uploads. Optional.
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	SessionTTL time.Duration
}

var Current *App

// Load reads .env (if present) and the process environment.
func Load() *App {
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "720h"))
	if err != nil {
		ttl = 30 * 24 * time.Hour
	}

	Current = &App{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("APP_ENV", "development"),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		StoreAPIBaseURL:  getEnv("STORE_API_URL", "https://trailer-strore-server.onrender.com/api"),
		NovaPoshtaAPIURL: getEnv("NOVA_POSHTA_API_URL", "https://api.novaposhta.ua/v2.0/json/"),
		NovaPoshtaAPIKey: os.Getenv("NOVA_POSHTA_API_KEY"),
		JWTSecret:        os.Getenv("JWT_SECRET"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		SessionTTL: ttl,
	}

	if Current.NovaPoshtaAPIKey == "" {
		logrus.Warn("⚠️ NOVA_POSHTA_API_KEY not set, courier delivery lookups will fail")
	}

	return Current
}

// InitLogger configures logrus for the whole process.
func InitLogger() {
	if os.Getenv("APP_ENV") == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.DebugLevel)
}

// WithTimeout returns a context with a 10s timeout for outbound API calls.
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
