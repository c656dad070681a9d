package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every setting the server reads from the environment. It is
// loaded once at startup and passed by reference into handler constructors;
// handlers never read os.Getenv themselves.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string

	AccessTokenSecret  string
	RefreshTokenSecret string

	// TaxRatePercent is applied to (subtotal + cleaning fee) of every quote
	// and persisted booking.
	TaxRatePercent float64

	// PendingExpiryHours is the window a host has to confirm a request
	// before it expires.
	PendingExpiryHours int

	FrontendURL string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
}

func Load() *Config {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DB_CONNECTION_STRING"),
		RedisURL:           getEnv("REDIS_URL", "localhost:6379"),
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		TaxRatePercent:     getEnvFloat("TAX_RATE_PERCENT", 10),
		PendingExpiryHours: getEnvInt("PENDING_EXPIRY_HOURS", 24),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    os.Getenv("CLOUDINARY_FOLDER"),
	}

	if cfg.DatabaseURL == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		log.Panic("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET environment variables are required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using default %v", key, v, fallback)
		return fallback
	}
	return f
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using default %v", key, v, fallback)
		return fallback
	}
	return n
}
