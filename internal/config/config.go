package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full application configuration, read from the environment
// with an optional .env file on top.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int
	UploadDir         string
	AMQPURL           string
	EventQueue        string
}

// Load reads configuration. DB_DSN and JWT_SECRET are required, everything
// else has a default. AMQP_URL is optional; without it reservation events
// are simply not published.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := &Config{
		IsProduction: getEnv("APP_ENV", "dev") == "prod",
		ProdOrigins:  getEnv("PROD_ORIGINS", ""),
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		DBDSN:        os.Getenv("DB_DSN"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		UploadDir:    getEnv("UPLOAD_DIR", "./uploads"),
		AMQPURL:      getEnv("AMQP_URL", ""),
		EventQueue:   getEnv("EVENT_QUEUE", "reservation.events"),
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	ttl, err := time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	s := getEnv(key, "")
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, s, err)
	}
	return n, nil
}
