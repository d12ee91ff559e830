package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port        string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	AutoMigrate bool
	GinMode     string
	LogLevel    string

	DataSourceURL     string
	DataSourceTimeout time.Duration

	JWTSecret  string
	SessionTTL time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RateLimitRPS   float64
	RateLimitBurst int

	CORSOrigins    []string
	TrustedProxies []string

	SeedAdminEmail    string
	SeedAdminPassword string
	SeedDemoPassword  string
}

const releaseMode = "release"

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
// Release mode refuses to start without JWT_SECRET.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Info().Msg(".env file loaded")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "dashboard"),
		DBPassword:  getEnv("DB_PASSWORD", "dashboard_secret"),
		DBName:      getEnv("DB_NAME", "dashboard"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		AutoMigrate: getEnv("AUTO_MIGRATE", "false") == "true",
		GinMode:     getEnv("GIN_MODE", "debug"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DataSourceURL:     getEnv("DATA_SOURCE_URL", "https://693691f2f8dc350aff31551d.mockapi.io/api/v1"),
		DataSourceTimeout: getDuration("DATA_SOURCE_TIMEOUT", 10*time.Second),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		SessionTTL: getDuration("SESSION_TTL", 8*time.Hour),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),

		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 30),

		CORSOrigins:    getList("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		TrustedProxies: getList("TRUSTED_PROXIES", ""),

		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", "owner@merchant.local"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		SeedDemoPassword:  getEnv("SEED_DEMO_PASSWORD", ""),
	}

	if cfg.JWTSecret == "" {
		if cfg.GinMode == releaseMode {
			return nil, errors.New("JWT_SECRET is required in release mode")
		}
		log.Warn().Msg("JWT_SECRET is not set, using an insecure development secret")
	}
	return cfg, nil
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getList(key, fallback string) []string {
	var out []string
	for _, v := range strings.Split(getEnv(key, fallback), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid duration, using default")
		return fallback
	}
	return d
}
