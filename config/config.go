package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port     string
	GinMode  string
	Timezone string

	DBDriver       string
	DBDSN          string
	DBMaxOpenConns int
	DBMaxIdleConns int

	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	CORSOrigin     string
	RateLimitRPS   float64
	RateLimitBurst int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TableCacheTTL time.Duration

	RabbitMQURL        string
	EventRelayInterval time.Duration
}

const DefaultJWTSecret = "changeme"

var ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set in release mode")

func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		Timezone: getEnv("RESTAURANT_TIMEZONE", "UTC"),

		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBDSN:          getEnv("DB_DSN", "reservations.db"),
		DBMaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getInt("DB_MAX_IDLE_CONNS", 5),

		JWTSecret:     getEnv("JWT_SECRET", DefaultJWTSecret),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		CORSOrigin:     getEnv("CORS_ORIGIN", "*"),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 40),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),
		TableCacheTTL: getDuration("TABLE_CACHE_TTL", 30*time.Second),

		RabbitMQURL:        os.Getenv("RABBITMQ_URL"),
		EventRelayInterval: getDuration("EVENT_RELAY_INTERVAL", time.Second),
	}
}

// Validate refuses to run a release build with the built-in JWT secret.
func (c *Config) Validate() error {
	if c.GinMode == "release" && c.UsesDefaultSecret() {
		return ErrDefaultJWTSecret
	}
	return nil
}

func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return def
}
