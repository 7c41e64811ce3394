package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Env holds runtime configuration loaded from environment variables.
type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret  string
	BcryptCost int

	CapacityTTL time.Duration
	CORSOrigins []string

	AuthRateRPS   float64
	AuthRateBurst int
}

// LoadEnv reads configuration from the environment, after loading a .env
// file when one is present. Missing values fall back to development defaults.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBUser: getenv("DB_USER", "root"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: getenv("DB_HOST", "127.0.0.1:3306"),
		DBName: getenv("DB_NAME", "seaferry"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getint("REDIS_DB", 0),

		JWTSecret:  getenv("JWT_SECRET", "dev-secret-change-me"),
		BcryptCost: getint("BCRYPT_COST", 10),

		CapacityTTL: getdur("CAPACITY_CACHE_TTL", 30*time.Second),
		CORSOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),

		AuthRateRPS:   getfloat("AUTH_RATE_RPS", 5),
		AuthRateBurst: getint("AUTH_RATE_BURST", 10),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getfloat(key string, def float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
