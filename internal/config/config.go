package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"taskboard/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort       string
	AppVersion    string
	AllowedOrigin string

	// Storage: PostgreSQL when DatabaseURL is set, otherwise the JSON
	// document at DataFile.
	DataFile    string
	DatabaseURL string

	JWTSecret string
	TokenTTL  time.Duration

	Redis RedisConfig

	LoginRateLimit  int
	LoginRateWindow time.Duration

	LogLevel string
	LogJSON  bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load reads .env (if present) and the environment. Missing required
// settings are fatal.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	return cfg
}

// FromEnv builds a Config from the process environment.
func FromEnv() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	return &Config{
		AppPort:       getEnv("APP_PORT", "3000"),
		AppVersion:    getEnv("APP_VERSION", "dev"),
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),

		DataFile:    getEnv("DATA_FILE", "data.json"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: jwtSecret,
		TokenTTL:  getEnvAsDuration("TOKEN_TTL", 24*time.Hour),

		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},

		LoginRateLimit:  getEnvAsInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: getEnvAsDuration("LOGIN_RATE_WINDOW", time.Minute),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt ignores non-positive values for everything except REDIS_DB.
func getEnvAsInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || (n == 0 && key != "REDIS_DB") {
		return defaultValue
	}
	return n
}

// getEnvAsDuration accepts "15m"-style durations or a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return defaultValue
}
