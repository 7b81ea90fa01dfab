package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the backend.
type Config struct {
	DB        DBConfig
	Redis     RedisConfig
	TMDB      TMDBConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
	Port      string
}

// DBConfig holds PostgreSQL configuration.
type DBConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SSLRootCert string
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
	if d.SSLRootCert != "" {
		dsn += fmt.Sprintf(" sslrootcert=%s", d.SSLRootCert)
	}
	return dsn
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// TMDBConfig holds TMDB API configuration for catalog ingestion.
type TMDBConfig struct {
	APIKey  string
	BaseURL string
}

// AuthConfig holds JWT signing configuration.
type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
}

// CORSConfig holds the allowed cross-origin request sources. The list may
// contain explicit origins, the wildcard "*", or a mix.
type CORSConfig struct {
	AllowOrigins []string
}

// Wildcard reports whether the origin list contains the wildcard entry.
func (c CORSConfig) Wildcard() bool {
	for _, o := range c.AllowOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

// AllowCredentials reports whether credentialed CORS is usable with the
// configured origins. A wildcard origin cannot be combined with
// credentials, so the wildcard wins and credentials are disabled.
func (c CORSConfig) AllowCredentials() bool {
	return !c.Wildcard()
}

// UploadConfig holds paths for user-uploaded assets.
type UploadConfig struct {
	Dir       string
	AvatarDir string
}

// RateLimitConfig holds the Redis-backed rate limiter knobs.
type RateLimitConfig struct {
	MaxRequests int
	WindowSec   int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	tokenExpiryHours, _ := strconv.Atoi(getEnv("TOKEN_EXPIRY_HOURS", "24"))
	rateMax, _ := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "120"))
	rateWindow, _ := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SEC", "60"))

	uploadDir := getEnv("UPLOAD_DIR", "uploads")

	cfg := &Config{
		DB: DBConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        dbPort,
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "movie_recommendation"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			SSLRootCert: getEnv("DB_SSLROOTCERT", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		TMDB: TMDBConfig{
			APIKey:  getEnv("TMDB_API_KEY", ""),
			BaseURL: getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", ""),
			TokenExpiry: time.Duration(tokenExpiryHours) * time.Hour,
		},
		CORS: CORSConfig{
			AllowOrigins: splitOrigins(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5500,http://127.0.0.1:5500")),
		},
		Upload: UploadConfig{
			Dir:       uploadDir,
			AvatarDir: uploadDir + "/avatars",
		},
		RateLimit: RateLimitConfig{
			MaxRequests: rateMax,
			WindowSec:   rateWindow,
		},
		Port: getEnv("SERVER_PORT", "8000"),
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed == "*" {
			// Wildcard subsumes every explicit entry.
			return []string{"*"}
		}
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
