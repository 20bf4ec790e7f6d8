package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Auth modes understood by the session layer.
const (
	AuthModeRemote = "remote"
	AuthModeJWT    = "jwt"
)

// DefaultCORSOrigins mirrors the web and mobile clients the API has always served.
var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://localhost:19006",
	"http://localhost:8081",
	"https://*.vercel.app",
	"https://*.netlify.app",
	"capacitor://localhost",
	"ionic://localhost",
	"exp://localhost:19000",
}

type Config struct {
	DatabaseURL string

	ServerPort string
	Env        string
	LogLevel   string
	Version    string

	RedisURL string

	AuthMode        string
	AuthServiceURL  string
	AuthJWTSecret   string
	SessionCacheTTL time.Duration

	CORSAllowedOrigins []string
	FrontendURL        string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string

	DocsPath         string
	DocsUsername     string
	DocsPasswordHash string

	OtelEndpoint string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		logrus.Info("No .env file found or error loading it, relying on environment variables")
	}

	sessionCacheTTL, err := strconv.Atoi(os.Getenv("SESSION_CACHE_TTL"))
	if err != nil || sessionCacheTTL < 0 {
		sessionCacheTTL = 300
	}

	authMode := strings.ToLower(os.Getenv("AUTH_MODE"))
	if authMode != AuthModeJWT {
		authMode = AuthModeRemote
	}

	origins := append([]string(nil), DefaultCORSOrigins...)
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = splitList(raw)
	}
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL != "" {
		origins = append(origins, frontendURL)
	}

	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),

		ServerPort: getEnv("SERVER_PORT", "8080"),
		Env:        getEnv("APP_ENV", "development"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		Version:    getEnv("APP_VERSION", "1.0.0"),

		RedisURL: os.Getenv("REDIS_URL"),

		AuthMode:        authMode,
		AuthServiceURL:  strings.TrimSuffix(os.Getenv("AUTH_SERVICE_URL"), "/"),
		AuthJWTSecret:   os.Getenv("AUTH_JWT_SECRET"),
		SessionCacheTTL: time.Duration(sessionCacheTTL) * time.Second,

		CORSAllowedOrigins: origins,
		FrontendURL:        frontendURL,

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicURL:       os.Getenv("R2_PUBLIC_URL"),

		DocsPath:         getEnv("DOCS_PATH", "/api/docs"),
		DocsUsername:     os.Getenv("DOCS_USERNAME"),
		DocsPasswordHash: os.Getenv("DOCS_PASSWORD_HASH"),

		OtelEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}, nil
}

// IsLocal reports whether the process runs on a developer machine.
func (c *Config) IsLocal() bool {
	return c.Env == "development" || c.Env == "local"
}

// MediaEnabled reports whether every R2 setting is present.
func (c *Config) MediaEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicURL != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
