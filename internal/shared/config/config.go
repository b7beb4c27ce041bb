package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string

	GCPProjectID string
	GCPRegion    string
	GeminiModel  string

	MaxAssetBytes   int64
	FetchTimeout    time.Duration
	ExtractTimeout  time.Duration
	BatchWorkers    int
	BatchMaxItems   int
	ExtractRate     float64
	ExtractBurst    int
	FallbackEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:     dbURL,
		GCPProjectID:    getEnv("GCP_PROJECT_ID", ""),
		GCPRegion:       getEnv("GCP_REGION", "us-central1"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		MaxAssetBytes:   getEnvInt64("MAX_ASSET_BYTES", 10<<20),
		FetchTimeout:    getEnvSeconds("FETCH_TIMEOUT_SECONDS", 30*time.Second),
		ExtractTimeout:  getEnvSeconds("EXTRACT_TIMEOUT_SECONDS", 60*time.Second),
		BatchWorkers:    getEnvInt("BATCH_WORKERS", 4),
		BatchMaxItems:   getEnvInt("BATCH_MAX_ITEMS", 25),
		ExtractRate:     getEnvFloat("EXTRACT_RATE_PER_SEC", 1),
		ExtractBurst:    getEnvInt("EXTRACT_BURST", 2),
		FallbackEnabled: getEnvBool("FALLBACK_ENABLED", true),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getEnvInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getEnvSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return time.Duration(parsed) * time.Second
}

func getEnvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
