// README: Config loader with env defaults for HTTP, LLM provider, storage, maps, auth and vision settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AIConfig selects and authenticates the LLM provider.
type AIConfig struct {
	Provider    string
	GeminiKey   string
	GeminiModel string
	OpenAIKey   string
	OpenAIModel string
}

type Config struct {
	HTTP struct {
		Addr         string
		WriteTimeout time.Duration
		CORSOrigins  []string
		MaxUploadMB  int
	}
	Log struct {
		Level string
	}
	AI   AIConfig
	Maps struct {
		APIKey string
	}
	Storage struct {
		Backend string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Firebase struct {
		ProjectID       string
		CredentialsFile string
	}
	Auth struct {
		Mode string
	}
	Vision struct {
		URL string
	}
}

const (
	StorageMemory    = "memory"
	StoragePostgres  = "postgres"
	StorageFirestore = "firestore"

	AuthDev      = "dev"
	AuthFirebase = "firebase"
)

// Load reads configuration from the environment. The API key of the selected
// LLM provider is mandatory: the process must not start serving without it.
func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TRIPCRAFT_HTTP_ADDR", ":8080")
	cfg.HTTP.WriteTimeout = envOrDefaultDuration("TRIPCRAFT_WRITE_TIMEOUT", 120*time.Second)
	cfg.HTTP.CORSOrigins = splitCSV(envOrDefault("TRIPCRAFT_CORS_ORIGINS", "http://localhost:5173"))
	cfg.HTTP.MaxUploadMB = envOrDefaultInt("TRIPCRAFT_MAX_UPLOAD_MB", 10)
	cfg.Log.Level = envOrDefault("TRIPCRAFT_LOG_LEVEL", "info")

	cfg.AI.Provider = strings.ToLower(envOrDefault("LLM_PROVIDER", "gemini"))
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.GeminiModel = envOrDefault("GEMINI_MODEL", "gemini-1.5-flash")
	cfg.AI.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AI.OpenAIModel = envOrDefault("OPENAI_MODEL", "gpt-4o-mini")

	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.Storage.Backend = strings.ToLower(envOrDefault("STORAGE_BACKEND", StorageMemory))
	cfg.DB.DSN = os.Getenv("TRIPCRAFT_DB_DSN")
	cfg.Redis.Addr = os.Getenv("TRIPCRAFT_REDIS_ADDR")
	cfg.Firebase.ProjectID = os.Getenv("FIREBASE_PROJECT_ID")
	cfg.Firebase.CredentialsFile = os.Getenv("FIREBASE_CREDENTIALS_FILE")
	cfg.Auth.Mode = strings.ToLower(envOrDefault("AUTH_MODE", AuthDev))
	cfg.Vision.URL = envOrDefault("VISION_SERVICE_URL", "http://localhost:5001/analyze")

	var missing []string
	switch cfg.AI.Provider {
	case "gemini":
		missing = requireEnv(missing, "GEMINI_API_KEY", cfg.AI.GeminiKey)
	case "openai":
		missing = requireEnv(missing, "OPENAI_API_KEY", cfg.AI.OpenAIKey)
	default:
		return Config{}, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.AI.Provider)
	}

	switch cfg.Storage.Backend {
	case StorageMemory:
	case StoragePostgres:
		missing = requireEnv(missing, "TRIPCRAFT_DB_DSN", cfg.DB.DSN)
	case StorageFirestore:
		missing = requireEnv(missing, "FIREBASE_PROJECT_ID", cfg.Firebase.ProjectID)
	default:
		return Config{}, fmt.Errorf("unsupported STORAGE_BACKEND %q", cfg.Storage.Backend)
	}

	switch cfg.Auth.Mode {
	case AuthDev:
	case AuthFirebase:
		if cfg.Storage.Backend != StorageFirestore {
			missing = requireEnv(missing, "FIREBASE_PROJECT_ID", cfg.Firebase.ProjectID)
		}
	default:
		return Config{}, fmt.Errorf("unsupported AUTH_MODE %q", cfg.Auth.Mode)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(missing []string, key, value string) []string {
	if value == "" {
		return append(missing, key)
	}
	return missing
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
