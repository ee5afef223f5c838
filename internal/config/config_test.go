package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tripcraft/internal/config"
)

// clearEnv blanks every variable Load reads so host settings cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TRIPCRAFT_HTTP_ADDR", "TRIPCRAFT_WRITE_TIMEOUT", "TRIPCRAFT_CORS_ORIGINS", "TRIPCRAFT_MAX_UPLOAD_MB",
		"TRIPCRAFT_LOG_LEVEL", "LLM_PROVIDER", "GEMINI_API_KEY", "GEMINI_MODEL", "OPENAI_API_KEY",
		"OPENAI_MODEL", "GOOGLE_MAPS_API_KEY", "STORAGE_BACKEND", "TRIPCRAFT_DB_DSN",
		"TRIPCRAFT_REDIS_ADDR", "FIREBASE_PROJECT_ID", "FIREBASE_CREDENTIALS_FILE", "AUTH_MODE",
		"VISION_SERVICE_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, 120*time.Second, cfg.HTTP.WriteTimeout)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.HTTP.CORSOrigins)
	require.Equal(t, 10, cfg.HTTP.MaxUploadMB)
	require.Equal(t, "gemini", cfg.AI.Provider)
	require.Equal(t, "gemini-1.5-flash", cfg.AI.GeminiModel)
	require.Equal(t, config.StorageMemory, cfg.Storage.Backend)
	require.Equal(t, config.AuthDev, cfg.Auth.Mode)
	require.Equal(t, "http://localhost:5001/analyze", cfg.Vision.URL)
}

func TestLoadMissingGeminiKey(t *testing.T) {
	clearEnv(t)

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "GEMINI_API_KEY")
}

func TestLoadOpenAIRequiresItsOwnKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("GEMINI_API_KEY", "unused")

	_, err := config.Load()
	require.ErrorContains(t, err, "OPENAI_API_KEY")

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "openai", cfg.AI.Provider)
}

func TestLoadUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "llama")

	_, err := config.Load()
	require.ErrorContains(t, err, "LLM_PROVIDER")
}

func TestLoadStorageRequirementsAreAggregated(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "postgres")

	_, err := config.Load()

	require.ErrorContains(t, err, "GEMINI_API_KEY")
	require.ErrorContains(t, err, "TRIPCRAFT_DB_DSN")
}

func TestLoadFirebaseAuthNeedsProject(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("AUTH_MODE", "firebase")

	_, err := config.Load()
	require.ErrorContains(t, err, "FIREBASE_PROJECT_ID")

	t.Setenv("FIREBASE_PROJECT_ID", "tripcraft-dev")
	_, err = config.Load()
	require.NoError(t, err)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("TRIPCRAFT_HTTP_ADDR", ":9090")
	t.Setenv("TRIPCRAFT_WRITE_TIMEOUT", "45s")
	t.Setenv("TRIPCRAFT_CORS_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Addr)
	require.Equal(t, 45*time.Second, cfg.HTTP.WriteTimeout)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.HTTP.CORSOrigins)
}
