package infra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "PORT", "STATIC_DIR", "CORS_ALLOWED_ORIGINS", "MAX_UPLOAD_BYTES",
		"HTTP_READ_TIMEOUT_SECONDS", "HTTP_WRITE_TIMEOUT_SECONDS", "HTTP_IDLE_TIMEOUT_SECONDS",
		"BACKEND_TIMEOUT_SECONDS", "POLLINATIONS_BASE_URL", "POLLINATIONS_MODELS",
		"HUGGINGFACE_API_KEY", "HUGGINGFACE_BASE_URL", "HUGGINGFACE_MODEL",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_IMAGE_MODEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, 60*time.Second, cfg.BackendTimeout)
	assert.Equal(t, []string{"flux", "turbo"}, cfg.PollinationsModels)
	assert.Equal(t, "https://image.pollinations.ai", cfg.PollinationsBaseURL)
	assert.Empty(t, cfg.HuggingFaceAPIKey)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoadConfigReadsOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "5")
	t.Setenv("POLLINATIONS_MODELS", " flux , , sana ")
	t.Setenv("HUGGINGFACE_API_KEY", "  hf_secret  ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,https://slug.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.BackendTimeout)
	assert.Equal(t, []string{"flux", "sana"}, cfg.PollinationsModels)
	assert.Equal(t, "hf_secret", cfg.HuggingFaceAPIKey)
	assert.Equal(t, []string{"http://localhost:5173", "https://slug.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigIgnoresMalformedInts(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("MAX_UPLOAD_BYTES", "five megabytes")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadBytes)
}

func TestLoadConfigRejectsNonPositiveValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "upload limit", key: "MAX_UPLOAD_BYTES", value: "0"},
		{name: "backend timeout", key: "BACKEND_TIMEOUT_SECONDS", value: "-1"},
		{name: "read timeout", key: "HTTP_READ_TIMEOUT_SECONDS", value: "0"},
		{name: "pollinations models", key: "POLLINATIONS_MODELS", value: " , "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}
