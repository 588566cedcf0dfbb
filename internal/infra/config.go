package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	StaticDir          string
	CORSAllowedOrigins []string
	MaxUploadBytes     int64
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	BackendTimeout     time.Duration

	PollinationsBaseURL string
	PollinationsModels  []string

	HuggingFaceAPIKey  string
	HuggingFaceBaseURL string
	HuggingFaceModel   string

	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIImageModel string
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		Port:                getEnv("PORT", "3000"),
		StaticDir:           getEnv("STATIC_DIR", "public"),
		CORSAllowedOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		MaxUploadBytes:      int64(getEnvInt("MAX_UPLOAD_BYTES", 5*1024*1024)),
		HTTPReadTimeout:     time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:    time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 180)),
		HTTPIdleTimeout:     time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		BackendTimeout:      time.Second * time.Duration(getEnvInt("BACKEND_TIMEOUT_SECONDS", 60)),
		PollinationsBaseURL: getEnv("POLLINATIONS_BASE_URL", "https://image.pollinations.ai"),
		PollinationsModels:  splitList(getEnv("POLLINATIONS_MODELS", "flux,turbo")),
		HuggingFaceAPIKey:   strings.TrimSpace(os.Getenv("HUGGINGFACE_API_KEY")),
		HuggingFaceBaseURL:  getEnv("HUGGINGFACE_BASE_URL", "https://router.huggingface.co/hf-inference/models"),
		HuggingFaceModel:    getEnv("HUGGINGFACE_MODEL", "black-forest-labs/FLUX.1-schnell"),
		OpenAIAPIKey:        strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIImageModel:    getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
	}

	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if cfg.BackendTimeout <= 0 {
		return nil, fmt.Errorf("BACKEND_TIMEOUT_SECONDS must be positive")
	}
	if cfg.HTTPReadTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_READ_TIMEOUT_SECONDS must be positive")
	}
	if cfg.HTTPWriteTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_WRITE_TIMEOUT_SECONDS must be positive")
	}
	if cfg.HTTPIdleTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_IDLE_TIMEOUT_SECONDS must be positive")
	}
	if len(cfg.PollinationsModels) == 0 {
		return nil, fmt.Errorf("POLLINATIONS_MODELS must list at least one model")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
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
