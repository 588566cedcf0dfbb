package image

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/n00baim/slug-generator-app/internal/domain"
)

// HuggingFaceOptions configures the Hugging Face inference backend.
type HuggingFaceOptions struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// HuggingFace posts prompts to a hosted text-to-image model on the Hugging
// Face inference API. It requires an access token.
type HuggingFace struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

type huggingFaceRequest struct {
	Inputs string `json:"inputs"`
}

// NewHuggingFace constructs the backend with defaults for unset options.
func NewHuggingFace(opts HuggingFaceOptions) *HuggingFace {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://router.huggingface.co/hf-inference/models"
	}
	model := strings.Trim(strings.TrimSpace(opts.Model), "/")
	if model == "" {
		model = "black-forest-labs/FLUX.1-schnell"
	}
	return &HuggingFace{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		model:      model,
		httpClient: newHTTPClient(opts.HTTPClient, opts.Timeout),
	}
}

func (h *HuggingFace) Name() string {
	return "huggingface"
}

// Model returns the configured model repository.
func (h *HuggingFace) Model() string {
	return h.model
}

// HasCredentials reports whether a usable access token is configured.
func (h *HuggingFace) HasCredentials() bool {
	return CredentialPresent(h.apiKey)
}

// Generate posts the prompt and returns the image bytes of the response.
func (h *HuggingFace) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if !h.HasCredentials() {
		return nil, fmt.Errorf("huggingface: %w", domain.ErrMissingCredential)
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("huggingface: prompt is required")
	}
	body, err := json.Marshal(huggingFaceRequest{Inputs: prompt})
	if err != nil {
		return nil, fmt.Errorf("huggingface: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/"+h.model, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("huggingface: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/png")
	req.Header.Set("Authorization", "Bearer "+h.apiKey)

	return doRequest(h.httpClient, req, "huggingface")
}

var _ CredentialedBackend = (*HuggingFace)(nil)
