package image

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/n00baim/slug-generator-app/internal/domain"
)

// OpenAIOptions configures the OpenAI images backend.
type OpenAIOptions struct {
	APIKey     string
	BaseURL    string
	Model      string
	Size       string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// OpenAI renders prompts with the OpenAI Images API. Responses are requested
// as base64 so the bytes arrive in the same call.
type OpenAI struct {
	apiKey string
	model  string
	size   string
	client *openai.Client
}

// NewOpenAI constructs the backend. A client is built even without an API
// key so HasCredentials can gate it in the fallback chain.
func NewOpenAI(opts OpenAIOptions) *OpenAI {
	apiKey := strings.TrimSpace(opts.APIKey)
	cfg := openai.DefaultConfig(apiKey)
	if base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"); base != "" {
		cfg.BaseURL = base
	}
	cfg.HTTPClient = newHTTPClient(opts.HTTPClient, opts.Timeout)

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = openai.CreateImageModelDallE3
	}
	size := strings.TrimSpace(opts.Size)
	if size == "" {
		size = openai.CreateImageSize1024x1024
	}
	return &OpenAI{
		apiKey: apiKey,
		model:  model,
		size:   size,
		client: openai.NewClientWithConfig(cfg),
	}
}

func (o *OpenAI) Name() string {
	return "openai-" + o.model
}

// HasCredentials reports whether a usable API key is configured.
func (o *OpenAI) HasCredentials() bool {
	return CredentialPresent(o.apiKey)
}

// Generate requests a single image and returns its decoded bytes.
func (o *OpenAI) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if !o.HasCredentials() {
		return nil, fmt.Errorf("openai: %w", domain.ErrMissingCredential)
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("openai: prompt is required")
	}
	resp, err := o.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          o.model,
		N:              1,
		Size:           o.size,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: create image: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, errors.New("openai: empty image payload")
	}
	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("openai: decode image: %w", err)
	}
	return data, nil
}

var _ CredentialedBackend = (*OpenAI)(nil)
