package image

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// PollinationsOptions configures a Pollinations text-to-image backend.
type PollinationsOptions struct {
	BaseURL    string
	Model      string
	Width      int
	Height     int
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Pollinations renders prompts through the free image.pollinations.ai
// endpoint. No credentials are needed; the model is part of the query.
type Pollinations struct {
	baseURL    string
	model      string
	width      int
	height     int
	httpClient *http.Client
}

// NewPollinations constructs a backend with defaults for unset options.
func NewPollinations(opts PollinationsOptions) *Pollinations {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://image.pollinations.ai"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "flux"
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 1024
	}
	if height <= 0 {
		height = 1024
	}
	return &Pollinations{
		baseURL:    baseURL,
		model:      model,
		width:      width,
		height:     height,
		httpClient: newHTTPClient(opts.HTTPClient, opts.Timeout),
	}
}

// Name identifies the backend and model, e.g. "pollinations-flux".
func (p *Pollinations) Name() string {
	return "pollinations-" + p.model
}

// Model returns the configured model identifier.
func (p *Pollinations) Model() string {
	return p.model
}

// Generate fetches the rendered image for prompt.
func (p *Pollinations) Generate(ctx context.Context, prompt string) ([]byte, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("pollinations: prompt is required")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("pollinations: build request: %w", err)
	}
	return doRequest(p.httpClient, req, "pollinations")
}

func (p *Pollinations) endpoint(prompt string) string {
	query := url.Values{}
	query.Set("width", strconv.Itoa(p.width))
	query.Set("height", strconv.Itoa(p.height))
	query.Set("model", p.model)
	query.Set("nologo", "true")
	query.Set("enhance", "true")
	return p.baseURL + "/prompt/" + url.PathEscape(prompt) + "?" + query.Encode()
}

var _ Backend = (*Pollinations)(nil)
