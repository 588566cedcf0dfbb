package image

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultRequestTimeout = 60 * time.Second
	maxResponseBytes      = 32 << 20
	maxErrorExcerpt       = 256
)

// Backend is the contract implemented by every text-to-image service the
// generator can fall back to. Implementations must be safe for concurrent use.
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// CredentialedBackend is implemented by backends that need an API key. The
// fallback chain skips them without any network call when HasCredentials
// reports false.
type CredentialedBackend interface {
	Backend
	HasCredentials() bool
}

// placeholderCredentials are values shipped in sample .env files.
var placeholderCredentials = map[string]struct{}{
	"your_huggingface_token_here":   {},
	"your_huggingface_api_key_here": {},
	"your_openai_api_key_here":      {},
	"your_api_key_here":             {},
	"changeme":                      {},
}

// CredentialPresent reports whether key looks like a real credential rather
// than an empty or sample value.
func CredentialPresent(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	_, placeholder := placeholderCredentials[strings.ToLower(key)]
	return !placeholder
}

// StatusError reports a non-2xx answer from a backend.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Body)
}

func newHTTPClient(client *http.Client, timeout time.Duration) *http.Client {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &http.Client{Timeout: timeout}
}

// doRequest executes req and returns the raw body of a 2xx response.
func doRequest(client *http.Client, req *http.Request, provider string) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: http request: %w", provider, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", provider, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{Provider: provider, StatusCode: resp.StatusCode, Body: excerpt(raw)}
	}
	if len(raw) > maxResponseBytes {
		return nil, fmt.Errorf("%s: response exceeds %d bytes", provider, maxResponseBytes)
	}
	return raw, nil
}

func excerpt(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > maxErrorExcerpt {
		text = text[:maxErrorExcerpt] + "..."
	}
	return text
}
