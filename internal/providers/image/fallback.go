package image

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/n00baim/slug-generator-app/internal/domain"
	"github.com/n00baim/slug-generator-app/internal/infra"
)

// Attempt outcomes reported to a Recorder.
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeSkipped   = "skipped"
	OutcomeExhausted = "exhausted"
)

// Recorder observes the fallback chain. The metrics collector implements it.
type Recorder interface {
	ObserveAttempt(backend, outcome string, elapsed time.Duration)
	ObserveGeneration(backend, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveAttempt(string, string, time.Duration) {}
func (nopRecorder) ObserveGeneration(string, string) {}

// Attempt records why one backend did not produce an image.
type Attempt struct {
	Backend string
	Err     error
}

// ExhaustionError is returned when every backend in the chain failed. The
// message names the last backend tried; Attempts keeps the full history.
type ExhaustionError struct {
	Attempts []Attempt
}

func (e *ExhaustionError) Error() string {
	if len(e.Attempts) == 0 {
		return domain.ErrNoBackendsConfigured.Error()
	}
	last := e.Attempts[len(e.Attempts)-1]
	return fmt.Sprintf("%s, last error from %s: %v", domain.ErrBackendsExhausted, last.Backend, last.Err)
}

// Is matches domain.ErrBackendsExhausted, and domain.ErrNoBackendsConfigured
// for an empty chain.
func (e *ExhaustionError) Is(target error) bool {
	if target == domain.ErrBackendsExhausted {
		return true
	}
	return len(e.Attempts) == 0 && target == domain.ErrNoBackendsConfigured
}

func (e *ExhaustionError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a.Err)
	}
	return errs
}

// Messages renders each attempt as "backend: error" in attempt order.
func (e *ExhaustionError) Messages() []string {
	out := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		out = append(out, a.Backend+": "+a.Err.Error())
	}
	return out
}

// BackendStatus describes one configured backend for health reporting.
type BackendStatus struct {
	Name               string
	RequiresCredential bool
	Configured         bool
}

// FallbackOptions configures a FallbackGenerator.
type FallbackOptions struct {
	Backends []Backend
	// Timeout bounds each backend call. Zero leaves the call bounded only by
	// the caller's context and the backend's HTTP client.
	Timeout  time.Duration
	Logger   *infra.Logger
	Recorder Recorder
}

// FallbackGenerator tries its backends one after another and returns the
// first image produced. Backends are never raced: a later backend is only
// called once the previous one has failed.
type FallbackGenerator struct {
	backends []Backend
	timeout  time.Duration
	logger   *infra.Logger
	recorder Recorder
}

// NewFallbackGenerator copies the backend list; the order is the priority.
func NewFallbackGenerator(opts FallbackOptions) *FallbackGenerator {
	backends := make([]Backend, 0, len(opts.Backends))
	for _, b := range opts.Backends {
		if b != nil {
			backends = append(backends, b)
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	var recorder Recorder = nopRecorder{}
	if opts.Recorder != nil {
		recorder = opts.Recorder
	}
	return &FallbackGenerator{
		backends: backends,
		timeout:  opts.Timeout,
		logger:   logger,
		recorder: recorder,
	}
}

// Names lists the backends in priority order.
func (g *FallbackGenerator) Names() []string {
	names := make([]string, 0, len(g.backends))
	for _, b := range g.backends {
		names = append(names, b.Name())
	}
	return names
}

// Statuses reports, per backend, whether it needs and has a credential.
func (g *FallbackGenerator) Statuses() []BackendStatus {
	out := make([]BackendStatus, 0, len(g.backends))
	for _, b := range g.backends {
		status := BackendStatus{Name: b.Name(), Configured: true}
		if gated, ok := b.(CredentialedBackend); ok {
			status.RequiresCredential = true
			status.Configured = gated.HasCredentials()
		}
		out = append(out, status)
	}
	return out
}

// Generate returns the image of the first backend that succeeds. When all of
// them fail it returns an *ExhaustionError. Each backend gets one attempt.
func (g *FallbackGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, domain.ErrEmptyPrompt
	}
	attempts := make([]Attempt, 0, len(g.backends))
	for i, backend := range g.backends {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := backend.Name()

		if gated, ok := backend.(CredentialedBackend); ok && !gated.HasCredentials() {
			attempts = append(attempts, Attempt{Backend: name, Err: domain.ErrMissingCredential})
			g.recorder.ObserveAttempt(name, OutcomeSkipped, 0)
			g.logger.Debug().Str("backend", name).Msg("image: skipping backend without credentials")
			continue
		}

		g.logger.Debug().Str("backend", name).Int("position", i+1).Msg("image: trying backend")
		start := time.Now()
		data, err := g.invoke(ctx, backend, prompt)
		elapsed := time.Since(start)
		if err == nil {
			g.recorder.ObserveAttempt(name, OutcomeSuccess, elapsed)
			g.recorder.ObserveGeneration(name, OutcomeSuccess)
			g.logger.Info().
				Str("backend", name).
				Int("bytes", len(data)).
				Dur("elapsed", elapsed).
				Msg("image: backend produced image")
			return data, nil
		}

		attempts = append(attempts, Attempt{Backend: name, Err: err})
		g.recorder.ObserveAttempt(name, OutcomeFailure, elapsed)
		g.logger.Warn().
			Err(err).
			Str("backend", name).
			Dur("elapsed", elapsed).
			Bool("timeout", errors.Is(err, context.DeadlineExceeded)).
			Msg("image: backend failed, falling through")
	}

	exhausted := &ExhaustionError{Attempts: attempts}
	g.recorder.ObserveGeneration("", OutcomeExhausted)
	g.logger.Error().
		Strs("attempts", exhausted.Messages()).
		Msg("image: all backends failed")
	return nil, exhausted
}

func (g *FallbackGenerator) invoke(ctx context.Context, backend Backend, prompt string) ([]byte, error) {
	if g.timeout <= 0 {
		return backend.Generate(ctx, prompt)
	}
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return backend.Generate(callCtx, prompt)
}
