package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/n00baim/slug-generator-app/internal/infra"
	"github.com/n00baim/slug-generator-app/internal/providers/image"
)

const defaultMaxUploadBytes = 5 * 1024 * 1024

// ImageGenerator is the part of the fallback generator the handlers use.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
	Statuses() []image.BackendStatus
}

// UploadRecorder counts uploads; the metrics collector implements it.
type UploadRecorder interface {
	ObserveUpload(result string, size int)
}

// Options wires the handler dependencies.
type Options struct {
	Generator      ImageGenerator
	Logger         *infra.Logger
	Uploads        UploadRecorder
	MaxUploadBytes int64
}

type App struct {
	generator      ImageGenerator
	logger         *infra.Logger
	uploads        UploadRecorder
	maxUploadBytes int64
}

func NewApp(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	return &App{
		generator:      opts.Generator,
		logger:         logger,
		uploads:        opts.Uploads,
		maxUploadBytes: maxUpload,
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errText, message string) {
	a.json(w, code, errorResponse{Error: errText, Message: message})
}

func (a *App) observeUpload(result string, size int) {
	if a.uploads != nil {
		a.uploads.ObserveUpload(result, size)
	}
}
