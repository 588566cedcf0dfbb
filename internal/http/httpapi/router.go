package httpapi

import (
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/n00baim/slug-generator-app/internal/http/handlers"
	"github.com/n00baim/slug-generator-app/internal/infra"
	"github.com/n00baim/slug-generator-app/internal/middleware"
)

// RouterOptions carries the optional pieces of the router.
type RouterOptions struct {
	Logger         infra.Logger
	AllowedOrigins []string
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
	// StaticDir is served at / when it exists.
	StaticDir string
}

func NewRouter(app *handlers.App, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		middleware.Logger(opts.Logger),
		chimiddleware.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.Health)
		r.Post("/generate-slug", app.GenerateSlug)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	if dir := strings.TrimSpace(opts.StaticDir); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			r.Handle("/*", http.FileServer(http.Dir(dir)))
		}
	}

	return r
}
