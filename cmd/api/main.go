package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/n00baim/slug-generator-app/internal/http/handlers"
	"github.com/n00baim/slug-generator-app/internal/http/httpapi"
	"github.com/n00baim/slug-generator-app/internal/infra"
	"github.com/n00baim/slug-generator-app/internal/metrics"
	"github.com/n00baim/slug-generator-app/internal/providers/image"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := metrics.NewCollector("slug")
	generator := image.NewFallbackGenerator(image.FallbackOptions{
		Backends: buildBackends(cfg),
		Timeout:  cfg.BackendTimeout,
		Logger:   &logger,
		Recorder: collector,
	})
	for _, status := range generator.Statuses() {
		event := logger.Info()
		if status.RequiresCredential && !status.Configured {
			event = logger.Warn()
		}
		event.
			Str("backend", status.Name).
			Bool("requires_credential", status.RequiresCredential).
			Bool("configured", status.Configured).
			Msg("image backend registered")
	}

	app := handlers.NewApp(handlers.Options{
		Generator:      generator,
		Logger:         &logger,
		Uploads:        collector,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:        collector.Handler(),
		StaticDir:      cfg.StaticDir,
	})
	server := infra.NewHTTPServer(cfg, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", server.Addr()).Msg("slug generator listening")
		return server.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped with error")
	}
	logger.Info().Msg("server stopped")
}

// buildBackends returns the fallback chain in priority order. The list is
// fixed for the life of the process.
func buildBackends(cfg *infra.Config) []image.Backend {
	httpClient := &http.Client{Timeout: cfg.BackendTimeout}

	backends := make([]image.Backend, 0, len(cfg.PollinationsModels)+2)
	for _, model := range cfg.PollinationsModels {
		backends = append(backends, image.NewPollinations(image.PollinationsOptions{
			BaseURL:    cfg.PollinationsBaseURL,
			Model:      model,
			HTTPClient: httpClient,
		}))
	}
	backends = append(backends,
		image.NewHuggingFace(image.HuggingFaceOptions{
			APIKey:     cfg.HuggingFaceAPIKey,
			BaseURL:    cfg.HuggingFaceBaseURL,
			Model:      cfg.HuggingFaceModel,
			HTTPClient: httpClient,
		}),
		image.NewOpenAI(image.OpenAIOptions{
			APIKey:     cfg.OpenAIAPIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			Model:      cfg.OpenAIImageModel,
			HTTPClient: httpClient,
		}),
	)
	return backends
}
