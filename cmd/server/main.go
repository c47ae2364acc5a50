package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/youruser/markx-images/internal/api"
	"github.com/youruser/markx-images/internal/compose"
	"github.com/youruser/markx-images/internal/config"
	imagepkg "github.com/youruser/markx-images/internal/image"
	"github.com/youruser/markx-images/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Fonts are loaded before serving so a missing asset stops the server
	// instead of failing the first request.
	fonts := imagepkg.NewFontRegistry(cfg.FontPath, cfg.FontFamily)
	if err := fonts.EnsureLoaded(); err != nil {
		slog.Error("unable to load font", "error", err)
		os.Exit(1)
	}

	sink, err := newSink(context.Background(), cfg)
	if err != nil {
		slog.Error("unable to set up blob sink", "sink", cfg.Sink, "error", err)
		os.Exit(1)
	}

	svc := &compose.Service{
		Source:      imagepkg.NewHTTPSource(cfg.FetchTimeout, cfg.MaxImageBytes),
		Sink:        sink,
		Renderer:    imagepkg.NewRenderer(fonts, imagepkg.NewRandomJitter(time.Now().UnixNano())),
		Logger:      logger,
		JPEGQuality: cfg.JPEGQuality,
		Concurrency: cfg.FetchConcurrency,
	}

	r := gin.Default()
	api.RegisterRoutes(r, &api.Handler{Composer: svc, Logger: logger})
	if cfg.Sink == config.SinkLocal {
		r.Static("/blobs", cfg.LocalDir)
	}

	slog.Info("starting server", "addr", "http://localhost:"+cfg.Port, "sink", cfg.Sink, "font", fonts.DefaultFamily())
	if err := r.Run(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newSink(ctx context.Context, cfg config.Config) (storage.Sink, error) {
	if cfg.Sink == config.SinkS3 {
		return storage.NewS3Sink(ctx, cfg.S3Bucket, cfg.S3Region)
	}
	return storage.NewLocalSink(cfg.LocalDir, cfg.PublicBaseURL)
}
