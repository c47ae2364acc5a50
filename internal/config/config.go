// Package config reads server settings from the environment, after loading
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	SinkLocal = "local"
	SinkS3    = "s3"
)

type Config struct {
	Port string

	FontPath   string
	FontFamily string

	Sink          string
	LocalDir      string
	PublicBaseURL string
	S3Bucket      string
	S3Region      string

	FetchTimeout     time.Duration
	FetchConcurrency int
	MaxImageBytes    int64
	JPEGQuality      int
}

// Load reads envFile if it exists, then builds the configuration from the
// process environment. Variables already set in the environment win over the
// file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	port := getenv("PORT", "8080")
	cfg := Config{
		Port:          port,
		FontPath:      os.Getenv("FONT_PATH"),
		FontFamily:    os.Getenv("FONT_FAMILY"),
		Sink:          getenv("SINK", SinkLocal),
		LocalDir:      getenv("LOCAL_DIR", "blobs"),
		PublicBaseURL: getenv("PUBLIC_BASE_URL", "http://localhost:"+port+"/blobs"),
		S3Bucket:      getenv("S3_BUCKET", "markx-bucket"),
		S3Region:      os.Getenv("S3_REGION"),
	}

	var err error
	if cfg.FetchTimeout, err = time.ParseDuration(getenv("FETCH_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
	}
	if cfg.FetchConcurrency, err = strconv.Atoi(getenv("FETCH_CONCURRENCY", "4")); err != nil {
		return Config{}, fmt.Errorf("invalid FETCH_CONCURRENCY: %w", err)
	}
	if cfg.MaxImageBytes, err = strconv.ParseInt(getenv("MAX_IMAGE_BYTES", "20971520"), 10, 64); err != nil {
		return Config{}, fmt.Errorf("invalid MAX_IMAGE_BYTES: %w", err)
	}
	if cfg.JPEGQuality, err = strconv.Atoi(getenv("JPEG_QUALITY", "90")); err != nil {
		return Config{}, fmt.Errorf("invalid JPEG_QUALITY: %w", err)
	}
	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return Config{}, fmt.Errorf("invalid JPEG_QUALITY: %d not in [1,100]", cfg.JPEGQuality)
	}

	switch cfg.Sink {
	case SinkLocal, SinkS3:
	default:
		return Config{}, fmt.Errorf("invalid SINK %q: use %q or %q", cfg.Sink, SinkLocal, SinkS3)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
