package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/doctext/doctext/docstring"
)

type Config struct {
	Port string

	// Auth. Empty disables bearer auth.
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Converter cache
	PoolSize int

	// PDF
	PDFFallbackPdftotext bool

	// Server-side conversion defaults, overridable per request.
	Convert docstring.Options
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("DOCTEXT_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PoolSize: envInt("POOL_SIZE", docstring.DefaultPoolSize),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		Convert: docstring.Options{
			IndentEmptyLines: envBool("DEFAULT_INDENT_EMPTY_LINES", false),
			MinimizeIndents:  envBool("DEFAULT_MINIMIZE_INDENTS", true),
			ListWithIndent:   envBool("DEFAULT_LIST_WITH_INDENT", true),
			ListNoIndent:     envBool("DEFAULT_LIST_NO_INDENT", true),
			TabSize:          envInt("DEFAULT_TAB_SIZE", docstring.DefaultTabSize),
			InBullets:        envOr("DEFAULT_IN_BULLETS", docstring.DefaultInBullets),
			OutBullets:       os.Getenv("DEFAULT_OUT_BULLETS"),
		},
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = docstring.DefaultPoolSize
	}

	return cfg
}

func (c Config) Validate() error {
	if _, err := docstring.New(c.Convert); err != nil {
		return fmt.Errorf("conversion defaults: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
