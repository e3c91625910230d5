package internal

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the fallback service address used when
// STITCH_BASE_URL is not set. Deployments targeting another
// environment must override it explicitly.
const DefaultBaseURL = "https://api.stitch.dev"

type Config struct {
	BaseURL   string `env:"STITCH_BASE_URL"`
	UserAgent string `env:"STITCH_USER_AGENT"`

	Tokenizer         string `env:"TOKENIZER,default=word-estimate"`
	MaxTokens         int    `env:"MAX_TOKENS,default=1024"`
	ChunkMethod       string `env:"CHUNK_METHOD,default=paragraph"`
	PreserveStructure bool   `env:"PRESERVE_STRUCTURE,default=true"`
	ExportFormat      string `env:"EXPORT_FORMAT,default=jsonl"`

	MaxAttempts  int           `env:"MAX_ATTEMPTS,default=3"`
	BaseDelay    time.Duration `env:"BASE_DELAY,default=1s"`
	MaxJitter    time.Duration `env:"MAX_JITTER,default=500ms"`
	PollInterval time.Duration `env:"POLL_INTERVAL,default=1s"`

	LogLevel string `env:"LOG_LEVEL,default=INFO"`
}

// ServiceBaseURL resolves the effective service address: empty falls back
// to DefaultBaseURL, a trailing slash is trimmed, and the scheme must be
// http or https.
func ServiceBaseURL(raw string) (string, error) {
	if raw == "" {
		raw = DefaultBaseURL
	}
	raw = strings.TrimRight(raw, "/")

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("STITCH_BASE_URL is not a valid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf(
			"STITCH_BASE_URL must use http or https, got %q",
			raw,
		)
	}
	return raw, nil
}
