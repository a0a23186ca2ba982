// Package config loads the digest settings from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// ErrMissingRequired is returned when a required setting is absent or empty.
var ErrMissingRequired = errors.New("missing required configuration")

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	// SMTP delivery
	SMTPHost   string `env:"SMTP_HOST"`
	SMTPPort   int    `env:"SMTP_PORT, default=587"`
	SMTPUser   string `env:"SMTP_USER"`
	SMTPPass   string `env:"SMTP_PASS"`
	SMTPSecure bool   `env:"SMTP_SECURE, default=false"`

	// Digest
	From    string `env:"DIGEST_FROM"`
	ToList  string `env:"DIGEST_TO"` // comma-separated
	Subject string `env:"DIGEST_SUBJECT, default=Daily Tech + Hiring Digest"`

	LookbackHours      int  `env:"LOOKBACK_HOURS, default=36"`
	MaxItemsPerSection int  `env:"MAX_ITEMS_PER_SECTION, default=12"`
	DryRun             bool `env:"DRY_RUN, default=false"`

	// Highlights
	SummarizeEnabled  bool   `env:"SUMMARIZE_ENABLED, default=false"`
	SummarizeProvider string `env:"SUMMARIZE_PROVIDER, default=gemini"`
	SummarizeModel    string `env:"SUMMARIZE_MODEL"`
	SummarizeTop      int    `env:"SUMMARIZE_TOP, default=3"`
	GeminiAPIKey      string `env:"GEMINI_API_KEY"`
	AnthropicAPIKey   string `env:"ANTHROPIC_API_KEY"`

	// Feeds
	FeedsConfigPath string        `env:"FEEDS_CONFIG_PATH"`
	FetchTimeout    time.Duration `env:"FETCH_TIMEOUT, default=20s"`
	FetchAttempts   int           `env:"FETCH_ATTEMPTS, default=1"`

	// Which format to use for logging: either text or json
	LoggerFormat string `env:"LOGGER_FORMAT, default=text"`
	Debug        bool   `env:"DEBUG, default=false"`

	// To is ToList split on commas, trimmed, with empty entries dropped.
	To []string
}

// Load reads the configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads the configuration through l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.To = splitRecipients(cfg.ToList)

	return &cfg, cfg.Validate()
}

func splitRecipients(list string) []string {
	var out []string
	for _, addr := range strings.Split(list, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"SMTP_HOST", c.SMTPHost},
		{"SMTP_USER", c.SMTPUser},
		{"SMTP_PASS", c.SMTPPass},
		{"DIGEST_FROM", c.From},
		{"DIGEST_TO", c.ToList},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingRequired, r.name)
		}
	}
	if len(c.To) == 0 {
		return fmt.Errorf("%w: DIGEST_TO must contain at least one recipient", ErrMissingRequired)
	}

	if c.SummarizeProvider != ProviderGemini && c.SummarizeProvider != ProviderAnthropic {
		return fmt.Errorf("SUMMARIZE_PROVIDER must be '%s' or '%s'", ProviderGemini, ProviderAnthropic)
	}
	if c.LoggerFormat != "text" && c.LoggerFormat != "json" {
		return fmt.Errorf("LOGGER_FORMAT must be 'text' or 'json'")
	}
	if c.LookbackHours < 0 {
		return fmt.Errorf("LOOKBACK_HOURS must not be negative")
	}
	if c.MaxItemsPerSection < 0 {
		return fmt.Errorf("MAX_ITEMS_PER_SECTION must not be negative")
	}
	return nil
}

// Lookback is the lookback window as a duration.
func (c *Config) Lookback() time.Duration {
	return time.Duration(c.LookbackHours) * time.Hour
}
