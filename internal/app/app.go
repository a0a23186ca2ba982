// Package app wires feed collection, rendering, highlights and delivery into
// a single digest run.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ericseppanen999/TLDR-tech-app/internal/claude"
	"github.com/ericseppanen999/TLDR-tech-app/internal/config"
	"github.com/ericseppanen999/TLDR-tech-app/internal/digest"
	"github.com/ericseppanen999/TLDR-tech-app/internal/gemini"
	"github.com/ericseppanen999/TLDR-tech-app/internal/mailer"
	"github.com/ericseppanen999/TLDR-tech-app/internal/metrics"
	"github.com/ericseppanen999/TLDR-tech-app/internal/news"
	"github.com/ericseppanen999/TLDR-tech-app/internal/rss"
	"github.com/ericseppanen999/TLDR-tech-app/internal/summarize"
)

// Sender delivers a rendered digest.
type Sender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

type App struct {
	cfg        *config.Config
	pipeline   *Pipeline
	summarizer *summarize.Summarizer
	sender     Sender
	out        io.Writer
	now        func() time.Time
	metrics    *metrics.Metrics
}

// RunOnce performs one full digest run. Only a delivery failure is returned;
// fetch and summarization problems degrade the digest instead.
func (a *App) RunOnce(ctx context.Context) error {
	start := time.Now()
	now := a.now().UTC()

	items := a.pipeline.Collect(ctx, now)

	highlights, ok := a.summarizer.Summarize(ctx, summaryInput(items))
	if ok {
		a.metrics.IncrementHighlightsGenerated()
	}

	d := digest.Render(items, a.cfg.MaxItemsPerSection, now, highlights)
	a.metrics.AddItemsRendered(renderedCount(items, a.cfg.MaxItemsPerSection))

	defer func() {
		a.metrics.RecordProcessingTime(time.Since(start))
		slog.InfoContext(ctx, "Digest run finished", "stats", a.metrics.GetStats())
	}()

	if a.cfg.DryRun {
		slog.InfoContext(ctx, "Dry run, skipping delivery", "items", len(items))
		if _, err := fmt.Fprintln(a.out, d.Text); err != nil {
			return fmt.Errorf("failed to write digest: %w", err)
		}
		a.metrics.SetLastRun()
		return nil
	}

	err := a.sender.Send(ctx, mailer.Message{
		From:    a.cfg.From,
		To:      a.cfg.To,
		Subject: a.cfg.Subject,
		Text:    d.Text,
		HTML:    d.HTML,
	})
	if err != nil {
		a.metrics.SetError(err.Error())
		return err
	}

	a.metrics.IncrementDigestsSent()
	a.metrics.SetLastRun()
	slog.InfoContext(ctx, "Digest sent", "to", strings.Join(a.cfg.To, ", "))
	return nil
}

func renderedCount(items []news.Item, maxPerSection int) int {
	n := 0
	for _, s := range news.Sections {
		n += len(news.ByCategory(items, s.Category, maxPerSection))
	}
	return n
}

// Run builds the collaborators described by cfg and performs one run.
func Run(ctx context.Context, cfg *config.Config) error {
	sources, err := config.LoadFeeds(cfg.FeedsConfigPath)
	if err != nil {
		return err
	}

	completer, closeCompleter := newCompleter(ctx, cfg)
	defer closeCompleter()

	var summarizer *summarize.Summarizer
	if completer != nil {
		summarizer = summarize.New(completer, cfg.SummarizeTop)
	}

	a := &App{
		cfg:        cfg,
		pipeline:   NewPipeline(rss.NewFetcher(cfg.FetchTimeout, cfg.FetchAttempts), sources, cfg.Lookback(), metrics.Global),
		summarizer: summarizer,
		sender: mailer.New(mailer.Settings{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			Secure:   cfg.SMTPSecure,
		}),
		out:     os.Stdout,
		now:     time.Now,
		metrics: metrics.Global,
	}

	slog.InfoContext(ctx, "Starting digest run", "sources", len(sources), "lookback", cfg.Lookback(), "dry_run", cfg.DryRun)
	return a.RunOnce(ctx)
}

// newGeminiClient is swapped out in tests.
var newGeminiClient = gemini.NewClient

// newCompleter picks the highlight backend. It returns a nil Completer when
// summarization is off, the provider has no API key, or the client cannot be
// built; highlights are optional, so none of these fail the run.
func newCompleter(ctx context.Context, cfg *config.Config) (summarize.Completer, func()) {
	noop := func() {}
	if !cfg.SummarizeEnabled {
		return nil, noop
	}

	switch cfg.SummarizeProvider {
	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			slog.WarnContext(ctx, "ANTHROPIC_API_KEY not set, highlights disabled")
			return nil, noop
		}
		return claude.NewClient(cfg.AnthropicAPIKey, cfg.SummarizeModel), noop
	default:
		if cfg.GeminiAPIKey == "" {
			slog.WarnContext(ctx, "GEMINI_API_KEY not set, highlights disabled")
			return nil, noop
		}
		c, err := newGeminiClient(ctx, cfg.GeminiAPIKey, cfg.SummarizeModel)
		if err != nil {
			slog.WarnContext(ctx, "Failed to create Gemini client, highlights disabled", "error", err)
			return nil, noop
		}
		return c, c.Close
	}
}
