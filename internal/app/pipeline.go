package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericseppanen999/TLDR-tech-app/internal/logger"
	"github.com/ericseppanen999/TLDR-tech-app/internal/metrics"
	"github.com/ericseppanen999/TLDR-tech-app/internal/news"
	"github.com/ericseppanen999/TLDR-tech-app/internal/rss"
	"github.com/ericseppanen999/TLDR-tech-app/internal/summarize"
)

// summaryItemsPerCategory caps each section handed to the summarizer.
const summaryItemsPerCategory = 24

// FeedFetcher downloads and parses a single source.
type FeedFetcher interface {
	Fetch(ctx context.Context, src news.Source) ([]news.Item, error)
}

// Pipeline collects items from every source into one recency-ordered list.
type Pipeline struct {
	fetcher  FeedFetcher
	sources  []news.Source
	lookback time.Duration
	metrics  *metrics.Metrics
}

func NewPipeline(f FeedFetcher, sources []news.Source, lookback time.Duration, m *metrics.Metrics) *Pipeline {
	if m == nil {
		m = metrics.New()
	}
	return &Pipeline{fetcher: f, sources: sources, lookback: lookback, metrics: m}
}

// Collect fetches all sources, drops items older than the lookback window
// relative to now, removes duplicates and sorts newest first.
func (p *Pipeline) Collect(ctx context.Context, now time.Time) []news.Item {
	var merged []news.Item
	for _, items := range p.fetchAll(ctx) {
		merged = append(merged, items...)
	}

	recent := news.FilterLookback(merged, now.Add(-p.lookback))
	deduped := news.Dedupe(recent)

	p.metrics.AddOutsideLookback(len(merged) - len(recent))
	p.metrics.AddDuplicatesFiltered(len(recent) - len(deduped))

	return news.SortByPublishedDesc(deduped)
}

type fetchResult struct {
	items []news.Item
	err   error
}

// fetchAll runs every source concurrently. A failed source yields no items;
// the result keeps the configured source order.
func (p *Pipeline) fetchAll(ctx context.Context) [][]news.Item {
	results := make([]fetchResult, len(p.sources))

	var g errgroup.Group
	for i, src := range p.sources {
		i, src := i, src
		g.Go(func() error {
			ctx := logger.Ctx(ctx, slog.String("source", src.Name))

			items, err := p.fetcher.Fetch(ctx, src)
			if err != nil {
				attrs := []any{"url", src.URL, "error", err}
				var statusErr *rss.StatusError
				if errors.As(err, &statusErr) {
					attrs = append(attrs, "status", statusErr.Code)
				}
				slog.WarnContext(ctx, "Failed to fetch feed", attrs...)
				results[i] = fetchResult{err: err}
				return nil
			}

			results[i] = fetchResult{items: applyFeedFilter(src, items)}
			slog.DebugContext(ctx, "Feed collected", "items", len(results[i].items))
			return nil
		})
	}
	// Tasks never return an error; Wait only joins them.
	_ = g.Wait()

	out := make([][]news.Item, len(results))
	for i, r := range results {
		p.metrics.RecordFetch(len(r.items), r.err)
		out[i] = r.items
	}
	return out
}

// applyFeedFilter gates a source's items by its configured classifier.
func applyFeedFilter(src news.Source, items []news.Item) []news.Item {
	var keep func(news.Item) bool
	switch src.Filter {
	case news.FilterHiring:
		keep = news.IsHiringNews
	case news.FilterTech:
		keep = news.IsTechNews
	default:
		return items
	}

	out := make([]news.Item, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// summaryInput groups sorted items by section for the summarizer.
func summaryInput(sorted []news.Item) []summarize.Section {
	sections := make([]summarize.Section, 0, len(news.Sections))
	for _, s := range news.Sections {
		sections = append(sections, summarize.Section{
			Category: s.Category,
			Title:    s.Title,
			Items:    news.ByCategory(sorted, s.Category, summaryItemsPerCategory),
		})
	}
	return sections
}
