package rss

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ericseppanen999/TLDR-tech-app/internal/news"
	"github.com/ericseppanen999/TLDR-tech-app/internal/retry"
)

// UserAgent is sent with every feed request.
const UserAgent = "tldr-digest/0.1 (rss reader)"

// ErrUnexpectedStatus is matched by every *StatusError.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// StatusError reports a non-2xx feed response.
type StatusError struct {
	Source string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %d", e.Source, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Fetcher downloads and parses feeds.
type Fetcher struct {
	client   *http.Client
	attempts int
}

// NewFetcher returns a Fetcher with the given client timeout. attempts <= 1
// disables retries.
func NewFetcher(timeout time.Duration, attempts int) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		attempts: attempts,
	}
}

// Fetch downloads src and parses its entries.
func (f *Fetcher) Fetch(ctx context.Context, src news.Source) ([]news.Item, error) {
	var body []byte
	err := retry.WithRetry(ctx, retry.RetryConfig{
		MaxAttempts: f.attempts,
		Delay:       time.Second,
		Backoff:     true,
	}, func(ctx context.Context) error {
		b, err := f.get(ctx, src)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	items, err := Parse(src, body)
	if err != nil {
		return nil, fmt.Errorf("error parsing feed %s: %w", src.Name, err)
	}

	slog.DebugContext(ctx, "parsed feed", "items", len(items), "bytes", len(body))
	return items, nil
}

func (f *Fetcher) get(ctx context.Context, src news.Source) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("error building request: %w", err))
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error getting feed url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Source: src.Name, Code: resp.StatusCode}
		// Client errors will not fix themselves.
		if resp.StatusCode < 500 {
			return nil, retry.Permanent(statusErr)
		}
		return nil, statusErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading feed body: %w", err)
	}
	return body, nil
}
