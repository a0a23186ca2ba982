package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	SourcesFetched       int64
	SourcesFailed        int64
	ItemsFetched         int64
	ItemsOutsideLookback int64
	DuplicatesFiltered   int64
	ItemsRendered        int64
	HighlightsGenerated  int64
	DigestsSent          int64

	// Timings
	LastProcessingTime time.Duration

	// Status
	LastRunTime time.Time
	LastError   string
	IsHealthy   bool
}

var Global = New()

func New() *Metrics {
	return &Metrics{IsHealthy: true}
}

// RecordFetch counts one source fetch attempt and the items it produced.
func (m *Metrics) RecordFetch(items int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.SourcesFailed++
		return
	}
	m.SourcesFetched++
	m.ItemsFetched += int64(items)
}

func (m *Metrics) AddOutsideLookback(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsOutsideLookback += int64(n)
}

func (m *Metrics) AddDuplicatesFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += int64(n)
}

func (m *Metrics) AddItemsRendered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsRendered += int64(n)
}

func (m *Metrics) IncrementHighlightsGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HighlightsGenerated++
}

func (m *Metrics) IncrementDigestsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DigestsSent++
}

func (m *Metrics) RecordProcessingTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastProcessingTime = duration
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"sources_fetched":         m.SourcesFetched,
		"sources_failed":          m.SourcesFailed,
		"items_fetched":           m.ItemsFetched,
		"items_outside_lookback":  m.ItemsOutsideLookback,
		"duplicates_filtered":     m.DuplicatesFiltered,
		"items_rendered":          m.ItemsRendered,
		"highlights_generated":    m.HighlightsGenerated,
		"digests_sent":            m.DigestsSent,
		"last_processing_time_ms": m.LastProcessingTime.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
