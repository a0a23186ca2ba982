package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ericseppanen999/TLDR-tech-app/internal/news"
)

//go:embed feeds.yaml
var defaultFeeds []byte

// FeedsConfig is YAML config structure
// feeds:
//   - name: TechCrunch
//     url: https://techcrunch.com/feed/
//     category: tech
//     filter: all
type FeedsConfig struct {
	Feeds []news.Source `yaml:"feeds"`
}

// LoadFeeds reads the feed list from path, or the built-in list when path is empty.
func LoadFeeds(path string) ([]news.Source, error) {
	data := defaultFeeds
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading feeds file: %w", err)
		}
		data = b
	}
	return ParseFeeds(data)
}

// ParseFeeds decodes and validates a YAML feed list.
func ParseFeeds(data []byte) ([]news.Source, error) {
	var cfg FeedsConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding feeds: %w", err)
	}

	for i, f := range cfg.Feeds {
		if f.Name == "" || f.URL == "" {
			return nil, fmt.Errorf("feed %d: name and url are required", i)
		}
		if !f.Category.Valid() {
			return nil, fmt.Errorf("feed %q: unknown category %q", f.Name, f.Category)
		}
		if f.Filter == "" {
			cfg.Feeds[i].Filter = news.FilterAll
		} else if !f.Filter.Valid() {
			return nil, fmt.Errorf("feed %q: unknown filter %q", f.Name, f.Filter)
		}
	}
	return cfg.Feeds, nil
}
