package news

import (
	"net/url"
	"sort"
	"strings"
	"time"
)

// Query parameters that only carry campaign or referral tracking.
var trackingParams = map[string]bool{
	"gclid":  true,
	"fbclid": true,
	"mc_cid": true,
	"mc_eid": true,
	"ref":    true,
	"spm":    true,
	"igshid": true,
}

func isTrackingParam(key string) bool {
	return strings.HasPrefix(key, "utm_") || trackingParams[key]
}

// Canonicalize returns the identity of a link used for deduplication.
//
// Absolute URLs lose their tracking query parameters; the remaining
// parameters keep their order and encoding. Anything that is not an absolute
// URL is trimmed and lowercased instead.
func Canonicalize(link string) string {
	if link == "" {
		return ""
	}

	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.ToLower(strings.TrimSpace(link))
	}

	u.Host = strings.ToLower(u.Host)
	if (u.Scheme == "http" || u.Scheme == "https") && u.Path == "" && u.Opaque == "" {
		u.Path = "/"
	}

	if u.RawQuery != "" {
		var kept []string
		for _, pair := range strings.Split(u.RawQuery, "&") {
			if pair == "" {
				continue
			}
			key, _, _ := strings.Cut(pair, "=")
			if k, err := url.QueryUnescape(key); err == nil {
				key = k
			}
			if isTrackingParam(key) {
				continue
			}
			kept = append(kept, pair)
		}
		u.RawQuery = strings.Join(kept, "&")
	}

	return strings.TrimSuffix(u.String(), "?")
}

// dedupeKey is the canonical link, or the lowercased title for link-less items.
func dedupeKey(item Item) string {
	if key := Canonicalize(item.Link); key != "" {
		return key
	}
	return strings.ToLower(item.Title)
}

// Dedupe keeps the first item for every identity key, preserving input order.
func Dedupe(items []Item) []Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		key := dedupeKey(it)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}

// publishedMillis treats undated items as the Unix epoch.
func publishedMillis(item Item) int64 {
	if item.Published == nil {
		return 0
	}
	return item.Published.UnixMilli()
}

// SortByPublishedDesc returns a copy of items, newest first. Undated items
// sort as the oldest; ties keep their input order.
func SortByPublishedDesc(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return publishedMillis(out[i]) > publishedMillis(out[j])
	})
	return out
}

// WithinLookback reports whether item was published at or after cutoff.
// Undated items are always considered recent.
func WithinLookback(item Item, cutoff time.Time) bool {
	if item.Published == nil {
		return true
	}
	return !item.Published.Before(cutoff)
}

// FilterLookback keeps the items that are within the lookback window.
func FilterLookback(items []Item, cutoff time.Time) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if WithinLookback(it, cutoff) {
			out = append(out, it)
		}
	}
	return out
}
