package rss

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/mmcdole/gofeed/rss"

	"github.com/ericseppanen999/TLDR-tech-app/internal/news"
)

const untitled = "(untitled)"

// entry is the raw, format-independent shape of a feed entry before
// normalization.
type entry struct {
	title   value
	link    value
	dates   []value // in priority order
	summary []value // in priority order
}

// Parse turns a raw feed body into items for src.
//
// RSS (a document with a channel) and Atom (a feed document) are supported.
// Any other document yields no items and no error.
func Parse(src news.Source, body []byte) ([]news.Item, error) {
	var entries []entry

	switch gofeed.DetectFeedType(bytes.NewReader(body)) {
	case gofeed.FeedTypeRSS:
		feed, err := (&rss.Parser{}).Parse(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("error parsing rss: %w", err)
		}
		entries = rssEntries(feed)
	case gofeed.FeedTypeAtom:
		feed, err := (&atom.Parser{}).Parse(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("error parsing atom: %w", err)
		}
		entries = atomEntries(feed, atomLinkTexts(body))
	default:
		return nil, nil
	}

	items := make([]news.Item, 0, len(entries))
	for _, e := range entries {
		item, ok := normalizeEntry(src, e)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func rssEntries(feed *rss.Feed) []entry {
	entries := make([]entry, 0, len(feed.Items))
	for _, it := range feed.Items {
		e := entry{
			title: textValue(it.Title),
			link:  listValue(append([]value{textValue(it.Link)}, extensionLinks(it.Extensions)...)...),
			dates: []value{textValue(it.PubDate), textValue(it.Custom["date"])},
			summary: []value{
				textValue(it.Description),
				textValue(it.Content),
			},
		}
		if date := dublinCoreDate(it); date != "" {
			e.dates = append(e.dates, textValue(date))
		}
		entries = append(entries, e)
	}
	return entries
}

func dublinCoreDate(it *rss.Item) string {
	if it.DublinCoreExt != nil && len(it.DublinCoreExt.Date) > 0 {
		return it.DublinCoreExt.Date[0]
	}
	if dates := it.Extensions["dc"]["date"]; len(dates) > 0 {
		return dates[0].Value
	}
	return ""
}

// extensionLinks collects namespaced link elements (usually atom:link) that
// RSS items sometimes carry instead of, or next to, a plain link.
func extensionLinks(exts ext.Extensions) []value {
	spaces := make([]string, 0, len(exts))
	for space := range exts {
		spaces = append(spaces, space)
	}
	sort.Strings(spaces)

	var links []value
	for _, space := range spaces {
		for _, el := range exts[space]["link"] {
			links = append(links, nodeValue(el.Value, el.Attrs))
		}
	}
	return links
}

func atomEntries(feed *atom.Feed, texts [][]string) []entry {
	entries := make([]entry, 0, len(feed.Entries))
	for i, en := range feed.Entries {
		links := make([]value, 0, len(en.Links))
		for j, l := range en.Links {
			if l == nil {
				continue
			}
			var text string
			if i < len(texts) && j < len(texts[i]) {
				text = texts[i][j]
			}
			links = append(links, nodeValue(text, map[string]string{"href": l.Href}))
		}

		e := entry{
			title: textValue(en.Title),
			link:  listValue(links...),
			dates: []value{textValue(en.Published), textValue(en.Updated)},
			summary: []value{
				textValue(en.Summary),
			},
		}
		if en.Content != nil {
			e.summary = append(e.summary, textValue(en.Content.Value))
		}
		entries = append(entries, e)
	}
	return entries
}

// atomLinkDoc mirrors just enough of an Atom document to read link
// character data, which gofeed discards.
type atomLinkDoc struct {
	Entries []struct {
		XMLName xml.Name
		Links   []struct {
			XMLName xml.Name
			Text    string `xml:",chardata"`
		} `xml:"link"`
	} `xml:"entry"`
}

// isAtomSpace reports whether an element belongs to Atom 1.0 or 0.3 rather
// than an extension namespace.
func isAtomSpace(space string) bool {
	switch space {
	case "", "http://www.w3.org/2005/Atom", "http://purl.org/atom/ns#":
		return true
	}
	return false
}

// atomLinkTexts returns the text content of every entry's link elements, in
// the order gofeed reports them. A body that fails to decode yields nil.
func atomLinkTexts(body []byte) [][]string {
	var doc atomLinkDoc
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	if err := dec.Decode(&doc); err != nil {
		return nil
	}

	var texts [][]string
	for _, en := range doc.Entries {
		if !isAtomSpace(en.XMLName.Space) {
			continue
		}
		var links []string
		for _, l := range en.Links {
			if isAtomSpace(l.XMLName.Space) {
				links = append(links, l.Text)
			}
		}
		texts = append(texts, links)
	}
	return texts
}

// normalizeEntry builds an item, reporting false for entries that carry
// neither a title nor a link.
func normalizeEntry(src news.Source, e entry) (news.Item, bool) {
	title := e.title.Text()
	link := e.link.Link()
	if title == "" && link == "" {
		return news.Item{}, false
	}
	if title == "" {
		title = untitled
	}

	return news.Item{
		Title:     title,
		Link:      link,
		Published: parseDate(e.dates...),
		Summary:   firstText(e.summary...),
		Source:    src.Name,
		Category:  src.Category,
	}, true
}

// parseDate parses the first present date value. A present but unparseable
// date yields nil rather than falling through to the next candidate.
func parseDate(candidates ...value) *time.Time {
	raw := firstText(candidates...)
	if raw == "" {
		return nil
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
