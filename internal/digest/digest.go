// Package digest renders the daily digest as plain text and HTML.
package digest

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ericseppanen999/TLDR-tech-app/internal/news"
)

const heading = "Daily Tech + Hiring Digest"

// Digest is the rendered output of one run.
type Digest struct {
	Text string
	HTML string
}

type section struct {
	news.Section
	items      []news.Item
	highlights []string
}

// Render builds the digest from items sorted newest first. Each section shows
// at most maxPerSection items; highlights may be nil.
func Render(items []news.Item, maxPerSection int, generatedAt time.Time, highlights news.Highlights) Digest {
	sorted := news.SortByPublishedDesc(items)

	sections := make([]section, 0, len(news.Sections))
	for _, s := range news.Sections {
		sections = append(sections, section{
			Section:    s,
			items:      news.ByCategory(sorted, s.Category, maxPerSection),
			highlights: highlights[s.Category],
		})
	}

	generated := generatedAt.UTC().Format(time.RFC3339)
	return Digest{
		Text: renderText(sections, generated),
		HTML: renderHTML(sections, generated),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

func dateSuffix(t *time.Time) string {
	if d := formatDate(t); d != "" {
		return " (" + d + ")"
	}
	return ""
}

func renderText(sections []section, generated string) string {
	var b strings.Builder
	b.WriteString(heading + "\n")
	b.WriteString("Generated: " + generated)

	for _, s := range sections {
		fmt.Fprintf(&b, "\n\n%s (%d)\n", s.Title, len(s.items))

		if len(s.highlights) > 0 {
			b.WriteString("Highlights:\n")
			for _, h := range s.highlights {
				b.WriteString("- " + h + "\n")
			}
			b.WriteString("\n")
		}

		if len(s.items) == 0 {
			b.WriteString("(no items)")
			continue
		}

		for i, it := range s.items {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "- [%s] %s%s", it.Source, it.Title, dateSuffix(it.Published))
			if it.Link != "" {
				b.WriteString("\n  " + it.Link)
			}
		}
	}

	return b.String()
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// displayHost returns the link's hostname without a leading "www.".
func displayHost(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

func renderHTML(sections []section, generated string) string {
	var b strings.Builder
	b.WriteString("<html>\n<body style=\"font-family: sans-serif;\">\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", escapeHTML(heading))
	fmt.Fprintf(&b, "<div>Generated: %s</div>\n", escapeHTML(generated))

	for _, s := range sections {
		fmt.Fprintf(&b, "<h2>%s (%d)</h2>\n", escapeHTML(s.Title), len(s.items))

		if len(s.highlights) > 0 {
			b.WriteString("<div><strong>Highlights:</strong>\n<ul>\n")
			for _, h := range s.highlights {
				fmt.Fprintf(&b, "<li>%s</li>\n", escapeHTML(h))
			}
			b.WriteString("</ul>\n</div>\n")
		}

		b.WriteString("<ul>\n")
		if len(s.items) == 0 {
			b.WriteString("<li>(no items)</li>\n")
		}
		for _, it := range s.items {
			renderHTMLItem(&b, it)
		}
		b.WriteString("</ul>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func renderHTMLItem(b *strings.Builder, it news.Item) {
	b.WriteString("<li>\n")

	title := escapeHTML(it.Title)
	if it.Link != "" {
		title = fmt.Sprintf(`<a href="%s">%s</a>`, escapeHTML(it.Link), title)
	}
	fmt.Fprintf(b, "<div><strong>[%s]</strong> %s%s</div>\n", escapeHTML(it.Source), title, escapeHTML(dateSuffix(it.Published)))

	if host := displayHost(it.Link); host != "" {
		fmt.Fprintf(b, "<div style=\"color: #666; font-size: 12px;\">%s</div>\n", escapeHTML(host))
	}
	if snippet := Snippet(it.Summary); snippet != "" {
		fmt.Fprintf(b, "<div>%s</div>\n", escapeHTML(snippet))
	}

	b.WriteString("</li>\n")
}
