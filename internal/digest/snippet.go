package digest

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// snippetRunes is the character budget of an HTML summary snippet.
const snippetRunes = 280

// Aggregator boilerplate, e.g. hnrss "Article URL: ... Points: 12".
var boilerplateRe = regexp.MustCompile(`(?i)(article url|comments url):\s*\S*|(points|# comments):\s*\d*`)

// Snippet strips markup from a feed summary, decodes entities, drops
// aggregator boilerplate and truncates the result to a fixed budget.
func Snippet(summary string) string {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return ""
	}

	text := summary
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(summary)); err == nil {
		// Keep block boundaries as spaces so adjacent paragraphs don't fuse.
		doc.Find("p, br, div, li, h1, h2, h3, h4, tr").AppendHtml(" ")
		text = doc.Text()
	}

	text = boilerplateRe.ReplaceAllString(text, " ")
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) > snippetRunes {
		text = strings.TrimSpace(string(runes[:snippetRunes])) + "…"
	}
	return text
}
