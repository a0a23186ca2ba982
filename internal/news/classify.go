package news

import (
	"regexp"
	"strings"
)

// Signals that a story is about hiring activity (layoffs, freezes, ...).
var hiringKeywords = []string{
	"hiring",
	"layoffs",
	"job cuts",
	"hiring freeze",
	"workforce reduction",
	"headcount",
	"restructuring",
	"expands hiring",
	"staffing",
	"recruiting",
	"downsizing",
}

// Recruitment-ad language. Any match vetoes the hiring signal.
var hiringExcludeKeywords = []string{
	"apply now",
	"job posting",
	"job postings",
	"career",
	"careers",
	"open positions",
	"job board",
	"now hiring",
	"hiring now",
	"vacancy",
	"vacancies",
}

var techKeywords = []string{
	"ai",
	"artificial intelligence",
	"machine learning",
	"llm",
	"model",
	"chip",
	"semiconductor",
	"cloud",
	"data center",
	"robotics",
	"cybersecurity",
	"open source",
	"startup",
	"funding",
	"acquisition",
	"product launch",
	"release",
	"regulation",
	"policy",
	"platform",
}

var (
	nonWordRe    = regexp.MustCompile(`[^a-z0-9\s]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// normalize lowercases s, turns punctuation runs into spaces and collapses whitespace.
func normalize(s string) string {
	s = strings.ToLower(s)
	s = nonWordRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func classifierText(item Item) string {
	return normalize(item.Title + " " + item.Summary)
}

// containsAny reports whether text contains any of the keywords as a substring.
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// IsHiringNews reports whether the item talks about hiring activity rather
// than advertising a job.
func IsHiringNews(item Item) bool {
	text := classifierText(item)
	if text == "" {
		return false
	}
	if containsAny(text, hiringExcludeKeywords) {
		return false
	}
	return containsAny(text, hiringKeywords)
}

// IsTechNews reports whether the item mentions any broad tech term.
func IsTechNews(item Item) bool {
	text := classifierText(item)
	if text == "" {
		return false
	}
	return containsAny(text, techKeywords)
}
