// Package summarize asks a language model for a few highlight bullets per
// digest section. Any failure yields no highlights; it never fails a run.
package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ericseppanen999/TLDR-tech-app/internal/logger"
	"github.com/ericseppanen999/TLDR-tech-app/internal/news"
)

const snippetRunes = 240

// Completer sends a single prompt to a model and returns its text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Section is the input for one digest section.
type Section struct {
	Category news.Category
	Title    string
	Items    []news.Item
}

type Summarizer struct {
	completer Completer
	top       int
	policy    *bluemonday.Policy
}

// New returns a Summarizer producing at most top bullets per section.
// A nil *Summarizer is valid and always reports no highlights.
func New(c Completer, top int) *Summarizer {
	return &Summarizer{
		completer: c,
		top:       top,
		policy:    bluemonday.StrictPolicy(),
	}
}

// Summarize returns highlights keyed by category, or false when none could
// be produced.
func (s *Summarizer) Summarize(ctx context.Context, sections []Section) (news.Highlights, bool) {
	if s == nil || s.completer == nil {
		return nil, false
	}

	reply, err := s.completer.Complete(ctx, s.BuildPrompt(sections))
	if err != nil {
		logger.Warn("Summarization failed", "error", err)
		return nil, false
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, false
	}

	hl, ok := parseHighlights(reply, s.top)
	if !ok {
		logger.Warn("Summarization returned unusable output", "length", len(reply))
	}
	return hl, ok
}

// BuildPrompt renders the instruction block followed by every section's
// numbered item list.
func (s *Summarizer) BuildPrompt(sections []Section) string {
	var b strings.Builder
	b.WriteString("You are writing a concise daily tech digest.\n")
	fmt.Fprintf(&b, "For each section, write up to %d bullet highlights (each <= 20 words).\n", s.top)
	b.WriteString("Use only the provided items; no speculation.\n")
	b.WriteString(`Return JSON: {"hiring":[...],"tech":[...],"research":[...] }.`)

	for _, sec := range sections {
		fmt.Fprintf(&b, "\n\nSECTION: %s (%s)", sec.Title, sec.Category)
		for i, it := range sec.Items {
			line := strconv.Itoa(i+1) + ". " + it.Title + " [" + it.Source + "]"
			if summary := s.plainText(it.Summary); summary != "" {
				line += " — " + truncateRunes(summary, snippetRunes)
			}
			b.WriteString("\n" + strings.TrimSpace(line))
		}
	}

	return b.String()
}

func (s *Summarizer) plainText(markup string) string {
	if markup == "" {
		return ""
	}
	// Tags become spaces so words on either side stay apart.
	text := s.policy.Sanitize(strings.NewReplacer("<", " <", ">", "> ").Replace(markup))
	return strings.Join(strings.Fields(html.UnescapeString(text)), " ")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// parseHighlights accepts the reply as JSON, or failing that the span from
// the first '{' to the last '}'. All three category keys must be arrays.
func parseHighlights(reply string, top int) (news.Highlights, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(reply), &raw); err != nil {
		start := strings.Index(reply, "{")
		end := strings.LastIndex(reply, "}")
		if start == -1 || end <= start {
			return nil, false
		}
		if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
			return nil, false
		}
	}

	hl := make(news.Highlights, len(news.Sections))
	for _, sec := range news.Sections {
		list, ok := raw[string(sec.Category)].([]any)
		if !ok {
			return nil, false
		}
		hl[sec.Category] = bullets(list, top)
	}
	return hl, true
}

func bullets(list []any, top int) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		var s string
		switch v := v.(type) {
		case nil:
			continue
		case string:
			s = v
		default:
			s = fmt.Sprint(v)
		}
		if s == "" {
			continue
		}
		out = append(out, s)
		if top > 0 && len(out) == top {
			break
		}
	}
	return out
}
