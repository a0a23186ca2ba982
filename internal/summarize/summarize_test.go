package summarize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericseppanen999/TLDR-tech-app/internal/news"
)

type fakeCompleter struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func sections() []Section {
	return []Section{
		{Category: news.CategoryHiring, Title: "Hiring News"},
		{Category: news.CategoryTech, Title: "Tech News", Items: []news.Item{
			{Title: "Rust 2.0", Source: "HN", Summary: "<p>Big <b>news</b> &amp; more</p>"},
			{Title: "No summary", Source: "Lobsters"},
		}},
		{Category: news.CategoryResearch, Title: "AI / Research Breakthroughs"},
	}
}

func TestNilSummarizer(t *testing.T) {
	var s *Summarizer
	hl, ok := s.Summarize(context.Background(), sections())
	assert.False(t, ok)
	assert.Nil(t, hl)
}

func TestBuildPrompt(t *testing.T) {
	s := New(&fakeCompleter{}, 3)
	prompt := s.BuildPrompt(sections())

	assert.Contains(t, prompt, "write up to 3 bullet highlights")
	assert.Contains(t, prompt, "SECTION: Hiring News (hiring)")
	assert.Contains(t, prompt, "SECTION: Tech News (tech)\n1. Rust 2.0 [HN] — Big news & more\n2. No summary [Lobsters]")
	assert.Contains(t, prompt, "SECTION: AI / Research Breakthroughs (research)")
}

func TestBuildPromptTruncatesSummary(t *testing.T) {
	long := make([]rune, 500)
	for i := range long {
		long[i] = 'é'
	}
	s := New(&fakeCompleter{}, 3)
	prompt := s.BuildPrompt([]Section{{Category: news.CategoryTech, Title: "Tech News", Items: []news.Item{
		{Title: "T", Source: "S", Summary: string(long)},
	}}})

	assert.Contains(t, prompt, "1. T [S] — "+string(long[:240]))
	assert.NotContains(t, prompt, string(long[:241]))
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		want  news.Highlights
		ok    bool
	}{
		{
			name:  "plain json",
			reply: `{"hiring":["a"],"tech":["b","c"],"research":[]}`,
			want:  news.Highlights{news.CategoryHiring: {"a"}, news.CategoryTech: {"b", "c"}, news.CategoryResearch: {}},
			ok:    true,
		},
		{
			name:  "fenced json",
			reply: "Sure!\n```json\n{\"hiring\":[],\"tech\":[\"x\"],\"research\":[\"y\"]}\n```",
			want:  news.Highlights{news.CategoryHiring: {}, news.CategoryTech: {"x"}, news.CategoryResearch: {"y"}},
			ok:    true,
		},
		{
			name:  "drops empty and caps at top",
			reply: `{"hiring":["", "1", "2", "3", "4"],"tech":[],"research":[]}`,
			want:  news.Highlights{news.CategoryHiring: {"1", "2", "3"}, news.CategoryTech: {}, news.CategoryResearch: {}},
			ok:    true,
		},
		{name: "missing key", reply: `{"hiring":[],"tech":[]}`},
		{name: "key not array", reply: `{"hiring":"a","tech":[],"research":[]}`},
		{name: "not json", reply: "no highlights today"},
		{name: "blank", reply: "   "},
		{name: "completer error", err: errors.New("quota")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&fakeCompleter{reply: tt.reply, err: tt.err}, 3)
			hl, ok := s.Summarize(context.Background(), sections())
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Nil(t, hl)
				return
			}
			assert.Equal(t, tt.want, hl)
		})
	}
}
