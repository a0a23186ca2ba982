package news

import "time"

// Category is the digest grouping a feed source contributes to.
type Category string

const (
	CategoryHiring   Category = "hiring"
	CategoryTech     Category = "tech"
	CategoryResearch Category = "research"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryHiring, CategoryTech, CategoryResearch:
		return true
	}
	return false
}

// Filter selects which classifier, if any, gates a source's items.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterHiring Filter = "hiring"
	FilterTech   Filter = "tech"
)

func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterHiring, FilterTech:
		return true
	}
	return false
}

// Source is one configured feed.
type Source struct {
	Name     string   `yaml:"name"`
	URL      string   `yaml:"url"`
	Category Category `yaml:"category"`
	Filter   Filter   `yaml:"filter"`
}

// Item is a single normalized feed entry.
type Item struct {
	Title     string
	Link      string     // may be empty
	Published *time.Time // nil when the feed gave no usable date
	Summary   string     // raw markup, empty when absent
	Source    string
	Category  Category
}

// Section is one fixed block of the digest.
type Section struct {
	Title    string
	Category Category
}

// Sections is the fixed render order of the digest.
var Sections = []Section{
	{Title: "Hiring News", Category: CategoryHiring},
	{Title: "Tech News", Category: CategoryTech},
	{Title: "AI / Research Breakthroughs", Category: CategoryResearch},
}

// Highlights maps a category to its short AI bullets.
type Highlights map[Category][]string

// ByCategory returns the items of category c in input order, capped at limit.
// A negative limit means no cap; zero selects nothing.
func ByCategory(items []Item, c Category, limit int) []Item {
	var out []Item
	for _, it := range items {
		if it.Category != c {
			continue
		}
		if limit >= 0 && len(out) >= limit {
			break
		}
		out = append(out, it)
	}
	return out
}
