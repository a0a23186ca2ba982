package rss

import "strings"

type valueKind int

const (
	kindNone valueKind = iota
	kindText
	kindNode
	kindList
)

// value is one raw entry field as found in a feed: plain text, an element
// carrying attributes, or a list of either.
type value struct {
	kind  valueKind
	text  string
	attrs map[string]string
	list  []value
}

func textValue(s string) value {
	return value{kind: kindText, text: s}
}

func nodeValue(text string, attrs map[string]string) value {
	return value{kind: kindNode, text: text, attrs: attrs}
}

func listValue(vs ...value) value {
	return value{kind: kindList, list: vs}
}

// Text resolves scalar text. Lists have no text.
func (v value) Text() string {
	switch v.kind {
	case kindText, kindNode:
		return strings.TrimSpace(v.text)
	}
	return ""
}

// Link resolves the first usable link: a scalar's text, a node's non-empty
// href attribute (falling back to its text), or the first list member that
// resolves to something non-empty.
func (v value) Link() string {
	switch v.kind {
	case kindText:
		return strings.TrimSpace(v.text)
	case kindNode:
		if href := strings.TrimSpace(v.attrs["href"]); href != "" {
			return href
		}
		return strings.TrimSpace(v.text)
	case kindList:
		for _, member := range v.list {
			if link := member.Link(); link != "" {
				return link
			}
		}
	}
	return ""
}

// firstText returns the first value with non-empty text.
func firstText(vs ...value) string {
	for _, v := range vs {
		if t := v.Text(); t != "" {
			return t
		}
	}
	return ""
}
