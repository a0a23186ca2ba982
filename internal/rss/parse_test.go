package rss

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericseppanen999/TLDR-tech-app/internal/news"
)

var testSource = news.Source{
	Name:     "Test Source",
	URL:      "https://example.com/feed",
	Category: news.CategoryTech,
	Filter:   news.FilterAll,
}

const testRSSFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>Test RSS Feed</title>
    <link>https://example.com</link>
    <item>
      <title>  RSS Post One  </title>
      <link> https://example.com/post-1 </link>
      <description>&lt;p&gt;First &amp;amp; best&lt;/p&gt;</description>
      <pubDate>Mon, 01 Jan 2024 12:00:00 GMT</pubDate>
    </item>
    <item>
      <title>RSS Post Two</title>
      <link>https://example.com/post-2</link>
      <content:encoded><![CDATA[<p>Full content body</p>]]></content:encoded>
      <dc:date>2024-01-02T08:30:00Z</dc:date>
    </item>
    <item>
      <title></title>
      <link>https://example.com/post-3</link>
      <pubDate>not a date</pubDate>
    </item>
    <item>
      <title>Plain Date</title>
      <link>https://example.com/post-4</link>
      <date>2020-01-02T08:30:00Z</date>
    </item>
    <item>
      <title>   </title>
      <description>noise only</description>
    </item>
  </channel>
</rss>`

const testAtomFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Test Atom Feed</title>
  <link href="https://example.com" rel="alternate"/>
  <entry>
    <title>Atom Post One</title>
    <id>atom-id-1</id>
    <link href="https://example.com/atom-1" rel="alternate"/>
    <link href="https://example.com/atom-1/comments" rel="replies"/>
    <summary>First Atom post summary</summary>
    <published>2024-01-01T10:00:00Z</published>
    <updated>2024-01-03T12:00:00Z</updated>
  </entry>
  <entry>
    <title>Atom Post Two</title>
    <id>atom-id-2</id>
    <link href="https://example.com/atom-2"/>
    <content>Second Atom post content body</content>
    <updated>2024-01-02T12:00:00Z</updated>
  </entry>
  <entry>
    <title>Atom Post Three</title>
    <id>atom-id-3</id>
  </entry>
</feed>`

func TestParse_RSS(t *testing.T) {
	items, err := Parse(testSource, []byte(testRSSFeed))
	require.NoError(t, err)
	require.Len(t, items, 4)

	first := items[0]
	assert.Equal(t, "RSS Post One", first.Title)
	assert.Equal(t, "https://example.com/post-1", first.Link)
	assert.Equal(t, "Test Source", first.Source)
	assert.Equal(t, news.CategoryTech, first.Category)
	assert.Contains(t, first.Summary, "First")
	require.NotNil(t, first.Published)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), *first.Published)

	second := items[1]
	assert.Equal(t, "RSS Post Two", second.Title)
	assert.Contains(t, second.Summary, "Full content body")
	require.NotNil(t, second.Published)
	assert.Equal(t, time.Date(2024, 1, 2, 8, 30, 0, 0, time.UTC), *second.Published)

	third := items[2]
	assert.Equal(t, "(untitled)", third.Title)
	assert.Equal(t, "https://example.com/post-3", third.Link)
	assert.Nil(t, third.Published)
	assert.Empty(t, third.Summary)

	// un-namespaced <date> is the fallback for pubDate
	fourth := items[3]
	assert.Equal(t, "Plain Date", fourth.Title)
	require.NotNil(t, fourth.Published)
	assert.Equal(t, time.Date(2020, 1, 2, 8, 30, 0, 0, time.UTC), *fourth.Published)
}

func TestParse_RSSPubDateWinsOverDate(t *testing.T) {
	body := `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title>
<item><title>Both</title><link>https://example.com/both</link>
<pubDate>Mon, 01 Jan 2024 12:00:00 GMT</pubDate><date>2020-01-02T08:30:00Z</date></item>
</channel></rss>`

	items, err := Parse(testSource, []byte(body))
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Published)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), *items[0].Published)
}

func TestParse_Atom(t *testing.T) {
	items, err := Parse(testSource, []byte(testAtomFeed))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Atom Post One", items[0].Title)
	assert.Equal(t, "https://example.com/atom-1", items[0].Link)
	assert.Equal(t, "First Atom post summary", items[0].Summary)
	require.NotNil(t, items[0].Published)
	// published wins over updated
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), *items[0].Published)

	assert.Equal(t, "https://example.com/atom-2", items[1].Link)
	assert.Equal(t, "Second Atom post content body", items[1].Summary)
	require.NotNil(t, items[1].Published)
	assert.Equal(t, time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC), *items[1].Published)

	assert.Equal(t, "Atom Post Three", items[2].Title)
	assert.Empty(t, items[2].Link)
	assert.Nil(t, items[2].Published)
}

func TestParse_AtomLinkText(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Text Links</title>
  <entry>
    <title>Text Link</title>
    <link>https://example.com/text-link</link>
  </entry>
  <entry>
    <title>Href Wins</title>
    <link href="https://example.com/href">https://example.com/text</link>
  </entry>
  <entry>
    <title>Second Link Text</title>
    <link rel="replies"/>
    <link> https://example.com/second </link>
  </entry>
  <entry xmlns:media="http://search.yahoo.com/mrss/">
    <title>Extension Link First</title>
    <media:link>https://example.com/media</media:link>
    <link>https://example.com/after-media</link>
  </entry>
</feed>`

	items, err := Parse(testSource, []byte(body))
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, "https://example.com/text-link", items[0].Link)
	assert.Equal(t, "https://example.com/href", items[1].Link)
	assert.Equal(t, "https://example.com/second", items[2].Link)
	assert.Equal(t, "https://example.com/after-media", items[3].Link)
}

func TestParse_UnknownFormat(t *testing.T) {
	items, err := Parse(testSource, []byte(`<?xml version="1.0"?><html><body>nope</body></html>`))
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = Parse(testSource, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestValueLink(t *testing.T) {
	tests := []struct {
		name string
		in   value
		want string
	}{
		{name: "scalar", in: textValue("  https://a.example/x "), want: "https://a.example/x"},
		{name: "node href", in: nodeValue("ignored", map[string]string{"href": "https://b.example"}), want: "https://b.example"},
		{name: "node text", in: nodeValue(" https://c.example ", nil), want: "https://c.example"},
		{name: "node blank href falls back to text", in: nodeValue("https://g.example", map[string]string{"href": " "}), want: "https://g.example"},
		{
			name: "list skips empty members",
			in: listValue(
				textValue(""),
				nodeValue("", map[string]string{"href": " "}),
				nodeValue("", map[string]string{"href": "https://d.example"}),
				textValue("https://e.example"),
			),
			want: "https://d.example",
		},
		{name: "nested list", in: listValue(listValue(textValue("https://f.example"))), want: "https://f.example"},
		{name: "none", in: value{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Link())
		})
	}
}

func TestValueText(t *testing.T) {
	assert.Equal(t, "hi", textValue("  hi ").Text())
	assert.Equal(t, "there", nodeValue(" there ", map[string]string{"type": "html"}).Text())
	assert.Equal(t, "", listValue(textValue("x")).Text())
	assert.Equal(t, "b", firstText(textValue(" "), textValue("b"), textValue("c")))
}
