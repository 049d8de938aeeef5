package feeds

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	httpTimeout     = 30 * time.Second
	maxExcerptWords = 40
)

var htmlTagPattern = regexp.MustCompile("<[^>]*>")

// Entry is a feed item reduced to the fields a post draft needs.
type Entry struct {
	Title      string
	Excerpt    string
	Content    string
	Author     string
	CoverImage string
	Link       string
}

// Importer reads RSS/Atom feeds and turns their items into draft entries.
type Importer struct {
	client *http.Client
}

// NewImporter creates an Importer with a 30-second timeout and the postdesk
// user agent.
func NewImporter() *Importer {
	return &Importer{
		client: &http.Client{
			Timeout: httpTimeout,
			Transport: &userAgentTransport{
				base: http.DefaultTransport,
			},
		},
	}
}

// userAgentTransport wraps an http.RoundTripper to inject a custom User-Agent
// header on every request.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; postdesk/1.0)")
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,*/*;q=0.8")
	return t.base.RoundTrip(req)
}

// Fetch downloads the feed at feedURL and returns its usable entries.
func (im *Importer) Fetch(ctx context.Context, feedURL string) ([]Entry, error) {
	fp := gofeed.NewParser()
	fp.Client = im.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %q: %w", feedURL, err)
	}
	return entriesFromFeed(feed), nil
}

// Parse reads an already downloaded feed document.
func (im *Importer) Parse(data string) ([]Entry, error) {
	feed, err := gofeed.NewParser().ParseString(data)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}
	return entriesFromFeed(feed), nil
}

// entriesFromFeed converts gofeed items into entries. Items without a title
// are skipped. The feed-level author fills in for items that have none.
func entriesFromFeed(feed *gofeed.Feed) []Entry {
	fallbackAuthor := personName(feed.Author, feed.Authors)

	var entries []Entry
	for _, item := range feed.Items {
		title := strings.TrimSpace(stripHTML(item.Title))
		if title == "" {
			continue
		}

		content := item.Content
		if content == "" {
			content = item.Description
		}

		excerpt := stripHTML(item.Description)
		if strings.TrimSpace(excerpt) == "" {
			excerpt = PlainText(content)
		}

		author := personName(item.Author, item.Authors)
		if author == "" {
			author = fallbackAuthor
		}

		entries = append(entries, Entry{
			Title:      title,
			Excerpt:    truncateWords(strings.TrimSpace(excerpt), maxExcerptWords),
			Content:    content,
			Author:     author,
			CoverImage: coverImage(item),
			Link:       item.Link,
		})
	}
	return entries
}

func personName(single *gofeed.Person, all []*gofeed.Person) string {
	if single != nil && single.Name != "" {
		return single.Name
	}
	for _, p := range all {
		if p != nil && p.Name != "" {
			return p.Name
		}
	}
	return ""
}

// coverImage prefers the item image, then the first image enclosure.
func coverImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}

// stripHTML removes HTML tags from s and unescapes HTML entities.
func stripHTML(s string) string {
	clean := htmlTagPattern.ReplaceAllString(s, "")
	return html.UnescapeString(clean)
}

// truncateWords returns the first maxWords whitespace-delimited words from s.
// If s contains fewer than maxWords words, it is returned unchanged.
func truncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ")
}
