package dataflows

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
)

const (
	// RSSItemsPerFeed is how many entries are read from each feed.
	RSSItemsPerFeed = 5
	// DefaultSummary stands in for an entry without a summary.
	DefaultSummary = "No summary available."
)

// DefaultFeeds are the unauthenticated market feeds, in priority order.
var DefaultFeeds = []Feed{
	{Name: "Yahoo Finance", URL: "https://finance.yahoo.com/news/rssindex"},
	{Name: "CNBC", URL: "https://search.cnbc.com/rs/search/combinedcms/view.xml?partnerId=wrss01&id=100003114"},
	{Name: "MarketWatch", URL: "https://feeds.content.dowjones.io/public/rss/mw_topstories"},
	{Name: "CoinDesk", URL: "https://www.coindesk.com/arc/outboundfeeds/rss/"},
}

// RSSClient reads a fixed list of RSS feeds.
type RSSClient struct {
	feeds      []Feed
	httpClient *http.Client
	userAgent  string
	log        *zap.Logger
	now        func() time.Time
}

type RSSOption func(*RSSClient)

func WithFeeds(feeds []Feed) RSSOption {
	return func(c *RSSClient) {
		c.feeds = append([]Feed(nil), feeds...)
	}
}

func WithRSSHTTPClient(client *http.Client) RSSOption {
	return func(c *RSSClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithRSSLogger(l *zap.Logger) RSSOption {
	return func(c *RSSClient) {
		if l != nil {
			c.log = l
		}
	}
}

func NewRSSClient(config *Config, opts ...RSSOption) *RSSClient {
	c := &RSSClient{
		feeds:      DefaultFeeds,
		httpClient: &http.Client{Timeout: config.HTTPTimeout},
		userAgent:  config.UserAgent,
		log:        zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Feeds returns the configured feed list.
func (c *RSSClient) Feeds() []Feed {
	return append([]Feed(nil), c.feeds...)
}

// Fetch reads every feed, dedupes entries by exact title keeping the first
// one seen (in feed order) and returns at most MaxNewsItems items. A failing
// feed only adds a warning.
func (c *RSSClient) Fetch(ctx context.Context) *NewsFeed {
	type slot struct {
		items []NewsItem
		err   error
	}
	results := make([]slot, len(c.feeds))

	var wg sync.WaitGroup
	for i, feed := range c.feeds {
		wg.Add(1)
		go func(i int, feed Feed) {
			defer wg.Done()
			items, err := c.fetchFeed(ctx, feed)
			results[i] = slot{items: items, err: err}
		}(i, feed)
	}
	wg.Wait()

	var (
		all      []NewsItem
		warnings []string
	)
	for i, r := range results {
		if r.err != nil {
			c.log.Warn("rss feed failed", zap.String("feed", c.feeds[i].Name), zap.Error(r.err))
			warnings = append(warnings, fmt.Sprintf("feed %s unavailable: %v", c.feeds[i].Name, r.err))
			continue
		}
		all = append(all, r.items...)
	}

	return &NewsFeed{
		Items:     truncateItems(dedupeByTitle(all), MaxNewsItems),
		Warnings:  warnings,
		FetchedAt: c.now(),
	}
}

func (c *RSSClient) fetchFeed(ctx context.Context, feed Feed) (items []NewsItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			items, err = nil, fmt.Errorf("parsing %s panicked: %v", feed.Name, r)
		}
	}()

	parser := gofeed.NewParser()
	parser.Client = c.httpClient
	parser.UserAgent = c.userAgent

	parsed, err := parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", feed.Name, err)
	}

	source := strings.TrimSpace(parsed.Title)
	if source == "" {
		source = feed.Name
	}

	entries := parsed.Items
	if len(entries) > RSSItemsPerFeed {
		entries = entries[:RSSItemsPerFeed]
	}

	items = make([]NewsItem, 0, len(entries))
	for _, entry := range entries {
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			continue
		}
		items = append(items, NewsItem{
			Title:       title,
			Description: summaryOf(entry),
			Source:      source,
			Link:        entry.Link,
			Origin:      OriginRSS,
		})
	}
	return items, nil
}

func summaryOf(entry *gofeed.Item) string {
	raw := entry.Description
	if strings.TrimSpace(raw) == "" {
		raw = entry.Content
	}
	if summary := cleanHTMLContent(raw); summary != "" {
		return summary
	}
	return DefaultSummary
}
