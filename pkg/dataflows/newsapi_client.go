package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	// NewsAPIBaseURL is the keyed headline provider.
	NewsAPIBaseURL = "https://newsapi.org/v2"

	newsCategory = "business"
	newsLanguage = "en"

	// MaxNewsItems bounds both news collections.
	MaxNewsItems = 8
)

// NewsAPIClient fetches top business headlines from NewsAPI.
type NewsAPIClient struct {
	client *resty.Client
	log    *zap.Logger
	now    func() time.Time
}

// newsAPIResponse is the NewsAPI envelope
type newsAPIResponse struct {
	Status   string           `json:"status"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type NewsAPIOption func(*NewsAPIClient)

// WithNewsAPIBaseURL points the client at another endpoint.
func WithNewsAPIBaseURL(url string) NewsAPIOption {
	return func(c *NewsAPIClient) {
		c.client.SetBaseURL(url)
	}
}

func WithNewsAPILogger(l *zap.Logger) NewsAPIOption {
	return func(c *NewsAPIClient) {
		if l != nil {
			c.log = l
		}
	}
}

// NewNewsAPIClient creates a NewsAPI client with the configured hard timeout.
func NewNewsAPIClient(config *Config, opts ...NewsAPIOption) *NewsAPIClient {
	client := resty.New()
	client.SetBaseURL(NewsAPIBaseURL)
	client.SetTimeout(config.HTTPTimeout)
	client.SetRetryCount(1)
	client.SetHeader("User-Agent", config.UserAgent)

	c := &NewsAPIClient{
		client: client,
		log:    zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TopHeadlines returns at most MaxNewsItems business headlines. An empty key
// returns an empty feed without touching the network; any failure returns an
// empty feed with a warning.
func (c *NewsAPIClient) TopHeadlines(ctx context.Context, apiKey string) *NewsFeed {
	feed := &NewsFeed{Items: []NewsItem{}, FetchedAt: c.now()}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return feed
	}

	items, err := c.fetchTopHeadlines(ctx, apiKey)
	if err != nil {
		c.log.Warn("news api fetch failed", zap.Error(err))
		feed.Warnings = []string{fmt.Sprintf("headlines unavailable: %v", err)}
		return feed
	}

	feed.Items = truncateItems(items, MaxNewsItems)
	return feed
}

func (c *NewsAPIClient) fetchTopHeadlines(ctx context.Context, apiKey string) ([]NewsItem, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"category": newsCategory,
			"language": newsLanguage,
			"apiKey":   apiKey,
		}).
		Get("/top-headlines")
	if err != nil {
		// transport errors quote the request URL, which carries the key
		return nil, fmt.Errorf("failed to fetch headlines: %s", strings.ReplaceAll(err.Error(), apiKey, "***"))
	}

	var envelope newsAPIResponse
	decodeErr := json.Unmarshal(resp.Body(), &envelope)
	if !resp.IsSuccess() {
		if decodeErr == nil && envelope.Code != "" {
			return nil, fmt.Errorf("API error %d: %s", resp.StatusCode(), envelope.Code)
		}
		return nil, fmt.Errorf("API error %d", resp.StatusCode())
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to parse headlines response: %w", decodeErr)
	}
	if envelope.Status != "ok" {
		return nil, fmt.Errorf("%w: %d %s", ErrNewsAPIStatus, resp.StatusCode(), envelope.Code)
	}

	items := make([]NewsItem, 0, len(envelope.Articles))
	for _, a := range envelope.Articles {
		items = append(items, NewsItem{
			Title:       strings.TrimSpace(a.Title),
			Description: strings.TrimSpace(a.Description),
			Source:      a.Source.Name,
			Link:        a.URL,
			Origin:      OriginNewsAPI,
		})
	}
	return items, nil
}
