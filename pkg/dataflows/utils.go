package dataflows

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// RetryConfig configures retry behavior
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Multiplier float64
}

// DefaultRetryConfig keeps retries short; a render should not wait long on a
// slow provider.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries: 1,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   2 * time.Second,
		Multiplier: 2.0,
	}
}

// WithRetry executes fn with exponential backoff until it succeeds, retries
// run out or ctx is done.
func WithRetry(ctx context.Context, config *RetryConfig, fn func(context.Context) error) error {
	var lastErr error
	delay := config.BaseDelay

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("retry aborted: %w", ctx.Err())
			case <-timer.C:
			}
			delay = time.Duration(float64(delay) * config.Multiplier)
			if delay > config.MaxDelay {
				delay = config.MaxDelay
			}
		}

		if err := fn(ctx); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// dedupeByTitle keeps the first item for each exact title, preserving order.
func dedupeByTitle(items []NewsItem) []NewsItem {
	seen := make(map[string]bool, len(items))
	unique := make([]NewsItem, 0, len(items))
	for _, item := range items {
		if seen[item.Title] {
			continue
		}
		seen[item.Title] = true
		unique = append(unique, item)
	}
	return unique
}

func truncateItems(items []NewsItem, n int) []NewsItem {
	if len(items) > n {
		return items[:n]
	}
	return items
}

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// cleanHTMLContent extracts the text of an HTML fragment.
func cleanHTMLContent(htmlContent string) string {
	if strings.TrimSpace(htmlContent) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return collapseSpaces(htmlTagRegex.ReplaceAllString(htmlContent, ""))
	}

	text := collapseSpaces(doc.Text())
	if text == "" {
		return collapseSpaces(htmlTagRegex.ReplaceAllString(htmlContent, ""))
	}
	return text
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
