package dataflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testConfig() *Config {
	return &Config{
		HTTPTimeout: 2 * time.Second,
		UserAgent:   "arandu-test",
	}
}

func newsServer(t *testing.T, hits *atomic.Int32, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func articles(n int) map[string]any {
	list := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		list = append(list, map[string]any{
			"source":      map[string]string{"name": "Reuters"},
			"title":       fmt.Sprintf("Headline %d", i),
			"description": "Stocks rally",
			"url":         fmt.Sprintf("https://example.com/%d", i),
		})
	}
	return map[string]any{"status": "ok", "totalResults": n, "articles": list}
}

func TestTopHeadlinesEmptyKeySkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := newsServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(articles(3))
	})

	c := NewNewsAPIClient(testConfig(), WithNewsAPIBaseURL(srv.URL))
	for _, key := range []string{"", "   "} {
		feed := c.TopHeadlines(context.Background(), key)
		if len(feed.Items) != 0 || len(feed.Warnings) != 0 {
			t.Fatalf("expected empty feed for key %q, got %+v", key, feed)
		}
	}
	if got := hits.Load(); got != 0 {
		t.Fatalf("expected no requests, got %d", got)
	}
}

func TestTopHeadlinesSuccess(t *testing.T) {
	var hits atomic.Int32
	srv := newsServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/top-headlines" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if q.Get("category") != "business" || q.Get("language") != "en" || q.Get("apiKey") != "secret" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if ua := r.Header.Get("User-Agent"); ua != "arandu-test" {
			t.Errorf("unexpected user agent %q", ua)
		}
		json.NewEncoder(w).Encode(articles(12))
	})

	feed := NewNewsAPIClient(testConfig(), WithNewsAPIBaseURL(srv.URL)).
		TopHeadlines(context.Background(), "secret")

	if len(feed.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", feed.Warnings)
	}
	if len(feed.Items) != MaxNewsItems {
		t.Fatalf("expected %d items, got %d", MaxNewsItems, len(feed.Items))
	}
	first := feed.Items[0]
	if first.Title != "Headline 0" || first.Source != "Reuters" || first.Link != "https://example.com/0" {
		t.Errorf("unexpected first item %+v", first)
	}
	if first.Origin != OriginNewsAPI {
		t.Errorf("origin = %s, want %s", first.Origin, OriginNewsAPI)
	}
	if hits.Load() != 1 {
		t.Errorf("expected one request, got %d", hits.Load())
	}
}

func TestTopHeadlinesFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"bad key"}`))
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("upstream down"))
			},
		},
		{
			name: "server error with ok envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(articles(3))
			},
		},
		{
			name: "undecodable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>not json</html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := newsServer(t, &hits, tt.handler)

			feed := NewNewsAPIClient(testConfig(), WithNewsAPIBaseURL(srv.URL)).
				TopHeadlines(context.Background(), "secret")

			if len(feed.Items) != 0 {
				t.Fatalf("expected no items, got %d", len(feed.Items))
			}
			if len(feed.Warnings) != 1 {
				t.Fatalf("expected one warning, got %v", feed.Warnings)
			}
			if strings.Contains(feed.Warnings[0], "secret") {
				t.Errorf("warning leaks the api key: %s", feed.Warnings[0])
			}
		})
	}
}

func TestFetchTopHeadlinesStatusSentinel(t *testing.T) {
	var hits atomic.Int32
	srv := newsServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","code":"rateLimited"}`))
	})

	c := NewNewsAPIClient(testConfig(), WithNewsAPIBaseURL(srv.URL))
	_, err := c.fetchTopHeadlines(context.Background(), "secret")
	if !errors.Is(err, ErrNewsAPIStatus) {
		t.Fatalf("expected ErrNewsAPIStatus, got %v", err)
	}
}

func TestFetchTopHeadlinesRejectsHTTPFailure(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "ok envelope", status: http.StatusBadGateway, body: `{"status":"ok","articles":[{"title":"Stocks rally"}]}`, want: "API error 502"},
		{name: "error envelope", status: http.StatusTooManyRequests, body: `{"status":"error","code":"rateLimited"}`, want: "API error 429: rateLimited"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := newsServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			c := NewNewsAPIClient(testConfig(), WithNewsAPIBaseURL(srv.URL))
			items, err := c.fetchTopHeadlines(context.Background(), "secret")
			if err == nil {
				t.Fatalf("expected an error, got %d items", len(items))
			}
			if err.Error() != tt.want {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}
