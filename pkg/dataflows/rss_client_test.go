package dataflows

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type rssEntry struct {
	title       string
	description string
}

func rssDocument(title string, entries ...rssEntry) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel>`)
	fmt.Fprintf(&b, "<title>%s</title><link>https://example.com</link>", title)
	for i, e := range entries {
		fmt.Fprintf(&b, "<item><title>%s</title><link>https://example.com/%d</link>", e.title, i)
		if e.description != "" {
			fmt.Fprintf(&b, "<description><![CDATA[%s]]></description>", e.description)
		}
		b.WriteString("</item>")
	}
	b.WriteString("</channel></rss>")
	return b.String()
}

func feedServer(t *testing.T, docs map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc, ok := docs[r.URL.Path]
		if !ok {
			http.Error(w, "gone", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(doc))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func titles(items []NewsItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}

func TestRSSFetchDedupesInFeedOrder(t *testing.T) {
	srv := feedServer(t, map[string]string{
		"/one": rssDocument("Feed One", rssEntry{title: "A"}, rssEntry{title: "B"}),
		"/two": rssDocument("Feed Two", rssEntry{title: "A"}, rssEntry{title: "C"}),
	})

	c := NewRSSClient(testConfig(),
		WithRSSHTTPClient(srv.Client()),
		WithFeeds([]Feed{
			{Name: "one", URL: srv.URL + "/one"},
			{Name: "two", URL: srv.URL + "/two"},
		}),
	)
	feed := c.Fetch(context.Background())

	got := strings.Join(titles(feed.Items), ",")
	if got != "A,B,C" {
		t.Fatalf("titles = %s, want A,B,C", got)
	}
	if feed.Items[0].Source != "Feed One" {
		t.Errorf("duplicate should keep the first feed's item, got source %s", feed.Items[0].Source)
	}
	if feed.Items[2].Source != "Feed Two" {
		t.Errorf("unexpected source %s", feed.Items[2].Source)
	}
	for _, item := range feed.Items {
		if item.Origin != OriginRSS {
			t.Errorf("origin = %s, want %s", item.Origin, OriginRSS)
		}
	}
}

func TestRSSFetchIsolatesFailingFeed(t *testing.T) {
	srv := feedServer(t, map[string]string{
		"/ok": rssDocument("Healthy", rssEntry{title: "Markets steady"}),
	})

	c := NewRSSClient(testConfig(),
		WithRSSHTTPClient(srv.Client()),
		WithFeeds([]Feed{
			{Name: "broken", URL: srv.URL + "/missing"},
			{Name: "healthy", URL: srv.URL + "/ok"},
		}),
	)
	feed := c.Fetch(context.Background())

	if len(feed.Items) != 1 || feed.Items[0].Title != "Markets steady" {
		t.Fatalf("unexpected items %v", titles(feed.Items))
	}
	if len(feed.Warnings) != 1 || !strings.Contains(feed.Warnings[0], "broken") {
		t.Fatalf("expected one warning naming the broken feed, got %v", feed.Warnings)
	}
}

func TestRSSFetchLimits(t *testing.T) {
	docs := make(map[string]string)
	var feeds []Feed
	for f := 0; f < 3; f++ {
		entries := make([]rssEntry, 0, 7)
		for i := 0; i < 7; i++ {
			entries = append(entries, rssEntry{title: fmt.Sprintf("feed%d-item%d", f, i)})
		}
		path := fmt.Sprintf("/f%d", f)
		docs[path] = rssDocument(fmt.Sprintf("Feed %d", f), entries...)
		feeds = append(feeds, Feed{Name: path, URL: path})
	}
	srv := feedServer(t, docs)
	for i := range feeds {
		feeds[i].URL = srv.URL + feeds[i].URL
	}

	feed := NewRSSClient(testConfig(), WithRSSHTTPClient(srv.Client()), WithFeeds(feeds)).
		Fetch(context.Background())

	if len(feed.Items) != MaxNewsItems {
		t.Fatalf("expected %d items, got %d", MaxNewsItems, len(feed.Items))
	}
	// five from the first feed, then the head of the second
	if feed.Items[4].Title != "feed0-item4" || feed.Items[5].Title != "feed1-item0" {
		t.Fatalf("unexpected order %v", titles(feed.Items))
	}
}

func TestRSSSummaries(t *testing.T) {
	srv := feedServer(t, map[string]string{
		"/f": rssDocument("",
			rssEntry{title: "With HTML", description: "<p>Gold <b>rallies</b> again</p>"},
			rssEntry{title: "Bare"},
		),
	})

	feed := NewRSSClient(testConfig(),
		WithRSSHTTPClient(srv.Client()),
		WithFeeds([]Feed{{Name: "Fallback Name", URL: srv.URL + "/f"}}),
	).Fetch(context.Background())

	if len(feed.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(feed.Items))
	}
	if got := feed.Items[0].Description; got != "Gold rallies again" {
		t.Errorf("summary = %q", got)
	}
	if got := feed.Items[1].Description; got != DefaultSummary {
		t.Errorf("summary = %q, want %q", got, DefaultSummary)
	}
	if got := feed.Items[0].Source; got != "Fallback Name" {
		t.Errorf("source = %q, want the configured feed name", got)
	}
}

func TestDefaultFeeds(t *testing.T) {
	c := NewRSSClient(testConfig())
	if len(c.Feeds()) < 3 {
		t.Fatalf("expected at least 3 default feeds, got %d", len(c.Feeds()))
	}
}
