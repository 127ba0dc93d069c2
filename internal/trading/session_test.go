package trading

import (
	"testing"
	"time"
)

func TestClassifySessionBoundaries(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "ASIA SESSION"},
		{6, "ASIA SESSION"},
		{7, "LONDON SESSION"},
		{13, "LONDON SESSION"},
		{14, "NY SESSION"},
		{20, "NY SESSION"},
		{21, "AFTER MARKET"},
		{23, "AFTER MARKET"},
	}
	for _, tt := range tests {
		now := time.Date(2026, 3, 2, tt.hour, 30, 0, 0, time.UTC)
		if got := ClassifySession(now).Name; got != tt.want {
			t.Errorf("hour %d: got %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestSessionsPartitionTheDay(t *testing.T) {
	counts := make(map[string]int)
	for hour := 0; hour < 24; hour++ {
		matches := 0
		for _, w := range sessionWindows {
			if hour >= w.Start && hour < w.End {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("hour %d matched %d windows, want exactly 1", hour, matches)
		}
		counts[ClassifySession(time.Date(2026, 1, 1, hour, 0, 0, 0, time.UTC)).Name]++
	}
	if len(counts) != 4 {
		t.Errorf("expected 4 distinct sessions over a day, got %d: %v", len(counts), counts)
	}
}

func TestClassifySessionConvertsZone(t *testing.T) {
	// 09:00 in UTC-5 is 14:00 UTC.
	zone := time.FixedZone("EST", -5*60*60)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, zone)
	if got := ClassifySession(now).Name; got != "NY SESSION" {
		t.Errorf("got %q, want NY SESSION", got)
	}
}

func TestCurrentSession(t *testing.T) {
	fixed := func() time.Time { return time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC) }
	info := CurrentSession(fixed)
	if info.Description != "Low Liquidity" || info.Icon != "🌑" {
		t.Errorf("unexpected session %+v", info)
	}
}

func TestSessionsOrder(t *testing.T) {
	got := Sessions()
	if len(got) != 4 || got[0].Name != "ASIA SESSION" || got[3].Name != "AFTER MARKET" {
		t.Errorf("unexpected sessions %+v", got)
	}
}
