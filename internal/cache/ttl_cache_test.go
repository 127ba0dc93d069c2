package cache

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type snapshot struct{ n int }

func TestMemoReturnsCachedValueWithinTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	memo := NewMemo[struct{}, *snapshot]("market", 300*time.Second, WithClock(clock))

	calls := 0
	fetch := func(context.Context) *snapshot {
		calls++
		return &snapshot{n: calls}
	}

	ctx := context.Background()
	first := memo.Get(ctx, struct{}{}, fetch)
	clock.Advance(299 * time.Second)
	second := memo.Get(ctx, struct{}{}, fetch)

	if calls != 1 {
		t.Fatalf("expected 1 fetch within TTL, got %d", calls)
	}
	if first != second {
		t.Error("expected the identical cached object within TTL")
	}

	clock.Advance(time.Second)
	third := memo.Get(ctx, struct{}{}, fetch)
	if calls != 2 {
		t.Fatalf("expected a fresh fetch at TTL expiry, got %d calls", calls)
	}
	if third == first {
		t.Error("expected a new object after expiry")
	}
}

func TestMemoKeysAreIndependent(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	memo := NewMemo[string, string]("news", time.Hour, WithClock(clock))

	calls := map[string]int{}
	fetchFor := func(key string) func(context.Context) string {
		return func(context.Context) string {
			calls[key]++
			return "articles for " + key
		}
	}

	ctx := context.Background()
	a := memo.Get(ctx, "key-a", fetchFor("key-a"))
	b := memo.Get(ctx, "key-b", fetchFor("key-b"))
	memo.Get(ctx, "key-a", fetchFor("key-a"))

	if a == b {
		t.Error("different keys must not share a cached result")
	}
	if calls["key-a"] != 1 || calls["key-b"] != 1 {
		t.Errorf("unexpected fetch counts %v", calls)
	}
	if memo.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", memo.Len())
	}
}

func TestMemoPrunesExpiredEntries(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	memo := NewMemo[int, int]("rss", 10*time.Second, WithClock(clock))

	for i := 0; i < 5; i++ {
		memo.Set(i, i)
	}
	if memo.Len() != 5 {
		t.Fatalf("expected 5 entries, got %d", memo.Len())
	}

	clock.Advance(11 * time.Second)
	memo.Set(100, 100)
	if memo.Len() != 1 {
		t.Errorf("expected expired entries to be pruned, got %d", memo.Len())
	}
	if _, ok := memo.Peek(0); ok {
		t.Error("expired entry should not be returned")
	}
	if v, ok := memo.Peek(100); !ok || v != 100 {
		t.Errorf("Peek(100) = %v, %v", v, ok)
	}
}

func TestMemoConcurrentAccess(t *testing.T) {
	memo := NewMemo[int, int]("concurrent", time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			memo.Get(context.Background(), i%4, func(context.Context) int { return i % 4 })
		}(i)
	}
	wg.Wait()
	if memo.Len() != 4 {
		t.Errorf("expected 4 entries, got %d", memo.Len())
	}
}
