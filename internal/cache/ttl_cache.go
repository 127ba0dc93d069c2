package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Clock supplies the current time. Tests substitute a fake to control expiry.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

// Entry is one memoized value.
type Entry[V any] struct {
	Value     V
	CreatedAt time.Time
	TTL       time.Duration
}

func (e *Entry[V]) fresh(now time.Time) bool {
	return now.Sub(e.CreatedAt) < e.TTL
}

// Memo memoizes the results of one fetch function per distinct key for a
// fixed TTL. It keeps only the latest value per key; concurrent misses on the
// same key may each call fetch.
type Memo[K comparable, V any] struct {
	name    string
	ttl     time.Duration
	clock   Clock
	log     *zap.Logger
	mu      sync.RWMutex
	entries map[K]*Entry[V]
}

type Option func(*options)

type options struct {
	clock Clock
	log   *zap.Logger
}

func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// NewMemo creates a memo; name only labels log lines.
func NewMemo[K comparable, V any](name string, ttl time.Duration, opts ...Option) *Memo[K, V] {
	o := options{clock: SystemClock, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Memo[K, V]{
		name:    name,
		ttl:     ttl,
		clock:   o.clock,
		log:     o.log,
		entries: make(map[K]*Entry[V]),
	}
}

// Get returns the cached value for key while it is fresh, otherwise it calls
// fetch and stores the result.
func (m *Memo[K, V]) Get(ctx context.Context, key K, fetch func(context.Context) V) V {
	if v, ok := m.Peek(key); ok {
		m.log.Debug("cache hit", zap.String("cache", m.name))
		return v
	}

	m.log.Debug("cache miss", zap.String("cache", m.name))
	v := fetch(ctx)
	m.Set(key, v)
	return v
}

// Peek returns the value for key if it has not expired.
func (m *Memo[K, V]) Peek(key K) (V, bool) {
	now := m.clock.Now()

	m.mu.RLock()
	defer m.mu.RUnlock()

	if e, ok := m.entries[key]; ok && e.fresh(now) {
		return e.Value, true
	}
	var zero V
	return zero, false
}

// Set stores v under key and drops every expired entry.
func (m *Memo[K, V]) Set(key K, v V) {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for k, e := range m.entries {
		if !e.fresh(now) {
			delete(m.entries, k)
		}
	}
	m.entries[key] = &Entry[V]{Value: v, CreatedAt: now, TTL: m.ttl}
}

// Len reports the number of stored entries, fresh or not.
func (m *Memo[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// TTL returns the memo's time-to-live.
func (m *Memo[K, V]) TTL() time.Duration {
	return m.ttl
}
