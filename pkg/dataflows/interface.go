package dataflows

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dyike/arandu/internal/cache"
)

// Cache lifetimes. These are fixed and not configurable.
const (
	MarketTTL  = 300 * time.Second
	NewsAPITTL = 3600 * time.Second
	RSSTTL     = 600 * time.Second
)

// MarketSource produces market snapshots.
type MarketSource interface {
	Fetch(ctx context.Context) *MarketSnapshot
}

// HeadlineSource produces keyed headlines.
type HeadlineSource interface {
	TopHeadlines(ctx context.Context, apiKey string) *NewsFeed
}

// FeedSource produces RSS items.
type FeedSource interface {
	Fetch(ctx context.Context) *NewsFeed
}

// DataFlowInterface is the cached access point to every data source. Results
// are shared by all callers until their TTL runs out.
type DataFlowInterface struct {
	market    MarketSource
	headlines HeadlineSource
	feeds     FeedSource

	marketCache   *cache.Memo[struct{}, *MarketSnapshot]
	headlineCache *cache.Memo[string, *NewsFeed]
	feedCache     *cache.Memo[struct{}, *NewsFeed]
}

// NewDataFlowInterface wraps the three sources with their TTL caches.
func NewDataFlowInterface(market MarketSource, headlines HeadlineSource, feeds FeedSource, opts ...cache.Option) *DataFlowInterface {
	return &DataFlowInterface{
		market:    market,
		headlines: headlines,
		feeds:     feeds,

		marketCache:   cache.NewMemo[struct{}, *MarketSnapshot]("market", MarketTTL, opts...),
		headlineCache: cache.NewMemo[string, *NewsFeed]("newsapi", NewsAPITTL, opts...),
		feedCache:     cache.NewMemo[struct{}, *NewsFeed]("rss", RSSTTL, opts...),
	}
}

// NewDefaultDataFlowInterface builds the production sources from config.
func NewDefaultDataFlowInterface(config *Config, log *zap.Logger, opts ...cache.Option) *DataFlowInterface {
	market := NewMarketFetcher(NewYahooFinanceClient(config), WithMarketLogger(log))
	headlines := NewNewsAPIClient(config, WithNewsAPILogger(log))
	feeds := NewRSSClient(config, WithRSSLogger(log))

	return NewDataFlowInterface(market, headlines, feeds, append(opts, cache.WithLogger(log))...)
}

// GetMarketData returns the market snapshot, cached for MarketTTL.
func (dfi *DataFlowInterface) GetMarketData(ctx context.Context) *MarketSnapshot {
	return dfi.marketCache.Get(ctx, struct{}{}, dfi.market.Fetch)
}

// GetHeadlines returns keyed headlines, cached for NewsAPITTL per API key.
func (dfi *DataFlowInterface) GetHeadlines(ctx context.Context, apiKey string) *NewsFeed {
	return dfi.headlineCache.Get(ctx, apiKey, func(ctx context.Context) *NewsFeed {
		return dfi.headlines.TopHeadlines(ctx, apiKey)
	})
}

// GetRSSNews returns RSS items, cached for RSSTTL.
func (dfi *DataFlowInterface) GetRSSNews(ctx context.Context) *NewsFeed {
	return dfi.feedCache.Get(ctx, struct{}{}, dfi.feeds.Fetch)
}
