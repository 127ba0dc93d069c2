package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/dyike/arandu/config"
	"github.com/dyike/arandu/internal/logger"
	"github.com/dyike/arandu/internal/processing"
	"github.com/dyike/arandu/internal/trading"
	"github.com/dyike/arandu/pkg/dataflows"
)

// DataSource is the cached data access the engine renders from.
type DataSource interface {
	GetMarketData(ctx context.Context) *dataflows.MarketSnapshot
	GetHeadlines(ctx context.Context, apiKey string) *dataflows.NewsFeed
	GetRSSNews(ctx context.Context) *dataflows.NewsFeed
}

// SentimentBasis names the news collection the aggregate was computed over.
type SentimentBasis string

const (
	BasisNewsAPI SentimentBasis = "newsapi"
	BasisRSS     SentimentBasis = "rss"
	BasisNone    SentimentBasis = "none"
)

// Dashboard is everything one render needs.
type Dashboard struct {
	GeneratedAt    time.Time                 `json:"generated_at"`
	Session        trading.SessionInfo       `json:"session"`
	Market         *dataflows.MarketSnapshot `json:"market"`
	Headlines      []processing.ScoredItem   `json:"headlines"`
	RSS            []processing.ScoredItem   `json:"rss"`
	Score          float64                   `json:"score"`
	Signal         processing.Signal         `json:"signal"`
	Recommendation string                    `json:"recommendation"`
	SentimentBasis SentimentBasis            `json:"sentiment_basis"`
	Warnings       []string                  `json:"warnings,omitempty"`
}

type Engine struct {
	Config  config.Config
	BuiltAt time.Time
	Version uint64

	data      DataSource
	processor *processing.SignalProcessor
	log       *zap.Logger
	now       func() time.Time
}

type EngineOption func(*Engine)

func WithDataSource(ds DataSource) EngineOption {
	return func(e *Engine) {
		if ds != nil {
			e.data = ds
		}
	}
}

func WithProcessor(sp *processing.SignalProcessor) EngineOption {
	return func(e *Engine) {
		if sp != nil {
			e.processor = sp
		}
	}
}

func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

var engineSeq atomic.Uint64

// BuildEngine wires the production data sources unless a DataSource option is
// given.
func BuildEngine(cfg config.Config, opts ...EngineOption) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		Config:    cfg,
		BuiltAt:   time.Now(),
		Version:   engineSeq.Add(1),
		processor: processing.NewSignalProcessor(),
		log:       logger.L(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.data == nil {
		e.data = dataflows.NewDefaultDataFlowInterface(&e.Config, e.log)
	}
	return e, nil
}

// Build assembles a dashboard. Market data, keyed headlines and RSS news are
// fetched concurrently; none of them can fail the build.
func (e *Engine) Build(ctx context.Context, apiKey string) *Dashboard {
	ctx, span := logger.StartSpan(ctx, "engine.build")
	defer span.End()

	now := e.now()

	var (
		wg        sync.WaitGroup
		market    *dataflows.MarketSnapshot
		headlines *dataflows.NewsFeed
		rss       *dataflows.NewsFeed
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		ctx, span := logger.StartSpan(ctx, "fetch.market")
		defer span.End()
		market = e.data.GetMarketData(ctx)
		span.SetAttributes(attribute.Int("quotes", len(market.Quotes)))
	}()
	go func() {
		defer wg.Done()
		ctx, span := logger.StartSpan(ctx, "fetch.newsapi")
		defer span.End()
		headlines = e.data.GetHeadlines(ctx, apiKey)
		span.SetAttributes(attribute.Int("items", len(headlines.Items)))
	}()
	go func() {
		defer wg.Done()
		ctx, span := logger.StartSpan(ctx, "fetch.rss")
		defer span.End()
		rss = e.data.GetRSSNews(ctx)
		span.SetAttributes(attribute.Int("items", len(rss.Items)))
	}()
	wg.Wait()

	scoredHeadlines, headlineScore := e.processor.Score(headlines.Items)
	scoredRSS, rssScore := e.processor.Score(rss.Items)

	// keyed headlines drive the verdict; RSS only stands in when there are none
	score, basis := 0.0, BasisNone
	switch {
	case len(scoredHeadlines) > 0:
		score, basis = headlineScore, BasisNewsAPI
	case len(scoredRSS) > 0:
		score, basis = rssScore, BasisRSS
	}
	signal := processing.ClassifyAggregate(score)

	var warnings []string
	warnings = append(warnings, market.Warnings...)
	warnings = append(warnings, headlines.Warnings...)
	warnings = append(warnings, rss.Warnings...)

	e.log.Debug("dashboard built",
		zap.Float64("score", score),
		zap.String("signal", string(signal)),
		zap.String("basis", string(basis)),
		zap.Int("warnings", len(warnings)),
	)
	span.SetAttributes(
		attribute.Float64("score", score),
		attribute.String("signal", string(signal)),
	)

	return &Dashboard{
		GeneratedAt:    now,
		Session:        trading.ClassifySession(now),
		Market:         market,
		Headlines:      scoredHeadlines,
		RSS:            scoredRSS,
		Score:          score,
		Signal:         signal,
		Recommendation: signal.Recommendation(),
		SentimentBasis: basis,
		Warnings:       warnings,
	}
}
