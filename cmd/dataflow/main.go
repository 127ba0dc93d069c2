package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/dyike/arandu/config"
	"github.com/dyike/arandu/internal/logger"
	"github.com/dyike/arandu/pkg/dataflows"
)

// dataflow probes one data source without caching and prints the raw result.
func main() {
	source := flag.String("source", "market", "market, newsapi or rss")
	flag.Parse()

	ctx := context.Background()
	cfg := config.DefaultConfig()

	log, err := logger.New("debug", "console")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	var result any
	switch *source {
	case "market":
		result = dataflows.NewMarketFetcher(
			dataflows.NewYahooFinanceClient(cfg),
			dataflows.WithMarketLogger(log),
		).Fetch(ctx)
	case "newsapi":
		if !cfg.HasNewsAPIKey() {
			log.Warn("NEWSAPI_KEY is empty, the request will be skipped")
		}
		result = dataflows.NewNewsAPIClient(cfg, dataflows.WithNewsAPILogger(log)).
			TopHeadlines(ctx, cfg.NewsAPIKey)
	case "rss":
		result = dataflows.NewRSSClient(cfg, dataflows.WithRSSLogger(log)).Fetch(ctx)
	default:
		log.Error("unknown source", zap.String("source", *source))
		os.Exit(2)
	}

	payload, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(payload))
}
