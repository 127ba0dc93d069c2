package dataflows

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// BarProvider returns timestamp-ordered daily bars for a symbol covering the
// last days calendar days.
type BarProvider interface {
	DailyBars(ctx context.Context, symbol string, days int) ([]Bar, error)
}

// YahooFinanceClient handles Yahoo Finance data operations
type YahooFinanceClient struct {
	timeout time.Duration
	retry   *RetryConfig
	now     func() time.Time
}

var setFinanceClient sync.Once

// NewYahooFinanceClient creates a new Yahoo Finance client. finance-go keeps
// one package-level HTTP client, so the first caller's timeout wins.
func NewYahooFinanceClient(config *Config) *YahooFinanceClient {
	setFinanceClient.Do(func() {
		finance.SetHTTPClient(&http.Client{Timeout: config.HTTPTimeout})
	})

	return &YahooFinanceClient{
		timeout: config.HTTPTimeout,
		retry:   DefaultRetryConfig(),
		now:     time.Now,
	}
}

// DailyBars gets daily bars for symbol over the last days calendar days.
func (yf *YahooFinanceClient) DailyBars(ctx context.Context, symbol string, days int) ([]Bar, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol cannot be empty")
	}

	end := yf.now()
	start := end.AddDate(0, 0, -days)

	var result []Bar
	err := WithRetry(ctx, yf.retry, func(ctx context.Context) error {
		bars, err := yf.fetchChart(ctx, symbol, start, end)
		if err != nil {
			return err
		}
		result = bars
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// chartParams builds a daily chart request carrying ctx, so cancelling ctx
// aborts the HTTP call itself.
func chartParams(ctx context.Context, symbol string, start, end time.Time) *chart.Params {
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}
	params.Context = &ctx
	return params
}

// fetchChart runs one chart request, bounded by the client timeout even if
// the underlying iterator ignores ctx.
func (yf *YahooFinanceClient) fetchChart(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error) {
	ctx, cancel := context.WithTimeout(ctx, yf.timeout)
	defer cancel()

	type outcome struct {
		bars []Bar
		err  error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("chart request for %s panicked: %v", symbol, r)}
			}
		}()

		iter := chart.Get(chartParams(ctx, symbol, start, end))

		bars := make([]Bar, 0)
		for iter.Next() {
			b := iter.Bar()
			// Yahoo reports days without a close as null.
			if b.Close.IsZero() {
				continue
			}
			bars = append(bars, Bar{
				Time:  time.Unix(int64(b.Timestamp), 0).UTC(),
				Open:  b.Open,
				High:  b.High,
				Low:   b.Low,
				Close: b.Close,
			})
		}

		if err := iter.Err(); err != nil {
			done <- outcome{err: fmt.Errorf("failed to get chart data for %s: %w", symbol, err)}
			return
		}
		done <- outcome{bars: bars}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("chart request for %s: %w", symbol, ctx.Err())
	case out := <-done:
		return out.bars, out.err
	}
}
