package dataflows

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// HistoryDays is the lookback of the reference history series.
	HistoryDays = 30
	// QuoteDays is the lookback used to find the last two closes.
	QuoteDays = 5
)

// DefaultBasket is the fixed instrument basket, in display order.
var DefaultBasket = []Instrument{
	{Name: "S&P 500", Symbol: "^GSPC", Unit: "pts"},
	{Name: "Bitcoin", Symbol: "BTC-USD", Unit: "USD"},
	{Name: "Gold", Symbol: "GC=F", Unit: "USD"},
	{Name: "Ibovespa", Symbol: "^BVSP", Unit: "pts"},
}

// ReferenceInstrument is the instrument whose history is charted.
var ReferenceInstrument = Instrument{Name: "Bitcoin", Symbol: "BTC-USD", Unit: "USD"}

var hundred = decimal.NewFromInt(100)

// MarketFetcher builds market snapshots from a BarProvider. It never returns
// errors; failures become unavailable quotes, empty history and warnings.
type MarketFetcher struct {
	provider  BarProvider
	basket    []Instrument
	reference Instrument
	log       *zap.Logger
	now       func() time.Time
}

type MarketOption func(*MarketFetcher)

func WithBasket(basket []Instrument) MarketOption {
	return func(f *MarketFetcher) {
		f.basket = append([]Instrument(nil), basket...)
	}
}

func WithReference(inst Instrument) MarketOption {
	return func(f *MarketFetcher) {
		f.reference = inst
	}
}

func WithMarketLogger(l *zap.Logger) MarketOption {
	return func(f *MarketFetcher) {
		if l != nil {
			f.log = l
		}
	}
}

func WithMarketClock(now func() time.Time) MarketOption {
	return func(f *MarketFetcher) {
		if now != nil {
			f.now = now
		}
	}
}

func NewMarketFetcher(provider BarProvider, opts ...MarketOption) *MarketFetcher {
	f := &MarketFetcher{
		provider:  provider,
		basket:    DefaultBasket,
		reference: ReferenceInstrument,
		log:       zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch refreshes the history series and every basket quote.
func (f *MarketFetcher) Fetch(ctx context.Context) *MarketSnapshot {
	history, historyWarnings := f.FetchHistory(ctx)
	quotes, quoteWarnings := f.FetchQuotes(ctx)

	return &MarketSnapshot{
		Quotes:    quotes,
		History:   history,
		Reference: f.reference,
		Warnings:  append(historyWarnings, quoteWarnings...),
		FetchedAt: f.now(),
	}
}

// FetchHistory returns the reference instrument's daily closes, oldest first.
// A failed or empty response yields an empty series.
func (f *MarketFetcher) FetchHistory(ctx context.Context) ([]PricePoint, []string) {
	bars, err := f.provider.DailyBars(ctx, f.reference.Symbol, HistoryDays)
	if err != nil {
		f.log.Warn("history fetch failed", zap.String("symbol", f.reference.Symbol), zap.Error(err))
		return []PricePoint{}, []string{fmt.Sprintf("history for %s unavailable: %v", f.reference.Name, err)}
	}

	history := make([]PricePoint, 0, len(bars))
	for _, b := range bars {
		history = append(history, PricePoint{Time: b.Time, Close: b.Close})
	}
	if len(history) == 0 {
		return history, []string{fmt.Sprintf("history for %s is empty", f.reference.Name)}
	}
	return history, nil
}

// FetchQuotes returns one quote per basket instrument, in basket order. A
// failure on one instrument does not affect the others.
func (f *MarketFetcher) FetchQuotes(ctx context.Context) ([]Quote, []string) {
	quotes := make([]Quote, 0, len(f.basket))
	var warnings []string

	for _, inst := range f.basket {
		bars, err := f.provider.DailyBars(ctx, inst.Symbol, QuoteDays)
		if err != nil {
			f.log.Warn("quote fetch failed", zap.String("symbol", inst.Symbol), zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("quote for %s unavailable: %v", inst.Name, err))
			quotes = append(quotes, unavailableQuote(inst))
			continue
		}

		q, err := ComputeQuote(inst, bars)
		if err != nil {
			f.log.Debug("quote unavailable", zap.String("symbol", inst.Symbol), zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("quote for %s unavailable: %v", inst.Name, err))
		}
		quotes = append(quotes, q)
	}

	return quotes, warnings
}

// ComputeQuote derives a quote from timestamp-ordered daily bars: the last
// close against the one before it. With fewer than two bars, or a zero
// previous close, it returns an unavailable quote and an error saying why.
func ComputeQuote(inst Instrument, bars []Bar) (Quote, error) {
	if len(bars) < 2 {
		return unavailableQuote(inst), fmt.Errorf("%s: %d bar(s): %w", inst.Symbol, len(bars), ErrInsufficientBars)
	}

	current := bars[len(bars)-1].Close
	previous := bars[len(bars)-2].Close
	if previous.IsZero() {
		return unavailableQuote(inst), fmt.Errorf("%s: previous close is zero", inst.Symbol)
	}

	delta := current.Sub(previous).Div(previous).Mul(hundred)

	return Quote{
		Instrument: inst,
		Status:     QuoteOK,
		Price:      current.Round(2),
		DeltaPct:   delta.Round(2),
	}, nil
}
