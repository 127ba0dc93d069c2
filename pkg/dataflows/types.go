package dataflows

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dyike/arandu/config"
)

// Config is an alias for the main application config
type Config = config.Config

var (
	// ErrInsufficientBars means the provider returned fewer than two daily bars.
	ErrInsufficientBars = errors.New("insufficient price history")
	// ErrNewsAPIStatus means the news envelope did not report status "ok".
	ErrNewsAPIStatus = errors.New("news api returned non-ok status")
)

// Unavailable is how a missing price is displayed.
const Unavailable = "N/A"

// Instrument is one entry of the fixed market basket.
type Instrument struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Unit   string `json:"unit"`
}

// Bar is one daily OHLC bar from a quote provider.
type Bar struct {
	Time  time.Time       `json:"time"`
	Open  decimal.Decimal `json:"open"`
	High  decimal.Decimal `json:"high"`
	Low   decimal.Decimal `json:"low"`
	Close decimal.Decimal `json:"close"`
}

type QuoteStatus string

const (
	QuoteOK          QuoteStatus = "ok"
	QuoteUnavailable QuoteStatus = "unavailable"
)

// Quote is the latest price of an instrument and its change against the
// previous daily close. Price and DeltaPct are rounded to two places; an
// unavailable quote carries zeros.
type Quote struct {
	Instrument Instrument      `json:"instrument"`
	Status     QuoteStatus     `json:"status"`
	Price      decimal.Decimal `json:"price"`
	DeltaPct   decimal.Decimal `json:"delta_pct"`
}

// Available reports whether the quote carries a real price.
func (q Quote) Available() bool {
	return q.Status == QuoteOK
}

// PriceString renders the price, or "N/A" when unavailable.
func (q Quote) PriceString() string {
	if !q.Available() {
		return Unavailable
	}
	return q.Price.StringFixed(2)
}

func unavailableQuote(inst Instrument) Quote {
	return Quote{
		Instrument: inst,
		Status:     QuoteUnavailable,
		Price:      decimal.Zero,
		DeltaPct:   decimal.Zero,
	}
}

// PricePoint is one close of the reference history series.
type PricePoint struct {
	Time  time.Time       `json:"time"`
	Close decimal.Decimal `json:"close"`
}

// MarketSnapshot is the output of one market refresh. It is never mutated
// after construction.
type MarketSnapshot struct {
	Quotes    []Quote      `json:"quotes"`
	History   []PricePoint `json:"history"`
	Reference Instrument   `json:"reference"`
	Warnings  []string     `json:"warnings,omitempty"`
	FetchedAt time.Time    `json:"fetched_at"`
}

// Quote looks a quote up by instrument display name.
func (s *MarketSnapshot) Quote(name string) (Quote, bool) {
	for _, q := range s.Quotes {
		if q.Instrument.Name == name {
			return q, true
		}
	}
	return Quote{}, false
}

type Origin string

const (
	OriginNewsAPI Origin = "newsapi"
	OriginRSS     Origin = "rss"
)

// NewsItem is a headline from either the keyed news API or an RSS feed.
type NewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
	Link        string `json:"link,omitempty"`
	Origin      Origin `json:"origin"`
}

// NewsFeed is one news collection plus any soft warnings from fetching it.
type NewsFeed struct {
	Items     []NewsItem `json:"items"`
	Warnings  []string   `json:"warnings,omitempty"`
	FetchedAt time.Time  `json:"fetched_at"`
}

// Feed is an RSS source.
type Feed struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
