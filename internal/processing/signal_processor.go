package processing

import (
	"github.com/dyike/arandu/internal/sentiment"
	"github.com/dyike/arandu/pkg/dataflows"
)

// AggregateBand is the half-width of the neutral band around zero used by
// ClassifyAggregate.
const AggregateBand = 0.1

// Signal is the market verdict derived from the aggregate score.
type Signal string

const (
	Bullish Signal = "BULLISH"
	Bearish Signal = "BEARISH"
	Neutral Signal = "NEUTRAL"
)

// Recommendation returns the verdict text shown next to the signal.
func (s Signal) Recommendation() string {
	switch s {
	case Bullish:
		return "AGGRESSIVE GROWTH"
	case Bearish:
		return "CAPITAL PRESERVATION"
	default:
		return "WAIT & OBSERVE"
	}
}

// Marker is the per-headline sentiment direction.
type Marker string

const (
	Positive      Marker = "positive"
	Negative      Marker = "negative"
	NeutralMarker Marker = "neutral"
)

func (m Marker) Emoji() string {
	switch m {
	case Positive:
		return "🟢"
	case Negative:
		return "🔴"
	default:
		return "⚪"
	}
}

// ScoredItem is a news item with its title polarity.
type ScoredItem struct {
	Item   dataflows.NewsItem `json:"item"`
	Score  float64            `json:"score"`
	Marker Marker             `json:"marker"`
}

// AggregateScore returns the arithmetic mean of scores, 0 for no scores.
func AggregateScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// ClassifyAggregate maps an aggregate score to a Signal. Scores inside
// [-AggregateBand, AggregateBand] are neutral.
func ClassifyAggregate(score float64) Signal {
	switch {
	case score > AggregateBand:
		return Bullish
	case score < -AggregateBand:
		return Bearish
	default:
		return Neutral
	}
}

// ClassifyItem maps a single headline score to a Marker. Unlike
// ClassifyAggregate there is no neutral band: only exactly zero is neutral.
func ClassifyItem(score float64) Marker {
	switch {
	case score > 0:
		return Positive
	case score < 0:
		return Negative
	default:
		return NeutralMarker
	}
}

// Scorer is the polarity function applied to headline titles.
type Scorer interface {
	Polarity(text string) float64
}

// SignalProcessor scores headlines and derives the market signal
type SignalProcessor struct {
	scorer Scorer
}

// NewSignalProcessor creates a processor backed by the default lexicon scorer.
func NewSignalProcessor() *SignalProcessor {
	return NewSignalProcessorWithScorer(sentiment.NewScorer())
}

func NewSignalProcessorWithScorer(scorer Scorer) *SignalProcessor {
	return &SignalProcessor{scorer: scorer}
}

// Score scores each item's title in order and returns the scored items with
// their aggregate score. An empty input aggregates to 0.
func (sp *SignalProcessor) Score(items []dataflows.NewsItem) ([]ScoredItem, float64) {
	scored := make([]ScoredItem, 0, len(items))
	scores := make([]float64, 0, len(items))

	for _, item := range items {
		s := sp.scorer.Polarity(item.Title)
		scored = append(scored, ScoredItem{
			Item:   item,
			Score:  s,
			Marker: ClassifyItem(s),
		})
		scores = append(scores, s)
	}

	return scored, AggregateScore(scores)
}
