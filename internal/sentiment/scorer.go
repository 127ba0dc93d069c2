// Package sentiment scores free text with a fixed polarity lexicon.
package sentiment

import (
	"strings"
	"unicode"
)

// negationFactor is applied to a word that follows a negation.
const negationFactor = -0.5

// Scorer is safe for concurrent use; its tables are never written after
// construction.
type Scorer struct {
	polarity     map[string]float64
	negations    map[string]bool
	intensifiers map[string]float64
	fillers      map[string]bool
}

// NewScorer creates a scorer with the built-in lexicon.
func NewScorer() *Scorer {
	return &Scorer{
		polarity:     loadPolarityLexicon(),
		negations:    loadNegations(),
		intensifiers: loadIntensifiers(),
		fillers:      loadFillerWords(),
	}
}

var defaultScorer = NewScorer()

// Polarity scores text with the default scorer.
func Polarity(text string) float64 {
	return defaultScorer.Polarity(text)
}

// Polarity returns the mean polarity of the lexicon words in text, in [-1, 1].
// Text without any lexicon word, including empty text, scores 0.
func (s *Scorer) Polarity(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	var (
		sum      float64
		count    int
		negate   bool
		modifier = 1.0
	)
	reset := func() {
		negate = false
		modifier = 1.0
	}

	for _, word := range s.tokenize(text) {
		if s.negations[word] || strings.HasSuffix(word, "n't") {
			negate = !negate
			continue
		}
		if m, ok := s.intensifiers[word]; ok {
			modifier *= m
			continue
		}
		p, ok := s.polarity[word]
		if !ok {
			if !s.fillers[word] {
				reset()
			}
			continue
		}

		p *= modifier
		if negate {
			p *= negationFactor
		}
		sum += clamp(p)
		count++
		reset()
	}

	if count == 0 {
		return 0
	}
	return clamp(sum / float64(count))
}

var quoteReplacer = strings.NewReplacer("’", "'", "‘", "'")

// tokenize lowercases text and splits it into words. Inner apostrophes are
// kept so contractions like "isn't" survive; quote marks around a word are
// dropped.
func (s *Scorer) tokenize(text string) []string {
	text = quoteReplacer.Replace(strings.ToLower(text))
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	words := fields[:0]
	for _, f := range fields {
		if w := strings.Trim(f, "'"); w != "" {
			words = append(words, w)
		}
	}
	return words
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
