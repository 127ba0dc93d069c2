package sentiment

// loadPolarityLexicon returns word polarities in [-1, 1], tuned for market
// and business headlines.
func loadPolarityLexicon() map[string]float64 {
	return map[string]float64{
		// positive
		"advance":      0.3,
		"advances":     0.3,
		"beat":         0.4,
		"beats":        0.4,
		"best":         1.0,
		"better":       0.5,
		"boom":         0.5,
		"booming":      0.5,
		"boost":        0.4,
		"boosts":       0.4,
		"breakthrough": 0.6,
		"bullish":      0.6,
		"climb":        0.3,
		"climbs":       0.3,
		"confidence":   0.4,
		"confident":    0.5,
		"easing":       0.2,
		"excellent":    1.0,
		"expand":       0.3,
		"expansion":    0.3,
		"gain":         0.4,
		"gains":        0.4,
		"good":         0.7,
		"great":        0.8,
		"growth":       0.4,
		"high":         0.16,
		"higher":       0.25,
		"improve":      0.4,
		"improved":     0.4,
		"improves":     0.4,
		"jump":         0.4,
		"jumps":        0.4,
		"optimism":     0.5,
		"optimistic":   0.5,
		"outperform":   0.5,
		"positive":     0.23,
		"profit":       0.4,
		"profitable":   0.5,
		"profits":      0.4,
		"rally":        0.5,
		"rallies":      0.5,
		"rebound":      0.4,
		"rebounds":     0.4,
		"record":       0.3,
		"recover":      0.4,
		"recovery":     0.4,
		"rise":         0.3,
		"rises":        0.3,
		"rising":       0.3,
		"robust":       0.5,
		"soar":         0.7,
		"soars":        0.7,
		"solid":        0.3,
		"stable":       0.2,
		"strong":       0.43,
		"stronger":     0.5,
		"success":      0.5,
		"successful":   0.6,
		"surge":        0.6,
		"surges":       0.6,
		"upbeat":       0.5,
		"upgrade":      0.5,
		"upgrades":     0.5,
		"win":          0.8,
		"wins":         0.8,

		// negative
		"bad":         -0.7,
		"bankruptcy":  -0.8,
		"bearish":     -0.6,
		"collapse":    -0.8,
		"collapses":   -0.8,
		"concern":     -0.3,
		"concerns":    -0.3,
		"crash":       -0.8,
		"crashes":     -0.8,
		"crisis":      -0.6,
		"cut":         -0.1,
		"cuts":        -0.1,
		"decline":     -0.3,
		"declines":    -0.3,
		"default":     -0.4,
		"deficit":     -0.3,
		"downgrade":   -0.5,
		"downgrades":  -0.5,
		"drop":        -0.3,
		"drops":       -0.3,
		"fall":        -0.3,
		"falls":       -0.3,
		"fear":        -0.5,
		"fears":       -0.5,
		"fraud":       -0.8,
		"inflation":   -0.2,
		"layoffs":     -0.5,
		"lawsuit":     -0.4,
		"loss":        -0.4,
		"losses":      -0.4,
		"low":         -0.2,
		"lower":       -0.1,
		"miss":        -0.4,
		"misses":      -0.4,
		"negative":    -0.3,
		"plunge":      -0.7,
		"plunges":     -0.7,
		"poor":        -0.4,
		"recession":   -0.6,
		"risk":        -0.2,
		"risks":       -0.2,
		"selloff":     -0.5,
		"shortfall":   -0.4,
		"sink":        -0.5,
		"sinks":       -0.5,
		"slowdown":    -0.4,
		"slump":       -0.6,
		"slumps":      -0.6,
		"tariff":      -0.2,
		"tariffs":     -0.2,
		"terrible":    -1.0,
		"tumble":      -0.6,
		"tumbles":     -0.6,
		"uncertainty": -0.3,
		"volatile":    -0.2,
		"war":         -0.6,
		"warning":     -0.3,
		"weak":        -0.375,
		"weaker":      -0.4,
		"worse":       -0.6,
		"worst":       -1.0,
	}
}

func loadNegations() map[string]bool {
	words := []string{
		"not", "no", "never", "none", "nobody", "nothing",
		"neither", "nor", "cannot", "without", "hardly",
	}
	out := make(map[string]bool, len(words))
	for _, w := range words {
		out[w] = true
	}
	return out
}

func loadIntensifiers() map[string]float64 {
	return map[string]float64{
		"very":          1.3,
		"really":        1.2,
		"highly":        1.3,
		"extremely":     1.5,
		"incredibly":    1.5,
		"exceptionally": 1.5,
		"sharply":       1.4,
		"most":          1.3,
		"so":            1.2,
		"slightly":      0.5,
		"somewhat":      0.7,
		"barely":        0.5,
		"modestly":      0.6,
	}
}

// loadFillerWords returns words that keep a pending negation or intensifier alive.
func loadFillerWords() map[string]bool {
	words := []string{"a", "an", "the", "be", "is", "are", "was", "were", "been", "that", "too", "as"}
	out := make(map[string]bool, len(words))
	for _, w := range words {
		out[w] = true
	}
	return out
}
