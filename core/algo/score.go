// Package algo has the pure scoring and ranking functions of the readiness engine.
package algo

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Lexicon maps folded response labels to their score.
// Labels outside the lexicon fall through to ordinal scale parsing.
var Lexicon = map[string]float64{
	"implemented":           100,
	"complete":              100,
	"yes":                   100,
	"always":                100,
	"partially implemented": 50,
	"in progress":           50,
	"sometimes":             50,
	"planned":               25,
	"rarely":                25,
	"not implemented":       0,
	"no":                    0,
	"never":                 0,
}

// Ordinal scale bounds used when a response is a scale position.
const (
	ScaleMin  = 1
	ScaleMax  = 5
	scaleStep = 25.0
)

// ScoreOf maps a raw response to a score in [0,100].
// It is total: unknown strings and unsupported types score 0.
func ScoreOf(raw any) float64 {
	switch v := raw.(type) {
	case bool:
		if v {
			return 100
		}
		return 0
	case string:
		return scoreString(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return scoreNumber(f)
		}
		return scoreString(v.String())
	case int:
		return scoreNumber(float64(v))
	case int8:
		return scoreNumber(float64(v))
	case int16:
		return scoreNumber(float64(v))
	case int32:
		return scoreNumber(float64(v))
	case int64:
		return scoreNumber(float64(v))
	case uint:
		return scoreNumber(float64(v))
	case uint8:
		return scoreNumber(float64(v))
	case uint16:
		return scoreNumber(float64(v))
	case uint32:
		return scoreNumber(float64(v))
	case uint64:
		return scoreNumber(float64(v))
	case float32:
		return scoreNumber(float64(v))
	case float64:
		return scoreNumber(v)
	default:
		return 0
	}
}

// FoldLabel normalizes a response label for case-insensitive comparison.
func FoldLabel(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func scoreString(s string) float64 {
	if score, ok := Lexicon[FoldLabel(s)]; ok {
		return score
	}
	// Only whole scale positions count; "3.5" or "6" score nothing.
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n >= ScaleMin && n <= ScaleMax {
		return float64(n-ScaleMin) * scaleStep
	}
	return 0
}

func scoreNumber(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clamp((v-ScaleMin)*scaleStep, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
