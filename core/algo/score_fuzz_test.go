package algo

import (
	"testing"
)

// FuzzScoreOf checks that string and numeric responses always land in [0,100].
func FuzzScoreOf(f *testing.F) {
	seeds := []struct {
		label  string
		number float64
	}{
		{"Implemented", 1},
		{"partially implemented", 3},
		{"3", 5},
		{"", -100},
		{"Ⅻ", 1e308},
	}
	for _, seed := range seeds {
		f.Add(seed.label, seed.number)
	}

	f.Fuzz(func(t *testing.T, label string, number float64) {
		for _, raw := range []any{label, number, int(number) % 100} {
			score := ScoreOf(raw)
			if score < 0 || score > 100 {
				t.Fatalf("ScoreOf(%#v) = %v, want within [0,100]", raw, score)
			}
		}
	})
}
