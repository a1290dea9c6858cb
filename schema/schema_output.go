package schema

import (
	"fmt"
	"math"
)

// Placeholders shown when a findings list is empty.
const (
	NoStrengthsPlaceholder = "No significant strengths identified"
	NoGapsPlaceholder      = "No critical gaps identified"
)

// EnrichedDomainScore adds presentation data to a DomainScore.
type EnrichedDomainScore struct {
	Rank    int `json:"rank"`
	Percent int `json:"percent"`
	DomainScore
}

// GetReadinessLabel classifies a score in [0,100] into a readiness label.
// Boundaries are inclusive on the lower end: 80, 60 and 40.
func GetReadinessLabel(score float64) ReadinessLabel {
	switch {
	case score >= 80:
		return WellPrepared
	case score >= 60:
		return PartiallyPrepared
	case score >= 40:
		return EarlyStage
	default:
		return NeedsImprovement
	}
}

// RoundScore returns the score as a whole percentage, the way it is displayed to users.
func RoundScore(score float64) int {
	return int(math.Round(score))
}

// EnrichDomains adds rank and rounded percent to an ordered list of domain scores.
func EnrichDomains(domains []DomainScore) []EnrichedDomainScore {
	output := make([]EnrichedDomainScore, len(domains))
	for i, d := range domains {
		output[i] = EnrichedDomainScore{
			Rank:        i + 1,
			Percent:     RoundScore(d.Score),
			DomainScore: d,
		}
	}
	return output
}

// FindingLine formats a control score as "Control (NN%)".
func FindingLine(cs ControlScore) string {
	return fmt.Sprintf("%s (%d%%)", cs.Control, RoundScore(cs.Score))
}

// StrengthLines returns the strengths as display lines, or the placeholder when empty.
func (a Assessment) StrengthLines() []string {
	return findingLines(a.Strengths, NoStrengthsPlaceholder)
}

// GapLines returns the gaps as display lines, or the placeholder when empty.
func (a Assessment) GapLines() []string {
	return findingLines(a.Gaps, NoGapsPlaceholder)
}

func findingLines(scores []ControlScore, placeholder string) []string {
	if len(scores) == 0 {
		return []string{placeholder}
	}
	lines := make([]string, len(scores))
	for i, cs := range scores {
		lines[i] = FindingLine(cs)
	}
	return lines
}
