package algo

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/huangsam/readiness/schema"
	"github.com/stretchr/testify/assert"
)

// TestScoreOf tests the per-response scoring rules.
func TestScoreOf(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected float64
	}{
		{"bool true", true, 100},
		{"bool false", false, 0},
		{"implemented", "Implemented", 100},
		{"implemented lower", "implemented", 100},
		{"implemented upper", "IMPLEMENTED", 100},
		{"complete", "Complete", 100},
		{"yes", "Yes", 100},
		{"always", "Always", 100},
		{"partially implemented", "Partially Implemented", 50},
		{"in progress", "In Progress", 50},
		{"sometimes", "Sometimes", 50},
		{"planned", "Planned", 25},
		{"rarely", "Rarely", 25},
		{"not implemented", "Not Implemented", 0},
		{"no", "No", 0},
		{"never", "Never", 0},
		{"surrounding space", "  yes ", 100},
		{"unknown label", "Annually", 0},
		{"partially is not in lexicon", "Partially", 0},
		{"empty string", "", 0},
		{"scale string 1", "1", 0},
		{"scale string 3", "3", 50},
		{"scale string 5", "5", 100},
		{"scale string out of range", "6", 0},
		{"scale string zero", "0", 0},
		{"scale string fractional", "3.5", 0},
		{"int 4", 4, 75},
		{"int64 2", int64(2), 25},
		{"float 3", 3.0, 50},
		{"float fractional", 2.5, 37.5},
		{"number clamps high", 9, 100},
		{"number clamps low", -3, 0},
		{"float32", float32(5), 100},
		{"uint8", uint8(1), 0},
		{"json number", json.Number("4"), 75},
		{"NaN", math.NaN(), 0},
		{"nil", nil, 0},
		{"unsupported type", []string{"yes"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScoreOf(tt.raw))
		})
	}
}

// TestScoreOf_ScalePositions checks every scale position lands on a quarter step.
func TestScoreOf_ScalePositions(t *testing.T) {
	expected := []float64{0, 25, 50, 75, 100}
	for i, want := range expected {
		assert.Equal(t, want, ScoreOf(i+1))
	}
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 50.0, Mean([]float64{100, 50, 0}))
	assert.Equal(t, 50.0, Mean([]float64{100, 0}))
}

func TestRankDomains(t *testing.T) {
	domains := []schema.DomainScore{
		{Domain: schema.SecurityDomain, Score: 40},
		{Domain: schema.AvailabilityDomain, Score: 90},
		{Domain: schema.ProcessingIntegrityDomain, Score: 40},
		{Domain: schema.ConfidentialityDomain, Score: 0},
	}

	ranked := RankDomains(domains)

	assert.Equal(t, schema.AvailabilityDomain, ranked[0].Domain)
	assert.Equal(t, schema.SecurityDomain, ranked[1].Domain, "ties keep catalog order")
	assert.Equal(t, schema.ProcessingIntegrityDomain, ranked[2].Domain)
	assert.Equal(t, schema.ConfidentialityDomain, ranked[3].Domain)
	assert.Equal(t, schema.SecurityDomain, domains[0].Domain, "input is not mutated")
}

func TestSelectFindings(t *testing.T) {
	controls := []schema.ControlScore{
		{Control: "A", Score: 75},
		{Control: "B", Score: 100},
		{Control: "C", Score: 74.9},
		{Control: "D", Score: 40},
		{Control: "E", Score: 0},
		{Control: "F", Score: 25},
		{Control: "G", Score: 40.1},
		{Control: "H", Score: 80},
		{Control: "I", Score: 90},
		{Control: "J", Score: 95},
		{Control: "K", Score: 85},
		{Control: "L", Score: 10},
		{Control: "M", Score: 30},
		{Control: "N", Score: 5},
	}

	t.Run("strengths", func(t *testing.T) {
		strengths := SelectStrengths(controls, FindingsLimit)
		names := make([]string, len(strengths))
		for i, s := range strengths {
			names[i] = s.Control
		}
		assert.Equal(t, []string{"B", "J", "I", "K", "H"}, names)
	})

	t.Run("gaps", func(t *testing.T) {
		gaps := SelectGaps(controls, FindingsLimit)
		names := make([]string, len(gaps))
		for i, g := range gaps {
			names[i] = g.Control
		}
		assert.Equal(t, []string{"E", "N", "L", "F", "M"}, names)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, SelectStrengths(nil, FindingsLimit))
		assert.Empty(t, SelectGaps([]schema.ControlScore{{Control: "X", Score: 60}}, FindingsLimit))
	})
}
