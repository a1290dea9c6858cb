package core

import (
	"bytes"
	"testing"
	"time"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkAssessment() schema.Assessment {
	return schema.Assessment{
		OverallScore:  62.5,
		OverallStatus: schema.PartiallyPrepared,
		DomainScores: []schema.DomainScore{
			{Domain: schema.SecurityDomain, Score: 90, Status: schema.WellPrepared, ControlsCount: 7},
			{Domain: schema.AvailabilityDomain, Score: 70, Status: schema.PartiallyPrepared, ControlsCount: 5},
			{Domain: schema.ProcessingIntegrityDomain, Score: 60, Status: schema.PartiallyPrepared, ControlsCount: 5},
			{Domain: schema.ConfidentialityDomain, Score: 52.5, Status: schema.EarlyStage, ControlsCount: 5},
			{Domain: schema.PrivacyDomain, Score: 30, Status: schema.NeedsImprovement, ControlsCount: 7},
		},
	}
}

func TestBuildCheckResult(t *testing.T) {
	tests := []struct {
		name        string
		minOverall  float64
		minByDomain map[schema.DomainName]float64
		wantPassed  bool
		wantScopes  []string
	}{
		{"overall only passes", 60, nil, true, nil},
		{"overall boundary passes", 62.5, nil, true, nil},
		{"overall fails", 70, nil, false, []string{"overall"}},
		{
			"domain minimum fails",
			50,
			map[schema.DomainName]float64{schema.PrivacyDomain: 40, schema.SecurityDomain: 80},
			false,
			[]string{"Privacy"},
		},
		{
			"failures in catalog order",
			70,
			map[schema.DomainName]float64{schema.PrivacyDomain: 40, schema.AvailabilityDomain: 75},
			false,
			[]string{"overall", "Availability", "Privacy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{MinOverall: tt.minOverall, MinByDomain: tt.minByDomain}
			result := BuildCheckResult(checkAssessment(), testRespondent, cfg)

			assert.Equal(t, tt.wantPassed, result.Passed)
			assert.Equal(t, "Acme Corp", result.Company)
			var scopes []string
			for _, f := range result.Failures {
				scopes = append(scopes, f.Scope)
			}
			assert.Equal(t, tt.wantScopes, scopes)
		})
	}
}

func TestPrintCheckResult(t *testing.T) {
	t.Run("passed", func(t *testing.T) {
		cfg := &contract.Config{MinOverall: 60, MinByDomain: map[schema.DomainName]float64{schema.ProcessingIntegrityDomain: 55}}
		result := BuildCheckResult(checkAssessment(), testRespondent, cfg)
		require.True(t, result.Passed)

		var buf bytes.Buffer
		printCheckResult(&buf, result, 5*time.Millisecond)
		out := buf.String()

		assert.Contains(t, out, "Readiness Check Results:")
		assert.Contains(t, out, "Company:  Acme Corp")
		assert.Contains(t, out, "overall=60.0, processing_integrity=55.0")
		assert.Contains(t, out, "Checked 5 domains in 5ms")
		assert.Contains(t, out, "✅ All readiness checks passed")
		assert.Contains(t, out, "Privacy: 30.0 (Needs Significant Improvement)")
	})

	t.Run("failed", func(t *testing.T) {
		cfg := &contract.Config{MinOverall: 80}
		result := BuildCheckResult(checkAssessment(), testRespondent, cfg)
		require.False(t, result.Passed)

		var buf bytes.Buffer
		printCheckResult(&buf, result, time.Second)
		out := buf.String()

		assert.Contains(t, out, "❌ Readiness check failed: 1 score(s) below minimum")
		assert.Contains(t, out, "overall (score: 62.5 < minimum: 80.0)")
		assert.NotContains(t, out, "Scores observed")
	})
}
