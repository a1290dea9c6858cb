package core

import (
	"encoding/json"
	"testing"

	"github.com/huangsam/readiness/core/catalog"
	"github.com/huangsam/readiness/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullAnswers answers every default question with the given choice label and scale position.
func fullAnswers(label string, position int) schema.Answers {
	answers := make(schema.Answers)
	for _, s := range catalog.Default().Sections() {
		for _, q := range s.Questions {
			if q.Kind == schema.ScaleQuestion {
				answers[q.ID] = position
			} else {
				answers[q.ID] = label
			}
		}
	}
	return answers
}

func findControl(t *testing.T, a schema.Assessment, control string) schema.ControlScore {
	t.Helper()
	for _, cs := range a.ControlScores {
		if cs.Control == control {
			return cs
		}
	}
	t.Fatalf("control %q not scored", control)
	return schema.ControlScore{}
}

func findDomain(t *testing.T, a schema.Assessment, domain schema.DomainName) schema.DomainScore {
	t.Helper()
	for _, ds := range a.DomainScores {
		if ds.Domain == domain {
			return ds
		}
	}
	t.Fatalf("domain %q not scored", domain)
	return schema.DomainScore{}
}

func TestScore_AccessControlScenario(t *testing.T) {
	answers := schema.Answers{
		"access_control_1": "Implemented",
		"access_control_2": "Annually",
	}

	a := Score(answers, catalog.Default(), ScoreOptions{})

	require.Len(t, a.ControlScores, 1)
	cs := a.ControlScores[0]
	assert.Equal(t, "Access Control", cs.Control)
	assert.Equal(t, schema.SecurityDomain, cs.Domain)
	assert.Equal(t, 50.0, cs.Score)
	assert.Equal(t, []any{"Implemented", "Annually"}, cs.Answers)

	security := findDomain(t, a, schema.SecurityDomain)
	assert.Equal(t, 50.0, security.Score)
	assert.Equal(t, 1, security.ControlsCount)
	assert.Equal(t, schema.EarlyStage, security.Status)

	privacy := findDomain(t, a, schema.PrivacyDomain)
	assert.Equal(t, 0.0, privacy.Score)
	assert.Equal(t, 0, privacy.ControlsCount)
	assert.Equal(t, schema.NeedsImprovement, privacy.Status)

	// Unscored domains count towards the overall mean by default.
	assert.Equal(t, 10.0, a.OverallScore)
	assert.Equal(t, schema.NeedsImprovement, a.OverallStatus)
	assert.Equal(t, schema.SecurityDomain, a.DomainScores[0].Domain)
	assert.Equal(t, 1, a.TotalControls)
}

func TestScore_ExcludeUnscoredDomains(t *testing.T) {
	answers := schema.Answers{
		"access_control_1": "Implemented",
		"access_control_2": "Annually",
	}

	a := Score(answers, catalog.Default(), ScoreOptions{ExcludeUnscoredDomains: true})

	assert.Equal(t, 50.0, a.OverallScore)
	assert.Equal(t, schema.EarlyStage, a.OverallStatus)
	assert.Len(t, a.DomainScores, 5, "unscored domains are still reported")
}

func TestScore_DomainMean(t *testing.T) {
	// Three controls scoring 100, 50 and 0 average to exactly 50.
	answers := schema.Answers{
		"system_security_1":  "Always",
		"network_security_1": "Sometimes",
		"authentication_1":   "Yes",
		"encryption_1":       "Neither", // not in the lexicon
	}

	a := Score(answers, catalog.Default(), ScoreOptions{})
	security := findDomain(t, a, schema.SecurityDomain)
	assert.Equal(t, 4, security.ControlsCount)
	assert.Equal(t, 62.5, security.Score)

	delete(answers, "authentication_1")
	a = Score(answers, catalog.Default(), ScoreOptions{})
	security = findDomain(t, a, schema.SecurityDomain)
	assert.Equal(t, 3, security.ControlsCount)
	assert.Equal(t, 50.0, security.Score)
}

func TestScore_ControlOrderAndRanking(t *testing.T) {
	answers := fullAnswers("Yes", 5)
	answers["access_control_1"] = "Not Implemented"
	answers["access_control_2"] = "Not reviewed"
	answers["privacy_notice_1"] = "Planned"

	a := Score(answers, catalog.Default(), ScoreOptions{})

	require.Len(t, a.ControlScores, 29)
	assert.Equal(t, "Access Control", a.ControlScores[0].Control)
	assert.Equal(t, "Privacy Monitoring", a.ControlScores[28].Control)

	for i := 1; i < len(a.DomainScores); i++ {
		assert.GreaterOrEqual(t, a.DomainScores[i-1].Score, a.DomainScores[i].Score)
	}

	require.Len(t, a.Gaps, 2)
	assert.Equal(t, "Access Control", a.Gaps[0].Control)
	assert.Equal(t, "Privacy Notice", a.Gaps[1].Control)
	assert.Len(t, a.Strengths, 5)
	for _, s := range a.Strengths {
		assert.GreaterOrEqual(t, s.Score, 75.0)
	}
}

func TestScore_EveryControlInRange(t *testing.T) {
	for _, label := range []string{"Yes", "Partially", "Planned", "No", "Sometimes"} {
		for pos := 1; pos <= 5; pos++ {
			a := Score(fullAnswers(label, pos), catalog.Default(), ScoreOptions{})
			for _, cs := range a.ControlScores {
				assert.GreaterOrEqual(t, cs.Score, 0.0)
				assert.LessOrEqual(t, cs.Score, 100.0)
			}
			assert.GreaterOrEqual(t, a.OverallScore, 0.0)
			assert.LessOrEqual(t, a.OverallScore, 100.0)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	answers := fullAnswers("Sometimes", 3)
	answers["encryption_1"] = "Both"

	first, err := json.Marshal(Score(answers, catalog.Default(), ScoreOptions{}))
	require.NoError(t, err)
	second, err := json.Marshal(Score(answers, catalog.Default(), ScoreOptions{}))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestScore_UnattributedAndNil(t *testing.T) {
	answers := schema.Answers{
		"zeta_1":           "Yes",
		"alpha_1":          "Yes",
		"encryption_1":     nil,
		"authentication_1": true,
	}

	a := Score(answers, catalog.Default(), ScoreOptions{})

	assert.Equal(t, []string{"alpha_1", "zeta_1"}, a.Unattributed)
	require.Len(t, a.ControlScores, 1)
	assert.Equal(t, 100.0, findControl(t, a, "Authentication").Score)
}

func TestScore_EmptyAnswers(t *testing.T) {
	a := Score(schema.Answers{}, catalog.Default(), ScoreOptions{})

	assert.Empty(t, a.ControlScores)
	assert.Len(t, a.DomainScores, 5)
	assert.Equal(t, 0.0, a.OverallScore)
	assert.Empty(t, a.Strengths)
	assert.Empty(t, a.Gaps)
	assert.Equal(t, []string{schema.NoStrengthsPlaceholder}, a.StrengthLines())

	a = Score(schema.Answers{}, catalog.Default(), ScoreOptions{ExcludeUnscoredDomains: true})
	assert.Equal(t, 0.0, a.OverallScore)
}
