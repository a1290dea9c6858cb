package core

import (
	"slices"

	"github.com/huangsam/readiness/core/algo"
	"github.com/huangsam/readiness/core/catalog"
	"github.com/huangsam/readiness/schema"
)

// ScoreOptions tunes how domain scores roll up into the overall score.
type ScoreOptions struct {
	// ExcludeUnscoredDomains averages only domains with at least one scored control.
	// When false, every domain counts and unanswered ones pull the mean towards 0.
	ExcludeUnscoredDomains bool
}

// Score computes control, domain and overall readiness from a set of answers.
// It is pure and deterministic: the same answers always produce the same assessment.
// Completeness is the caller's concern; controls without answers are skipped.
func Score(answers schema.Answers, cat *catalog.Catalog, opts ScoreOptions) schema.Assessment {
	var (
		controlScores []schema.ControlScore
		domainScores  []schema.DomainScore
	)

	for _, domain := range cat.Domains() {
		var perControl []float64
		for _, control := range cat.ControlsOf(domain) {
			cs, ok := scoreControl(answers, cat, domain, control)
			if !ok {
				continue
			}
			controlScores = append(controlScores, cs)
			perControl = append(perControl, cs.Score)
		}
		mean := algo.Mean(perControl)
		domainScores = append(domainScores, schema.DomainScore{
			Domain:        domain,
			Score:         mean,
			Status:        schema.GetReadinessLabel(mean),
			ControlsCount: len(perControl),
		})
	}

	overall := overallScore(domainScores, opts)

	return schema.Assessment{
		ControlScores: controlScores,
		DomainScores:  algo.RankDomains(domainScores),
		OverallScore:  overall,
		OverallStatus: schema.GetReadinessLabel(overall),
		Strengths:     algo.SelectStrengths(controlScores, algo.FindingsLimit),
		Gaps:          algo.SelectGaps(controlScores, algo.FindingsLimit),
		TotalControls: len(controlScores),
		Unattributed:  unattributed(answers, cat),
	}
}

// scoreControl averages the answered questions of a control.
// Nil values count as unanswered.
func scoreControl(answers schema.Answers, cat *catalog.Catalog, domain schema.DomainName, control string) (schema.ControlScore, bool) {
	var (
		raws   []any
		scores []float64
	)
	for _, id := range cat.QuestionsFor(control) {
		raw, ok := answers[id]
		if !ok || raw == nil {
			continue
		}
		raws = append(raws, raw)
		scores = append(scores, algo.ScoreOf(raw))
	}
	if len(scores) == 0 {
		return schema.ControlScore{}, false
	}
	return schema.ControlScore{
		Control: control,
		Domain:  domain,
		Score:   algo.Mean(scores),
		Answers: raws,
	}, true
}

func overallScore(domains []schema.DomainScore, opts ScoreOptions) float64 {
	values := make([]float64, 0, len(domains))
	for _, d := range domains {
		if opts.ExcludeUnscoredDomains && d.ControlsCount == 0 {
			continue
		}
		values = append(values, d.Score)
	}
	return algo.Mean(values)
}

// unattributed lists answer keys that no catalog question owns.
func unattributed(answers schema.Answers, cat *catalog.Catalog) []string {
	var ids []string
	for id := range answers {
		if _, ok := cat.ControlOf(id); !ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
