package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/huangsam/readiness/schema"
)

//go:embed templates/summary.html.tmpl
var summaryTemplate string

var summary = template.Must(template.New("summary").Parse(summaryTemplate))

type domainRow struct {
	Name    string
	Percent int
	Color   string
	Status  string
}

type summaryView struct {
	Title          string
	Company        string
	Date           string
	OverallPercent int
	OverallStatus  string
	OverallColor   string
	TotalControls  int
	Domains        []domainRow
	Strengths      []string
	Gaps           []string
	NextSteps      []string
}

// RenderHTML builds the HTML summary used as an email body.
// All respondent text is escaped.
func RenderHTML(a schema.Assessment, respondent schema.Respondent, at time.Time) (string, error) {
	view := summaryView{
		Title:          ReportTitle,
		Company:        respondent.Company,
		Date:           at.Format(AssessmentDate),
		OverallPercent: schema.RoundScore(a.OverallScore),
		OverallStatus:  string(a.OverallStatus),
		OverallColor:   ScoreColor(a.OverallScore),
		TotalControls:  a.TotalControls,
		Strengths:      a.StrengthLines(),
		Gaps:           a.GapLines(),
		NextSteps:      EmailNextSteps,
	}
	for _, d := range a.DomainScores {
		view.Domains = append(view.Domains, domainRow{
			Name:    string(d.Domain),
			Percent: schema.RoundScore(d.Score),
			Color:   ScoreColor(d.Score),
			Status:  string(d.Status),
		})
	}

	var b strings.Builder
	if err := summary.Execute(&b, view); err != nil {
		return "", fmt.Errorf("render html summary: %w", err)
	}
	return b.String(), nil
}
