package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAssessmentResults outputs a scored assessment, dispatching on the configured format.
func WriteAssessmentResults(a schema.Assessment, respondent schema.Respondent, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtPercent := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssessmentJSON(w, a, respondent)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssessmentCSV(w, a, fmtFloat)
		}, "Wrote CSV")
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssessmentMarkdown(w, a, respondent, fmtPercent)
		}, "Wrote Markdown")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssessmentTable(w, a, respondent, cfg, fmtPercent, duration)
		}, "Wrote table")
	}
}

// assessmentJSON is the JSON document of a scored assessment.
type assessmentJSON struct {
	Respondent    schema.Respondent            `json:"respondent"`
	OverallScore  float64                      `json:"overall_score"`
	OverallStatus schema.ReadinessLabel        `json:"overall_status"`
	TotalControls int                          `json:"total_controls"`
	Domains       []schema.EnrichedDomainScore `json:"domains"`
	Controls      []schema.ControlScore        `json:"controls"`
	Strengths     []schema.ControlScore        `json:"strengths"`
	Gaps          []schema.ControlScore        `json:"gaps"`
	Unattributed  []string                     `json:"unattributed,omitempty"`
}

func writeAssessmentJSON(w io.Writer, a schema.Assessment, respondent schema.Respondent) error {
	return writeJSON(w, assessmentJSON{
		Respondent:    respondent,
		OverallScore:  a.OverallScore,
		OverallStatus: a.OverallStatus,
		TotalControls: a.TotalControls,
		Domains:       schema.EnrichDomains(a.DomainScores),
		Controls:      nonNil(a.ControlScores),
		Strengths:     nonNil(a.Strengths),
		Gaps:          nonNil(a.Gaps),
		Unattributed:  a.Unattributed,
	})
}

// nonNil keeps empty lists as [] instead of null in JSON output.
func nonNil(scores []schema.ControlScore) []schema.ControlScore {
	if scores == nil {
		return []schema.ControlScore{}
	}
	return scores
}

// writeAssessmentCSV writes one row for the overall score, then one per domain and per control.
func writeAssessmentCSV(w io.Writer, a schema.Assessment, fmtFloat func(float64) string) error {
	header := []string{"scope", "domain", "control", "score", "label", "controls", "answers"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		overall := []string{"overall", "", "", fmtFloat(a.OverallScore), string(a.OverallStatus), strconv.Itoa(a.TotalControls), ""}
		if err := cw.Write(overall); err != nil {
			return err
		}
		for _, d := range a.DomainScores {
			rec := []string{"domain", string(d.Domain), "", fmtFloat(d.Score), string(d.Status), strconv.Itoa(d.ControlsCount), ""}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		for _, cs := range a.ControlScores {
			rec := []string{
				"control",
				string(cs.Domain),
				cs.Control,
				fmtFloat(cs.Score),
				string(schema.GetReadinessLabel(cs.Score)),
				"",
				formatAnswers(cs.Answers),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func formatAnswers(answers []any) string {
	parts := make([]string, len(answers))
	for i, v := range answers {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, "|")
}

// writeAssessmentTable writes the human-readable summary with a domain table.
func writeAssessmentTable(w io.Writer, a schema.Assessment, respondent schema.Respondent, cfg *contract.Config,
	fmtPercent func(float64) string, duration time.Duration,
) error {
	title := fmt.Sprintf("SOC 2 Readiness: %s", respondent.Company)
	if respondent.Name != "" {
		title += fmt.Sprintf(" (%s, %s)", respondent.Name, respondent.Role)
	}
	if _, err := fmt.Fprintln(w, header(cfg, "📋", title)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Overall: %s %s across %d controls\n\n",
		fmtPercent(a.OverallScore), labelText(cfg, a.OverallStatus), a.TotalControls); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Domain", "Score", "Status", "Controls"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, d := range schema.EnrichDomains(a.DomainScores) {
		data = append(data, []string{
			strconv.Itoa(d.Rank),
			string(d.Domain),
			fmtPercent(d.Score),
			labelText(cfg, d.Status),
			strconv.Itoa(d.ControlsCount),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	findings := []struct {
		emoji, title string
		lines        []string
	}{
		{"✅", "Key Strengths", a.StrengthLines()},
		{"⚠️ ", "Priority Improvement Areas", a.GapLines()},
	}
	for _, f := range findings {
		if _, err := fmt.Fprintf(w, "\n%s:\n", header(cfg, f.emoji, f.title)); err != nil {
			return err
		}
		for _, line := range f.lines {
			if _, err := fmt.Fprintf(w, "  - %s\n", line); err != nil {
				return err
			}
		}
	}

	if len(a.Unattributed) > 0 {
		if _, err := fmt.Fprintf(w, "\nIgnored %d unknown answer(s): %s\n", len(a.Unattributed), strings.Join(a.Unattributed, ", ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\nScored in %v. History backend: %s\n", duration, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}

// writeAssessmentMarkdown writes a summary suitable for pull request comments or wikis.
func writeAssessmentMarkdown(w io.Writer, a schema.Assessment, respondent schema.Respondent, fmtPercent func(float64) string) error {
	if _, err := fmt.Fprintf(w, "# SOC 2 Readiness: %s\n\n", respondent.Company); err != nil {
		return err
	}
	if respondent.Name != "" {
		if _, err := fmt.Fprintf(w, "Prepared for %s (%s)\n\n", respondent.Name, respondent.Role); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "**Overall readiness:** %s (%s), %d controls assessed\n\n",
		fmtPercent(a.OverallScore), a.OverallStatus, a.TotalControls); err != nil {
		return err
	}

	rows := make([][]string, 0, len(a.DomainScores))
	for _, d := range a.DomainScores {
		rows = append(rows, []string{string(d.Domain), fmtPercent(d.Score), string(d.Status), strconv.Itoa(d.ControlsCount)})
	}
	if err := writeMarkdownTable(w, []string{"Domain", "Score", "Status", "Controls"}, rows); err != nil {
		return err
	}

	sections := []struct {
		title string
		lines []string
	}{
		{"Key Strengths", a.StrengthLines()},
		{"Priority Improvement Areas", a.GapLines()},
	}
	for _, s := range sections {
		if _, err := fmt.Fprintf(w, "\n## %s\n\n", s.title); err != nil {
			return err
		}
		for _, line := range s.lines {
			if _, err := fmt.Fprintf(w, "- %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}
