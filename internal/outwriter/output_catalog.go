package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"

	"github.com/olekukonko/tablewriter"
)

// WriteCatalogSections outputs questionnaire sections, dispatching on the configured format.
func WriteCatalogSections(sections []schema.Section, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, sections)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCatalogCSV(w, sections)
		}, "Wrote CSV")
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCatalogMarkdown(w, sections)
		}, "Wrote Markdown")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCatalogTable(w, sections, cfg)
		}, "Wrote table")
	}
}

// answerChoices describes the accepted answers of a question.
func answerChoices(q schema.Question) string {
	if q.Kind == schema.ScaleQuestion {
		return fmt.Sprintf("%d-%d (%s .. %s)", q.ScaleMin, q.ScaleMax, q.ScaleLabels[q.ScaleMin], q.ScaleLabels[q.ScaleMax])
	}
	return strings.Join(q.Options, " / ")
}

func writeCatalogTable(w io.Writer, sections []schema.Section, cfg *contract.Config) error {
	maxText := getMaxTextWidth(cfg)
	for i, section := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s [%s]\n", header(cfg, "🗂️ ", section.Title), section.ID); err != nil {
			return err
		}
		if section.ID == schema.UserInfoSection {
			if _, err := fmt.Fprintln(w, "  Respondent name, email, company and role"); err != nil {
				return err
			}
			continue
		}

		table := tablewriter.NewWriter(w)
		table.Header([]string{"ID", "Control", "Question", "Answers"})
		var data [][]string
		for _, q := range section.Questions {
			data = append(data, []string{
				q.ID,
				q.Control,
				contract.TruncateText(q.Text, maxText),
				answerChoices(q),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	return nil
}

func writeCatalogCSV(w io.Writer, sections []schema.Section) error {
	header := []string{"section", "domain", "id", "control", "kind", "question", "answers"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, section := range sections {
			for _, q := range section.Questions {
				rec := []string{section.ID, string(section.Domain), q.ID, q.Control, string(q.Kind), q.Text, answerChoices(q)}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func writeCatalogMarkdown(w io.Writer, sections []schema.Section) error {
	if _, err := fmt.Fprintln(w, "# SOC 2 Readiness Questionnaire"); err != nil {
		return err
	}
	for _, section := range sections {
		if len(section.Questions) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n## %s\n\n", section.Title); err != nil {
			return err
		}
		rows := make([][]string, 0, len(section.Questions))
		for _, q := range section.Questions {
			rows = append(rows, []string{"`" + q.ID + "`", q.Control, q.Text, answerChoices(q)})
		}
		if err := writeMarkdownTable(w, []string{"ID", "Control", "Question", "Answers"}, rows); err != nil {
			return err
		}
	}
	return nil
}
