package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteLabelsDefinitions outputs readiness bands and the response lexicon.
// It is a static display that needs no answers.
func WriteLabelsDefinitions(model schema.LabelsRenderModel, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLabelsCSV(w, model, fmtFloat)
		}, "Wrote CSV")
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLabelsMarkdown(w, model, fmtFloat)
		}, "Wrote Markdown")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLabelsText(w, model, cfg, fmtFloat)
		}, "Wrote text")
	}
}

func bandRange(b schema.LabelBand, fmtFloat func(float64) string) string {
	if b.Max >= 100 {
		return fmt.Sprintf(">= %s", fmtFloat(b.Min))
	}
	return fmt.Sprintf("%s - <%s", fmtFloat(b.Min), fmtFloat(b.Max))
}

func writeLabelsText(w io.Writer, model schema.LabelsRenderModel, cfg *contract.Config, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", header(cfg, "🏷️ ", "Readiness Labels")); err != nil {
		return err
	}
	bands := tablewriter.NewWriter(w)
	bands.Header([]string{"Label", "Score"})
	var bandRows [][]string
	for _, b := range model.Bands {
		bandRows = append(bandRows, []string{labelText(cfg, b.Label), bandRange(b, fmtFloat)})
	}
	if err := bands.Bulk(bandRows); err != nil {
		return err
	}
	if err := bands.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\n%s\n\n", header(cfg, "🧮", "Response Scores")); err != nil {
		return err
	}
	lexicon := tablewriter.NewWriter(w)
	lexicon.Header([]string{"Response", "Score"})
	lexicon.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft, tw.AlignRight}
	})
	var lexiconRows [][]string
	for _, e := range model.Lexicon {
		lexiconRows = append(lexiconRows, []string{e.Response, fmtFloat(e.Score)})
	}
	if err := lexicon.Bulk(lexiconRows); err != nil {
		return err
	}
	if err := lexicon.Render(); err != nil {
		return err
	}

	notes := []string{
		fmt.Sprintf("Scale positions %d..%d score 0..100 in equal steps; yes/no answers score 100/0.", model.ScaleMin, model.ScaleMax),
		"Any other response scores 0.",
		fmt.Sprintf("Strengths are controls at or above %s, gaps at or below %s.", fmtFloat(model.StrengthThreshold), fmtFloat(model.GapThreshold)),
	}
	for _, n := range notes {
		if _, err := fmt.Fprintf(w, "%s\n", n); err != nil {
			return err
		}
	}
	return nil
}

func writeLabelsCSV(w io.Writer, model schema.LabelsRenderModel, fmtFloat func(float64) string) error {
	header := []string{"kind", "name", "min", "max"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, b := range model.Bands {
			if err := cw.Write([]string{"label", string(b.Label), fmtFloat(b.Min), fmtFloat(b.Max)}); err != nil {
				return err
			}
		}
		for _, e := range model.Lexicon {
			if err := cw.Write([]string{"response", e.Response, fmtFloat(e.Score), fmtFloat(e.Score)}); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeLabelsMarkdown(w io.Writer, model schema.LabelsRenderModel, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprint(w, "# Readiness Labels\n\n"); err != nil {
		return err
	}
	bandRows := make([][]string, 0, len(model.Bands))
	for _, b := range model.Bands {
		bandRows = append(bandRows, []string{string(b.Label), bandRange(b, fmtFloat)})
	}
	if err := writeMarkdownTable(w, []string{"Label", "Score"}, bandRows); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "\n## Response Scores\n\n"); err != nil {
		return err
	}
	lexiconRows := make([][]string, 0, len(model.Lexicon))
	for _, e := range model.Lexicon {
		lexiconRows = append(lexiconRows, []string{e.Response, fmtFloat(e.Score)})
	}
	return writeMarkdownTable(w, []string{"Response", "Score"}, lexiconRows)
}
