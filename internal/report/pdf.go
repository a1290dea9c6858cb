package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/huangsam/readiness/schema"
)

// Layout in points on an A4 page.
const (
	pageMargin  = 40.0
	lineHeight  = 20.0
	domainWidth = 200.0
	scoreWidth  = 100.0
	statusWidth = 200.0
)

type rgb struct{ r, g, b int }

var (
	navy      = rgb{0, 0, 102}
	black     = rgb{0, 0, 0}
	grey      = rgb{100, 100, 100}
	darkGreen = rgb{0, 102, 0}
	darkRed   = rgb{153, 0, 0}
	headFill  = rgb{0, 51, 102}
	white     = rgb{255, 255, 255}
)

// pdfWriter wraps fpdf with the text translation and styling the report needs.
type pdfWriter struct {
	doc *fpdf.Fpdf
	tr  func(string) string
}

func (w *pdfWriter) style(size float64, bold bool, c rgb) {
	s := ""
	if bold {
		s = "B"
	}
	w.doc.SetFont("Helvetica", s, size)
	w.doc.SetTextColor(c.r, c.g, c.b)
}

func (w *pdfWriter) line(indent float64, text string) {
	w.doc.SetX(pageMargin + indent)
	w.doc.CellFormat(0, lineHeight, w.tr(text), "", 1, "L", false, 0, "")
}

func (w *pdfWriter) gap(h float64) {
	w.doc.Ln(h)
}

// RenderPDF builds the PDF document for an assessment.
func RenderPDF(a schema.Assessment, respondent schema.Respondent, at time.Time, compress bool) ([]byte, error) {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetCompression(compress)
	doc.SetCreationDate(at)
	doc.SetModificationDate(at)
	doc.SetTitle(ReportTitle, true)
	doc.SetAuthor(respondent.Company, true)
	doc.SetCreator("readiness", true)
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin+lineHeight)
	doc.AliasNbPages("")

	w := &pdfWriter{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}

	doc.SetFooterFunc(func() {
		doc.SetY(-pageMargin)
		w.style(10, false, grey)
		footer := fmt.Sprintf("Report generated: %s | Page %d of {nb}", at.Format(FooterDate), doc.PageNo())
		doc.CellFormat(0, 10, footer, "", 0, "L", false, 0, "")
	})

	doc.AddPage()

	w.style(20, true, navy)
	w.line(0, ReportTitle)
	w.gap(10)

	w.style(14, false, black)
	w.line(0, "Organization: "+respondent.Company)
	w.line(0, fmt.Sprintf("Prepared for: %s (%s)", respondent.Name, respondent.Role))
	w.line(0, "Assessment Date: "+at.Format(AssessmentDate))
	w.gap(20)

	w.style(16, true, navy)
	w.line(0, "Executive Summary")
	w.style(12, false, black)
	w.line(0, fmt.Sprintf("Overall Readiness Score: %d%%", schema.RoundScore(a.OverallScore)))
	w.line(0, fmt.Sprintf("Readiness Status: %s", a.OverallStatus))
	w.line(0, fmt.Sprintf("Controls Assessed: %d", a.TotalControls))
	w.gap(20)

	w.style(16, true, navy)
	w.line(0, "Domain Assessment Scores")
	w.gap(5)
	writeDomainTable(w, a.DomainScores)
	w.gap(30)

	w.style(16, true, navy)
	w.line(0, "Key Findings & Recommendations")
	w.gap(10)
	writeFindings(w, "Key Strengths", darkGreen, a.StrengthLines())
	w.gap(10)
	writeFindings(w, "Priority Improvement Areas", darkRed, a.GapLines())
	w.gap(20)

	w.style(16, true, navy)
	w.line(0, "Recommended Next Steps")
	w.style(12, false, black)
	for i, step := range DocumentNextSteps {
		w.line(10, fmt.Sprintf("%d. %s", i+1, step))
	}

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("build pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeDomainTable(w *pdfWriter, domains []schema.DomainScore) {
	doc := w.doc
	doc.SetDrawColor(grey.r, grey.g, grey.b)
	doc.SetFillColor(headFill.r, headFill.g, headFill.b)

	w.style(12, true, white)
	doc.CellFormat(domainWidth, lineHeight, "Control Domain", "1", 0, "L", true, 0, "")
	doc.CellFormat(scoreWidth, lineHeight, "Score", "1", 0, "C", true, 0, "")
	doc.CellFormat(statusWidth, lineHeight, "Status", "1", 1, "L", true, 0, "")

	w.style(12, false, black)
	for _, d := range domains {
		doc.CellFormat(domainWidth, lineHeight, w.tr(string(d.Domain)), "1", 0, "L", false, 0, "")
		doc.CellFormat(scoreWidth, lineHeight, fmt.Sprintf("%d%%", schema.RoundScore(d.Score)), "1", 0, "C", false, 0, "")
		doc.CellFormat(statusWidth, lineHeight, w.tr(string(d.Status)), "1", 1, "L", false, 0, "")
	}
}

func writeFindings(w *pdfWriter, title string, color rgb, lines []string) {
	w.style(14, true, color)
	w.line(0, title+":")
	w.style(12, false, black)
	for _, l := range lines {
		w.line(10, "• "+l)
	}
}
