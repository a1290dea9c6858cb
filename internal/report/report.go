// Package report renders assessments into an HTML summary and a PDF document.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"
	"github.com/sirupsen/logrus"
)

// Report text shared by the HTML summary and the PDF document.
const (
	ReportTitle     = "SOC 2 Readiness Assessment Report"
	AssessmentDate  = "January 2, 2006"
	FooterDate      = "2006-01-02"
	fileStamp       = "20060102-150405"
	maxPDFSizeBytes = 2 * 1024 * 1024
)

// SizeWarningBytes is the PDF size that triggers a warning, just under the
// 2MB ceiling email services put on attachments.
const SizeWarningBytes = maxPDFSizeBytes * 19 / 20

// Status colors for scores, as used in the HTML summary.
const (
	goodColor    = "#5cb85c"
	cautionColor = "#f0ad4e"
	dangerColor  = "#d9534f"
)

// EmailNextSteps are the closing recommendations of the HTML summary.
var EmailNextSteps = []string{
	"Review the detailed PDF report attached to this email",
	"Address priority improvement areas",
	"Develop a remediation plan for identified gaps",
	"Consider scheduling a consultation with a compliance specialist",
}

// DocumentNextSteps are the closing recommendations of the PDF document.
var DocumentNextSteps = []string{
	"Address priority improvement areas",
	"Develop remediation plan for identified gaps",
	"Schedule regular compliance reviews",
	"Consider engaging with a compliance specialist",
}

// Renderer produces both report formats for an assessment.
type Renderer struct {
	// Now stamps the report. Defaults to time.Now.
	Now func() time.Time

	// Compress toggles PDF stream compression.
	Compress bool
}

var _ contract.Renderer = &Renderer{}

// NewRenderer returns a renderer with compression enabled and the wall clock.
func NewRenderer() *Renderer {
	return &Renderer{Now: time.Now, Compress: true}
}

// Render builds the HTML summary and PDF document for an assessment.
func (r *Renderer) Render(ctx context.Context, assessment schema.Assessment, respondent schema.Respondent) (schema.ReportPayload, error) {
	if err := ctx.Err(); err != nil {
		return schema.ReportPayload{}, err
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	generatedAt := now()

	html, err := RenderHTML(assessment, respondent, generatedAt)
	if err != nil {
		return schema.ReportPayload{}, err
	}

	if err := ctx.Err(); err != nil {
		return schema.ReportPayload{}, err
	}
	pdf, err := RenderPDF(assessment, respondent, generatedAt, r.Compress)
	if err != nil {
		return schema.ReportPayload{}, err
	}
	checkPDFSize(len(pdf))

	return schema.ReportPayload{HTML: html, PDF: pdf, GeneratedAt: generatedAt}, nil
}

// checkPDFSize warns when the document gets close to the attachment limit.
// Oversized documents are still returned.
func checkPDFSize(size int) {
	if size <= SizeWarningBytes {
		return
	}
	contract.Log.WithFields(logrus.Fields{
		"size_mb":  fmt.Sprintf("%.2f", float64(size)/(1024*1024)),
		"limit_mb": maxPDFSizeBytes / (1024 * 1024),
	}).Warn("PDF size is approaching the attachment limit")
}

// ScoreColor returns the HTML color for a score.
func ScoreColor(score float64) string {
	switch {
	case score >= 80:
		return goodColor
	case score >= 40:
		return cautionColor
	default:
		return dangerColor
	}
}

// Slug turns a company name into a file-name friendly token.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "organization"
	}
	return slug
}

// BaseName is the file name, without extension, of a report.
// The stamp goes down to the second so same-day reports keep their own files.
func BaseName(company string, at time.Time) string {
	return fmt.Sprintf("soc2-readiness-%s-%s", Slug(company), at.Format(fileStamp))
}

// SaveFiles writes the HTML and PDF of a payload into dir and returns their paths.
func SaveFiles(dir string, payload schema.ReportPayload, company string) (htmlPath, pdfPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create report dir: %w", err)
	}
	base := filepath.Join(dir, BaseName(company, payload.GeneratedAt))
	htmlPath, pdfPath = base+".html", base+".pdf"

	if err := os.WriteFile(htmlPath, []byte(payload.HTML), 0o644); err != nil {
		return "", "", fmt.Errorf("write html report: %w", err)
	}
	if err := os.WriteFile(pdfPath, payload.PDF, 0o644); err != nil {
		return "", "", fmt.Errorf("write pdf report: %w", err)
	}
	return htmlPath, pdfPath, nil
}
