// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAssessment prints a scored assessment using the configured output format.
func (ow *OutWriter) WriteAssessment(a schema.Assessment, respondent schema.Respondent, cfg *contract.Config, duration time.Duration) error {
	return WriteAssessmentResults(a, respondent, cfg, duration)
}

// WriteCatalog prints questionnaire sections using the configured output format.
func (ow *OutWriter) WriteCatalog(sections []schema.Section, cfg *contract.Config) error {
	return WriteCatalogSections(sections, cfg)
}

// WriteLabels prints the scoring lexicon and readiness bands using the configured output format.
func (ow *OutWriter) WriteLabels(model schema.LabelsRenderModel, cfg *contract.Config) error {
	return WriteLabelsDefinitions(model, cfg)
}

// getMaxTextWidth calculates the widest question text that fits next to the
// fixed catalog columns, based on terminal width.
func getMaxTextWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// ID + Control + Answers columns with borders and padding
	available := termWidth - 75
	if available < 20 {
		return 20
	}
	if available > 90 {
		return 90
	}
	return available
}

// header returns a section heading, prefixed with an emoji when enabled.
func header(cfg *contract.Config, emoji, title string) string {
	if cfg.UseEmojis {
		return emoji + " " + title
	}
	return title
}

// labelText returns the readiness label, colored for tables when enabled.
func labelText(cfg *contract.Config, label schema.ReadinessLabel) string {
	if cfg.UseColors {
		return contract.ColorizeLabel(label)
	}
	return string(label)
}
