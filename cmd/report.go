package cmd

import (
	"github.com/huangsam/readiness/core"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd renders the assessment documents.
var reportCmd = &cobra.Command{
	Use:   "report <answers-file>",
	Short: "Render the readiness report as HTML and PDF.",
	Long: `Score an answer sheet and render the readiness report.

Writes two documents named after the company and the report date:
- an HTML page with colored domain bars, strengths and gaps
- a PDF with the same content, ready to attach to an email

With --send the documents are delivered to the respondent through the
configured transport. A failed delivery is reported but the documents
stay on disk.

Transports:
  emailjs - EmailJS REST API (needs service, template and public key)
  outbox  - writes the documents and a JSON envelope to --outbox-dir
  none    - no delivery (default)

Examples:
  # Write the report into ./reports
  readiness report answers.yaml --report-dir reports

  # Render and email the report
  readiness report answers.yaml --send --delivery-transport emailjs

  # Drop the report into an outbox directory for another process to pick up
  readiness report answers.yaml --send --delivery-transport outbox --outbox-dir /var/spool/readiness`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot render report", err)
		}
	},
}
