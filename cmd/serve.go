package cmd

import (
	"os/signal"
	"syscall"

	"github.com/huangsam/readiness/internal/httpapi"
	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Readiness HTTP API",
	Long: `Serve the questionnaire, scoring, report rendering and delivery over HTTP.

Endpoints:
  GET  /healthz             - liveness probe
  GET  /catalog             - every section and question
  GET  /catalog/{section}   - a single section
  POST /assessments/score   - score an answer sheet (JSON)
  POST /assessments/report  - render the PDF report (?format=html for the summary)
  POST /assessments/send    - render and deliver the report (rate limited)

Requests are stateless: every call carries the complete answer sheet.
The server shuts down gracefully on SIGINT or SIGTERM.

Examples:
  # Listen on the default address
  readiness serve

  # Listen on localhost only and deliver through EmailJS
  readiness serve --listen-addr 127.0.0.1:9090 --delivery-transport emailjs`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return httpapi.ListenAndServe(ctx, cfg, storeManager)
	},
}
