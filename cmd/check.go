package cmd

import (
	"github.com/huangsam/readiness/core"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD readiness gating.
var checkCmd = &cobra.Command{
	Use:   "check <answers-file>",
	Short: "Enforce minimum readiness scores (fails on violations)",
	Long: `Score an answer sheet and compare it with minimum readiness scores.

Designed for CI/CD and compliance pipelines - exits with a non-zero code
when the overall score or any configured domain is below its minimum.

Default minimum: 60.0 overall, no domain minimums

Domain minimums come from the thresholds map of .readiness.yaml or from
--thresholds-override. Keys are overall or a domain name such as
security, availability, processing_integrity, confidentiality, privacy.

Examples:
  # Require a Partially Prepared organization
  readiness check answers.yaml

  # Stricter gate before booking the auditor
  readiness check answers.yaml --min-overall 80

  # Per domain minimums
  readiness check answers.yaml --thresholds-override "overall:70,security:80,privacy:60"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Validation is done in ExecuteCheck
		if err := core.ExecuteCheck(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Readiness check failed", err)
		}
	},
}
