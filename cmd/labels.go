package cmd

import (
	"github.com/huangsam/readiness/core"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/spf13/cobra"
)

// labelsCmd displays how answers turn into scores and labels.
var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Display readiness labels and how answers are scored",
	Long: `Show the readiness bands and the response lexicon.

Provides complete transparency into how assessments are scored:
- The score range of every readiness label
- The score of every recognized answer
- How scale positions map to scores
- Which controls count as strengths and gaps

No answers are needed - this is purely informational.

Examples:
  # Show the scoring rules
  readiness labels

  # Export as JSON
  readiness labels --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteLabels(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot display labels", err)
		}
	},
}
