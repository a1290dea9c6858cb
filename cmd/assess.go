package cmd

import (
	"errors"

	"github.com/huangsam/readiness/core"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/spf13/cobra"
)

// assessCmd scores a completed questionnaire.
var assessCmd = &cobra.Command{
	Use:   "assess [answers-file]",
	Short: "Score a SOC 2 readiness questionnaire.",
	Long: `Score an answer sheet across the five trust service categories.

Every control gets a score from 0 to 100, every domain the mean of its
controls, and the organization the mean of its domains. The result is
classified as Well Prepared, Partially Prepared, Early Stage or Needs
Significant Improvement, with the strongest controls and the biggest gaps.

Answer sheets are YAML or JSON with a respondent block and an answers map
keyed by question ID. Run 'readiness catalog' to see every question ID.

Each run is recorded in the history store unless --history-backend none.

Examples:
  # Score an answer sheet
  readiness assess answers.yaml

  # Answer the questionnaire on the terminal
  readiness assess --interactive

  # Ignore domains without any answered control in the overall score
  readiness assess answers.yaml --exclude-unscored-domains

  # Override the company name and export JSON
  readiness assess answers.yaml --company "Acme Corp" --output json --output-file result.json`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetup(rootCtx, cmd, args); err != nil {
			return err
		}
		if !cfg.Interactive && cfg.AnswersPath == "" {
			return errors.New("an answers file is required unless --interactive is set")
		}
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAssess(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot score assessment", err)
		}
	},
}
