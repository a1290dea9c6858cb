package cmd

import (
	"github.com/huangsam/readiness/core"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// catalogCmd lists the questionnaire.
var catalogCmd = &cobra.Command{
	Use:   "catalog [section]",
	Short: "List questionnaire sections, questions and accepted answers.",
	Long: `Show the built-in SOC 2 readiness questionnaire.

Sections follow the order they are presented in:
  user-info, security, availability, processing-integrity, confidentiality, privacy

Each question shows its ID, the control it belongs to and the answers it
accepts. Use the IDs as keys of an answer sheet.

Examples:
  # Show every section
  readiness catalog

  # Show a single section
  readiness catalog privacy

  # Export as Markdown for a wiki
  readiness catalog --output markdown --output-file questionnaire.md`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			// The optional argument is a section, not an answers file
			viper.Set("section", args[0])
			return sharedSetup(rootCtx, cmd, nil)
		}
		return sharedSetup(rootCtx, cmd, args)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCatalog(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot display catalog", err)
		}
	},
}
