// Package cmd defines the command-line interface for readiness.
package cmd

import (
	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(labelsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or markdown")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Bool("exclude-unscored-domains", false, "Leave domains without any scored control out of the overall score")
	rootCmd.PersistentFlags().String("name", "", "Respondent name (overrides the answer sheet)")
	rootCmd.PersistentFlags().String("email", "", "Respondent email (overrides the answer sheet)")
	rootCmd.PersistentFlags().String("company", "", "Company name (overrides the answer sheet)")
	rootCmd.PersistentFlags().String("role", "", "Respondent role (overrides the answer sheet)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "History backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for sqlite path or mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("delivery-transport", string(schema.NoneTransport), "Report delivery transport: emailjs or outbox or none")
	rootCmd.PersistentFlags().String("delivery-timeout", contract.DefaultDeliveryTimeout.String(), "Timeout of a single report delivery")
	rootCmd.PersistentFlags().String("emailjs-service-id", "", "EmailJS service ID")
	rootCmd.PersistentFlags().String("emailjs-template-id", "", "EmailJS template ID")
	rootCmd.PersistentFlags().String("emailjs-public-key", "", "EmailJS public key")
	rootCmd.PersistentFlags().String("emailjs-private-key", "", "EmailJS private key (prefer READINESS_EMAILJS_PRIVATE_KEY)")
	rootCmd.PersistentFlags().String("emailjs-endpoint", contract.DefaultEmailJSEndpoint, "EmailJS API base URL")
	rootCmd.PersistentFlags().String("outbox-dir", contract.DefaultOutboxDir, "Directory used by the outbox transport")
	rootCmd.PersistentFlags().String("emoji", "no", "Prefix output headers with emojis (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "Optional file that receives a copy of the logs")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of assessCmd to Viper
	assessCmd.Flags().BoolP("interactive", "i", false, "Answer the questionnaire on the terminal")
	if err := viper.BindPFlags(assessCmd.Flags()); err != nil {
		contract.LogFatal("Error binding assess flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().String("report-dir", contract.DefaultReportDir, "Directory that receives the HTML and PDF documents")
	reportCmd.Flags().Bool("send", false, "Deliver the report to the respondent")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().Float64("min-overall", contract.DefaultMinOverall, "Lowest acceptable overall score")
	checkCmd.Flags().String("thresholds-override", "", "Minimum scores for CI/CD gating (format: 'overall:70,security:80,privacy:60')")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("listen-addr", contract.DefaultListenAddr, "Address the HTTP API listens on")
	serveCmd.Flags().Int("send-rate-per-minute", contract.DefaultSendRatePerMinute, "Report deliveries allowed per minute")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
