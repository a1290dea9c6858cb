package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"
)

// ExecuteCheck runs the check command for CI/CD gating.
// It scores an answer sheet against the configured minimums and exits
// with a non-zero code when the overall score or any domain falls short.
func ExecuteCheck(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()

	sheet, err := loadSheet(cfg)
	if err != nil {
		return err
	}
	respondent, assessment, err := GetSheetResults(cfg, mgr, sheet)
	if err != nil {
		return fmt.Errorf("answer sheet %s: %w", cfg.AnswersPath, err)
	}

	result := BuildCheckResult(assessment, respondent, cfg)
	printCheckResult(os.Stdout, result, time.Since(start))

	// Return error if check failed
	if !result.Passed {
		fmt.Printf("%d violation(s) found\n", len(result.Failures))
		os.Exit(1)
	}
	return nil
}

// BuildCheckResult compares an assessment with the configured minimums.
// Domain minimums apply only to domains that were configured.
func BuildCheckResult(assessment schema.Assessment, respondent schema.Respondent, cfg *contract.Config) *schema.CheckResult {
	result := &schema.CheckResult{
		Company:       respondent.Company,
		OverallScore:  assessment.OverallScore,
		OverallStatus: assessment.OverallStatus,
		MinOverall:    cfg.MinOverall,
		MinByDomain:   cfg.MinByDomain,
		DomainScores:  assessment.DomainScores,
	}

	if assessment.OverallScore < cfg.MinOverall {
		result.Failures = append(result.Failures, schema.CheckFailure{
			Scope:     contract.OverallThresholdKey,
			Score:     assessment.OverallScore,
			Threshold: cfg.MinOverall,
		})
	}

	// Catalog order keeps the failure list stable
	for _, domain := range schema.AllDomains {
		threshold, ok := cfg.MinByDomain[domain]
		if !ok {
			continue
		}
		for _, ds := range assessment.DomainScores {
			if ds.Domain == domain && ds.Score < threshold {
				result.Failures = append(result.Failures, schema.CheckFailure{
					Scope:     string(domain),
					Score:     ds.Score,
					Threshold: threshold,
				})
			}
		}
	}

	result.Passed = len(result.Failures) == 0
	return result
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(w io.Writer, result *schema.CheckResult, duration time.Duration) {
	printCheckHeader(w, result, duration)

	if result.Passed {
		printCheckSuccess(w, result)
	} else {
		printCheckFailure(w, result)
	}
}

// printCheckHeader prints the common header information for check results.
func printCheckHeader(w io.Writer, result *schema.CheckResult, duration time.Duration) {
	_, _ = fmt.Fprintln(w, "Readiness Check Results:")

	// Define labels and values for dynamic padding
	labels := []string{"Company:", "Overall:", "Minimum:"}
	values := []any{
		result.Company,
		fmt.Sprintf("%.1f (%s)", result.OverallScore, result.OverallStatus),
		fmt.Sprintf("overall=%.1f%s", result.MinOverall, domainMinimums(result.MinByDomain)),
	}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}

	// Print each label-value pair with consistent padding
	for i, label := range labels {
		_, _ = fmt.Fprintf(w, "  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "Checked %d domains in %v\n\n", len(result.DomainScores), duration)
}

func domainMinimums(minimums map[schema.DomainName]float64) string {
	var out string
	for _, domain := range schema.AllDomains {
		if v, ok := minimums[domain]; ok {
			out += fmt.Sprintf(", %s=%.1f", contract.NormalizeThresholdKey(string(domain)), v)
		}
	}
	return out
}

// printCheckSuccess prints the success case output.
func printCheckSuccess(w io.Writer, result *schema.CheckResult) {
	_, _ = fmt.Fprintf(w, "✅ All readiness checks passed\n\n")
	_, _ = fmt.Fprintln(w, "Scores observed:")

	for _, ds := range result.DomainScores {
		_, _ = fmt.Fprintf(w, "  %s: %.1f (%s)\n", ds.Domain, ds.Score, ds.Status)
	}
}

// printCheckFailure prints the failure case output.
func printCheckFailure(w io.Writer, result *schema.CheckResult) {
	_, _ = fmt.Fprintf(w, "❌ Readiness check failed: %d score(s) below minimum\n\n", len(result.Failures))

	for _, f := range result.Failures {
		_, _ = fmt.Fprintf(w, "  - %s (score: %.1f < minimum: %.1f)\n", f.Scope, f.Score, f.Threshold)
	}
	_, _ = fmt.Fprintln(w)
}
