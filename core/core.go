// Package core has core logic for sessions, scoring and the command executors.
package core

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/huangsam/readiness/core/algo"
	"github.com/huangsam/readiness/core/catalog"
	"github.com/huangsam/readiness/internal/answers"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/delivery"
	"github.com/huangsam/readiness/internal/outwriter"
	"github.com/huangsam/readiness/internal/report"
	"github.com/huangsam/readiness/schema"
)

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// ExecuteAssess scores an answer sheet, prints the assessment and records it in history.
// It serves as the main entry point for the 'assess' command.
func ExecuteAssess(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if cfg.Interactive {
		return ExecuteInteractive(ctx, cfg, mgr)
	}
	start := time.Now()
	sheet, err := loadSheet(cfg)
	if err != nil {
		return err
	}
	respondent, assessment, err := GetSheetResults(cfg, mgr, sheet)
	if err != nil {
		return fmt.Errorf("answer sheet %s: %w", cfg.AnswersPath, err)
	}
	return outwriter.NewOutWriter().WriteAssessment(assessment, respondent, cfg, time.Since(start))
}

// ExecuteReport renders an answer sheet into HTML and PDF documents and saves them.
// With Send enabled it also delivers the documents to the respondent.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	sheet, err := loadSheet(cfg)
	if err != nil {
		return err
	}
	respondent, assessment, err := GetSheetResults(cfg, mgr, sheet)
	if err != nil {
		return fmt.Errorf("answer sheet %s: %w", cfg.AnswersPath, err)
	}

	payload, err := report.NewRenderer().Render(ctx, assessment, respondent)
	if err != nil {
		return err
	}
	htmlPath, pdfPath, err := report.SaveFiles(cfg.ReportDir, payload, respondent.Company)
	if err != nil {
		return err
	}
	fmt.Printf("Saved HTML report to %s\n", htmlPath)
	fmt.Printf("Saved PDF report to %s\n", pdfPath)

	if !cfg.Send {
		return nil
	}
	deliverer, err := delivery.New(cfg.Delivery)
	if err != nil {
		return err
	}
	// The documents are already on disk, so a failed send is only reported
	result := delivery.Send(ctx, deliverer, payload, respondent)
	fmt.Println(result.Message)
	return nil
}

// GetSheetResults validates a complete answer sheet, scores it and records the run in history.
func GetSheetResults(cfg *contract.Config, mgr contract.StoreManager, sheet schema.AnswerSheet) (schema.Respondent, schema.Assessment, error) {
	start := time.Now()
	session, err := NewSessionFromSheet(catalog.Default(), sheet)
	if err != nil {
		return schema.Respondent{}, schema.Assessment{}, err
	}
	assessment, err := session.Score(scoreOptions(cfg))
	if err != nil {
		return schema.Respondent{}, schema.Assessment{}, err
	}
	recordHistory(mgr, cfg, start, session.Respondent(), assessment)
	return session.Respondent(), assessment, nil
}

// GetAssessmentResults scores answers without requiring a complete questionnaire
// and records the run in history. Unknown question IDs are reported as
// unattributed instead of failing.
func GetAssessmentResults(cfg *contract.Config, mgr contract.StoreManager,
	respondent schema.Respondent, responses schema.Answers,
) schema.Assessment {
	start := time.Now()
	assessment := Score(responses, catalog.Default(), scoreOptions(cfg))
	recordHistory(mgr, cfg, start, respondent, assessment)
	return assessment
}

// ExecuteCatalog prints the questionnaire, or a single section of it.
func ExecuteCatalog(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	cat := catalog.Default()
	sections := cat.Sections()
	if cfg.Section != "" {
		section, ok := cat.Section(cfg.Section)
		if !ok {
			return fmt.Errorf("unknown section '%s'", cfg.Section)
		}
		sections = []schema.Section{section}
	}
	return outwriter.NewOutWriter().WriteCatalog(sections, cfg)
}

// ExecuteLabels prints the readiness bands and the response lexicon.
func ExecuteLabels(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	return outwriter.NewOutWriter().WriteLabels(LabelsModel(), cfg)
}

// LabelsModel describes how scores are derived and classified.
func LabelsModel() schema.LabelsRenderModel {
	lexicon := make([]schema.LexiconEntry, 0, len(algo.Lexicon))
	for _, response := range slices.Sorted(maps.Keys(algo.Lexicon)) {
		lexicon = append(lexicon, schema.LexiconEntry{Response: response, Score: algo.Lexicon[response]})
	}
	// Highest score first, alphabetical within a score
	slices.SortStableFunc(lexicon, func(a, b schema.LexiconEntry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return schema.LabelsRenderModel{
		Bands: []schema.LabelBand{
			{Label: schema.WellPrepared, Min: 80, Max: 100},
			{Label: schema.PartiallyPrepared, Min: 60, Max: 80},
			{Label: schema.EarlyStage, Min: 40, Max: 60},
			{Label: schema.NeedsImprovement, Min: 0, Max: 40},
		},
		Lexicon:           lexicon,
		ScaleMin:          algo.ScaleMin,
		ScaleMax:          algo.ScaleMax,
		StrengthThreshold: algo.StrengthThreshold,
		GapThreshold:      algo.GapThreshold,
	}
}

// loadSheet reads the configured answer sheet and applies the respondent overrides.
func loadSheet(cfg *contract.Config) (schema.AnswerSheet, error) {
	if cfg.AnswersPath == "" {
		return schema.AnswerSheet{}, fmt.Errorf("an answer sheet is required")
	}
	sheet, err := answers.Load(cfg.AnswersPath)
	if err != nil {
		return schema.AnswerSheet{}, err
	}
	sheet.Respondent = cfg.ApplyRespondentOverride(sheet.Respondent)
	return sheet, nil
}

func scoreOptions(cfg *contract.Config) ScoreOptions {
	return ScoreOptions{ExcludeUnscoredDomains: cfg.ExcludeUnscoredDomains}
}

// recordHistory stores a scored run when a history store is configured.
// Failures are logged and never stop the command.
func recordHistory(mgr contract.StoreManager, cfg *contract.Config, start time.Time,
	respondent schema.Respondent, assessment schema.Assessment,
) {
	if mgr == nil {
		return
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return
	}

	runID, err := store.BeginRun(start, respondent, cfg.HistoryParams())
	if err != nil {
		contract.LogWarn("History tracking initialization failed", err)
		return
	}
	if runID <= 0 {
		return
	}

	scoredAt := time.Now()
	if err := store.RecordControlScores(runID, assessment.ControlScores, scoredAt); err != nil {
		contract.LogWarn("Failed to record control scores", err)
	}
	if err := store.RecordDomainScores(runID, assessment.DomainScores, scoredAt); err != nil {
		contract.LogWarn("Failed to record domain scores", err)
	}
	if err := store.EndRun(runID, time.Now(), assessment); err != nil {
		contract.LogWarn("Failed to finalize history tracking", err)
	}
}
