// Package schema has the models and enumerations shared by every part of readiness.
package schema

import "time"

// Question is a single assessment item owned by one control.
type Question struct {
	ID          string         `json:"id"`
	Text        string         `json:"text"`
	Kind        QuestionKind   `json:"kind"`
	Options     []string       `json:"options,omitempty"`      // choice only, in display order
	ScaleMin    int            `json:"scale_min,omitempty"`    // scale only
	ScaleMax    int            `json:"scale_max,omitempty"`    // scale only
	ScaleLabels map[int]string `json:"scale_labels,omitempty"` // scale only, one label per position
	Control     string         `json:"control"`                // owning control name
}

// Domain is a top-level control category with its ordered controls.
type Domain struct {
	Name     DomainName `json:"name"`
	Controls []string   `json:"controls"`
}

// Section is a single step of the questionnaire.
// Every section other than the user-info pseudo-section belongs to one domain.
type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Domain    DomainName `json:"domain,omitempty"`
	Questions []Question `json:"questions,omitempty"`
}

// Answers maps a question identifier to its raw value.
// Raw values are booleans, strings (choice labels or stringified scale positions) or numbers.
type Answers map[string]any

// Respondent identifies the person and organization being assessed.
type Respondent struct {
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email"`
	Company string `json:"company" yaml:"company"`
	Role    string `json:"role" yaml:"role"`
}

// ControlScore is the derived readiness of a single control.
type ControlScore struct {
	Control string     `json:"control"`
	Domain  DomainName `json:"domain"`
	Score   float64    `json:"score"`
	Answers []any      `json:"answers"`
}

// DomainScore is the derived readiness of a domain.
type DomainScore struct {
	Domain        DomainName     `json:"domain"`
	Score         float64        `json:"score"`
	Status        ReadinessLabel `json:"status"`
	ControlsCount int            `json:"controls_count"`
}

// Assessment is the full output of a scoring run.
type Assessment struct {
	ControlScores []ControlScore `json:"control_scores"` // catalog order
	DomainScores  []DomainScore  `json:"domain_scores"`  // descending score
	OverallScore  float64        `json:"overall_score"`
	OverallStatus ReadinessLabel `json:"overall_status"`
	Strengths     []ControlScore `json:"strengths"`
	Gaps          []ControlScore `json:"gaps"`
	TotalControls int            `json:"total_controls"`
	Unattributed  []string       `json:"unattributed,omitempty"`
}

// AnswerSheet is a completed questionnaire as stored on disk.
type AnswerSheet struct {
	Respondent Respondent `json:"respondent" yaml:"respondent"`
	Answers    Answers    `json:"answers" yaml:"answers"`
}

// ReportPayload is the rendered form of an assessment.
type ReportPayload struct {
	HTML        string    `json:"html"`
	PDF         []byte    `json:"-"`
	GeneratedAt time.Time `json:"generated_at"`
}

// DeliveryResult is the user-facing outcome of a send action.
type DeliveryResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DeliveryAck identifies a delivered report on the transport side.
type DeliveryAck struct {
	Transport DeliveryTransport `json:"transport"`
	Reference string            `json:"reference,omitempty"`
}
