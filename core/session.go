package core

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/readiness/core/algo"
	"github.com/huangsam/readiness/core/catalog"
	"github.com/huangsam/readiness/schema"
)

// Options a boolean answer maps onto.
const (
	yesOption = "Yes"
	noOption  = "No"
)

// Session flow errors.
var (
	ErrIncompleteSection = errors.New("current section is incomplete")
	ErrSessionIncomplete = errors.New("questionnaire is not complete")
	ErrUnknownQuestion   = errors.New("unknown question")
	ErrInvalidAnswer     = errors.New("invalid answer")
)

// Session is a single questionnaire run: the current section, the respondent
// and the answers recorded so far. It is owned by one flow at a time.
type Session struct {
	catalog    *catalog.Catalog
	sections   []schema.Section
	index      int
	respondent schema.Respondent
	answers    schema.Answers
	complete   bool
}

// NewSession starts a session at the first section of the catalog.
func NewSession(cat *catalog.Catalog) *Session {
	return &Session{
		catalog:  cat,
		sections: cat.Sections(),
		answers:  make(schema.Answers),
	}
}

// NewSessionFromSheet fills a session from a stored answer sheet and walks it
// to completion. It fails on the first section that cannot be completed.
func NewSessionFromSheet(cat *catalog.Catalog, sheet schema.AnswerSheet) (*Session, error) {
	s := NewSession(cat)
	s.SetRespondent(sheet.Respondent)

	ids := slices.Sorted(maps.Keys(sheet.Answers))
	for _, id := range ids {
		if err := s.Answer(id, sheet.Answers[id]); err != nil {
			return nil, err
		}
	}
	for !s.Complete() {
		if err := s.Next(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Current returns the section being presented.
func (s *Session) Current() schema.Section {
	return s.sections[s.index]
}

// Index returns the position of the current section.
func (s *Session) Index() int {
	return s.index
}

// SetRespondent records who is being assessed.
func (s *Session) SetRespondent(r schema.Respondent) {
	s.respondent = schema.Respondent{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Company: strings.TrimSpace(r.Company),
		Role:    strings.TrimSpace(r.Role),
	}
}

// Respondent returns the recorded respondent.
func (s *Session) Respondent() schema.Respondent {
	return s.respondent
}

// Answer records a response after checking it against the question's option set.
// Choice labels are matched case-insensitively and stored in their catalog spelling.
// Scale responses are stored as integers.
func (s *Session) Answer(questionID string, raw any) error {
	if s.complete {
		return fmt.Errorf("%w: answers are final once submitted", ErrInvalidAnswer)
	}
	q, ok := s.catalog.Question(questionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	value, err := normalizeAnswer(q, raw)
	if err != nil {
		return err
	}
	s.answers[questionID] = value
	return nil
}

// normalizeAnswer returns the canonical form of a raw answer.
// A boolean only answers a choice question that offers both "Yes" and "No".
func normalizeAnswer(q schema.Question, raw any) (any, error) {
	if b, ok := raw.(bool); ok {
		return booleanOption(q, b)
	}

	switch q.Kind {
	case schema.ChoiceQuestion:
		str, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects one of %s", ErrInvalidAnswer, q.ID, strings.Join(q.Options, ", "))
		}
		folded := algo.FoldLabel(str)
		for _, option := range q.Options {
			if algo.FoldLabel(option) == folded {
				return option, nil
			}
		}
		return nil, fmt.Errorf("%w: %q is not an option of %s", ErrInvalidAnswer, str, q.ID)

	case schema.ScaleQuestion:
		pos, ok := scalePosition(raw)
		if !ok || pos < q.ScaleMin || pos > q.ScaleMax {
			return nil, fmt.Errorf("%w: %s expects a whole number from %d to %d", ErrInvalidAnswer, q.ID, q.ScaleMin, q.ScaleMax)
		}
		return pos, nil
	}
	return nil, fmt.Errorf("%w: %s has unknown kind %q", ErrInvalidAnswer, q.ID, q.Kind)
}

func booleanOption(q schema.Question, b bool) (any, error) {
	if q.Kind == schema.ChoiceQuestion && slices.Contains(q.Options, yesOption) && slices.Contains(q.Options, noOption) {
		if b {
			return yesOption, nil
		}
		return noOption, nil
	}
	return nil, fmt.Errorf("%w: %s does not take a yes/no answer", ErrInvalidAnswer, q.ID)
}

func scalePosition(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}

// Missing lists what the current section still needs before moving on.
func (s *Session) Missing() []string {
	section := s.Current()
	var missing []string
	if section.ID == schema.UserInfoSection {
		fields := []struct{ name, value string }{
			{"name", s.respondent.Name},
			{"email", s.respondent.Email},
			{"company", s.respondent.Company},
			{"role", s.respondent.Role},
		}
		for _, f := range fields {
			if f.value == "" {
				missing = append(missing, f.name)
			}
		}
		return missing
	}
	for _, q := range section.Questions {
		if _, ok := s.answers[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// CanProceed reports whether the current section is complete.
func (s *Session) CanProceed() bool {
	return len(s.Missing()) == 0
}

// Next moves to the following section. On the last section it submits the questionnaire.
func (s *Session) Next() error {
	if s.complete {
		return nil
	}
	if missing := s.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %s needs %s", ErrIncompleteSection, s.Current().ID, strings.Join(missing, ", "))
	}
	if s.index == len(s.sections)-1 {
		s.complete = true
		return nil
	}
	s.index++
	return nil
}

// Prev moves back one section. It stays on the first section.
func (s *Session) Prev() {
	if s.complete || s.index == 0 {
		return
	}
	s.index--
}

// Progress returns the position of the current section as a percentage.
func (s *Session) Progress() float64 {
	if s.complete || len(s.sections) <= 1 {
		return 100
	}
	return float64(s.index) / float64(len(s.sections)-1) * 100
}

// Complete reports whether the questionnaire has been submitted.
func (s *Session) Complete() bool {
	return s.complete
}

// Answers returns a copy of the recorded answers.
func (s *Session) Answers() schema.Answers {
	return maps.Clone(s.answers)
}

// Score runs the scoring engine on a submitted session.
func (s *Session) Score(opts ScoreOptions) (schema.Assessment, error) {
	if !s.complete {
		return schema.Assessment{}, ErrSessionIncomplete
	}
	return Score(s.Answers(), s.catalog, opts), nil
}
