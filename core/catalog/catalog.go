// Package catalog holds the questionnaire: sections, domains, controls and questions.
package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/huangsam/readiness/schema"
)

// ErrInvalidCatalog is wrapped by every construction error.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is an immutable, validated questionnaire.
// Every question is attributed to exactly one control of its section's domain.
type Catalog struct {
	domains    []schema.Domain
	sections   []schema.Section
	sectionIdx map[string]int
	questions  map[string]schema.Question
	owner      map[string]string // question id -> control name
	domainOf   map[string]schema.DomainName
}

// NormalizeControl turns a control name into its question identifier key,
// e.g. "Data Subject Rights" becomes "data_subject_rights".
func NormalizeControl(control string) string {
	return strings.Join(strings.Fields(strings.ToLower(control)), "_")
}

// New builds a catalog and validates it.
// Questions with an empty Control field are attributed by naming convention:
// exactly one control of the section's domain must have its normalized name
// contained in the question id.
func New(domains []schema.Domain, sections []schema.Section) (*Catalog, error) {
	c := &Catalog{
		sectionIdx: make(map[string]int, len(sections)),
		questions:  make(map[string]schema.Question),
		owner:      make(map[string]string),
		domainOf:   make(map[string]schema.DomainName),
	}

	controlsByDomain := make(map[schema.DomainName][]string, len(domains))
	for _, d := range domains {
		if _, ok := schema.ValidDomains[d.Name]; !ok {
			return nil, fmt.Errorf("%w: unknown domain %q", ErrInvalidCatalog, d.Name)
		}
		if _, dup := controlsByDomain[d.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate domain %q", ErrInvalidCatalog, d.Name)
		}
		for _, control := range d.Controls {
			if prev, dup := c.domainOf[control]; dup {
				return nil, fmt.Errorf("%w: control %q listed in both %s and %s", ErrInvalidCatalog, control, prev, d.Name)
			}
			c.domainOf[control] = d.Name
		}
		controlsByDomain[d.Name] = slices.Clone(d.Controls)
		c.domains = append(c.domains, schema.Domain{Name: d.Name, Controls: slices.Clone(d.Controls)})
	}

	for i, s := range sections {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: section %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := c.sectionIdx[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate section %q", ErrInvalidCatalog, s.ID)
		}
		c.sectionIdx[s.ID] = i

		built := schema.Section{ID: s.ID, Title: s.Title, Domain: s.Domain}
		if s.ID == schema.UserInfoSection {
			if len(s.Questions) > 0 {
				return nil, fmt.Errorf("%w: section %q cannot carry questions", ErrInvalidCatalog, s.ID)
			}
			c.sections = append(c.sections, built)
			continue
		}

		controls, ok := controlsByDomain[s.Domain]
		if !ok {
			return nil, fmt.Errorf("%w: section %q references unknown domain %q", ErrInvalidCatalog, s.ID, s.Domain)
		}
		for _, q := range s.Questions {
			if err := validateQuestion(q); err != nil {
				return nil, fmt.Errorf("%w: section %q: %w", ErrInvalidCatalog, s.ID, err)
			}
			if _, dup := c.questions[q.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate question %q", ErrInvalidCatalog, q.ID)
			}
			control, err := resolveControl(q, controls)
			if err != nil {
				return nil, fmt.Errorf("%w: section %q: %w", ErrInvalidCatalog, s.ID, err)
			}
			q = cloneQuestion(q)
			q.Control = control
			c.questions[q.ID] = q
			c.owner[q.ID] = control
			built.Questions = append(built.Questions, q)
		}
		c.sections = append(c.sections, built)
	}

	return c, nil
}

// validateQuestion checks the kind-specific parameters of a question.
func validateQuestion(q schema.Question) error {
	if q.ID == "" {
		return errors.New("question with empty id")
	}
	switch q.Kind {
	case schema.ChoiceQuestion:
		if len(q.Options) == 0 {
			return fmt.Errorf("choice question %q has no options", q.ID)
		}
	case schema.ScaleQuestion:
		if q.ScaleMin >= q.ScaleMax {
			return fmt.Errorf("scale question %q has empty range [%d,%d]", q.ID, q.ScaleMin, q.ScaleMax)
		}
		for v := q.ScaleMin; v <= q.ScaleMax; v++ {
			if _, ok := q.ScaleLabels[v]; !ok {
				return fmt.Errorf("scale question %q has no label for %d", q.ID, v)
			}
		}
	default:
		return fmt.Errorf("question %q has unknown kind %q", q.ID, q.Kind)
	}
	return nil
}

// resolveControl returns the owning control of a question within its domain.
func resolveControl(q schema.Question, controls []string) (string, error) {
	if q.Control != "" {
		if !slices.Contains(controls, q.Control) {
			return "", fmt.Errorf("question %q maps to control %q outside its domain", q.ID, q.Control)
		}
		return q.Control, nil
	}

	id := strings.ToLower(q.ID)
	var matches []string
	for _, control := range controls {
		if strings.Contains(id, NormalizeControl(control)) {
			matches = append(matches, control)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("question %q is not mapped to any control", q.ID)
	default:
		return "", fmt.Errorf("question %q matches several controls: %s", q.ID, strings.Join(matches, ", "))
	}
}

func cloneQuestion(q schema.Question) schema.Question {
	q.Options = slices.Clone(q.Options)
	q.ScaleLabels = maps.Clone(q.ScaleLabels)
	return q
}

// Domains returns the domains in catalog order.
func (c *Catalog) Domains() []schema.DomainName {
	names := make([]schema.DomainName, len(c.domains))
	for i, d := range c.domains {
		names[i] = d.Name
	}
	return names
}

// ControlsOf returns the ordered controls of a domain, or nil when unknown.
func (c *Catalog) ControlsOf(domain schema.DomainName) []string {
	for _, d := range c.domains {
		if d.Name == domain {
			return slices.Clone(d.Controls)
		}
	}
	return nil
}

// QuestionsOf returns the ordered questions of a section, or nil when unknown.
func (c *Catalog) QuestionsOf(sectionID string) []schema.Question {
	i, ok := c.sectionIdx[sectionID]
	if !ok {
		return nil
	}
	return slices.Clone(c.sections[i].Questions)
}

// Sections returns every section in presentation order.
func (c *Catalog) Sections() []schema.Section {
	return slices.Clone(c.sections)
}

// Section returns a single section by id.
func (c *Catalog) Section(sectionID string) (schema.Section, bool) {
	i, ok := c.sectionIdx[sectionID]
	if !ok {
		return schema.Section{}, false
	}
	return c.sections[i], true
}

// Question returns a question by id.
func (c *Catalog) Question(id string) (schema.Question, bool) {
	q, ok := c.questions[id]
	return q, ok
}

// ControlOf returns the owning control of a question.
func (c *Catalog) ControlOf(questionID string) (string, bool) {
	control, ok := c.owner[questionID]
	return control, ok
}

// DomainOf returns the domain a control belongs to.
func (c *Catalog) DomainOf(control string) (schema.DomainName, bool) {
	d, ok := c.domainOf[control]
	return d, ok
}

// QuestionsFor returns the question ids owned by a control, in catalog order.
func (c *Catalog) QuestionsFor(control string) []string {
	var ids []string
	for _, s := range c.sections {
		for _, q := range s.Questions {
			if q.Control == control {
				ids = append(ids, q.ID)
			}
		}
	}
	return ids
}

// TotalQuestions returns the number of questions across all sections.
func (c *Catalog) TotalQuestions() int {
	return len(c.questions)
}
