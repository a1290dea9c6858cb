package catalog

import (
	"testing"

	"github.com/huangsam/readiness/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NotNil(t, c)

	assert.Equal(t, schema.AllDomains, c.Domains())
	assert.Equal(t, 30, c.TotalQuestions())

	sections := c.Sections()
	require.Len(t, sections, 6)
	assert.Equal(t, schema.UserInfoSection, sections[0].ID)
	assert.Empty(t, sections[0].Questions)
	assert.Equal(t, "processing-integrity", sections[3].ID)

	assert.Equal(t, []string{
		"Access Control", "System Security", "Network Security", "Endpoint Protection",
		"Encryption", "Authentication", "Security Monitoring",
	}, c.ControlsOf(schema.SecurityDomain))
	assert.Nil(t, c.ControlsOf("Unknown"))

	questions := c.QuestionsOf("availability")
	require.Len(t, questions, 5)
	assert.Equal(t, "system_availability_1", questions[0].ID)
	assert.Equal(t, schema.ScaleQuestion, questions[4].Kind)
	assert.Equal(t, "Advanced", questions[4].ScaleLabels[5])
	assert.Nil(t, c.QuestionsOf("missing"))

	assert.Same(t, c, Default(), "Default should be built once")
}

func TestDefault_EveryQuestionMatchesNamingConvention(t *testing.T) {
	c := Default()
	for _, s := range c.Sections() {
		for _, q := range s.Questions {
			assert.Contains(t, q.ID, NormalizeControl(q.Control), "question %s", q.ID)
		}
	}
}

func TestControlOf(t *testing.T) {
	c := Default()

	control, ok := c.ControlOf("access_control_2")
	assert.True(t, ok)
	assert.Equal(t, "Access Control", control)

	domain, ok := c.DomainOf(control)
	assert.True(t, ok)
	assert.Equal(t, schema.SecurityDomain, domain)

	assert.Equal(t, []string{"access_control_1", "access_control_2"}, c.QuestionsFor("Access Control"))

	_, ok = c.ControlOf("nope_1")
	assert.False(t, ok)
}

func TestNormalizeControl(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Access Control", "access_control"},
		{"Data Subject Rights", "data_subject_rights"},
		{"  Encryption ", "encryption"},
		{"Data\tUse", "data_use"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeControl(tt.in))
	}
}

func TestNew_ResolvesByConvention(t *testing.T) {
	domains := []schema.Domain{{Name: schema.SecurityDomain, Controls: []string{"Access Control", "Encryption"}}}
	sections := []schema.Section{{ID: "security", Domain: schema.SecurityDomain, Questions: []schema.Question{
		{ID: "access_control_9", Kind: schema.ChoiceQuestion, Options: []string{"Yes", "No"}},
	}}}

	c, err := New(domains, sections)
	require.NoError(t, err)
	control, ok := c.ControlOf("access_control_9")
	assert.True(t, ok)
	assert.Equal(t, "Access Control", control)
}

func TestNew_Errors(t *testing.T) {
	security := []schema.Domain{{Name: schema.SecurityDomain, Controls: []string{"Access Control", "Control"}}}
	yesNo := []string{"Yes", "No"}

	tests := []struct {
		name     string
		domains  []schema.Domain
		sections []schema.Section
		errMsg   string
	}{
		{
			name:    "unknown domain",
			domains: []schema.Domain{{Name: "Finance", Controls: []string{"Ledger"}}},
			errMsg:  "unknown domain",
		},
		{
			name:     "unmapped question",
			domains:  security,
			sections: []schema.Section{{ID: "security", Domain: schema.SecurityDomain, Questions: []schema.Question{{ID: "patching_1", Kind: schema.ChoiceQuestion, Options: yesNo}}}},
			errMsg:   "not mapped to any control",
		},
		{
			name:     "ambiguous question",
			domains:  security,
			sections: []schema.Section{{ID: "security", Domain: schema.SecurityDomain, Questions: []schema.Question{{ID: "access_control_1", Kind: schema.ChoiceQuestion, Options: yesNo}}}},
			errMsg:   "matches several controls",
		},
		{
			name:     "explicit control outside domain",
			domains:  security,
			sections: []schema.Section{{ID: "security", Domain: schema.SecurityDomain, Questions: []schema.Question{{ID: "q1", Kind: schema.ChoiceQuestion, Options: yesNo, Control: "Data Use"}}}},
			errMsg:   "outside its domain",
		},
		{
			name:     "duplicate question",
			domains:  security,
			sections: []schema.Section{{ID: "security", Domain: schema.SecurityDomain, Questions: []schema.Question{{ID: "q1", Kind: schema.ChoiceQuestion, Options: yesNo, Control: "Control"}, {ID: "q1", Kind: schema.ChoiceQuestion, Options: yesNo, Control: "Control"}}}},
			errMsg:   "duplicate question",
		},
		{
			name:     "choice without options",
			domains:  security,
			sections: []schema.Section{{ID: "security", Domain: schema.SecurityDomain, Questions: []schema.Question{{ID: "q1", Kind: schema.ChoiceQuestion, Control: "Control"}}}},
			errMsg:   "has no options",
		},
		{
			name:     "scale missing label",
			domains:  security,
			sections: []schema.Section{{ID: "security", Domain: schema.SecurityDomain, Questions: []schema.Question{{ID: "q1", Kind: schema.ScaleQuestion, ScaleMin: 1, ScaleMax: 3, ScaleLabels: map[int]string{1: "a", 2: "b"}, Control: "Control"}}}},
			errMsg:   "no label for 3",
		},
		{
			name:     "section with unknown domain",
			domains:  security,
			sections: []schema.Section{{ID: "privacy", Domain: schema.PrivacyDomain}},
			errMsg:   "references unknown domain",
		},
		{
			name:     "duplicate section",
			domains:  security,
			sections: []schema.Section{{ID: schema.UserInfoSection}, {ID: schema.UserInfoSection}},
			errMsg:   "duplicate section",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.domains, tt.sections)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
