package core

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/huangsam/readiness/core/catalog"
	"github.com/huangsam/readiness/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// questionReplies answers every catalog question with reply.
func questionReplies(reply string) []string {
	var lines []string
	for range catalog.Default().TotalQuestions() {
		lines = append(lines, reply)
	}
	return lines
}

func runScript(t *testing.T, known schema.Respondent, lines ...string) (*Session, string, error) {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	s, err := RunInteractive(context.Background(), catalog.Default(), in, &out, known)
	return s, out.String(), err
}

func TestRunInteractive(t *testing.T) {
	lines := append([]string{"Jordan Lee", "jordan@example.com", "Acme Corp", "CISO"}, questionReplies("1")...)
	s, out, err := runScript(t, schema.Respondent{}, lines...)
	require.NoError(t, err)

	assert.True(t, s.Complete())
	assert.Equal(t, testRespondent, s.Respondent())
	assert.Equal(t, "Implemented", s.Answers()["access_control_1"])
	assert.Equal(t, 1, s.Answers()["security_monitoring_1"])
	assert.Contains(t, out, "[0%] Organization Info")
	assert.Contains(t, out, "[100%] Privacy Controls")
	assert.Contains(t, out, "1) Implemented  2) Partially Implemented")
	assert.Contains(t, out, "1=Not implemented  2=Basic")
}

func TestRunInteractive_KnownRespondent(t *testing.T) {
	lines := append([]string{"", "", "", ""}, questionReplies("1")...)
	s, out, err := runScript(t, testRespondent, lines...)
	require.NoError(t, err)
	assert.Equal(t, testRespondent, s.Respondent())
	assert.Contains(t, out, "Company [Acme Corp]: ")
}

func TestRunInteractive_Reprompts(t *testing.T) {
	lines := []string{
		"", "Jordan Lee", // name required
		"not-an-email", "jordan@example.com",
		"Acme Corp", "CISO",
		"7", "Implemented", // 7 is not an option number
	}
	lines = append(lines, questionReplies("2")[1:]...)
	s, out, err := runScript(t, schema.Respondent{}, lines...)
	require.NoError(t, err)

	assert.Contains(t, out, "Name is required")
	assert.Contains(t, out, "invalid email")
	assert.Contains(t, out, `"7" is not an option of access_control_1`)
	assert.Equal(t, "Implemented", s.Answers()["access_control_1"])
	assert.Equal(t, "Semi-annually", s.Answers()["access_control_2"])
}

func TestRunInteractive_Back(t *testing.T) {
	lines := []string{
		"Jordan Lee", "jordan@example.com", "Acme Corp", "CISO",
		"back",
		"", "", "Globex", "",
	}
	lines = append(lines, questionReplies("1")...)
	s, _, err := runScript(t, schema.Respondent{}, lines...)
	require.NoError(t, err)
	assert.Equal(t, "Globex", s.Respondent().Company)
	assert.Equal(t, "Jordan Lee", s.Respondent().Name)
}

func TestRunInteractive_InputClosed(t *testing.T) {
	_, _, err := runScript(t, schema.Respondent{}, "Jordan Lee", "jordan@example.com")
	assert.ErrorIs(t, err, errInputClosed)
}

func TestRunInteractive_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunInteractive(ctx, catalog.Default(), strings.NewReader(""), &bytes.Buffer{}, schema.Respondent{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChoiceValue(t *testing.T) {
	q, ok := catalog.Default().Question("encryption_1")
	require.True(t, ok)

	assert.Equal(t, "Both", choiceValue(q, "1"))
	assert.Equal(t, "Neither", choiceValue(q, "4"))
	assert.Equal(t, "5", choiceValue(q, "5"))
	assert.Equal(t, "at rest only", choiceValue(q, "at rest only"))

	scale, ok := catalog.Default().Question("quality_assurance_1")
	require.True(t, ok)
	assert.Equal(t, "3", choiceValue(scale, "3"))
}
