package answers

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/readiness/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	for _, name := range []string{"partial.yaml", "partial.json"} {
		t.Run(name, func(t *testing.T) {
			sheet, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)

			assert.Equal(t, "Acme Corp", sheet.Respondent.Company)
			assert.Equal(t, "CISO", sheet.Respondent.Role)
			assert.Equal(t, "Implemented", sheet.Answers["access_control_1"])
			assert.Equal(t, true, sheet.Answers["authentication_1"])
			assert.Equal(t, 4, sheet.Answers["security_monitoring_1"])
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read answer sheet")
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "answer sheet is empty"},
		{"unknown key", "respondant:\n  name: x\n", "decode answer sheet"},
		{"malformed", "answers: [unclosed", "decode answer sheet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecode_NoAnswers(t *testing.T) {
	sheet, err := Read(strings.NewReader("respondent:\n  name: Jordan Lee\n"))
	require.NoError(t, err)
	assert.NotNil(t, sheet.Answers)
	assert.Empty(t, sheet.Answers)
}

func TestEncodeDecode(t *testing.T) {
	sheet := schema.AnswerSheet{
		Respondent: schema.Respondent{Name: "Jordan Lee", Company: "Acme Corp"},
		Answers:    schema.Answers{"encryption_1": "Both", "security_monitoring_1": 3},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sheet))
	assert.Contains(t, buf.String(), "encryption_1: Both")

	decoded, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, sheet, decoded)
}
