package contract

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/readiness/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		label schema.ReadinessLabel
	}{
		{"needs improvement", 30, schema.NeedsImprovement},
		{"early stage", 50, schema.EarlyStage},
		{"partially prepared", 70, schema.PartiallyPrepared},
		{"well prepared", 90, schema.WellPrepared},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorLabel(tt.score)
			// Should contain the plain label
			assert.Contains(t, result, string(tt.label))
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()
	assert.Contains(t, path, ".readiness_history.db")

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{"fits", "Access Control", 20, "Access Control"},
		{"truncated", "Do you have a formal access control policy?", 12, "Do you ha..."},
		{"width too small", "Encryption", 3, "Encryption"},
		{"multibyte", "Überprüfung", 6, "Übe..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateText(tt.text, tt.width))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"No", false, false},
		{"false", false, false},
		{"0", false, false},
		{"maybe", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLogWarn(t *testing.T) {
	var buf bytes.Buffer
	out := Log.Out
	Log.SetOutput(&buf)
	defer Log.SetOutput(out)

	LogWarn("history unavailable", errors.New("disk full"))

	assert.Contains(t, buf.String(), "history unavailable")
	assert.Contains(t, buf.String(), "disk full")
}

func TestInitLogger(t *testing.T) {
	out, level := Log.Out, Log.Level
	defer func() {
		Log.SetOutput(out)
		Log.SetLevel(level)
	}()

	path := filepath.Join(t.TempDir(), "readiness.log")
	require.NoError(t, InitLogger("debug", path))
	assert.Equal(t, "debug", Log.GetLevel().String())

	Log.Debug("scoring started")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "scoring started")

	require.NoError(t, InitLogger("bogus", ""))
	assert.Equal(t, "warning", Log.GetLevel().String())

	assert.Error(t, InitLogger("info", filepath.Join(t.TempDir(), "missing", "dir", "x.log")))
}

func TestInitLogger_ClosesFiles(t *testing.T) {
	out, level := Log.Out, Log.Level
	defer func() {
		_ = CloseLogger()
		Log.SetOutput(out)
		Log.SetLevel(level)
	}()

	dir := t.TempDir()
	require.NoError(t, InitLogger("info", filepath.Join(dir, "first.log")))
	first := logFile
	require.NotNil(t, first)

	require.NoError(t, InitLogger("info", filepath.Join(dir, "second.log")))
	_, err := first.WriteString("late line")
	assert.ErrorIs(t, err, os.ErrClosed, "reconfiguring closes the previous file")

	second := logFile
	require.NoError(t, CloseLogger())
	assert.Nil(t, logFile)
	_, err = second.WriteString("late line")
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.NoError(t, CloseLogger(), "closing twice is a no-op")
}
