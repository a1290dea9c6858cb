package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/readiness/schema"
)

// Color variables for console output.
var (
	WellPreparedColor      = color.New(color.FgGreen, color.Bold) // ready for an audit
	PartiallyPreparedColor = color.New(color.FgCyan)              // close, some gaps
	EarlyStageColor        = color.New(color.FgYellow)            // standard caution, not bold
	NeedsImprovementColor  = color.New(color.FgRed, color.Bold)   // standard danger
)

// GetColorLabel returns a colored readiness label for console output (table).
// It uses schema.GetReadinessLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score float64) string {
	return ColorizeLabel(schema.GetReadinessLabel(score))
}

// ColorizeLabel applies the console color of a readiness label.
func ColorizeLabel(label schema.ReadinessLabel) string {
	text := string(label)
	switch label {
	case schema.WellPrepared:
		return WellPreparedColor.Sprint(text)
	case schema.PartiallyPrepared:
		return PartiallyPreparedColor.Sprint(text)
	case schema.EarlyStage:
		return EarlyStageColor.Sprint(text)
	default:
		return NeedsImprovementColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error, closes the log file and exits the program.
func LogFatal(msg string, err error) {
	Log.WithError(err).Error(msg)
	_ = CloseLogger()
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	Log.WithError(err).Warn(msg)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for assessment history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".readiness_history.db"
	}
	return filepath.Join(homeDir, ".readiness_history.db")
}

// TruncateText shortens text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
