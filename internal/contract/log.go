package contract

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It writes warnings and above to stderr
// until InitLogger configures it.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// logFile is the file InitLogger tees into, if any.
var logFile *os.File

// InitLogger sets the log level and optionally tees output into a file.
// Unknown levels fall back to warn. A file opened by an earlier call is closed.
func InitLogger(levelStr string, filePath string) error {
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.WarnLevel
	}
	Log.SetLevel(level)

	var file *os.File
	if filePath != "" {
		file, err = os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
	}
	_ = CloseLogger()

	if file == nil {
		Log.SetOutput(os.Stderr)
		return nil
	}
	logFile = file
	Log.SetOutput(io.MultiWriter(os.Stderr, file))
	return nil
}

// CloseLogger closes the log file and sends logs to stderr only.
func CloseLogger() error {
	if logFile == nil {
		return nil
	}
	Log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}
