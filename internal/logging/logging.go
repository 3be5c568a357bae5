// Package logging provides the run log: timestamped lines appended to the
// log file and echoed to standard output.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const timeLayout = "2006-01-02 15:04:05"

// lineFormatter renders "YYYY-MM-DD HH:MM:SS - <message>". Error-level lines
// carry the ERROR: prefix so automation can grep the trail.
type lineFormatter struct{}

func (lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	msg := e.Message
	if e.Level <= logrus.ErrorLevel && !strings.HasPrefix(msg, "ERROR:") {
		msg = "ERROR: " + msg
	}
	return []byte(e.Time.Format(timeLayout) + " - " + msg + "\n"), nil
}

// New opens the log file at path for appending, creating parent directories
// as needed, and returns a logger writing to both the file and stdout.
// The returned closer releases the file handle.
func New(path string, verbose bool) (*logrus.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create log directory for %s", path)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open log file %s", path)
	}

	logger := logrus.New()
	logger.SetFormatter(lineFormatter{})
	logger.SetOutput(io.MultiWriter(os.Stdout, f))
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger, f.Close, nil
}

// NewBuffered returns a logger writing only to w. Used by tests and dry
// harnesses that should not touch the filesystem.
func NewBuffered(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(lineFormatter{})
	logger.SetOutput(w)
	return logger
}
