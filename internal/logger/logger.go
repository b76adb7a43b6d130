// Package logger holds the process-wide logrus logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is shared by every package of the module.
var Log = logrus.New()

// Init configures Log for command-line use. Unknown levels fall back to info.
func Init(level string, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
	Log.SetOutput(out)
	Log.SetLevel(ParseLevel(level))
}

// ParseLevel maps a level name to a logrus level, defaulting to info.
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// ValidLevel reports whether level names a logrus level.
func ValidLevel(level string) bool {
	_, err := logrus.ParseLevel(strings.TrimSpace(level))
	return err == nil
}
