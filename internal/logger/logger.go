package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// Init configures the global logger. format is "json" or "text"; out
// defaults to stderr so command output on stdout stays clean.
func Init(level, format string, out io.Writer) *logrus.Logger {
	log := logrus.New()

	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)

	if strings.ToLower(format) == "text" {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	if level == "" {
		level = "info"
	}
	if lvl, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", level).Warn("Invalid log level, using INFO")
	}

	Logger = log
	return log
}

// Get returns the global logger, initializing it with defaults.
func Get() *logrus.Logger {
	if Logger == nil {
		return Init("info", "json", nil)
	}
	return Logger
}

// WithComponent tags entries with the emitting package.
func WithComponent(name string) *logrus.Entry {
	return Get().WithField("component", name)
}

// WithRequest tags entries with a request id.
func WithRequest(component, requestID string) *logrus.Entry {
	return Get().WithFields(logrus.Fields{
		"component":  component,
		"request_id": requestID,
	})
}
