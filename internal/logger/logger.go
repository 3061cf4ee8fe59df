// Package logger owns the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger. It discards everything until Init is called.
var Log = newDiscard()

func newDiscard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init configures Log to write to stderr. Call it once from main.
func Init() {
	InitWithOutput(os.Stderr)
}

// InitWithOutput configures Log from the environment and writes to w.
//
//	LOG_LEVEL  panic|fatal|error|warn|info|debug|trace (default info)
//	LOG_FORMAT json, anything else selects coloured text
func InitWithOutput(w io.Writer) {
	l := logrus.New()

	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   w == os.Stderr || w == os.Stdout,
		})
	}
	l.SetOutput(w)
	Log = l
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
