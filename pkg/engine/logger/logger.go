// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger. It is usable before Init with logrus defaults.
var Log = logrus.New()

// Options configure Init. Empty fields fall back to the LOG_LEVEL and
// LOG_FORMAT environment variables, then to "info" and "text".
type Options struct {
	Level  string
	Format string
	// File receives log output; empty means stderr. Full-screen ports
	// should always log to a file.
	File string
}

// Init configures Log. It returns a closer for the log file, if any.
func Init(opts Options) (io.Closer, error) {
	level := opts.Level
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	format := opts.Format
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   opts.File == "",
		})
	}

	if opts.File == "" {
		Log.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		Log.SetOutput(os.Stderr)
		return nopCloser{}, err
	}
	Log.SetOutput(f)
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
