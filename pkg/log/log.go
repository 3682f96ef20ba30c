// Package log provides the logging interface used throughout the
// emulator, along with a default implementation backed by logrus.
package log

import "github.com/sirupsen/logrus"

// Logger is the logging interface used by the emulator components.
// *logrus.Logger satisfies it.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a Logger writing plain text at the info level.
func New() Logger {
	return newLogrus(logrus.InfoLevel)
}

// NewWithLevel returns a Logger at the named level (panic, fatal,
// error, warn, info, debug, trace).
func NewWithLevel(level string) (Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return newLogrus(lvl), nil
}

func newLogrus(level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}
