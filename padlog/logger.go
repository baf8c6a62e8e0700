package padlog

import (
	"fmt"
	"log"
	"os"
)

// Logger is the narrow logging interface search depends on.
// Callers supply their own implementation (or one of the two below) rather
// than being forced onto a concrete logging library.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// noop discards every message. It is the default Logger when none is
// configured.
type noop struct{}

// NewNoop returns a Logger that discards everything.
func NewNoop() Logger { return noop{} }

func (noop) Infof(string, ...any)  {}
func (noop) Warnf(string, ...any)  {}
func (noop) Errorf(string, ...any) {}

// stdLogger wraps the standard library's log.Logger with level prefixes.
type stdLogger struct {
	l *log.Logger
}

// NewStd returns a Logger backed by a standard library log.Logger writing
// to os.Stderr with level-prefixed lines.
func NewStd() Logger {
	return &stdLogger{l: log.New(os.Stderr, "", log.LstdFlags)}
}

// NewStdWithLogger returns a Logger backed by the given *log.Logger, for
// callers that already manage their own destination/flags.
func NewStdWithLogger(l *log.Logger) Logger {
	return &stdLogger{l: l}
}

func (s *stdLogger) Infof(format string, args ...any) {
	s.l.Output(2, "INFO  "+fmt.Sprintf(format, args...))
}

func (s *stdLogger) Warnf(format string, args ...any) {
	s.l.Output(2, "WARN  "+fmt.Sprintf(format, args...))
}

func (s *stdLogger) Errorf(format string, args ...any) {
	s.l.Output(2, "ERROR "+fmt.Sprintf(format, args...))
}
