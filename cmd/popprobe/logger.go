package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/popprobe/population-simulator/internal/calculation"
)

type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

func parseLogLevel(name string) (logLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return levelDebug, nil
	case "info":
		return levelInfo, nil
	case "", "warn", "warning":
		return levelWarn, nil
	case "error":
		return levelError, nil
	}
	return levelWarn, fmt.Errorf("unknown log level %q", name)
}

// stderrLogger writes leveled messages through the standard logger.
type stderrLogger struct {
	threshold logLevel
	out       *log.Logger
}

var _ calculation.Logger = (*stderrLogger)(nil)

func newStderrLogger(w io.Writer, threshold logLevel) *stderrLogger {
	return &stderrLogger{threshold: threshold, out: log.New(w, "popprobe ", log.LstdFlags)}
}

func (l *stderrLogger) logf(level logLevel, tag, format string, args ...any) {
	if level < l.threshold {
		return
	}
	l.out.Printf(tag+" "+format, args...)
}

func (l *stderrLogger) Debugf(format string, args ...any) { l.logf(levelDebug, "DEBUG", format, args...) }
func (l *stderrLogger) Infof(format string, args ...any)  { l.logf(levelInfo, "INFO", format, args...) }
func (l *stderrLogger) Warnf(format string, args ...any)  { l.logf(levelWarn, "WARN", format, args...) }
func (l *stderrLogger) Errorf(format string, args ...any) { l.logf(levelError, "ERROR", format, args...) }
