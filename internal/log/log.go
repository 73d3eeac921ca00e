// Package log wraps apex/log with a handler and level controlled by the
// CMPLGRAM_LOG environment variable, the same way the compiler pipeline's
// callers expect logging to behave regardless of which subcommand is
// running.
package log

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

var traceEnabled bool

// Init configures the global apex/log handler and level from CMPLGRAM_LOG
// (trace, debug, info, warn, error, fatal; defaults to warn).
func Init() {
	envLevel := strings.ToLower(os.Getenv("CMPLGRAM_LOG"))
	if envLevel == "" {
		envLevel = "warn"
	}
	traceEnabled = envLevel == "trace"

	var level log.Level
	switch envLevel {
	case "trace", "debug":
		level = log.DebugLevel
	case "info":
		level = log.InfoLevel
	case "warn":
		level = log.WarnLevel
	case "error":
		level = log.ErrorLevel
	case "fatal":
		level = log.FatalLevel
	default:
		level = log.WarnLevel
	}
	log.SetHandler(&handler{})
	log.SetLevel(level)
}

// handler formats each entry as a timestamp, a one-letter level and the
// message, written to stderr so stdout stays reserved for completion
// candidates and compiled output.
type handler struct{}

func (h *handler) HandleLog(e *log.Entry) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := e.Message
	level := "?"
	if strings.HasPrefix(message, "TRACE: ") {
		level = "T"
		message = message[len("TRACE: "):]
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}
	fmt.Fprintf(os.Stderr, "%s %s %s\n", timestamp, level, message)
	return nil
}

// Tracef logs below Debug, only surfaced when CMPLGRAM_LOG=trace.
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug("TRACE: " + fmt.Sprintf(format, args...))
	}
}

func Debugf(format string, args ...interface{}) { log.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { log.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { log.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { log.Errorf(format, args...) }

// WithError returns an entry carrying err, for structured fields like
// log.WithError(err).Warnf("...").
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
