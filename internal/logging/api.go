package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/funvibe/closurecheck/internal/diagnostics"
)

// logger is a global reference to a shared Logger
var logger = newLogger(LogLevelWarning, os.Stdout)

// ParseLevel maps a level name to its level. Unknown names select warn.
func ParseLevel(name string) int {
	switch name {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "verbose":
		return LogLevelVerbose
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelWarning
	}
}

// Initialize initializes the global logger with the provided log level
func Initialize(loglevelname string) {
	configureColor()
	logger = newLogger(ParseLevel(loglevelname), os.Stdout)
}

// SetOutput redirects log output, returning the previous writer.
func SetOutput(w io.Writer) io.Writer {
	logger.m.Lock()
	defer logger.m.Unlock()
	prev := logger.out
	logger.out = w
	return prev
}

// ShouldProceed indicates whether no errors have been logged so far.
func ShouldProceed() bool {
	logger.m.Lock()
	defer logger.m.Unlock()
	return logger.errorCount == 0
}

// Counts returns the number of errors and warnings logged so far.
func Counts() (errors, warnings int) {
	logger.m.Lock()
	defer logger.m.Unlock()
	return logger.errorCount, logger.warnCount
}

// ResetCounts clears the error and warning counters between watch runs.
func ResetCounts() {
	logger.m.Lock()
	defer logger.m.Unlock()
	logger.errorCount, logger.warnCount = 0, 0
}

// LogDiagnostic logs a diagnostic produced while loading or checking a scenario.
func LogDiagnostic(err *diagnostics.DiagnosticError) {
	logger.m.Lock()
	defer logger.m.Unlock()

	logger.errorCount++
	if logger.LogLevel < LogLevelError {
		return
	}
	if err.IsInternal() {
		displayFatalError(logger.out, err.Error())
		return
	}
	displayDiagnostic(logger.out, err)
}

// LogWarning logs a non-fatal problem.
func LogWarning(tag, msg string) {
	logger.m.Lock()
	defer logger.m.Unlock()

	logger.warnCount++
	if logger.LogLevel >= LogLevelWarning {
		displayWarning(logger.out, tag, msg)
	}
}

// LogResult logs the outcome of one scenario at verbose level.
func LogResult(file, result string) {
	logger.m.Lock()
	defer logger.m.Unlock()

	if logger.LogLevel >= LogLevelVerbose {
		displayResult(logger.out, file, result)
	}
}

// LogFatal logs an error that was not expected: the checker broke one of
// its own promises.
func LogFatal(message string) {
	logger.m.Lock()
	defer logger.m.Unlock()

	logger.errorCount++
	if logger.LogLevel > LogLevelSilent {
		displayFatalError(logger.out, message)
	}
}

// Debugf writes an inference trace line at debug level.
func Debugf(tag, format string, args ...interface{}) {
	logger.m.Lock()
	defer logger.m.Unlock()

	if logger.LogLevel >= LogLevelDebug {
		fmt.Fprintf(logger.out, "[%s] %s\n", tag, fmt.Sprintf(format, args...))
	}
}

// LogDump prints a multi-line dump unless the logger is silent.
func LogDump(tag, text string) {
	logger.m.Lock()
	defer logger.m.Unlock()

	if logger.LogLevel > LogLevelSilent {
		fmt.Fprintln(logger.out, InfoStyleBG.Sprint(tag))
		fmt.Fprint(logger.out, text)
	}
}

// DebugEnabled reports whether Debugf output is shown.
func DebugEnabled() bool {
	logger.m.Lock()
	defer logger.m.Unlock()
	return logger.LogLevel >= LogLevelDebug
}
