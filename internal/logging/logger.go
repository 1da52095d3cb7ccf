package logging

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Logger collects the diagnostics reported while checking and prints them
// at or above its level.
type Logger struct {
	errorCount int
	warnCount  int
	LogLevel   int

	out io.Writer

	// m serializes output from scenarios checked concurrently
	m *sync.Mutex
}

// Enumeration of the different log levels
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors
	LogLevelWarning        // errors and warnings
	LogLevelVerbose        // errors, warnings and per-scenario results
	LogLevelDebug          // everything, including inference traces
)

func newLogger(loglevel int, out io.Writer) Logger {
	return Logger{
		LogLevel: loglevel,
		out:      out,
		m:        &sync.Mutex{},
	}
}

// colorEnabled reports whether stdout is a terminal that can render styles.
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func configureColor() {
	if colorEnabled() {
		pterm.EnableColor()
	} else {
		pterm.DisableColor()
	}
}
