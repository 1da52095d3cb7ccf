package logging

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/funvibe/closurecheck/internal/config"
	"github.com/funvibe/closurecheck/internal/diagnostics"
	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

func displayDiagnostic(w io.Writer, err *diagnostics.DiagnosticError) {
	fmt.Fprintln(w, ErrorStyleBG.Sprint(string(err.Code))+" "+ErrorColorFG.Sprint(err.Error()))
}

func displayWarning(w io.Writer, tag, msg string) {
	fmt.Fprintln(w, WarnStyleBG.Sprint(tag)+" "+WarnColorFG.Sprint(msg))
}

func displayResult(w io.Writer, file, result string) {
	fmt.Fprintln(w, InfoStyleBG.Sprint(filepath.Base(file))+" "+result)
}

const fatalErrorPostlude = `
This is a bug in ` + config.ToolName + `, not in the checked input.`

func displayFatalError(w io.Writer, msg string) {
	fmt.Fprint(w, "\n")
	fmt.Fprintln(w, ErrorStyleBG.Sprint("Fatal Error")+" "+ErrorColorFG.Sprint(msg))
	fmt.Fprintln(w, InfoColorFG.Sprint(fatalErrorPostlude))
}

// DisplaySummary prints the closing line of a check run.
func DisplaySummary(checked int) {
	logger.m.Lock()
	defer logger.m.Unlock()

	if logger.LogLevel == LogLevelSilent {
		return
	}
	fmt.Fprint(logger.out, "\n")
	if logger.errorCount == 0 {
		fmt.Fprint(logger.out, SuccessColorFG.Sprint("All done! "))
	} else {
		fmt.Fprint(logger.out, ErrorColorFG.Sprint("Oh no! "))
	}
	fmt.Fprintf(logger.out, "(%d checked, %d errors, %d warnings)\n", checked, logger.errorCount, logger.warnCount)
}
