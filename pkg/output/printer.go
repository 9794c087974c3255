// Package output provides the leveled user-facing message sink backed by
// pterm prefix printers. It carries no control flow: callers decide what
// to do about failures, the printer only reports them.
package output

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Printer emits leveled, prefixed messages to the terminal.
type Printer struct {
	info pterm.PrefixPrinter
	step pterm.PrefixPrinter
	ok   pterm.PrefixPrinter
	warn pterm.PrefixPrinter
	err  pterm.PrefixPrinter
}

// New creates a Printer. Color is disabled when stdout is not a TTY or
// the terminal reports no color support.
func New() *Printer {
	if !isatty.IsTerminal(os.Stdout.Fd()) || termenv.EnvColorProfile() == termenv.Ascii {
		pterm.DisableColor()
	}

	step := pterm.Info
	step.Prefix = pterm.Prefix{Text: "STEP", Style: pterm.NewStyle(pterm.FgCyan)}

	return &Printer{
		info: pterm.Info,
		step: step,
		ok:   pterm.Success,
		warn: pterm.Warning,
		err:  pterm.Error,
	}
}

// Info reports neutral progress information.
func (p *Printer) Info(format string, args ...interface{}) {
	p.info.Printfln(format, args...)
}

// Step announces the start of a named phase.
func (p *Printer) Step(format string, args ...interface{}) {
	p.step.Printfln(format, args...)
}

// OK reports a successfully completed phase.
func (p *Printer) OK(format string, args ...interface{}) {
	p.ok.Printfln(format, args...)
}

// Warn reports a non-fatal problem.
func (p *Printer) Warn(format string, args ...interface{}) {
	p.warn.Printfln(format, args...)
}

// Error reports a failure. It does not exit; exit codes are the CLI's
// concern.
func (p *Printer) Error(format string, args ...interface{}) {
	p.err.Printfln(format, args...)
}

// Plain prints unleveled text as-is.
func (p *Printer) Plain(text string) {
	pterm.Println(text)
}
