// Package console prints emoji-prefixed progress lines, colored when the
// output is a terminal.
package console

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Printer writes human-readable status lines.
type Printer struct {
	out     *termenv.Output
	verbose bool
}

// New returns a Printer writing to w. Colors are dropped automatically
// when w is not a terminal.
func New(w io.Writer) *Printer {
	return &Printer{out: termenv.NewOutput(w)}
}

// SetVerbose enables Detail lines.
func (p *Printer) SetVerbose(v bool) {
	p.verbose = v
}

// Verbose reports whether Detail lines are printed.
func (p *Printer) Verbose() bool {
	return p.verbose
}

// Println prints an unstyled line.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Printf prints unstyled formatted text.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Step announces the start of a unit of work.
func (p *Printer) Step(format string, a ...any) {
	p.line("🎨", "4", false, format, a...)
}

// Success reports completed work.
func (p *Printer) Success(format string, a ...any) {
	p.line("✅", "2", true, format, a...)
}

// Warn reports a non-fatal problem.
func (p *Printer) Warn(format string, a ...any) {
	p.line("⚠️ ", "3", false, format, a...)
}

// Error reports a fatal problem.
func (p *Printer) Error(format string, a ...any) {
	p.line("❌", "1", true, format, a...)
}

// Detail prints an indented line in verbose mode only.
func (p *Printer) Detail(format string, a ...any) {
	if !p.verbose {
		return
	}
	msg := p.out.String("   " + fmt.Sprintf(format, a...)).Faint()
	fmt.Fprintln(p.out, msg)
}

// Rule prints a horizontal separator.
func (p *Printer) Rule() {
	fmt.Fprintln(p.out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
}

func (p *Printer) line(emoji, ansi string, bold bool, format string, a ...any) {
	s := p.out.String(fmt.Sprintf(format, a...)).Foreground(p.out.Color(ansi))
	if bold {
		s = s.Bold()
	}
	fmt.Fprintf(p.out, "%s %s\n", emoji, s)
}
