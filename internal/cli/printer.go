package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
)

// Printer writes human-facing command output. Quiet suppresses sections,
// steps and info lines; tables and Printf output are always written.
type Printer struct {
	Quiet bool
	Out   io.Writer
}

// newPrinter returns a Printer bound to w, usually cmd.OutOrStdout().
func newPrinter(w io.Writer) *Printer {
	return &Printer{Out: w}
}

func (p *Printer) writer() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

// Section prints a section header.
func (p *Printer) Section(title string) {
	if p.Quiet {
		return
	}
	fmt.Fprint(p.writer(), pterm.DefaultSection.Sprint(title))
}

// Step prints a progress line.
func (p *Printer) Step(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprintf(p.writer(), "%s %s\n", Cyan("→"), msg)
}

// Info prints an informational line.
func (p *Printer) Info(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprintf(p.writer(), "%s %s\n", Yellow("•"), msg)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.writer(), format, args...)
}

// Table renders data with the first row as header.
func (p *Printer) Table(data [][]string) {
	p.renderTable(data, false)
}

// TableBoxed renders data with the first row as header, inside a box.
func (p *Printer) TableBoxed(data [][]string) {
	p.renderTable(data, true)
}

func (p *Printer) renderTable(data [][]string, boxed bool) {
	if len(data) == 0 {
		return
	}
	out, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed(boxed).
		WithData(data).
		Srender()
	if err != nil {
		return
	}
	fmt.Fprintln(p.writer(), out)
}

// DisableColorUnlessTerminal turns off pterm styling when w is not a
// terminal, so piped output carries no escape sequences.
func DisableColorUnlessTerminal(w io.Writer) {
	if !colorEnabled(colorAuto, w) {
		pterm.DisableColor()
	}
}

func Yellow(s string) string { return pterm.Yellow(s) }
func Cyan(s string) string   { return pterm.Cyan(s) }
