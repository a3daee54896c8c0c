package prettypanic

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"pretty-panic/pkg/buildinfo"
)

const (
	banner        = "Uh oh!"
	bugReportNote = "(If you are going to submit a bug report, include the entirety of this message!)"
	threadIndent  = "     "
	messageIndent = "         "
	contactPrefix = "Submit bug report to the authors: "
)

const explanation = "The program experienced a fatal error, and has panicked. Recommend you contact one\n" +
	"of the authors for assistance. See below for some additional information:"

// FormatReport renders the default crash report for info. Empty metadata
// fields are shown as "unknown".
func FormatReport(meta buildinfo.Metadata, info *FaultInfo) string {
	return renderReport(meta, info, false)
}

// WriteReport writes FormatReport's output to w in a single Write call.
func WriteReport(w io.Writer, meta buildinfo.Metadata, info *FaultInfo) error {
	_, err := io.WriteString(w, FormatReport(meta, info))
	return err
}

func renderReport(meta buildinfo.Metadata, info *FaultInfo, color bool) string {
	meta = meta.WithDefaults()
	title := fmt.Sprintf("%s v%s (%s)", meta.Name, meta.DisplayVersion(), meta.Homepage)

	var message string
	if info != nil {
		message = info.Message
	}

	head := banner
	if color {
		head = pterm.FgRed.Sprint(banner)
	}

	var b strings.Builder
	b.WriteString(head + "\n\n")
	b.WriteString(explanation + "\n\n")
	b.WriteString(bugReportNote + "\n")
	fmt.Fprintf(&b, "%s - panic start\n", title)
	fmt.Fprintf(&b, "%spanic from thread [%s]:\n", threadIndent, info.ThreadName())
	b.WriteString(indentLines(message, messageIndent) + "\n\n")
	b.WriteString(contactPrefix + meta.AuthorList() + "\n")
	fmt.Fprintf(&b, "%s - panic end\n", title)
	return b.String()
}

// indentLines prefixes every line of s, keeping multi-line panic messages
// inside the report block.
func indentLines(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
