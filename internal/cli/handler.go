package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"pretty-panic/pkg/buildinfo"
	"pretty-panic/pkg/prettypanic"
)

var (
	// isTerminal is a test seam for term.IsTerminal.
	isTerminal = term.IsTerminal

	// hang is a test seam for prettypanic.Hang.
	hang = prettypanic.Hang
)

// colorEnabled resolves a --color mode for w. In auto mode only terminals
// get color.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isTerminal(int(f.Fd()))
}

// AnnotationOwnsHandler marks a command that installs its own fault handler,
// so InstallHandler leaves the handler slot alone for it.
const AnnotationOwnsHandler = "pretty-panic.owns-handler"

// InstallHandler installs the binary's crash report handler before cmd runs,
// unless cmd is annotated with AnnotationOwnsHandler. Metadata comes from the
// manifest named by $PRETTY_PANIC_MANIFEST; a manifest that cannot be loaded
// falls back to the built-in metadata, since the handler must exist either way.
func InstallHandler(cmd *cobra.Command, logger *zap.Logger) {
	if cmd.Annotations[AnnotationOwnsHandler] == "true" {
		return
	}
	meta, err := buildinfo.Resolve(os.Getenv(buildinfo.ManifestEnv))
	if err != nil {
		logger.Debug("Fault handler uses built-in metadata", zap.Error(err))
		meta = buildinfo.Current()
	}
	errOut := cmd.ErrOrStderr()
	prettypanic.Install(defaultHandler(logger, meta, errOut, colorEnabled(colorAuto, errOut)))
}

// defaultHandler builds the crash report handler used by the binary. In
// debug mode each fault is also logged through logger.
func defaultHandler(logger *zap.Logger, meta buildinfo.Metadata, out io.Writer, color bool) prettypanic.Handler {
	opts := []prettypanic.Option{
		prettypanic.WithMetadata(meta),
		prettypanic.WithOutput(out),
		prettypanic.WithColor(color),
	}
	if logger != nil && IsDebugMode() {
		opts = append(opts, prettypanic.WithLogger(zapr.NewLogger(logger.Named("fault"))))
	}
	return prettypanic.NewDefaultHandler(opts...)
}

// customHandler prints the panic message on its own line, then either halts
// forever or exits with code.
func customHandler(out io.Writer, code int, halt bool, exit func(int)) prettypanic.Handler {
	return func(info *prettypanic.FaultInfo) {
		fmt.Fprintln(out, info.Message)
		if halt {
			hang()
		}
		exit(code)
	}
}
