package cli

// This file implements the "demo" command. It installs a fault handler the
// way a real program would at the top of main and then panics, so the
// resulting crash report (or custom handler output) can be seen end to end.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"pretty-panic/pkg/prettypanic"
)

// osExit is a test seam for os.Exit in the custom handler.
var osExit = os.Exit

const defaultCustomExitCode = 3

type demoOptions struct {
	fault    faultFlags
	metadata metadataFlags
	color    string
	custom   bool
	halt     bool
	exitCode int
	faults   int
	dev      bool
}

// NewDemoCmd returns the demo subcommand.
func NewDemoCmd(logger *zap.Logger) *cobra.Command {
	var o demoOptions

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Install a fault handler and panic",
		Long: `Install a fault handler and panic on one or more goroutines.

By default the crash report handler prints the "Uh oh!" report on stderr and
exits with status 101. With --custom a handler that prints only the panic
message is installed instead; it exits with --exit-code, or halts forever
with --hang. With --dev nothing is installed and Go's own panic output is
shown, as in a development build.`,
		Example: `  pretty-panic demo --thread worker-1 --message "disk full"
  pretty-panic demo --custom --hang --message "a cool panic"
  pretty-panic demo --faults 4`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{AnnotationOwnsHandler: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.validate(cmd.Flags()); err != nil {
				logStructuredError(logger, err, "Invalid demo flags")
				return err
			}
			return runDemo(cmd, logger, o)
		},
	}

	fs := cmd.Flags()
	addFaultFlags(fs, &o.fault)
	addMetadataFlags(fs, &o.metadata)
	addColorFlag(fs, &o.color)
	fs.BoolVar(&o.custom, "custom", false, "Install a handler that prints only the panic message")
	fs.BoolVar(&o.halt, "hang", false, "With --custom, halt forever instead of exiting")
	fs.IntVar(&o.exitCode, "exit-code", defaultCustomExitCode, "With --custom, exit status after printing")
	fs.IntVar(&o.faults, "faults", 1, "Number of goroutines that panic concurrently")
	fs.BoolVar(&o.dev, "dev", false, "Development build: install nothing and keep Go's panic output")

	return cmd
}

func (o demoOptions) validate(fs *pflag.FlagSet) error {
	if err := o.fault.validate(); err != nil {
		return err
	}
	if err := validateColorMode(o.color); err != nil {
		return err
	}
	if o.faults < 1 {
		return wrapWithSentinelAndContext(ErrInvalidFaultCount, nil,
			fmt.Sprintf("--faults must be at least 1, got %d", o.faults), map[string]any{"flag": "--faults"})
	}
	if o.exitCode < 0 || o.exitCode > 125 {
		return wrapWithSentinelAndContext(ErrInvalidExitCode, nil,
			fmt.Sprintf("--exit-code must be between 0 and 125, got %d", o.exitCode), map[string]any{"flag": "--exit-code"})
	}
	if !o.custom {
		for _, name := range []string{"hang", "exit-code"} {
			if fs.Changed(name) {
				return wrapWithSentinelAndContext(ErrConflictingFlags, nil,
					fmt.Sprintf("--%s requires --custom", name), map[string]any{"flag": "--" + name})
			}
		}
	}
	if o.custom && o.dev {
		return newWithSentinel(ErrConflictingFlags, "--custom and --dev cannot be combined")
	}
	return nil
}

func (o demoOptions) handlerDescription() string {
	switch {
	case o.dev:
		return "Development build: no fault handler installed"
	case o.custom:
		return "Installed custom fault handler"
	}
	return "Installed crash report handler"
}

// threadName names the i-th faulting goroutine. A single fault uses the
// --thread value as is.
func (o demoOptions) threadName(i int) string {
	if o.faults == 1 {
		return o.fault.thread
	}
	return fmt.Sprintf("%s-%d", o.fault.thread, i+1)
}

func runDemo(cmd *cobra.Command, logger *zap.Logger, o demoOptions) error {
	meta, err := o.metadata.resolve()
	if err != nil {
		logStructuredError(logger, err, "Failed to resolve metadata")
		return err
	}

	errOut := cmd.ErrOrStderr()
	handler := defaultHandler(logger, meta, errOut, colorEnabled(o.color, errOut))
	if o.custom {
		handler = customHandler(errOut, o.exitCode, o.halt, osExit)
	}
	prettypanic.InstallForBuild(!o.dev, handler)

	p := &Printer{Quiet: !IsDebugMode(), Out: cmd.OutOrStdout()}
	p.Step(o.handlerDescription())
	p.Info(fmt.Sprintf("Panicking with %q on %d goroutine(s)", o.fault.message, o.faults))
	logger.Debug("Fault handler installed",
		zap.Bool("custom", o.custom),
		zap.Bool("release", !o.dev),
		zap.Int("faults", o.faults),
		zap.String("program", meta.Name))

	for i := 0; i < o.faults; i++ {
		prettypanic.Go(o.threadName(i), func() {
			panic(o.fault.message)
		})
	}

	// The handler ends the process.
	hang()
	return nil
}
