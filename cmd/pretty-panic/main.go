package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pretty-panic/internal/cli"
	"pretty-panic/pkg/buildinfo"
	"pretty-panic/pkg/errx"
	"pretty-panic/pkg/prettypanic"
)

var (
	commit = "none"
	date   = "unknown"
)

func main() {
	code := 0
	prettypanic.Run("main", func() {
		code = run(os.Args[1:], os.Stdout, os.Stderr)
	})
	os.Exit(code)
}

func run(args []string, stdout, stderr io.Writer) int {
	level := zap.NewAtomicLevelAt(consoleLevel(false))
	logger, err := newConsoleLogger(level)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to init logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	rootCmd := newRootCmd(logger, level)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		if cli.IsDebugMode() {
			fmt.Fprintf(stderr, "Error: %s\n", errx.DebugString(err))
		} else {
			fmt.Fprintf(stderr, "Error: %s\n", errx.UserString(err))
		}
		return 1
	}
	return 0
}

func newRootCmd(logger *zap.Logger, level zap.AtomicLevel) *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "pretty-panic",
		Short: "Friendly crash reports for Go programs",
		Long: `pretty-panic replaces Go's panic dump with a short crash report that tells
the user what happened and who to contact:
- demo: install a handler and panic
- report: preview the crash report
- metadata: show the program metadata a report carries`,
		Version:       versionString(buildinfo.Current()),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Set debug mode globally so logStructuredError can check it
			cli.SetDebugMode(debug)
			level.SetLevel(consoleLevel(debug))
			cli.DisableColorUnlessTerminal(cmd.OutOrStdout())
			cli.InstallHandler(cmd, logger)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode with structured error logging")

	rootCmd.AddCommand(cli.NewDemoCmd(logger))
	rootCmd.AddCommand(cli.NewReportCmd(logger))
	rootCmd.AddCommand(cli.NewMetadataCmd(logger))

	return rootCmd
}

func versionString(meta buildinfo.Metadata) string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", meta.DisplayVersion(), commit, date)
}

// consoleLevel shows everything in debug mode; otherwise only errors, which
// logStructuredError emits when --debug is set.
func consoleLevel(debug bool) zapcore.Level {
	if debug {
		return zap.DebugLevel
	}
	return zap.ErrorLevel
}

// newConsoleLogger returns a human-friendly console logger with timestamps.
// The level can be raised or lowered after construction, once flags are parsed.
func newConsoleLogger(level zap.AtomicLevel) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = level
	cfg.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	return cfg.Build()
}
