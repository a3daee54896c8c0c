package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"pretty-panic/pkg/buildinfo"
	"pretty-panic/pkg/prettypanic"
)

const (
	defaultThread  = "main"
	defaultMessage = "A panic message."
)

// Color modes accepted by --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// faultFlags describe the fault a command simulates.
type faultFlags struct {
	thread  string
	message string
}

func addFaultFlags(fs *pflag.FlagSet, f *faultFlags) {
	fs.StringVarP(&f.thread, "thread", "t", defaultThread, "Thread name reported for the fault")
	fs.StringVarP(&f.message, "message", "m", defaultMessage, "Panic message")
}

func (f faultFlags) validate() error {
	if err := noControlChars("--thread", f.thread); err != nil {
		return err
	}
	if strings.TrimSpace(f.message) == "" {
		return wrapWithSentinelAndContext(ErrFieldRequired, nil, "panic message is required", map[string]any{"flag": "--message"})
	}
	return nil
}

// info builds the FaultInfo a real panic with these flags would produce.
func (f faultFlags) info() *prettypanic.FaultInfo {
	return &prettypanic.FaultInfo{
		Message: f.message,
		Value:   f.message,
		Thread:  f.thread,
	}
}

// metadataFlags select where program metadata comes from.
type metadataFlags struct {
	manifest string
}

func addMetadataFlags(fs *pflag.FlagSet, f *metadataFlags) {
	fs.StringVar(&f.manifest, "manifest", os.Getenv(buildinfo.ManifestEnv),
		fmt.Sprintf("Metadata manifest (YAML or JSON); defaults to $%s", buildinfo.ManifestEnv))
}

func (f metadataFlags) resolve() (buildinfo.Metadata, error) {
	meta, err := buildinfo.Resolve(f.manifest)
	if err != nil {
		return buildinfo.Metadata{}, wrapWithSentinelAndContext(ErrLoadManifestFailed, err,
			"failed to load metadata manifest", map[string]any{"manifest": f.manifest})
	}
	return meta, nil
}

func addColorFlag(fs *pflag.FlagSet, mode *string) {
	fs.StringVar(mode, "color", colorAuto, "Color the report banner: auto, always or never")
}

func validateColorMode(mode string) error {
	switch mode {
	case colorAuto, colorAlways, colorNever:
		return nil
	}
	return wrapWithSentinelAndContext(ErrUnknownColorMode, nil,
		fmt.Sprintf("unknown color mode %q", mode), map[string]any{"flag": "--color"})
}

// noControlChars rejects values that would break the report layout.
func noControlChars(flag, value string) error {
	if strings.ContainsAny(value, "\r\n\t") {
		return wrapWithSentinelAndContext(ErrControlCharsNotAllowed, nil,
			fmt.Sprintf("%s must not contain control characters", flag), map[string]any{"flag": flag})
	}
	return nil
}
