package cli

import (
	"bytes"
	"os"
	"reflect"
	"runtime"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"pretty-panic/pkg/buildinfo"
	"pretty-panic/pkg/prettypanic"
)

func stubTerminal(t *testing.T, tty bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(int) bool { return tty }
	t.Cleanup(func() { isTerminal = orig })
}

func TestColorEnabled(t *testing.T) {
	t.Run("explicit modes", func(t *testing.T) {
		stubTerminal(t, false)
		assert.True(t, colorEnabled(colorAlways, &bytes.Buffer{}))
		assert.False(t, colorEnabled(colorNever, os.Stderr))
	})
	t.Run("auto on a terminal", func(t *testing.T) {
		stubTerminal(t, true)
		assert.True(t, colorEnabled(colorAuto, os.Stderr))
	})
	t.Run("auto on a pipe", func(t *testing.T) {
		stubTerminal(t, false)
		assert.False(t, colorEnabled(colorAuto, os.Stderr))
	})
	t.Run("auto without a file descriptor", func(t *testing.T) {
		stubTerminal(t, true)
		assert.False(t, colorEnabled(colorAuto, &bytes.Buffer{}))
	})
}

// runHandler calls h on a fresh goroutine and returns the exit code it asked
// for, or -1 if it left through runtime.Goexit without exiting.
func runHandler(h prettypanic.Handler, info *prettypanic.FaultInfo) int {
	code := make(chan int, 1)
	go func() {
		defer func() {
			select {
			case code <- -1:
			default:
			}
		}()
		h(info)
	}()
	return <-code
}

func TestCustomHandler(t *testing.T) {
	t.Run("prints message and exits", func(t *testing.T) {
		var out bytes.Buffer
		var exited int
		h := customHandler(&out, 3, false, func(code int) {
			exited = code
			runtime.Goexit()
		})

		assert.Equal(t, -1, runHandler(h, &prettypanic.FaultInfo{Message: "a cool panic"}))
		assert.Equal(t, 3, exited)
		assert.Equal(t, "a cool panic\n", out.String())
	})

	t.Run("halts instead of exiting", func(t *testing.T) {
		origHang := hang
		hang = runtime.Goexit
		t.Cleanup(func() { hang = origHang })

		var out bytes.Buffer
		exited := false
		h := customHandler(&out, 3, true, func(int) { exited = true })

		assert.Equal(t, -1, runHandler(h, &prettypanic.FaultInfo{Message: "a cool panic"}))
		assert.False(t, exited)
		assert.Equal(t, "a cool panic\n", out.String())
	})
}

func TestInstallHandler(t *testing.T) {
	orig := prettypanic.Installed()
	t.Cleanup(func() { prettypanic.Install(orig) })
	handlerPC := func(h prettypanic.Handler) uintptr { return reflect.ValueOf(h).Pointer() }

	var own prettypanic.Handler = func(*prettypanic.FaultInfo) {}

	t.Run("command owns its handler", func(t *testing.T) {
		prettypanic.Install(own)
		cmd := &cobra.Command{Use: "demo", Annotations: map[string]string{AnnotationOwnsHandler: "true"}}

		InstallHandler(cmd, zap.NewNop())

		assert.Equal(t, handlerPC(own), handlerPC(prettypanic.Installed()))
	})
	t.Run("other commands get the crash report handler", func(t *testing.T) {
		prettypanic.Install(own)
		cmd := &cobra.Command{Use: "report"}

		InstallHandler(cmd, zap.NewNop())

		assert.NotNil(t, prettypanic.Installed())
		assert.NotEqual(t, handlerPC(own), handlerPC(prettypanic.Installed()))
	})
	t.Run("unreadable manifest falls back to built-in metadata", func(t *testing.T) {
		t.Setenv(buildinfo.ManifestEnv, "/nonexistent/crash.yaml")
		prettypanic.Install(own)

		assert.NotPanics(t, func() { InstallHandler(&cobra.Command{Use: "metadata"}, zap.NewNop()) })
		assert.NotEqual(t, handlerPC(own), handlerPC(prettypanic.Installed()))
	})
}
