package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const widgetManifest = `name: widget
version: v1.4.0
authors: A:B:C
homepage: https://example.com/widget
`

func widgetReport(thread, message string) string {
	return "Uh oh!\n" +
		"\n" +
		"The program experienced a fatal error, and has panicked. Recommend you contact one\n" +
		"of the authors for assistance. See below for some additional information:\n" +
		"\n" +
		"(If you are going to submit a bug report, include the entirety of this message!)\n" +
		"widget v1.4.0 (https://example.com/widget) - panic start\n" +
		"     panic from thread [" + thread + "]:\n" +
		"         " + message + "\n" +
		"\n" +
		"Submit bug report to the authors: A, B, C\n" +
		"widget v1.4.0 (https://example.com/widget) - panic end\n"
}

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// executeCmd runs cmd with args and returns what it wrote to stdout and
// stderr.
func executeCmd(cmd *cobra.Command, args ...string) (string, string, error) {
	var out, errOut lockedBuffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func withDebugMode(t *testing.T, enabled bool) {
	t.Helper()
	orig := IsDebugMode()
	SetDebugMode(enabled)
	t.Cleanup(func() { SetDebugMode(orig) })
}

// lockedBuffer is a bytes.Buffer safe for concurrent handlers.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
