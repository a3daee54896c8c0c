package prettypanic

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/go-logr/logr"

	"pretty-panic/pkg/buildinfo"
)

// exitSentinel is panicked by the stubbed exitFunc so a test can observe the
// exit status and unwind the faulting goroutine as a real exit would.
type exitSentinel int

var testMetadata = buildinfo.Metadata{
	Name:     "widget",
	Version:  "1.4.0",
	Authors:  []string{"A", "B", "C"},
	Homepage: "https://example.com/widget",
}

// stubProcess replaces exitFunc and stderr and clears the installed handler.
// Everything is restored when the test ends.
func stubProcess(t *testing.T) *lockedBuffer {
	t.Helper()
	prevExit, prevStderr, prevHandler := exitFunc, stderr, installed.Load()

	buf := &lockedBuffer{}
	exitFunc = func(code int) { panic(exitSentinel(code)) }
	stderr = buf
	installed.Store(nil)

	t.Cleanup(func() {
		exitFunc, stderr = prevExit, prevStderr
		installed.Store(prevHandler)
	})
	return buf
}

type faultResult struct {
	// code is the stubbed exit status, -1 when the goroutine ended without exiting.
	code int
	// escaped is a panic value that left the dispatcher unhandled.
	escaped any
}

// triggerFault panics with value on a fresh goroutine armed with
// RecoverAs(thread) and waits for that goroutine to finish.
func triggerFault(thread string, value any) faultResult {
	done := make(chan faultResult, 1)
	go func() {
		res := faultResult{code: -1}
		defer func() { done <- res }()
		defer func() {
			r := recover()
			if code, ok := r.(exitSentinel); ok {
				res.code = int(code)
				return
			}
			res.escaped = r
		}()
		defer RecoverAs(thread)
		panic(value)
	}()
	return <-done
}

// lockedBuffer is a bytes.Buffer safe to read while handlers may still write.
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

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

// testLogger captures Error calls made through logr.
type testLogger struct {
	mu         sync.Mutex
	errorCalls []errorCall
}

type errorCall struct {
	err           error
	msg           string
	keysAndValues []any
}

func (l *testLogger) Init(logr.RuntimeInfo) {}
func (l *testLogger) Enabled(int) bool { return true }
func (l *testLogger) Info(int, string, ...any) {}
func (l *testLogger) WithValues(...any) logr.LogSink { return l }
func (l *testLogger) WithName(string) logr.LogSink { return l }
func (l *testLogger) Error(err error, msg string, kv ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorCalls = append(l.errorCalls, errorCall{err: err, msg: msg, keysAndValues: kv})
}

func (l *testLogger) calls() []errorCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]errorCall(nil), l.errorCalls...)
}

// getValue extracts a value from logr key/value pairs.
func getValue(kv []any, key string) any {
	for i := 0; i < len(kv)-1; i += 2 {
		if kv[i] == key {
			return kv[i+1]
		}
	}
	return nil
}
