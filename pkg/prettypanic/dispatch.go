package prettypanic

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"runtime/pprof"
	"sync"
	"time"

	"pretty-panic/pkg/errx"
)

// AbortCode is the exit status used when a handler returns instead of
// terminating.
const AbortCode = 134

var (
	// exitFunc is a test seam for os.Exit.
	exitFunc = os.Exit

	// stderr receives default reports and abort notices.
	stderr io.Writer = os.Stderr

	// outputMu makes each report a single uninterrupted write.
	outputMu sync.Mutex
)

// Recover dispatches a panic on the current goroutine to the installed
// handler. It must be deferred directly:
//
//	defer prettypanic.Recover()
//
// The fault is reported with an unknown thread name; use RecoverAs to name it.
func Recover() {
	if r := recover(); r != nil {
		dispatch(r, "")
	}
}

// RecoverAs is Recover for a goroutine known as thread.
//
//	defer prettypanic.RecoverAs("main")
func RecoverAs(thread string) {
	if r := recover(); r != nil {
		dispatch(r, thread)
	}
}

// Run calls fn on the current goroutine with the dispatcher armed under the
// given thread name. The name is also attached as the "thread" pprof label.
func Run(thread string, fn func()) {
	defer RecoverAs(thread)
	defer debug.SetPanicOnFault(debug.SetPanicOnFault(true))
	pprof.Do(context.Background(), pprof.Labels("thread", thread), func(context.Context) {
		fn()
	})
}

// Go starts fn on a new goroutine named thread, with the dispatcher armed.
func Go(thread string, fn func()) {
	go Run(thread, fn)
}

// Hang blocks the calling goroutine forever. Custom handlers use it to halt
// without exiting, leaving the process up for inspection. Unlike select{},
// it does not trip the runtime deadlock detector when every goroutine hangs.
func Hang() {
	for {
		time.Sleep(time.Hour)
	}
}

func dispatch(value any, thread string) {
	info := newFaultInfo(value, thread)
	h := Installed()
	if h == nil {
		panic(value)
	}
	h(info)
	handlerReturned(info)
}

func handlerReturned(info *FaultInfo) {
	_ = writeLocked(stderr, fmt.Sprintf("fatal: %s; aborting\n", errReturned(info)))
	exitFunc(AbortCode)
}

// errReturned describes a handler that broke the divergence contract.
func errReturned(info *FaultInfo) *errx.Error {
	return errx.Handler(fmt.Sprintf("fault handler returned while handling %q on thread [%s]",
		info.Message, info.ThreadName())).
		WithContext("thread", info.ThreadName())
}

func writeLocked(w io.Writer, s string) error {
	outputMu.Lock()
	defer outputMu.Unlock()
	_, err := io.WriteString(w, s)
	return err
}
