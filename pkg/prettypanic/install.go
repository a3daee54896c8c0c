package prettypanic

import (
	"sync/atomic"

	"pretty-panic/pkg/errx"
)

// Handler handles a fault and must not return. Acceptable ways out are
// terminating the process, blocking forever (Hang) or runtime.Goexit.
type Handler func(info *FaultInfo)

// installed is nil until the first Install.
var installed atomic.Pointer[Handler]

// Install makes handler the process-wide fault handler, replacing whatever
// was installed before. With no argument, or a nil handler, it installs the
// default report handler built from buildinfo.Current metadata. A supplied
// handler is installed as is.
//
// Passing more than one handler is a programming error and panics.
func Install(handler ...Handler) {
	if len(handler) > 1 {
		panic(errx.Handler("only one fault handler can be installed").
			WithContext("handlers", len(handler)))
	}
	var h Handler
	if len(handler) == 1 {
		h = handler[0]
	}
	if h == nil {
		h = NewDefaultHandler()
	}
	installed.Store(&h)
}

// InstallForBuild installs like Install when release is true and leaves the
// current handler untouched otherwise, so development builds keep Go's full
// panic output.
func InstallForBuild(release bool, handler ...Handler) {
	if release {
		Install(handler...)
	}
}

// Installed returns the active handler, or nil before the first Install.
func Installed() Handler {
	if h := installed.Load(); h != nil {
		return *h
	}
	return nil
}
