package prettypanic

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"pretty-panic/pkg/errx"
)

// UnknownThread is reported when a fault carries no goroutine name.
const UnknownThread = "unknown"

const unprintableValue = "<unprintable panic value>"

// Location is the source position a panic was raised from.
type Location struct {
	File     string
	Line     int
	Function string
}

func (l *Location) String() string {
	if l == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// FaultInfo describes one fault. It is built by the dispatcher and handed to
// exactly one handler invocation.
type FaultInfo struct {
	// Message is the human-readable form of Value.
	Message string

	// Value is the raw value passed to panic.
	Value any

	// Location is nil when the panic site could not be determined.
	Location *Location

	// Thread is the name the goroutine was started under, empty if none.
	Thread string

	// Stack is the goroutine stack at dispatch time.
	Stack []byte
}

// ThreadName returns Thread, or UnknownThread when it is blank.
func (f *FaultInfo) ThreadName() string {
	if f == nil || strings.TrimSpace(f.Thread) == "" {
		return UnknownThread
	}
	return f.Thread
}

// Err returns the fault as an errx.Error in the fault category, carrying the
// thread and location as context. Error panic values become the cause.
func (f *FaultInfo) Err() error {
	if f == nil {
		return nil
	}
	var err *errx.Error
	if cause, ok := f.Value.(error); ok {
		err = errx.WrapFault(f.Message, cause)
	} else {
		err = errx.Fault(f.Message)
	}
	ctx := map[string]any{"thread": f.ThreadName()}
	if f.Location != nil {
		ctx["location"] = f.Location.String()
	}
	return err.WithContextMap(ctx)
}

// newFaultInfo must be called from the deferred dispatcher while the
// panicking frames are still on the stack.
func newFaultInfo(value any, thread string) *FaultInfo {
	return &FaultInfo{
		Message:  faultMessage(value),
		Value:    value,
		Location: panicLocation(),
		Thread:   thread,
		Stack:    debug.Stack(),
	}
}

func faultMessage(value any) (msg string) {
	defer func() {
		if recover() != nil {
			msg = unprintableValue
		}
	}()
	switch v := value.(type) {
	case string:
		return v
	case error:
		return errx.UserString(v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}

// panicLocation returns the first frame below runtime.gopanic that is not
// itself part of the runtime, which is where the panic was raised.
func panicLocation() *Location {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	seenPanic := false
	for {
		frame, more := frames.Next()
		switch {
		case frame.Function == "runtime.gopanic":
			seenPanic = true
		case seenPanic && !strings.HasPrefix(frame.Function, "runtime."):
			return &Location{File: frame.File, Line: frame.Line, Function: frame.Function}
		}
		if !more {
			return nil
		}
	}
}
