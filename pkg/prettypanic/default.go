package prettypanic

import (
	"io"

	"github.com/go-logr/logr"

	"pretty-panic/pkg/buildinfo"
	"pretty-panic/pkg/errx"
)

// ExitCode is the process exit status after a default crash report.
const ExitCode = 101

// Option configures NewDefaultHandler.
type Option func(*defaultHandler)

// WithMetadata sets the program metadata shown in the report. Missing
// fields are shown as "unknown".
func WithMetadata(meta buildinfo.Metadata) Option {
	return func(h *defaultHandler) {
		h.meta = meta
	}
}

// WithOutput sets the report destination. Defaults to standard error.
func WithOutput(w io.Writer) Option {
	return func(h *defaultHandler) {
		h.out = w
	}
}

// WithLogger logs every fault once, in structured form, after the report has
// been written.
func WithLogger(logger logr.Logger) Option {
	return func(h *defaultHandler) {
		h.logger = logger
	}
}

// WithColor highlights the banner line using terminal colors.
func WithColor(enabled bool) Option {
	return func(h *defaultHandler) {
		h.color = enabled
	}
}

type defaultHandler struct {
	meta   buildinfo.Metadata
	out    io.Writer
	logger logr.Logger
	color  bool
}

// NewDefaultHandler builds the default report handler. Metadata is resolved
// here, once, and never re-read while handling a fault.
func NewDefaultHandler(opts ...Option) Handler {
	h := &defaultHandler{
		meta:   buildinfo.Current(),
		logger: logr.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.meta = h.meta.WithDefaults()
	return h.handle
}

// DefaultHandler reports info with buildinfo.Current metadata on standard
// error and exits with ExitCode.
func DefaultHandler(info *FaultInfo) {
	NewDefaultHandler()(info)
}

func (h *defaultHandler) handle(info *FaultInfo) {
	h.emit(info)
	exitFunc(ExitCode)
}

// emit never panics: a failure while rendering, writing or logging must not
// stop the process from exiting.
func (h *defaultHandler) emit(info *FaultInfo) {
	defer func() {
		_ = recover()
	}()

	report := renderReport(h.meta, info, h.color)
	out := h.out
	if out == nil {
		out = stderr
	}

	if err := writeLocked(out, report); err != nil {
		logFault(h.logger, errx.WrapOutput("failed to write crash report", err), "crash report not written")
	}
	if info != nil {
		logFault(h.logger, info.Err(), "fault", "fault.stack", string(info.Stack))
	}
}
