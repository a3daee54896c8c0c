package prettypanic

import (
	"github.com/go-logr/logr"

	"pretty-panic/pkg/errx"
)

// logFault logs err with its errx code, category, message, context and cause
// flattened into "fault.*" keys. Non-errx errors are logged as is.
func logFault(logger logr.Logger, err error, msg string, keysAndValues ...any) {
	if err == nil {
		return
	}
	kv := append(errx.KeysAndValues(err, "fault"), keysAndValues...)
	logger.Error(err, msg, kv...)
}
