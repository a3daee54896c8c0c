package errx

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// UserString returns a user-safe error message.
// For an errx.Error anywhere in the chain it prefers the message, then the
// description, then the code; other errors use err.Error().
func UserString(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		switch {
		case e.message != "":
			return e.message
		case e.description != "":
			return e.description
		case e.code != "":
			return e.code
		}
	}
	return err.Error()
}

// IsError checks if the given error is an errx.Error.
func IsError(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	return errors.As(err, &e)
}

// DebugString returns a verbose error string with codes, context, and chain.
func DebugString(err error) string {
	if err == nil {
		return ""
	}
	var b strings.Builder
	for i, item := range flattenChain(err) {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d: %T: %s", i+1, item, item.Error())
		typed, ok := item.(*Error)
		if !ok {
			continue
		}
		if typed.code != "" {
			fmt.Fprintf(&b, " | code=%s", typed.code)
		}
		if typed.description != "" {
			fmt.Fprintf(&b, " | description=%q", typed.description)
		}
		if typed.message != "" {
			fmt.Fprintf(&b, " | message=%q", typed.message)
		}
		if len(typed.context) > 0 {
			b.WriteString(" | context={")
			b.WriteString(formatContext(typed.context))
			b.WriteByte('}')
		}
	}
	return b.String()
}

// KeysAndValues flattens an errx.Error into logr-style alternating
// key/value pairs, each key prefixed with prefix (e.g. "fault").
// Context keys are emitted in sorted order. Non-errx errors yield nil.
func KeysAndValues(err error, prefix string) []any {
	var e *Error
	if err == nil || !errors.As(err, &e) {
		return nil
	}
	kv := []any{
		prefix + ".code", e.code,
		prefix + ".category", e.description,
		prefix + ".message", e.message,
	}
	for _, key := range sortedKeys(e.context) {
		kv = append(kv, prefix+".context."+key, e.context[key])
	}
	if e.cause != nil {
		kv = append(kv, prefix+".cause", e.cause.Error())
	}
	return kv
}

func flattenChain(err error) []error {
	var out []error
	queue := []error{err}
	const maxEntries = 64
	for len(queue) > 0 && len(out) < maxEntries {
		current := queue[0]
		queue = queue[1:]
		if current == nil {
			continue
		}
		out = append(out, current)
		queue = append(queue, unwrapAll(current)...)
	}
	return out
}

func unwrapAll(err error) []error {
	switch unwrapped := err.(type) {
	case interface{ Unwrap() []error }:
		return unwrapped.Unwrap()
	case interface{ Unwrap() error }:
		if next := unwrapped.Unwrap(); next != nil {
			return []error{next}
		}
	}
	return nil
}

func sortedKeys(ctx map[string]any) []string {
	keys := make([]string, 0, len(ctx))
	for key := range ctx {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func formatContext(ctx map[string]any) string {
	parts := make([]string, 0, len(ctx))
	for _, key := range sortedKeys(ctx) {
		parts = append(parts, fmt.Sprintf("%s=%v", key, ctx[key]))
	}
	return strings.Join(parts, ", ")
}
