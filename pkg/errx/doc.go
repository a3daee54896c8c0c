// Package errx provides structured, code-based errors for pretty-panic and
// its command-line tooling.
//
// Each error carries:
//   - A stable 5-digit error code (e.g., "71000" for captured faults)
//   - A category description (e.g., "Runtime fault")
//   - A user-facing message
//   - Optional structured context (key-value pairs)
//   - Optional cause and base sentinel errors
//
// The first two digits of a code name the domain:
//   - 70xxx: CLI/argument validation errors
//   - 71xxx: Runtime faults captured by a fault handler
//   - 72xxx: Fault handler contract violations
//   - 73xxx: Build metadata errors
//   - 74xxx: Manifest loading errors
//   - 75xxx: Report output errors
//
// The last three digits are reserved for subcodes.
//
// Example usage:
//
//	err := errx.WrapManifest("failed to read manifest", readErr).
//		WithContext("path", "pretty-panic.yaml").
//		WithBase(sentinelErr)
//
//	if errors.Is(err, sentinelErr) {
//		// Handle specific error
//	}
//
//	fmt.Println(errx.UserString(err))  // User-friendly message
//	fmt.Println(errx.DebugString(err)) // Full debug details
package errx
