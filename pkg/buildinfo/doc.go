// Package buildinfo resolves the program metadata printed in crash reports.
//
// # Sources
//
// Four package-level variables are injected at build time via -ldflags -X:
//
//	go build -ldflags "-X pretty-panic/pkg/buildinfo.Name=mytool \
//	    -X pretty-panic/pkg/buildinfo.Version=1.4.0 \
//	    -X 'pretty-panic/pkg/buildinfo.Authors=Ada <ada@example.com>:Grace' \
//	    -X pretty-panic/pkg/buildinfo.Homepage=https://example.com/mytool"
//
// When a variable is not injected, [Current] falls back to the main module
// recorded by the Go toolchain (runtime/debug.ReadBuildInfo), and then to
// "unknown".
//
// A manifest file (YAML, JSON or JSON with comments) can override any field;
// see [LoadManifest] and [Resolve].
//
// The injected Authors variable is colon-separated. Manifests may list
// authors individually, which keeps entries such as "mailto:" contacts
// intact. [Metadata.AuthorList] renders either form.
package buildinfo
