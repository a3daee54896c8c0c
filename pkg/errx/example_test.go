package errx_test

import (
	"errors"
	"fmt"

	"pretty-panic/pkg/errx"
)

var errManifestNotFound = errors.New("manifest not found")

func Example() {
	readErr := errors.New("open pretty-panic.yaml: no such file or directory")

	err := errx.WrapManifest("failed to load crash report manifest", readErr).
		WithBase(errManifestNotFound).
		WithContext("path", "pretty-panic.yaml")

	if errors.Is(err, errManifestNotFound) {
		fmt.Println("manifest missing")
	}

	fmt.Println(errx.UserString(err))
	// Output:
	// manifest missing
	// failed to load crash report manifest
}
