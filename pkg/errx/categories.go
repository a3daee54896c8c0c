package errx

// CreateByCode creates an Error using the provided code, description, and message.
// A nil cause yields the same result as New.
func CreateByCode(code, description, message string, cause error) *Error {
	if cause != nil {
		return Wrap(code, description, message, cause)
	}
	return New(code, description, message)
}

// FromSentinel creates an Error whose category is looked up from sentinel.
// Unknown sentinels fall back to the CLI category.
func FromSentinel(sentinel error, lookup func(error) (code, description string), message string, cause error) *Error {
	code, desc := lookup(sentinel)
	if code == "" {
		code = CodeCLI
		desc = DescCLI
	}
	return CreateByCode(code, desc, message, cause).WithBase(sentinel)
}

// CLI creates a CLI/argument validation error.
func CLI(message string) *Error {
	return New(CodeCLI, DescCLI, message)
}

// WrapCLI wraps a cause with a CLI/argument validation error.
func WrapCLI(message string, cause error) *Error {
	return Wrap(CodeCLI, DescCLI, message, cause)
}

// Fault creates an error describing a captured runtime fault.
// The fault handler uses it to log the panic in structured form.
func Fault(message string) *Error {
	return New(CodeFault, DescFault, message)
}

// WrapFault wraps a panic value that was itself an error.
func WrapFault(message string, cause error) *Error {
	return Wrap(CodeFault, DescFault, message, cause)
}

// Handler creates a fault handler contract error: more than one handler
// passed to Install, or a handler that returned instead of terminating.
func Handler(message string) *Error {
	return New(CodeHandler, DescHandler, message)
}

// WrapManifest wraps a cause with a manifest loading error.
func WrapManifest(message string, cause error) *Error {
	return Wrap(CodeManifest, DescManifest, message, cause)
}

// WrapOutput wraps a write failure on the report stream.
func WrapOutput(message string, cause error) *Error {
	return Wrap(CodeOutput, DescOutput, message, cause)
}
