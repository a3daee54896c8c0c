package errx

// RegistryEntry describes a registered error code.
type RegistryEntry struct {
	Code        string
	Description string
}

// Error codes follow a stable 5-digit scheme where the first two digits are the
// domain and the last three digits are reserved for subcodes.
const (
	CodeCLI      = "70000"
	CodeFault    = "71000"
	CodeHandler  = "72000"
	CodeMetadata = "73000"
	CodeManifest = "74000"
	CodeOutput   = "75000"
)

const (
	DescCLI      = "CLI/argument validation error"
	DescFault    = "Runtime fault"
	DescHandler  = "Fault handler error"
	DescMetadata = "Build metadata error"
	DescManifest = "Manifest error"
	DescOutput   = "Report output error"
)

var registryEntries = []RegistryEntry{
	{Code: CodeCLI, Description: DescCLI},
	{Code: CodeFault, Description: DescFault},
	{Code: CodeHandler, Description: DescHandler},
	{Code: CodeMetadata, Description: DescMetadata},
	{Code: CodeManifest, Description: DescManifest},
	{Code: CodeOutput, Description: DescOutput},
}

// ErrorRegistry returns the error registry in deterministic order.
func ErrorRegistry() []RegistryEntry {
	entries := make([]RegistryEntry, len(registryEntries))
	copy(entries, registryEntries)
	return entries
}
