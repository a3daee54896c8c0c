package buildinfo

import (
	"path"
	"runtime/debug"
	"strings"
)

// These variables are set via -ldflags at build time.
var (
	// Name is the program name shown in crash reports.
	Name = ""

	// Version is the program version, with or without a leading "v".
	Version = ""

	// Authors is a colon-separated author/contact list.
	Authors = ""

	// Homepage is the project or support URL.
	Homepage = ""
)

// Unknown substitutes any metadata field that could not be resolved.
const Unknown = "unknown"

// AuthorSeparator separates entries in Metadata.Authors.
const AuthorSeparator = ":"

// readBuildInfo is a test seam for debug.ReadBuildInfo.
var readBuildInfo = debug.ReadBuildInfo

// Metadata is the read-only program description consumed by the default
// fault handler.
type Metadata struct {
	Name    string
	Version string

	// Authors lists one author or contact per entry. Entries may contain
	// colons; only the injected Authors variable is colon-separated.
	Authors  []string
	Homepage string
}

// Injected returns the metadata set through -ldflags.
func Injected() Metadata {
	return Metadata{
		Name:     Name,
		Version:  Version,
		Authors:  SplitAuthors(Authors),
		Homepage: Homepage,
	}
}

// FromBuildInfo derives name and version from the main module the binary
// was built from. It returns zero metadata when build info is unavailable.
func FromBuildInfo() Metadata {
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return Metadata{}
	}
	var m Metadata
	if info.Main.Path != "" {
		m.Name = path.Base(info.Main.Path)
	} else if info.Path != "" {
		m.Name = path.Base(info.Path)
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		m.Version = v
	}
	return m
}

// Current returns injected metadata layered over build info, with every
// missing field set to Unknown.
func Current() Metadata {
	return FromBuildInfo().Merge(Injected()).WithDefaults()
}

// Merge returns m with every non-empty field of over applied on top.
func (m Metadata) Merge(over Metadata) Metadata {
	if v := strings.TrimSpace(over.Name); v != "" {
		m.Name = v
	}
	if v := strings.TrimSpace(over.Version); v != "" {
		m.Version = v
	}
	if names := cleanAuthors(over.Authors); len(names) > 0 {
		m.Authors = names
	}
	if v := strings.TrimSpace(over.Homepage); v != "" {
		m.Homepage = v
	}
	return m
}

// WithDefaults returns m with empty fields replaced by Unknown.
func (m Metadata) WithDefaults() Metadata {
	return Metadata{Name: Unknown, Version: Unknown, Authors: []string{Unknown}, Homepage: Unknown}.Merge(m)
}

// IsZero reports whether no field is set.
func (m Metadata) IsZero() bool {
	return m.Name == "" && m.Version == "" && len(m.Authors) == 0 && m.Homepage == ""
}

// DisplayVersion returns the version without a leading "v", so callers can
// prefix their own.
func (m Metadata) DisplayVersion() string {
	v := strings.TrimSpace(m.Version)
	if len(v) > 1 && v[0] == 'v' && v[1] >= '0' && v[1] <= '9' {
		return v[1:]
	}
	return v
}

// AuthorList renders Authors as a comma-separated list, so injected
// "A:B:C" becomes "A, B, C". Blank entries are dropped; an empty list
// renders as Unknown.
func (m Metadata) AuthorList() string {
	names := cleanAuthors(m.Authors)
	if len(names) == 0 {
		return Unknown
	}
	return strings.Join(names, ", ")
}

// SplitAuthors splits a colon-separated author list into trimmed names.
func SplitAuthors(authors string) []string {
	return cleanAuthors(strings.Split(authors, AuthorSeparator))
}

// cleanAuthors returns a trimmed copy of names without blank entries.
func cleanAuthors(names []string) []string {
	var out []string
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
