package buildinfo

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"pretty-panic/pkg/errx"
)

// ManifestEnv names the environment variable that points at a manifest file.
const ManifestEnv = "PRETTY_PANIC_MANIFEST"

// Sentinel errors returned (as errx.Error bases) by LoadManifest.
var (
	ErrManifestNotFound   = errors.New("manifest not found")
	ErrManifestUnreadable = errors.New("manifest unreadable")
	ErrManifestFormat     = errors.New("unsupported manifest format")
	ErrManifestInvalid    = errors.New("invalid manifest")
	ErrManifestEmpty      = errors.New("manifest declares no metadata")
)

var errUnsupportedAuthors = errors.New("authors must be a string or a list of strings")

var manifestFormatsByExt = map[string]string{
	".yaml":  "yaml",
	".yml":   "yaml",
	".json":  "json",
	".jsonc": "json",
}

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// manifest mirrors the on-disk layout:
//
//	name: mytool
//	version: 1.4.0
//	authors: [Ada, Grace]   # or "Ada:Grace"
//	homepage: https://example.com/mytool
type manifest struct {
	Name     string     `yaml:"name" json:"name"`
	Version  string     `yaml:"version" json:"version"`
	Authors  authorList `yaml:"authors" json:"authors"`
	Homepage string     `yaml:"homepage" json:"homepage"`
}

type authorList []string

func (a *authorList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*a = SplitAuthors(node.Value)
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		*a = names
		return nil
	}
	return errUnsupportedAuthors
}

func (a *authorList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = SplitAuthors(single)
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return errUnsupportedAuthors
	}
	*a = names
	return nil
}

func (m manifest) metadata() Metadata {
	return Metadata{
		Name:     strings.TrimSpace(m.Name),
		Version:  strings.TrimSpace(m.Version),
		Authors:  cleanAuthors(m.Authors),
		Homepage: strings.TrimSpace(m.Homepage),
	}
}

// LoadManifest reads metadata from a YAML (.yaml, .yml) or JSON (.json,
// .jsonc, comments and trailing commas allowed) file. Fields left out of the
// manifest are returned empty so the result can be merged over other sources.
func LoadManifest(path string) (Metadata, error) {
	format, ok := manifestFormatsByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return Metadata{}, manifestError(ErrManifestFormat, path, nil)
	}

	data, err := readFile(path)
	if err != nil {
		base := ErrManifestUnreadable
		if errors.Is(err, os.ErrNotExist) {
			base = ErrManifestNotFound
		}
		return Metadata{}, manifestError(base, path, err)
	}

	var m manifest
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, &m)
	case "json":
		err = json.Unmarshal(jsonc.ToJSON(data), &m)
	}
	if err != nil {
		return Metadata{}, manifestError(ErrManifestInvalid, path, err)
	}

	meta := m.metadata()
	if meta.IsZero() {
		return Metadata{}, manifestError(ErrManifestEmpty, path, nil)
	}
	return meta, nil
}

// Resolve returns Current metadata with the manifest at path layered on top.
// An empty path resolves without a manifest.
func Resolve(path string) (Metadata, error) {
	base := FromBuildInfo().Merge(Injected())
	if path == "" {
		return base.WithDefaults(), nil
	}
	fromManifest, err := LoadManifest(path)
	if err != nil {
		return Metadata{}, err
	}
	return base.Merge(fromManifest).WithDefaults(), nil
}

func manifestError(base error, path string, cause error) error {
	return errx.WrapManifest(base.Error(), cause).
		WithBase(base).
		WithContext("path", path)
}
