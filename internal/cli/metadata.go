package cli

// This file implements the "metadata" command, which shows the program
// metadata a crash report would carry and where each source stands.

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"pretty-panic/pkg/buildinfo"
)

// Output formats accepted by metadata --output.
const (
	outputTable = "table"
	outputYAML  = "yaml"
	outputJSON  = "json"
)

// metadataDocument is the serialized form of resolved metadata. Authors are
// listed individually so the document can be fed back in as a manifest.
type metadataDocument struct {
	Name     string   `json:"name" yaml:"name"`
	Version  string   `json:"version" yaml:"version"`
	Authors  []string `json:"authors" yaml:"authors"`
	Homepage string   `json:"homepage" yaml:"homepage"`
}

func newMetadataDocument(meta buildinfo.Metadata) metadataDocument {
	return metadataDocument{
		Name:     meta.Name,
		Version:  meta.Version,
		Authors:  meta.Authors,
		Homepage: meta.Homepage,
	}
}

// NewMetadataCmd returns the metadata subcommand.
func NewMetadataCmd(logger *zap.Logger) *cobra.Command {
	var metadata metadataFlags
	var output string
	var sources bool

	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Show the program metadata used in crash reports",
		Long: `Show the name, version, authors and homepage a crash report would carry.
Values come from the manifest, then -ldflags, then the Go build info; anything
still missing is shown as "unknown".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := metadata.resolve()
			if err != nil {
				logStructuredError(logger, err, "Failed to resolve metadata")
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			if sources {
				return printMetadataSources(p, metadata)
			}
			if err := printMetadata(p, meta, output); err != nil {
				logStructuredError(logger, err, "Failed to render metadata")
				return err
			}
			return nil
		},
	}

	addMetadataFlags(cmd.Flags(), &metadata)
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, yaml or json")
	cmd.Flags().BoolVar(&sources, "sources", false, "Show the value each metadata source provides")

	return cmd
}

func printMetadata(p *Printer, meta buildinfo.Metadata, output string) error {
	switch output {
	case outputTable:
		p.TableBoxed([][]string{
			{"Field", "Value"},
			{"Name", meta.Name},
			{"Version", meta.DisplayVersion()},
			{"Authors", meta.AuthorList()},
			{"Homepage", meta.Homepage},
		})
		return nil
	case outputYAML:
		data, err := yaml.Marshal(newMetadataDocument(meta))
		if err != nil {
			return wrapWithSentinel(ErrRenderMetadataFailed, err, "failed to render metadata as YAML")
		}
		p.Printf("%s", data)
		return nil
	case outputJSON:
		data, err := json.MarshalIndent(newMetadataDocument(meta), "", "  ")
		if err != nil {
			return wrapWithSentinel(ErrRenderMetadataFailed, err, "failed to render metadata as JSON")
		}
		p.Printf("%s\n", data)
		return nil
	}
	return wrapWithSentinelAndContext(ErrRenderMetadataFailed, nil,
		fmt.Sprintf("unknown output format %q", output), map[string]any{"flag": "--output"})
}

// printMetadataSources shows each source side by side, highest precedence
// first.
func printMetadataSources(p *Printer, metadata metadataFlags) error {
	var fromManifest buildinfo.Metadata
	if metadata.manifest != "" {
		m, err := buildinfo.LoadManifest(metadata.manifest)
		if err != nil {
			return wrapWithSentinelAndContext(ErrLoadManifestFailed, err,
				"failed to load metadata manifest", map[string]any{"manifest": metadata.manifest})
		}
		fromManifest = m
	}
	injected := buildinfo.Injected()
	built := buildinfo.FromBuildInfo()

	row := func(field string, get func(buildinfo.Metadata) string) []string {
		return []string{field, orDash(get(fromManifest)), orDash(get(injected)), orDash(get(built))}
	}
	p.Section("Metadata sources")
	p.Table([][]string{
		{"Field", "Manifest", "Ldflags", "Build info"},
		row("Name", func(m buildinfo.Metadata) string { return m.Name }),
		row("Version", func(m buildinfo.Metadata) string { return m.Version }),
		row("Authors", func(m buildinfo.Metadata) string { return strings.Join(m.Authors, ", ") }),
		row("Homepage", func(m buildinfo.Metadata) string { return m.Homepage }),
	})
	p.Info("Manifest values win over -ldflags, which win over build info")
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
