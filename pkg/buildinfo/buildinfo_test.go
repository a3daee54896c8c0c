package buildinfo

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ldflags holds raw values for the injected variables.
type ldflags struct {
	Name, Version, Authors, Homepage string
}

// stubInjected replaces the ldflags variables for the duration of a test.
func stubInjected(t *testing.T, v ldflags) {
	t.Helper()
	prev := ldflags{Name, Version, Authors, Homepage}
	Name, Version, Authors, Homepage = v.Name, v.Version, v.Authors, v.Homepage
	t.Cleanup(func() {
		Name, Version, Authors, Homepage = prev.Name, prev.Version, prev.Authors, prev.Homepage
	})
}

func stubBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	prev := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
	t.Cleanup(func() { readBuildInfo = prev })
}

func TestAuthorList(t *testing.T) {
	tests := []struct {
		authors string
		want    string
	}{
		{"A:B:C", "A, B, C"},
		{"Ada <ada@example.com>", "Ada <ada@example.com>"},
		{" A : :B ", "A, B"},
		{"", Unknown},
		{":::", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.authors, func(t *testing.T) {
			assert.Equal(t, tt.want, Metadata{Authors: SplitAuthors(tt.authors)}.AuthorList())
		})
	}
}

func TestAuthorListKeepsColonsInEntries(t *testing.T) {
	meta := Metadata{Authors: []string{"Ada <https://ada.dev>", " mailto:grace@example.com ", ""}}
	assert.Equal(t, "Ada <https://ada.dev>, mailto:grace@example.com", meta.AuthorList())
}

func TestInjectedSplitsAuthors(t *testing.T) {
	stubInjected(t, ldflags{Name: "widget", Authors: "A: B :"})
	assert.Equal(t, Metadata{Name: "widget", Authors: []string{"A", "B"}}, Injected())
}

func TestDisplayVersion(t *testing.T) {
	assert.Equal(t, "1.2.3", Metadata{Version: "v1.2.3"}.DisplayVersion())
	assert.Equal(t, "1.2.3", Metadata{Version: "1.2.3"}.DisplayVersion())
	assert.Equal(t, "very-new", Metadata{Version: "very-new"}.DisplayVersion())
	assert.Equal(t, "v", Metadata{Version: "v"}.DisplayVersion())
}

func TestMergeAndDefaults(t *testing.T) {
	t.Run("authors", func(t *testing.T) {
		base := Metadata{Authors: []string{"Injected"}}
		assert.Equal(t, []string{"Injected"}, base.Merge(Metadata{Authors: []string{" ", ""}}).Authors)
		assert.Equal(t, []string{"Ada", "Grace"}, base.Merge(Metadata{Authors: []string{" Ada", "Grace "}}).Authors)
	})

	base := Metadata{Name: "tool", Version: "0.1.0"}
	merged := base.Merge(Metadata{Version: " 0.2.0 ", Homepage: "https://example.com"})

	assert.Equal(t, Metadata{Name: "tool", Version: "0.2.0", Homepage: "https://example.com"}, merged)
	assert.Equal(t, Metadata{
		Name:     "tool",
		Version:  "0.2.0",
		Authors:  []string{Unknown},
		Homepage: "https://example.com",
	}, merged.WithDefaults())
}

func TestFromBuildInfo(t *testing.T) {
	t.Run("main module", func(t *testing.T) {
		stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Path: "example.com/acme/widget", Version: "v1.4.0"}}, true)
		assert.Equal(t, Metadata{Name: "widget", Version: "v1.4.0"}, FromBuildInfo())
	})
	t.Run("devel version is ignored", func(t *testing.T) {
		stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Path: "widget", Version: "(devel)"}}, true)
		assert.Equal(t, Metadata{Name: "widget"}, FromBuildInfo())
	})
	t.Run("unavailable", func(t *testing.T) {
		stubBuildInfo(t, nil, false)
		assert.True(t, FromBuildInfo().IsZero())
	})
}

func TestCurrent(t *testing.T) {
	t.Run("injected values win over build info", func(t *testing.T) {
		stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Path: "example.com/widget", Version: "v0.0.1"}}, true)
		stubInjected(t, ldflags{Version: "2.0.0", Authors: "A:B"})

		assert.Equal(t, Metadata{
			Name:     "widget",
			Version:  "2.0.0",
			Authors:  []string{"A", "B"},
			Homepage: Unknown,
		}, Current())
	})
	t.Run("nothing available", func(t *testing.T) {
		stubBuildInfo(t, nil, false)
		stubInjected(t, ldflags{})

		assert.Equal(t, Metadata{Name: Unknown, Version: Unknown, Authors: []string{Unknown}, Homepage: Unknown}, Current())
	})
}
