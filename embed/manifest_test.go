package embed

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuxs/go.incdir/res"
)

const testManifest = `
package: assets
var: Static
output: static_gen.go
max_depth: 4
exclude:
  - '\.tmp$'
entries:
  - dir: data
    compression: gzip
  - file: README.md
  - file: dev.txt
    compression: passthrough
`

func TestLoadManifest(t *testing.T) {
	t.Parallel()

	fn := filepath.Join(t.TempDir(), "incdir.yaml")
	require.NoError(t, os.WriteFile(fn, []byte(testManifest), 0644))

	m, err := LoadManifest(fn)
	require.NoError(t, err)
	assert.Equal(t, "assets", m.Package)
	assert.Equal(t, "Static", m.Name)
	assert.Equal(t, "static_gen.go", m.Output)
	assert.Equal(t, 4, m.MaxDepth)
	assert.Equal(t, []ManifestEntry{
		{Dir: "data", Compression: res.Gzip},
		{File: "README.md", Compression: res.None},
		{File: "dev.txt", Compression: res.Passthrough},
	}, m.Entries)

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseManifest_Invalid(t *testing.T) {
	t.Parallel()

	for name, doc := range map[string]string{
		"bad compression": "entries:\n  - dir: data\n    compression: brotli\n",
		"both":            "entries:\n  - dir: data\n    file: a.txt\n",
		"neither":         "entries:\n  - compression: gzip\n",
		"not yaml":        "entries: [",
	} {
		_, err := ParseManifest([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestManifest_Apply(t *testing.T) {
	t.Parallel()

	m, err := ParseManifest([]byte(testManifest))
	require.NoError(t, err)

	root := t.TempDir()
	writeFile(t, root, "data/foo", "foo\n")
	writeFile(t, root, "data/scratch.tmp", "tmp")
	writeFile(t, root, "README.md", "# readme\n")

	cfg := Config{Root: root, OutDir: root, Name: "Override"}
	require.NoError(t, m.Configure(&cfg))
	assert.Equal(t, "Override", cfg.Name)
	assert.Equal(t, "assets", cfg.Package)
	assert.Equal(t, "static_gen.go", cfg.Output)
	require.NotNil(t, cfg.Matcher)

	g, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, m.Apply(g))

	files := g.Files()
	assert.Equal(t, []string{"README.md", "data/foo", "dev.txt"}, slices.Sorted(files.FileNames()))

	kind, _, err := files.GetRaw("data/foo")
	require.NoError(t, err)
	assert.Equal(t, res.Gzip, kind)

	got, err := files.Get("README.md")
	require.NoError(t, err)
	assert.Equal(t, "# readme\n", string(got))

	require.NoError(t, g.Build(""))
	assert.FileExists(t, filepath.Join(root, "static_gen.go"))
}

func TestManifest_ConfigureBadRegexp(t *testing.T) {
	t.Parallel()

	m := &Manifest{Include: []string{"("}}
	assert.Error(t, m.Configure(&Config{}))
}
