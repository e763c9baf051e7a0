package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileDefault(t *testing.T, extra ...string) *Matcher {
	t.Helper()
	m, err := Default().Compile(extra...)
	require.NoError(t, err)
	return m
}

func TestCheckDefaultPolicy(t *testing.T) {
	m := compileDefault(t)

	tests := []struct {
		path string
		want Verdict
	}{
		{"src/app.js", Included},
		{"src/nested/deep/util.ts", Included},
		{"scripts/build.mjs", Included},
		{"package.json", Included},
		{"vite.config.js", Included},
		{"tsconfig.json", Included},
		{"tsconfig.node.json", Included},
		{"src2/app.js", NotAllowed},
		{"srcfoo", NotAllowed},
		{"README.md", NotAllowed},
		{"config/tsconfig.json", NotAllowed},
		{"tsconfig.d.json/secret.txt", NotAllowed},
		{"src/app.test.js.map", BinaryExtension},
		{"src/logo.PNG", BinaryExtension},
		{"src/yarn.lock", ExcludedSuffix},
		{"a/b/node_modules/c/d.js", ExcludedDir},
		{"src/node_modules/x.js", ExcludedDir},
		{"dist/index.js", ExcludedDir},
		{"src/.cache/x.js", ExcludedDir},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Check(tt.path), "verdict %s", m.Check(tt.path))
		})
	}
}

func TestBinaryExtensionWinsOverIncludeDir(t *testing.T) {
	p := Default()
	p.BinaryExtensions = append(p.BinaryExtensions, "js")

	m, err := p.Compile()
	require.NoError(t, err)
	assert.Equal(t, BinaryExtension, m.Check("src/app.js"))
	assert.Equal(t, Included, m.Check("src/app.ts"))
}

func TestSkipDir(t *testing.T) {
	m := compileDefault(t, "/src/generated")

	assert.True(t, m.SkipDir("node_modules"))
	assert.True(t, m.SkipDir("a/b/node_modules"))
	assert.True(t, m.SkipDir(".git"))
	assert.True(t, m.SkipDir("src/generated"))
	assert.False(t, m.SkipDir("src"))
	assert.False(t, m.SkipDir("src/node_modules_docs"))
	assert.False(t, m.SkipDir("lib/generated"))
}

func TestExcludePatterns(t *testing.T) {
	p := Default()
	p.ExcludePatterns = []string{"*.snap", "!keep.snap"}

	m, err := p.Compile("/docs/full_code_reference.md")
	require.NoError(t, err)
	assert.Equal(t, ExcludedPattern, m.Check("tests/__snapshots__/a.snap"))
	assert.Equal(t, Included, m.Check("tests/keep.snap"))
	assert.Equal(t, ExcludedPattern, m.Check("docs/full_code_reference.md"))
}

func TestExcludedBy(t *testing.T) {
	p := Default()
	p.ExcludePatterns = []string{"*.snap", "!keep.snap"}

	m, err := p.Compile()
	require.NoError(t, err)

	excluded := m.ExcludedBy("tests/a.snap")
	require.NotNil(t, excluded)
	assert.Equal(t, "*.snap", excluded.Line)
	assert.Equal(t, 1, excluded.LineNo)
	assert.Nil(t, m.ExcludedBy("tests/keep.snap"))
	assert.Nil(t, m.ExcludedBy("src/app.js"))
}

func TestAddExcludeFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".refgenignore")
	require.NoError(t, os.WriteFile(file, []byte("src/vendor/\n"), 0o644))

	m := compileDefault(t)
	require.NoError(t, m.AddExcludeFile(file))
	assert.True(t, m.SkipDir("src/vendor"))
	assert.Equal(t, ExcludedPattern, m.Check("src/vendor/x.js"))
}

func TestCompileCopiesPolicy(t *testing.T) {
	p := Default()
	m, err := p.Compile()
	require.NoError(t, err)

	p.IncludeDirs[0] = "other"
	p.ExcludeSuffixes[0] = ".js"
	assert.Equal(t, Included, m.Check("src/app.js"))
}

func TestCompileErrors(t *testing.T) {
	p := Default()
	p.IncludeDirs = []string{"/"}
	_, err := p.Compile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "include_dirs")

	p = Default()
	p.IncludePatterns = []string{"/"}
	_, err = p.Compile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "include_patterns")
}

func TestNormalizedBinaryExtensions(t *testing.T) {
	p := Policy{IncludeDirs: []string{"src"}, BinaryExtensions: []string{"SVG"}}
	m, err := p.Compile()
	require.NoError(t, err)
	assert.Equal(t, BinaryExtension, m.Check("src/icon.svg"))
	assert.False(t, m.SniffBinary())
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "included", Included.String())
	assert.Equal(t, "not allow-listed", NotAllowed.String())
	assert.Equal(t, "Verdict(42)", Verdict(42).String())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "refgen.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
include_dirs: [cmd, pkg]
include_files: [go.mod]
sniff_binary: true
`), 0o644))

	p, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"cmd", "pkg"}, p.IncludeDirs)
	assert.Equal(t, []string{"go.mod"}, p.IncludeFiles)
	assert.True(t, p.SniffBinary)
	assert.Equal(t, Default().ExcludeDirs, p.ExcludeDirs)
	assert.Equal(t, Default().BinaryExtensions, p.BinaryExtensions)
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	file := filepath.Join(t.TempDir(), "refgen.yaml")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	p, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("include_dir: [src]\n"), 0o644))
	_, err = Load(unknown)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown.yaml")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("exclude_patterns: [\"/\"]\n"), 0o644))
	_, err = Load(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exclude_patterns")
}
