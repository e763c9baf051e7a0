package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFenceTag(t *testing.T) {
	tests := map[string]string{
		"src/app.js":          "js",
		"scripts/gen.mjs":     "js",
		"scripts/gen.cjs":     "js",
		"ci/deploy.yml":       "yaml",
		"ci/deploy.YML":       "yaml",
		"package.json":        "json",
		"src/App.TSX":         "tsx",
		"Makefile":            "text",
		"scripts/.env":        "text",
		"server/app.test.go":  "go",
		"src/styles/main.css": "css",
	}
	for path, want := range tests {
		assert.Equal(t, want, FenceTag(path), path)
	}
}

func TestBlock(t *testing.T) {
	s := Block("src/app.js", "const x = 1;\n\n  \t\n")
	assert.Equal(t, "src/app.js", s.Path)
	assert.Equal(t, "### src/app.js\n\n```js\nconst x = 1;\n```\n\n", s.Text)
}

func TestBlockKeepsLeadingWhitespace(t *testing.T) {
	s := Block("Makefile", "\n\tgo build\n")
	assert.Equal(t, "### Makefile\n\n```text\n\n\tgo build\n```\n\n", s.Text)
}

func TestFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "app.js"), []byte("const x = 1;\n"), 0o644))

	s, err := File(root, "src/app.js")
	require.NoError(t, err)
	assert.Equal(t, Block("src/app.js", "const x = 1;"), s)

	_, err = File(root, "src/gone.js")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "src/gone.js")
}
