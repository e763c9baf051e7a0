package merge

import (
	"os"
	"path/filepath"
	"testing"

	"refgen/pkg/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const previousDoc = "# Full Code Reference\n\n" +
	"## File Index\n\n" +
	"- package.json\n" +
	"- src/app.js\n" +
	"\n" +
	"### package.json\n\n```json\n{}\n```\n\n" +
	"### src/app.js\n\n```js\nconst x = 1;\n\n// ```\nconsole.log(x);\n```\n\n"

func TestParse(t *testing.T) {
	sections := Parse(previousDoc)
	require.Len(t, sections, 2)
	assert.Equal(t, "### package.json\n\n```json\n{}\n```\n\n", sections["package.json"])
	assert.Equal(t, "### src/app.js\n\n```js\nconst x = 1;\n\n// ```\nconsole.log(x);\n```\n\n", sections["src/app.js"])
}

func TestParseStopsAtFirstClosingFence(t *testing.T) {
	doc := "### docs/guide.md\n\n```md\nintro\n```\n\nafter\n```\n\n"
	sections := Parse(doc)
	assert.Equal(t, "### docs/guide.md\n\n```md\nintro\n```\n\n", sections["docs/guide.md"])
}

func TestParseIgnoresMalformedInput(t *testing.T) {
	for _, doc := range []string{
		"",
		"not a reference at all",
		"### src/a.js\n```js\nno blank line\n```\n\n",
		"### src/a.js\n\n```js\nunterminated",
		"### src/a.js\n\n```js\nno trailing blank\n```",
		"  ### src/a.js\n\n```js\nindented header\n```\n\n",
	} {
		assert.Empty(t, Parse(doc), "%q", doc)
	}
}

func TestParseDuplicateLastWins(t *testing.T) {
	doc := "### a.js\n\n```js\n1\n```\n\n### a.js\n\n```js\n2\n```\n\n"
	assert.Equal(t, "### a.js\n\n```js\n2\n```\n\n", Parse(doc)["a.js"])
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	logger := zaptest.NewLogger(t)

	assert.Empty(t, Load(filepath.Join(dir, "missing.md"), logger))
	assert.Empty(t, Load(dir, logger))

	file := filepath.Join(dir, "full_code_reference.md")
	require.NoError(t, os.WriteFile(file, []byte(previousDoc), 0o644))
	assert.Len(t, Load(file, logger), 2)
}

func TestPickReusesEquivalentSection(t *testing.T) {
	fresh := render.Block("src/app.js", "const x = 1;")
	previous := map[string]string{
		"src/app.js": fresh.Text + "\n\n",
	}

	text, reused := Pick(previous, fresh)
	assert.True(t, reused)
	assert.Equal(t, previous["src/app.js"], text)
}

func TestPickReplacesChangedSection(t *testing.T) {
	previous := Parse(render.Block("src/app.js", "const x = 1;").Text)
	fresh := render.Block("src/app.js", "const x = 2;")

	text, reused := Pick(previous, fresh)
	assert.False(t, reused)
	assert.Equal(t, fresh.Text, text)
}

func TestPickWithoutPrevious(t *testing.T) {
	fresh := render.Block("src/new.js", "export {}")
	text, reused := Pick(map[string]string{}, fresh)
	assert.False(t, reused)
	assert.Equal(t, fresh.Text, text)

	text, reused = Pick(nil, fresh)
	assert.False(t, reused)
	assert.Equal(t, fresh.Text, text)
}
