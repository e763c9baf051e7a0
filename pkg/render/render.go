// Package render turns project files into fenced Markdown sections.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"refgen/pkg/pattern"
)

// DefaultFenceTag is used for files without an extension.
const DefaultFenceTag = "text"

// fenceOverrides maps extensions whose lowercased form is not a useful fence
// tag.
var fenceOverrides = map[string]string{
	"mjs": "js",
	"cjs": "js",
	"yml": "yaml",
}

// Section is one rendered file: a `### <path>` header and a fenced block.
type Section struct {
	Path string // Forward-slash path relative to the project root.
	Text string // Full section text including the trailing blank line.
}

// FenceTag returns the code fence language for a file path.
func FenceTag(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(pattern.Ext(path), "."))
	if tag, ok := fenceOverrides[ext]; ok {
		return tag
	}
	if ext == "" {
		return DefaultFenceTag
	}
	return ext
}

// Block builds the section for path from its raw content. Trailing whitespace
// of the content is dropped.
func Block(path, content string) Section {
	content = strings.TrimRightFunc(content, unicode.IsSpace)
	return Section{
		Path: path,
		Text: fmt.Sprintf("### %s\n\n```%s\n%s\n```\n\n", path, FenceTag(path), content),
	}
}

// File reads root/rel and renders it.
func File(root, rel string) (Section, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return Section{}, fmt.Errorf("error reading file %s: %w", rel, err)
	}
	return Block(rel, string(data)), nil
}
