// Package reference assembles the code and docs reference documents and
// writes them to disk.
package reference

import (
	"errors"
	"path/filepath"
)

// Fixed locations relative to the project root.
const (
	DocsDir        = "docs"
	CodeOutput     = "full_code_reference.md"
	DocsOutput     = "full_docs_reference.md"
	ExampleProject = "exampleproject"
	IgnoreFile     = ".refgenignore"
)

// ErrStale is returned in check mode when the document on disk differs from a
// fresh rendering.
var ErrStale = errors.New("reference document is out of date")

// Options configures one pipeline run.
type Options struct {
	Root   string // Project root; every input path is relative to it.
	Output string // Destination document. Empty selects the default under Root/docs.
	Check  bool   // Compare with the existing document instead of writing.
}

// Result summarizes a run.
type Result struct {
	Output  string // Absolute path of the document.
	Files   int    // Files included in the document.
	Reused  int    // Sections copied verbatim from the previous document.
	Changed bool   // Whether the new document differs from the one on disk.
	Diff    string // Unified diff of the change, set in check mode only.
}

func (o Options) output(name string) (string, error) {
	out := o.Output
	if out == "" {
		out = filepath.Join(o.Root, DocsDir, name)
	}
	return filepath.Abs(out)
}
