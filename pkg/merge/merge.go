// Package merge reuses sections of a previously generated code reference so
// that regenerating an unchanged file reproduces its old bytes exactly.
package merge

import (
	"os"
	"regexp"
	"strings"

	"refgen/pkg/render"

	"go.uber.org/zap"
)

// sectionPattern matches one rendered section: a `### <path>` header, a blank
// line, a fenced block and the blank line that terminates it.
var sectionPattern = regexp.MustCompile("(?m)^### (.+?)\n\n```[\\s\\S]*?\n```\n\n")

// Parse extracts path → section text from a generated document. Text that
// does not look like a section is ignored. When a path appears twice the last
// occurrence wins.
func Parse(doc string) map[string]string {
	sections := make(map[string]string)
	for _, m := range sectionPattern.FindAllStringSubmatch(doc, -1) {
		sections[m[1]] = m[0]
	}
	return sections
}

// Load parses the document at filePath. Any failure yields an empty map.
func Load(filePath string, logger *zap.Logger) map[string]string {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No previous document", zap.String("path", filePath))
		} else {
			logger.Warn("Failed to read previous document", zap.String("path", filePath), zap.Error(err))
		}
		return map[string]string{}
	}

	sections := Parse(string(data))
	logger.Debug("Loaded previous sections", zap.String("path", filePath), zap.Int("sections", len(sections)))
	return sections
}

// Pick returns the previous text for s when it is equal to the fresh text
// after trimming surrounding whitespace, and the fresh text otherwise.
func Pick(previous map[string]string, s render.Section) (string, bool) {
	if prev, ok := previous[s.Path]; ok && strings.TrimSpace(prev) == strings.TrimSpace(s.Text) {
		return prev, true
	}
	return s.Text, false
}
