// Package pattern compiles gitignore-style path globs and provides the path
// helpers shared by the collectors and the renderer.
//
// Supported syntax: `*` (any run inside one segment), `?` (one character),
// `**` (any number of segments), a leading `!` to negate, and a leading `/` to
// anchor the pattern at the root. Unanchored patterns match at any depth. A
// pattern matches the named path and everything beneath it, except in sets
// built with CompileExact.
package pattern

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// Pattern is a single compiled glob line.
type Pattern struct {
	re     *regexp.Regexp
	Negate bool   // Line started with '!'.
	Line   string // Original line.
	LineNo int    // 1-based position in the source.
}

// Set is an ordered list of patterns. Later patterns override earlier ones, so
// a negation can re-admit a path excluded above it.
type Set struct {
	patterns []*Pattern
	exact    bool
}

// Compile builds a Set from pattern lines. Blank lines and '#' comments are
// skipped.
func Compile(lines ...string) (*Set, error) {
	s := &Set{}
	if err := s.Add(lines...); err != nil {
		return nil, err
	}
	return s, nil
}

// CompileExact builds a Set whose patterns match a path only when the whole
// path matches, never the descendants of a matching directory.
func CompileExact(lines ...string) (*Set, error) {
	s := &Set{exact: true}
	if err := s.Add(lines...); err != nil {
		return nil, err
	}
	return s, nil
}

// Add appends pattern lines to the set.
func (s *Set) Add(lines ...string) error {
	base := len(s.patterns)
	for i, line := range lines {
		p, err := compileLine(line, base+i+1, s.exact)
		if err != nil {
			return err
		}
		if p != nil {
			s.patterns = append(s.patterns, p)
		}
	}
	return nil
}

// AddFile appends the patterns listed in an ignore file. A missing file is not
// an error.
func (s *Set) AddFile(filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read pattern file %s: %w", filePath, err)
	}
	if err := s.Add(strings.Split(string(content), "\n")...); err != nil {
		return fmt.Errorf("%s: %w", filePath, err)
	}
	return nil
}

// Len reports the number of compiled patterns.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Match reports whether path is matched by the set.
func (s *Set) Match(p string) bool {
	matched, _ := s.MatchWithPattern(p)
	return matched
}

// MatchWithPattern reports whether path is matched and returns the last
// pattern that decided it.
func (s *Set) MatchWithPattern(p string) (bool, *Pattern) {
	if s == nil {
		return false, nil
	}
	normalized := Normalize(p)

	matched := false
	var decided *Pattern
	for _, pat := range s.patterns {
		if pat.re.MatchString(normalized) {
			matched = !pat.Negate
			decided = pat
		}
	}
	return matched, decided
}

// Normalize converts OS separators to forward slashes and strips any leading
// "./".
func Normalize(p string) string {
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

// Ext returns the extension of the final path element including the dot.
// Leading dots of the name do not start an extension, so ".bashrc" has none.
func Ext(p string) string {
	name := path.Base(Normalize(p))
	trimmed := strings.TrimLeft(name, ".")
	if trimmed == "" {
		return ""
	}
	return path.Ext(trimmed)
}

func compileLine(line string, lineNo int, exact bool) (*Pattern, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, nil
	}

	negate := false
	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = trimmed[1:]
	}
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}

	anchored := strings.HasPrefix(trimmed, "/")
	body := strings.Trim(trimmed, "/")
	if body == "" {
		return nil, fmt.Errorf("line %d: empty pattern %q", lineNo, line)
	}

	expr := translate(body)
	if !exact {
		expr += `(/.*)?`
	}
	expr += "$"
	if anchored {
		expr = "^" + expr
	} else {
		expr = `^(.*/)?` + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("line %d: invalid pattern %q: %w", lineNo, line, err)
	}
	return &Pattern{re: re, Negate: negate, Line: line, LineNo: lineNo}, nil
}

// translate turns a glob body into a regular expression fragment.
func translate(glob string) string {
	var b strings.Builder
	for i := 0; i < len(glob); i++ {
		c := glob[i]
		switch {
		case c == '*' && i+1 < len(glob) && glob[i+1] == '*':
			i++
			if i+1 < len(glob) && glob[i+1] == '/' {
				i++
				b.WriteString(`(.*/)?`)
			} else {
				b.WriteString(`.*`)
			}
		case c == '*':
			b.WriteString(`[^/]*`)
		case c == '?':
			b.WriteString(`[^/]`)
		default:
			b.WriteString(regexp.QuoteMeta(glob[i : i+1]))
		}
	}
	return b.String()
}
