// Package policy defines which files of a project tree belong in the code
// reference.
package policy

import (
	"fmt"
	"path"
	"strings"

	"refgen/pkg/pattern"
)

// Policy is the declarative inclusion policy. Values are copied on Compile, so
// a Matcher never observes later edits to the slices.
type Policy struct {
	IncludeDirs      []string `yaml:"include_dirs"`      // Directory prefixes whose files are included.
	IncludeFiles     []string `yaml:"include_files"`     // Exact root-relative file paths to include.
	IncludePatterns  []string `yaml:"include_patterns"`  // Glob patterns of additional files to include.
	ExcludeDirs      []string `yaml:"exclude_dirs"`      // Directory names excluded at any depth.
	BinaryExtensions []string `yaml:"binary_extensions"` // Extensions never rendered, case-insensitive.
	ExcludeSuffixes  []string `yaml:"exclude_suffixes"`  // File name suffixes never rendered (lock files).
	ExcludePatterns  []string `yaml:"exclude_patterns"`  // Extra gitignore-style exclusions.
	SniffBinary      bool     `yaml:"sniff_binary"`      // Also drop files whose content looks binary.
}

// Default returns the built-in policy for a JavaScript project layout.
func Default() Policy {
	return Policy{
		IncludeDirs:     []string{"src", "server", "tests", "lib", "scripts"},
		IncludeFiles:    []string{"uno.config.js", "vite.config.js", "package.json"},
		IncludePatterns: []string{"/tsconfig*.json"},
		ExcludeDirs:     []string{"node_modules", ".vercel", "dist", "build", ".temp", ".cache", ".git"},
		BinaryExtensions: []string{
			".png", ".jpg", ".jpeg", ".gif", ".bmp", ".pdf", ".zip", ".ico",
			".ttf", ".otf", ".woff", ".woff2", ".map", ".jar", ".exe", ".dylib",
		},
		ExcludeSuffixes: []string{".lock"},
	}
}

// Verdict is the outcome of checking one path against a Matcher.
type Verdict int

const (
	Included Verdict = iota
	ExcludedDir
	BinaryExtension
	ExcludedSuffix
	ExcludedPattern
	NotAllowed
)

func (v Verdict) String() string {
	switch v {
	case Included:
		return "included"
	case ExcludedDir:
		return "excluded directory"
	case BinaryExtension:
		return "binary extension"
	case ExcludedSuffix:
		return "excluded suffix"
	case ExcludedPattern:
		return "excluded pattern"
	case NotAllowed:
		return "not allow-listed"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Matcher is a compiled, read-only Policy.
type Matcher struct {
	includeDirs     []string
	includeFiles    map[string]bool
	includePatterns *pattern.Set
	excludeDirs     map[string]bool
	binaryExts      map[string]bool
	excludeSuffixes []string
	excludePatterns *pattern.Set
	sniffBinary     bool
}

// Compile validates the policy and builds a Matcher. extraExcludes are
// appended to the policy's exclude patterns.
func (p Policy) Compile(extraExcludes ...string) (*Matcher, error) {
	m := &Matcher{
		includeFiles:    make(map[string]bool, len(p.IncludeFiles)),
		excludeDirs:     make(map[string]bool, len(p.ExcludeDirs)),
		binaryExts:      make(map[string]bool, len(p.BinaryExtensions)),
		excludeSuffixes: append([]string(nil), p.ExcludeSuffixes...),
		sniffBinary:     p.SniffBinary,
	}

	for _, raw := range p.IncludeDirs {
		d := strings.Trim(pattern.Normalize(raw), "/")
		if d == "" || d == "." {
			return nil, fmt.Errorf("include_dirs: invalid directory %q", raw)
		}
		m.includeDirs = append(m.includeDirs, d+"/")
	}
	for _, f := range p.IncludeFiles {
		m.includeFiles[path.Clean(pattern.Normalize(f))] = true
	}
	for _, d := range p.ExcludeDirs {
		m.excludeDirs[d] = true
	}
	for _, ext := range p.BinaryExtensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		m.binaryExts[ext] = true
	}

	var err error
	if m.includePatterns, err = pattern.CompileExact(p.IncludePatterns...); err != nil {
		return nil, fmt.Errorf("include_patterns: %w", err)
	}
	excludes := append(append([]string(nil), p.ExcludePatterns...), extraExcludes...)
	if m.excludePatterns, err = pattern.Compile(excludes...); err != nil {
		return nil, fmt.Errorf("exclude_patterns: %w", err)
	}
	return m, nil
}

// AddExcludeFile appends the patterns of an ignore file to the exclusions.
func (m *Matcher) AddExcludeFile(filePath string) error {
	return m.excludePatterns.AddFile(filePath)
}

// SniffBinary reports whether file contents must be checked for binary data.
func (m *Matcher) SniffBinary() bool {
	return m.sniffBinary
}

// SkipDir reports whether the directory at rel, and everything under it, is
// excluded.
func (m *Matcher) SkipDir(rel string) bool {
	rel = pattern.Normalize(rel)
	return m.hasExcludedSegment(rel) || m.excludePatterns.Match(rel)
}

// Check classifies the file at the root-relative path rel.
func (m *Matcher) Check(rel string) Verdict {
	rel = pattern.Normalize(rel)
	name := path.Base(rel)

	if m.hasExcludedSegment(rel) {
		return ExcludedDir
	}
	if m.binaryExts[strings.ToLower(pattern.Ext(name))] {
		return BinaryExtension
	}
	for _, suffix := range m.excludeSuffixes {
		if strings.HasSuffix(name, suffix) {
			return ExcludedSuffix
		}
	}
	if m.excludePatterns.Match(rel) {
		return ExcludedPattern
	}

	for _, dir := range m.includeDirs {
		if strings.HasPrefix(rel, dir) {
			return Included
		}
	}
	if m.includeFiles[rel] || m.includePatterns.Match(rel) {
		return Included
	}
	return NotAllowed
}

// ExcludedBy returns the exclude pattern that removes rel, or nil when no
// exclude pattern does.
func (m *Matcher) ExcludedBy(rel string) *pattern.Pattern {
	matched, p := m.excludePatterns.MatchWithPattern(rel)
	if !matched {
		return nil
	}
	return p
}

func (m *Matcher) hasExcludedSegment(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if m.excludeDirs[seg] {
			return true
		}
	}
	return false
}
