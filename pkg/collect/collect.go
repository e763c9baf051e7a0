// Package collect walks a project tree and lists the files that go into a
// reference document.
package collect

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"refgen/pkg/pattern"
	"refgen/pkg/policy"

	"go.uber.org/zap"
)

// MarkdownExt is the only extension the docs collector accepts.
const MarkdownExt = ".md"

// Tree walks root and returns the forward-slash relative paths of all regular
// files the matcher admits, sorted lexicographically.
//
// Symbolic links are neither followed nor collected. Any error reading the
// tree aborts the walk.
func Tree(root string, m *policy.Matcher, logger *zap.Logger) ([]string, error) {
	logger.Debug("Starting file collection", zap.String("root", root))

	var files []string
	err := walk(root, logger, func(path, rel string, d fs.DirEntry) (bool, error) {
		if d.IsDir() {
			if m.SkipDir(rel) {
				logger.Debug("Skipping excluded directory", append(patternFields(m, rel), zap.String("path", rel))...)
				return false, nil
			}
			return true, nil
		}

		if v := m.Check(rel); v != policy.Included {
			fields := []zap.Field{zap.String("path", rel), zap.Stringer("reason", v)}
			if v == policy.ExcludedPattern {
				fields = append(fields, patternFields(m, rel)...)
			}
			logger.Debug("Skipping file", fields...)
			return false, nil
		}
		if m.SniffBinary() {
			binary, err := looksBinary(path)
			if err != nil {
				return false, fmt.Errorf("failed to inspect %s: %w", rel, err)
			}
			if binary {
				logger.Debug("Skipping binary file", zap.String("path", rel))
				return false, nil
			}
		}

		files = append(files, rel)
		return false, nil
	})
	if err != nil {
		logger.Error("Failed to collect files", zap.String("root", root), zap.Error(err))
		return nil, err
	}

	sort.Strings(files)
	logger.Debug("Completed file collection", zap.Int("files", len(files)))
	return files, nil
}

// patternFields describes the exclude pattern that removed rel, if any.
func patternFields(m *policy.Matcher, rel string) []zap.Field {
	p := m.ExcludedBy(rel)
	if p == nil {
		return nil
	}
	return []zap.Field{zap.String("pattern", p.Line), zap.Int("lineNo", p.LineNo)}
}

// Markdown walks docsRoot and returns every Markdown file not matched by
// exclude, sorted lexicographically. A matched directory excludes its whole
// subtree.
func Markdown(docsRoot string, exclude *pattern.Set, logger *zap.Logger) ([]string, error) {
	logger.Debug("Starting markdown collection", zap.String("root", docsRoot))

	var files []string
	err := walk(docsRoot, logger, func(_, rel string, d fs.DirEntry) (bool, error) {
		if exclude.Match(rel) {
			logger.Debug("Skipping excluded path", zap.String("path", rel))
			return false, nil
		}
		if d.IsDir() {
			return true, nil
		}
		if filepath.Ext(rel) == MarkdownExt {
			files = append(files, rel)
		}
		return false, nil
	})
	if err != nil {
		logger.Error("Failed to collect markdown files", zap.String("root", docsRoot), zap.Error(err))
		return nil, err
	}

	sort.Strings(files)
	logger.Debug("Completed markdown collection", zap.Int("files", len(files)))
	return files, nil
}

// visitFunc handles one directory or regular file below the walk root. For
// directories it returns whether to descend.
type visitFunc func(path, rel string, d fs.DirEntry) (bool, error)

func walk(root string, logger *zap.Logger, visit visitFunc) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		rel = pattern.Normalize(rel)

		if !d.IsDir() && !d.Type().IsRegular() {
			logger.Debug("Skipping non-regular file", zap.String("path", rel), zap.Stringer("mode", d.Type()))
			return nil
		}

		descend, err := visit(path, rel, d)
		if err != nil {
			return err
		}
		if d.IsDir() && !descend {
			return filepath.SkipDir
		}
		return nil
	})
}
