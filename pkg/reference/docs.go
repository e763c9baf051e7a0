package reference

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"refgen/pkg/collect"
	"refgen/pkg/pattern"

	"go.uber.org/zap"
)

const docsHeader = "# Full Docs Reference\n\n" +
	"Aggregated markdown documentation for this repository.\n" +
	"Regenerate with `refgen docs`.\n"

// Docs concatenates every Markdown file under Root/docs into the docs
// reference. The example project and both generated documents are left out.
func Docs(opts Options, logger *zap.Logger) (Result, error) {
	startTime := time.Now()

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get absolute path: %w", err)
	}
	docsRoot := filepath.Join(root, DocsDir)
	out, err := opts.output(DocsOutput)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get absolute path: %w", err)
	}
	logger.Info("Starting docs reference generation", zap.String("root", docsRoot), zap.String("output", out))

	if !opts.Check {
		if err := os.MkdirAll(docsRoot, 0o755); err != nil {
			logger.Error("Failed to create docs directory", zap.String("path", docsRoot), zap.Error(err))
			return Result{}, fmt.Errorf("failed to create docs directory: %w", err)
		}
	}

	excludes := []string{"/" + ExampleProject, "/" + CodeOutput, "/" + DocsOutput}
	if rel, ok := within(docsRoot, out); ok {
		excludes = append(excludes, "/"+rel)
	}
	exclude, err := pattern.Compile(excludes...)
	if err != nil {
		return Result{}, err
	}

	var files []string
	if _, err := os.Stat(docsRoot); opts.Check && os.IsNotExist(err) {
		// Nothing to collect yet; the check still compares against the output.
		logger.Debug("Docs directory does not exist", zap.String("path", docsRoot))
	} else {
		files, err = collect.Markdown(docsRoot, exclude, logger)
		if err != nil {
			return Result{}, fmt.Errorf("failed to collect files: %w", err)
		}
	}

	res := Result{Output: out, Files: len(files)}
	var b strings.Builder
	b.WriteString(docsHeader)
	for _, f := range files {
		content, err := os.ReadFile(filepath.Join(docsRoot, filepath.FromSlash(f)))
		if err != nil {
			logger.Error("Failed to read file", zap.String("path", f), zap.Error(err))
			return res, fmt.Errorf("error reading file %s: %w", f, err)
		}
		fmt.Fprintf(&b, "\n---\n# File: %s\n\n%s\n", f, content)
	}

	if err := finish(out, []byte(b.String()), opts.Check, &res, logger); err != nil {
		return res, err
	}

	logger.Info("Docs reference completed",
		zap.String("output", out),
		zap.Int("files", res.Files),
		zap.Bool("changed", res.Changed),
		zap.Duration("elapsed", time.Since(startTime)),
	)
	return res, nil
}
