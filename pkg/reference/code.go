package reference

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"refgen/pkg/collect"
	"refgen/pkg/merge"
	"refgen/pkg/pattern"
	"refgen/pkg/policy"
	"refgen/pkg/render"

	"go.uber.org/zap"
)

// Code renders every file p admits under opts.Root into the code reference.
// Sections whose text is unchanged since the previous document are copied
// from it verbatim.
func Code(opts Options, p policy.Policy, logger *zap.Logger) (Result, error) {
	startTime := time.Now()

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get absolute path: %w", err)
	}
	out, err := opts.output(CodeOutput)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get absolute path: %w", err)
	}
	logger.Info("Starting code reference generation", zap.String("root", root), zap.String("output", out))

	// The document never lists itself, whatever the policy says.
	var extra []string
	if rel, ok := within(root, out); ok {
		extra = append(extra, "/"+rel)
	}
	m, err := p.Compile(extra...)
	if err != nil {
		logger.Error("Invalid inclusion policy", zap.Error(err))
		return Result{}, fmt.Errorf("invalid inclusion policy: %w", err)
	}
	if err := m.AddExcludeFile(filepath.Join(root, IgnoreFile)); err != nil {
		logger.Error("Failed to load ignore file", zap.Error(err))
		return Result{}, err
	}

	files, err := collect.Tree(root, m, logger)
	if err != nil {
		return Result{}, fmt.Errorf("failed to collect files: %w", err)
	}
	previous := merge.Load(out, logger)

	res := Result{Output: out, Files: len(files)}
	var b strings.Builder
	writeCodeHeader(&b, p.IncludeDirs, files)
	for _, f := range files {
		s, err := render.File(root, f)
		if err != nil {
			logger.Error("Failed to render file", zap.String("path", f), zap.Error(err))
			return res, err
		}
		text, reused := merge.Pick(previous, s)
		if reused {
			res.Reused++
		}
		b.WriteString(text)
	}

	if err := finish(out, []byte(b.String()), opts.Check, &res, logger); err != nil {
		return res, err
	}

	logger.Info("Code reference completed",
		zap.String("output", out),
		zap.Int("files", res.Files),
		zap.Int("reused", res.Reused),
		zap.Bool("changed", res.Changed),
		zap.Duration("elapsed", time.Since(startTime)),
	)
	return res, nil
}

func writeCodeHeader(b *strings.Builder, includeDirs, files []string) {
	b.WriteString("# Full Code Reference\n\n")
	if len(includeDirs) == 0 {
		b.WriteString("Includes key config files. Excludes node_modules and build outputs.\n\n")
	} else {
		fmt.Fprintf(b, "Includes source files from %s plus key config files. Excludes node_modules and build outputs.\n\n", joinList(includeDirs))
	}
	b.WriteString("Regenerate with `refgen code`.\n\n")
	b.WriteString("## File Index\n\n")
	for _, f := range files {
		fmt.Fprintf(b, "- %s\n", f)
	}
	b.WriteString("\n")
}

// joinList renders items as an English list with a serial comma.
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

// within returns target relative to root when target lies inside root.
func within(root, target string) (string, bool) {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", false
	}
	rel = pattern.Normalize(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}
