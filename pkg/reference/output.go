package reference

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"
)

// finish compares content with the document at out and either writes it or,
// in check mode, reports the difference.
func finish(out string, content []byte, check bool, res *Result, logger *zap.Logger) error {
	existing, err := os.ReadFile(out)
	if err != nil && !os.IsNotExist(err) {
		logger.Error("Failed to read existing document", zap.String("path", out), zap.Error(err))
		return fmt.Errorf("failed to read %s: %w", out, err)
	}
	res.Changed = err != nil || !bytes.Equal(existing, content)

	if check {
		if !res.Changed {
			logger.Info("Reference document is up to date", zap.String("path", out))
			return nil
		}
		res.Diff, err = unifiedDiff(out, string(existing), string(content))
		if err != nil {
			return fmt.Errorf("failed to diff %s: %w", out, err)
		}
		return fmt.Errorf("%w: %s", ErrStale, out)
	}

	if err := writeAtomic(out, content, 0o644); err != nil {
		logger.Error("Failed to write document", zap.String("path", out), zap.Error(err))
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	logger.Debug("Wrote document", zap.String("path", out), zap.Int("bytes", len(content)))
	return nil
}

// writeAtomic replaces path with data through a temporary file in the same
// directory, so readers never observe a partial document.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".refgen-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

func unifiedDiff(path, current, fresh string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(current),
		B:        difflib.SplitLines(fresh),
		FromFile: path + " (on disk)",
		ToFile:   path + " (generated)",
		Context:  3,
	})
}
