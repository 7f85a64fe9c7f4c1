package dupfiles

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Scanner walks a directory tree and collects regular file paths
type Scanner struct {
	Ignore *IgnoreManager // optional, nil scans everything
}

// NewScanner creates a scanner with an optional ignore manager
func NewScanner(ignore *IgnoreManager) *Scanner {
	return &Scanner{Ignore: ignore}
}

// ScanFiles returns every regular file below root with no ignore patterns
func ScanFiles(root string) ([]string, error) {
	return NewScanner(nil).Scan(root)
}

// Scan expands and resolves root, then returns the absolute paths of all
// regular files below it in traversal order. Symlinks (to files or
// directories) and non-regular files are never returned or followed. Any
// error reaching the root or reading a directory aborts the scan.
func (s *Scanner) Scan(root string) ([]string, error) {
	defer VerboseEnter()()

	absRoot, err := ExpandPath(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	// A symlinked root is walked as the directory it points to
	resolvedRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	info, err := os.Stat(resolvedRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to scan %s: not a directory", root)
	}

	var paths []string
	var skipped int

	walkErr := filepath.WalkDir(resolvedRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path != resolvedRoot && s.Ignore.HasPatterns() {
			rel, relErr := filepath.Rel(resolvedRoot, path)
			if relErr == nil {
				if d.IsDir() && (s.Ignore.ShouldIgnore(rel) || s.Ignore.ShouldIgnore(rel+"/")) {
					DebugLog(DebugScan, "pruning ignored directory %s", path)
					return filepath.SkipDir
				}
				if !d.IsDir() && s.Ignore.ShouldIgnore(rel) {
					DebugLog(DebugScan, "skipping ignored file %s", path)
					skipped++
					return nil
				}
			}
		}

		if d.IsDir() {
			return nil
		}

		if !d.Type().IsRegular() {
			DebugLog(DebugScan, "skipping non-regular entry %s (%s)", path, d.Type())
			skipped++
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, walkErr)
	}

	VerboseLog(2, "Scanned %s: %d files, %d skipped", resolvedRoot, len(paths), skipped)
	return paths, nil
}
