package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MoveLeftovers relocates every file still present in the source tree into
// a flat output location, using the same _DUP suffix scheme as the main
// pass but without hashing. Individual move failures are reported and
// skipped; the pass never aborts.
func MoveLeftovers(sourceDir, outputDir string) (int, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	moved := 0
	err := filepath.Walk(sourceDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		dest := ResolveCollision(filepath.Join(outputDir, info.Name()), false)
		if err := moveFile(path, dest); err != nil {
			fmt.Printf("Failed to move leftover file %s: %v\n", path, err)
			return nil
		}
		moved++
		return nil
	})
	return moved, err
}

// DeleteJunkFiles removes files from the source tree that match the
// configured exact-name list (case-insensitive), the thumbs.db sidecar
// prefix, or the .thm thumbnail suffix. Deletion failures are swallowed.
func DeleteJunkFiles(sourceDir string, junkNames []string) int {
	exact := make(map[string]bool, len(junkNames))
	for _, name := range junkNames {
		exact[strings.ToLower(name)] = true
	}

	deleted := 0
	filepath.Walk(sourceDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		lower := strings.ToLower(info.Name())
		if exact[lower] || strings.HasPrefix(lower, "thumbs.db") || strings.HasSuffix(lower, ".thm") {
			if os.Remove(path) == nil {
				deleted++
			}
		}
		return nil
	})
	return deleted
}

// RemoveEmptyDirs prunes empty directories under sourceDir, bottom-up,
// repeating until a full pass removes nothing. The root itself stays.
func RemoveEmptyDirs(sourceDir string) int {
	removed := 0
	for {
		removedThisPass := 0

		var dirs []string
		filepath.Walk(sourceDir, func(path string, info os.FileInfo, err error) error {
			if err == nil && info.IsDir() && path != sourceDir {
				dirs = append(dirs, path)
			}
			return nil
		})

		// Deepest first so a chain of empty directories collapses in
		// fewer passes.
		for i := len(dirs) - 1; i >= 0; i-- {
			entries, err := os.ReadDir(dirs[i])
			if err != nil || len(entries) > 0 {
				continue
			}
			if os.Remove(dirs[i]) == nil {
				removedThisPass++
			}
		}

		removed += removedThisPass
		if removedThisPass == 0 {
			return removed
		}
	}
}
