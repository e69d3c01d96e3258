package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MakeDatePath builds and creates the target directory for a file:
// base/device/[category/]YYYY/MM/DD. Creating an already existing
// directory is not an error, so re-runs are safe.
func MakeDatePath(baseDir, device string, date time.Time, category string) (string, error) {
	parts := []string{baseDir, device}
	if category != "" {
		parts = append(parts, category)
	}
	parts = append(parts,
		fmt.Sprintf("%04d", date.Year()),
		fmt.Sprintf("%02d", date.Month()),
		fmt.Sprintf("%02d", date.Day()))

	target := filepath.Join(parts...)
	if err := os.MkdirAll(target, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", target, err)
	}
	return target, nil
}
