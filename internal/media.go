package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileKind classifies a path by its extension against the configured sets.
type FileKind int

const (
	KindOther FileKind = iota
	KindImage
	KindVideo
)

// Classify returns the media kind of path based on its extension.
func Classify(path string, cfg *Config) FileKind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case cfg.IsImage(ext):
		return KindImage
	case cfg.IsVideo(ext):
		return KindVideo
	default:
		return KindOther
	}
}

// ScanMediaFiles scans the source directory recursively for media files based on extensions
func ScanMediaFiles(inputDir string, cfg *Config) ([]string, error) {
	var files []string
	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if Classify(path, cfg) != KindOther {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning files: %w", err)
	}
	return files, nil
}
