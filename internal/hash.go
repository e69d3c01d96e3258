package internal

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// FileHash computes the SHA256 hash of a file's content. The digest drives
// duplicate detection and is recorded in the audit log, so the algorithm
// must stay stable across runs.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
