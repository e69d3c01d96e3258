package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveCollision picks the final non-colliding path for a desired target.
// If the desired path is free it is returned unchanged; otherwise the
// _DUP / _DUP_1 / _DUP_2 ... suffixes are tried until one is free.
//
// True duplicates and mere name clashes share the same suffix vocabulary;
// isDuplicate only ends up in the audit log, never in the filename shape.
func ResolveCollision(desired string, isDuplicate bool) string {
	if _, err := os.Stat(desired); os.IsNotExist(err) {
		return desired
	}

	dir := filepath.Dir(desired)
	ext := filepath.Ext(desired)
	stem := strings.TrimSuffix(filepath.Base(desired), ext)

	try := filepath.Join(dir, fmt.Sprintf("%s_DUP%s", stem, ext))
	for count := 1; ; count++ {
		if _, err := os.Stat(try); os.IsNotExist(err) {
			return try
		}
		try = filepath.Join(dir, fmt.Sprintf("%s_DUP_%d%s", stem, count, ext))
	}
}
