package internal

import (
	"path/filepath"
	"strings"
	"unicode"
)

// cleanFilenameText strips characters that cannot appear in a filename and
// trims the trailing dots/spaces Windows refuses.
func cleanFilenameText(text string) string {
	var b strings.Builder
	for _, ch := range text {
		if unicode.IsPrint(ch) {
			b.WriteRune(ch)
		}
	}
	s := illegalChars.ReplaceAllString(b.String(), "")
	return strings.Trim(s, " .")
}

// ResolveName derives the target filename for a file from its embedded
// metadata, preferring a human-assigned title over the on-disk name.
// Candidates in order: image description, document name, Windows title.
// Falls back to the original basename when nothing usable is present.
func ResolveName(path string, kind FileKind, reader TagReader) string {
	original := filepath.Base(path)
	if kind != KindImage {
		return original
	}

	tags, err := reader.ReadTags(path)
	if err != nil {
		return original
	}

	ext := filepath.Ext(path)
	for _, candidate := range []string{tags.Description, tags.DocumentName, tags.WindowsName} {
		name := cleanFilenameText(candidate)
		if name == "" {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext)) {
			name += ext
		}
		return name
	}
	return original
}
