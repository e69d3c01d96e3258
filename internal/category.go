package internal

import (
	"path/filepath"
	"regexp"
	"strings"
)

// WhatsApp exports carry no metadata but follow a strict naming
// convention: IMG-20230101-WA0005.jpg.
var whatsappExportName = regexp.MustCompile(`(?i)^(img|vid)-\d{8}-wa\d+`)

// DetectCategory classifies a file into a special bucket (messaging app
// export, screenshot, scan) by keyword match against the filename and its
// containing directory. First keyword in config order wins; empty string
// means no special bucket.
func DetectCategory(path, containingDir string, keywords []string) string {
	name := strings.ToLower(filepath.Base(path))
	dir := strings.ToLower(containingDir)
	for _, word := range keywords {
		if strings.Contains(name, word) || strings.Contains(dir, word) {
			return word
		}
	}
	if whatsappExportName.MatchString(name) {
		return "whatsapp"
	}
	return ""
}
