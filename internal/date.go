package internal

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CaptureRecord is the resolved capture identity of one file.
type CaptureRecord struct {
	Date   time.Time
	Device string
}

// Filename date patterns, tried strictly in order. The order is the only
// thing that disambiguates DD-MM-YYYY from YYYY-MM-DD digit runs.
var filenameDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?P<y>20\d{2})[-_.](?P<m>\d{2})[-_.](?P<d>\d{2})`),
	regexp.MustCompile(`(?P<d>\d{2})[-_.](?P<m>\d{2})[-_.](?P<y>20\d{2})`),
	regexp.MustCompile(`(?P<y>20\d{2})(?P<m>\d{2})(?P<d>\d{2})`),
	regexp.MustCompile(`(?P<d>\d{2})(?P<m>\d{2})(?P<y>20\d{2})`),
	regexp.MustCompile(`(IMG|VID)[-_]?(?P<y>20\d{2})(?P<m>\d{2})(?P<d>\d{2})`),
}

// ParseDateFromFilename extracts a calendar date embedded in a filename.
// Matches that parse to an impossible date (month 13, day 32) are skipped
// and the next pattern is tried.
func ParseDateFromFilename(filename string) (time.Time, bool) {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))

	for _, pattern := range filenameDatePatterns {
		match := pattern.FindStringSubmatch(name)
		if match == nil {
			continue
		}

		var y, m, d int
		for i, group := range pattern.SubexpNames() {
			switch group {
			case "y":
				y, _ = strconv.Atoi(match[i])
			case "m":
				m, _ = strconv.Atoi(match[i])
			case "d":
				d, _ = strconv.Atoi(match[i])
			}
		}

		if t, ok := validDate(y, m, d); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// validDate rejects values time.Date would silently normalize.
func validDate(y, m, d int) (time.Time, bool) {
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local)
	if t.Year() != y || t.Month() != time.Month(m) || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

// getFileModTime fallback to file modification time
func getFileModTime(path string) (time.Time, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return fi.ModTime(), nil
}

// ResolveCapture produces the best-effort (date, device) pair for a file.
// Priority: embedded tags (images only) > filename patterns > mtime.
// Metadata errors are swallowed; the chain just moves on.
func ResolveCapture(path string, kind FileKind, reader TagReader) (CaptureRecord, error) {
	device := DefaultDevice

	if kind == KindImage {
		if tags, err := reader.ReadTags(path); err == nil {
			device = DeviceIdentity(tags.Make, tags.Model)
			if !tags.CaptureDate.IsZero() {
				return CaptureRecord{Date: tags.CaptureDate, Device: device}, nil
			}
		}
	}

	if t, ok := ParseDateFromFilename(filepath.Base(path)); ok {
		return CaptureRecord{Date: t, Device: device}, nil
	}

	t, err := getFileModTime(path)
	if err != nil {
		return CaptureRecord{}, err
	}
	return CaptureRecord{Date: t, Device: device}, nil
}
