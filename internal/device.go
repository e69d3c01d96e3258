package internal

import (
	"regexp"
	"strings"
)

// DefaultDevice is the bucket for files whose camera cannot be identified.
const DefaultDevice = "default"

var (
	illegalChars     = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
	underscoreRuns   = regexp.MustCompile(`_+`)
	defaultSpellings = map[string]bool{
		"":                true,
		"default":         true,
		"default_":        true,
		"_default":        true,
		"default_default": true,
	}
)

// CleanDeviceString normalizes a raw make/model value into a filesystem-safe
// path segment. Empty or meaningless values collapse to DefaultDevice.
func CleanDeviceString(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if ch >= 32 && ch <= 126 {
			b.WriteRune(ch)
		}
	}
	s = b.String()

	s = illegalChars.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, "_")
	s = underscoreRuns.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")

	if defaultSpellings[strings.ToLower(s)] {
		return DefaultDevice
	}
	return s
}

// DeviceIdentity builds the make_model segment for a file. If either side
// is unknown the whole identity collapses to DefaultDevice.
func DeviceIdentity(camMake, camModel string) string {
	m := CleanDeviceString(camMake)
	n := CleanDeviceString(camModel)
	if m == DefaultDevice || n == DefaultDevice {
		return DefaultDevice
	}
	return CleanDeviceString(strings.Trim(m+"_"+n, "_"))
}
