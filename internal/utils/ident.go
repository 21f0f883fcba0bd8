package utils

import (
	"regexp"
	"strings"
)

var rxFirstDigits = regexp.MustCompile(`\d+`)

// IdentExtractor pulls the short output token (box/bin number and the like)
// out of a raw identifier field value.
type IdentExtractor struct {
	afterMarker *regexp.Regexp
}

// NewIdentExtractor compiles the marker pattern once. marker is matched as a
// literal, case-insensitively ("BOX 17", "box:17", "Box-17").
func NewIdentExtractor(marker string) *IdentExtractor {
	e := &IdentExtractor{}
	if m := strings.TrimSpace(marker); m != "" {
		e.afterMarker = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(m) + `\s*[:#\-]?\s*(\d+)`)
	}
	return e
}

// Extract: digits following the marker token, else the first run of digits,
// else the trimmed raw value.
func (e *IdentExtractor) Extract(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if e.afterMarker != nil {
		if m := e.afterMarker.FindStringSubmatch(s); m != nil {
			return m[1]
		}
	}
	if d := rxFirstDigits.FindString(s); d != "" {
		return d
	}
	return s
}
