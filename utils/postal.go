package utils

import (
	"regexp"
	"strings"
)

var (
	canadianPostalRegex = regexp.MustCompile(`^[A-Z][0-9][A-Z][0-9][A-Z][0-9]$`)
	usZip5Regex         = regexp.MustCompile(`^[0-9]{5}$`)
	usZip9Regex         = regexp.MustCompile(`^[0-9]{9}$`)
)

// NormalizePostalCode canonicalizes Canadian and US postal codes.
// Strips non-alphanumerics, upper-cases, and reformats:
//
//	"k1a0a9"    -> "K1A 0A9"
//	"90210"     -> "90210"
//	"902101234" -> "90210-1234"
//
// Anything that does not match those exact shapes passes through trimmed but
// otherwise unchanged.
func NormalizePostalCode(raw string) string {
	trimmed := strings.TrimSpace(raw)

	var b strings.Builder
	for _, r := range strings.ToUpper(trimmed) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	switch {
	case canadianPostalRegex.MatchString(cleaned):
		return cleaned[:3] + " " + cleaned[3:]
	case usZip5Regex.MatchString(cleaned):
		return cleaned
	case usZip9Regex.MatchString(cleaned):
		return cleaned[:5] + "-" + cleaned[5:]
	default:
		return trimmed
	}
}
