package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FormatUSD formats an integer amount in cents as a string like "$568.00".
// Two decimals always; amounts are only formatted at display/submission time.
func FormatUSD(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}

	dollars := cents / 100
	rem := cents % 100

	if neg {
		return fmt.Sprintf("-$%d.%02d", dollars, rem)
	}
	return fmt.Sprintf("$%d.%02d", dollars, rem)
}

// firstNumberRegex extracts the leading numeric token from a price string,
// tolerating forms like "$679", "129", "129/image" and "39.50".
var firstNumberRegex = regexp.MustCompile(`[0-9]+(\.[0-9]+)?`)

// ParsePriceCents converts a catalog price value into integer cents.
// Accepts a raw number (dollars) or a string containing a numeric token.
// Returns an error when no numeric token is present; callers decide whether
// that is fatal (catalog load) or a per-item pricing failure.
func ParsePriceCents(v interface{}) (int64, error) {
	switch p := v.(type) {
	case float64:
		return int64(p*100 + 0.5), nil
	case int:
		return int64(p) * 100, nil
	case int64:
		return p * 100, nil
	case string:
		tok := firstNumberRegex.FindString(p)
		if tok == "" {
			return 0, fmt.Errorf("no numeric token in price %q", p)
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid price %q: %w", p, err)
		}
		return int64(f*100 + 0.5), nil
	default:
		return 0, fmt.Errorf("unsupported price type %T", v)
	}
}

// DollarsFromCents returns the float dollar value used by the catalog feed.
func DollarsFromCents(cents int64) float64 {
	return float64(cents) / 100
}

// IsPerUnitSuffix reports whether a raw price string carries a per-image
// suffix ("129/image", "39/img"). The suffix is presentational only; pricing
// is always unit price times quantity.
func IsPerUnitSuffix(raw string) bool {
	lower := strings.ToLower(raw)
	return strings.Contains(lower, "/image") || strings.Contains(lower, "/img")
}
