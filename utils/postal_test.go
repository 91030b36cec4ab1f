package utils

import "testing"

func TestNormalizePostalCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"canadian lowercase", "k1a0a9", "K1A 0A9"},
		{"canadian with space", "K1A 0A9", "K1A 0A9"},
		{"canadian with hyphen", "k1a-0a9", "K1A 0A9"},
		{"us zip5", "90210", "90210"},
		{"us zip9", "902101234", "90210-1234"},
		{"us zip9 already hyphenated", "90210-1234", "90210-1234"},
		{"unrecognized passes through", "not a code", "not a code"},
		{"whitespace trimmed", "  90210  ", "90210"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePostalCode(tt.input); got != tt.want {
				t.Errorf("NormalizePostalCode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
