package smsprovider

import (
	"strings"
	"unicode"
)

// NormalizeNumber converts a raw phone number to E.164. Numbers already
// carrying a leading "+" pass through unchanged; a bare 10-digit number is
// assumed to be US/Canada and gets the "1" country code.
func NormalizeNumber(number string) string {
	if strings.HasPrefix(number, "+") {
		return number
	}

	var b strings.Builder
	for _, r := range number {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	if len(cleaned) == 10 {
		cleaned = "1" + cleaned
	}
	return "+" + cleaned
}
