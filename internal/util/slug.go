package util

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"strings"
	"unicode"
)

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CitySlug normalizes a user-supplied city name into the url-safe form the
// marketplaces use: lowercase ascii, accents stripped, spaces to hyphens
// ("Nowy Sącz" -> "nowy-sacz").
func CitySlug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	// ł has no combining-mark decomposition, NFD leaves it alone
	s = strings.ReplaceAll(s, "ł", "l")

	stripped, _, err := transform.String(accentStripper, s)
	if err == nil {
		s = stripped
	}

	return strings.Join(strings.Fields(s), "-")
}
