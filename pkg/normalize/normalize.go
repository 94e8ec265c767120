// Package normalize provides the pure text normalization functions the
// record-linkage matcher keys on. Every function is total and idempotent:
// malformed text yields a best-effort result, never an error, and
// re-normalizing normalized output is a no-op.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespace = regexp.MustCompile(`\s+`)

	// Dutch postcode: four digits then two letters, optional space between.
	postcodePattern = regexp.MustCompile(`(\d{4})\s*([A-Za-z]{2})`)

	// House number token: 1-5 digits with up to three letters attached.
	// Known-lossy on irregular addresses; it can pick up digit runs that are
	// not the street number (see scan order note on AddressParts).
	housePattern = regexp.MustCompile(`\b(\d{1,5})\s*([A-Za-z]{0,3})\b`)

	houseNrPattern = regexp.MustCompile(`^(\d+)(.*)$`)
)

// Text produces the exact-match key for institution names: diacritics
// folded, lowercased, the "&" conjunction spelled out as "en", everything
// outside letters/digits/spaces stripped, whitespace collapsed.
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = fold(s)
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "&", " en ")
	s = nonAlnum.ReplaceAllString(s, " ")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// fold strips combining marks so that accented and unaccented spellings of
// the same name produce the same key.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// Postcode strips all whitespace and uppercases.
func Postcode(s string) string {
	return strings.ToUpper(whitespace.ReplaceAllString(s, ""))
}

// HouseNumber decomposes a combined house-number field into its numeric
// part and suffix. A value with no leading digits is returned whole as the
// number with an empty suffix; empty input yields both parts empty.
func HouseNumber(s string) (number, suffix string) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return "", ""
	}
	m := houseNrPattern.FindStringSubmatch(raw)
	if m == nil {
		return raw, ""
	}
	return m[1], strings.TrimSpace(m[2])
}

// AddressParts extracts a postcode and a house-number token from a legacy
// free-text address. Both searches are independent and best-effort; either
// may come back empty without affecting the other.
func AddressParts(address string) (postcode, house string) {
	raw := strings.TrimSpace(address)
	if raw == "" {
		return "", ""
	}
	if m := postcodePattern.FindStringSubmatch(raw); m != nil {
		postcode = strings.ToUpper(m[1] + m[2])
	}
	if m := housePattern.FindStringSubmatch(raw); m != nil {
		house = strings.TrimSpace(m[1] + m[2])
	}
	return postcode, house
}
