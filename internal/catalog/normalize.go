package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nameRule maps a folded substring token to a canonical platform label.
type nameRule struct {
	token     string
	canonical string
}

// nameRules is evaluated top to bottom, first match wins. Order is the
// tie-breaker for names matching several tokens: brand tokens come before
// retailer/channel tokens, so "Paramount Plus Amazon Channel" canonicalizes
// to Paramount+ rather than to an Amazon storefront. Every canonical label
// must itself match its own rule (Canonicalize is idempotent); the tests
// enforce both properties.
var nameRules = []nameRule{
	{"netflix", "Netflix"},
	{"disney", "Disney+"},
	{"paramount", "Paramount+"},
	{"apple tv", "Apple TV+"},
	{"max amazon", "HBO Max"},
	{"hbo", "HBO Max"},
	{"canal", "Canal+"},
	{"ocs", "OCS"},
	{"crunchyroll", "Crunchyroll"},
	{"molotov", "Molotov TV"},
	{"france tv", "France TV"},
	{"france.tv", "France TV"},
	{"arte", "Arte"},
	{"youtube", "YouTube"},
	{"google play", "Google Play"},
	{"rakuten", "Rakuten TV"},
	{"prime", "Amazon Prime Video"},
	{"amazon", "Amazon Video"},
}

// Canonicalize maps an upstream platform display name to its canonical
// label, so regional, legacy and channel-bundle naming variants all merge
// into one user-facing identity. Unrecognized names pass through unchanged:
// an unknown platform stays selectable, it is just never merged.
func Canonicalize(rawName string) string {
	folded := Fold(rawName)
	for _, r := range nameRules {
		if strings.Contains(folded, r.token) {
			return r.canonical
		}
	}
	return strings.TrimSpace(rawName)
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases and strips diacritics, so "Canal+ Séries" matches "canal"
// and user input like "comédie" matches "Comedie". Returns the input
// lowercased when the transform fails on malformed UTF-8.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return strings.ToLower(strings.TrimSpace(out))
}
