package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify converts a title to a URL-safe slug: lowercase ASCII letters and
// digits separated by single hyphens. Accents are folded ("Café" -> "cafe"),
// other non-word characters are dropped, and runs of whitespace, underscores
// and hyphens collapse to one hyphen. Slugify(Slugify(s)) == Slugify(s).
func Slugify(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	sep := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if sep && b.Len() > 0 {
				b.WriteByte('-')
			}
			sep = false
			b.WriteRune(r)
		case r == '-', r == '_', unicode.IsSpace(r):
			sep = true
		}
	}
	return b.String()
}

// titleFromID turns "cloud-native" into "Cloud Native" for records that
// omit a display name.
func titleFromID(id string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(id)
	return cases.Title(language.English).String(words)
}
