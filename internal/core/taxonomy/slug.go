package taxonomy

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9]+`)
	collapseDash  = regexp.MustCompile(`-{2,}`)
	diacriticForm = runes.Remove(runes.In(unicode.Mn))
)

// Fold lowercases a term and strips diacritics, so that "Türk Mutfağı" and
// "turk mutfagi" compare equal. The dotless ı does not decompose to a
// combining mark, so it is mapped by hand after lowering.
func Fold(s string) string {
	s = strings.ToLowerSpecial(unicode.TurkishCase, s)
	s = strings.ReplaceAll(s, "ı", "i")
	decomposed := norm.NFD.String(s)
	stripped := diacriticForm.String(decomposed)
	return norm.NFC.String(stripped)
}

// Slugify converts a display name into its canonical slug: folded, with
// every run of non-alphanumerics collapsed into a single hyphen.
func Slugify(s string) string {
	folded := Fold(s)
	slug := nonSlugChars.ReplaceAllString(folded, "-")
	slug = collapseDash.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
