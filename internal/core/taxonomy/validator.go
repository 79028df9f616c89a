package taxonomy

import "strings"

// Validate maps model-proposed term names onto the allowed vocabulary of a
// taxonomy and returns the matching canonical slugs, deduplicated, in
// proposal order. Terms that match nothing are dropped; the vocabulary is
// never extended.
//
// Matching, in order of preference per proposed term:
//  1. known synonym whose target slug is allowed
//  2. exact slug equality
//  3. substring containment in either direction, preferring the longest
//     allowed slug (first in vocabulary order on ties)
func Validate(taxonomy string, proposed []string, allowed []string) []string {
	allowedSlugs := make([]string, 0, len(allowed))
	allowedSet := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		slug := Slugify(name)
		if slug == "" || allowedSet[slug] {
			continue
		}
		allowedSlugs = append(allowedSlugs, slug)
		allowedSet[slug] = true
	}

	var out []string
	seen := make(map[string]bool)
	for _, p := range proposed {
		slug := match(taxonomy, Slugify(p), allowedSlugs, allowedSet)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, slug)
	}
	return out
}

// SelectOne validates the proposals and keeps only the first surviving
// slug. Recipe taxonomies assign a single term.
func SelectOne(taxonomy string, proposed []string, allowed []string) []string {
	matched := Validate(taxonomy, proposed, allowed)
	if len(matched) == 0 {
		return nil
	}
	return matched[:1]
}

func match(taxonomy, slug string, allowedSlugs []string, allowedSet map[string]bool) string {
	if slug == "" {
		return ""
	}
	// Synonyms outrank exact membership: a vocabulary that happens to
	// carry a synonym key still resolves to the canonical term.
	if target, ok := synonymFor(taxonomy, slug); ok && allowedSet[target] {
		return target
	}
	if allowedSet[slug] {
		return slug
	}

	// Containment either way catches partial proposals like "vejetaryen
	// yemek" or "italyan mutfagi" against "italyan". Among several hits the
	// longest allowed slug wins, so "dunya-mutfagi" beats "dunya".
	best := ""
	for _, candidate := range allowedSlugs {
		if strings.Contains(slug, candidate) || strings.Contains(candidate, slug) {
			if len(candidate) > len(best) {
				best = candidate
			}
		}
	}
	return best
}
