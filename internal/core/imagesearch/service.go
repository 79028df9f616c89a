// Package imagesearch resolves a cover photo for generated content from
// stock-photo providers, with a deterministic placeholder when nothing
// usable comes back.
package imagesearch

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"tariften-backend/internal/core/taxonomy"
	"tariften-backend/internal/pkg/common"
)

const (
	// candidateCount is how many photos each provider is asked for.
	candidateCount = 15

	placeholderBase = "https://placehold.co/800x600/db4c3f/ffffff?text="
)

// Candidate is one photo returned by a provider.
type Candidate struct {
	URL         string
	Description string
}

// Provider is a stock-photo search backend.
type Provider interface {
	Name() string
	Configured() bool
	Search(ctx context.Context, query string, count int) ([]Candidate, error)
}

// foodContextWords mark a query as already food-related. Queries lacking
// one get " food photography" appended so landscape results skew edible.
var foodContextWords = []string{"food", "dish", "plate", "meal", "cuisine", "recipe"}

// stopWords are generic food words stripped from the strict match term so
// that only the distinctive part of a title has to appear in a photo
// description.
var stopWords = []string{
	"food", "dish", "plate", "recipe", "meal", "cuisine", "photography",
	"yemek", "yemegi", "tarif", "tarifi", "tabak", "tabagi", "mutfak",
	"mutfagi", "lezzetli", "nefis", "ev", "usulu",
}

// Service tries each configured provider in order and scores candidates
// against the dish title.
type Service struct {
	providers []Provider
}

// NewService creates the resolver. Provider order is the fallback order.
func NewService(providers ...Provider) *Service {
	return &Service{providers: providers}
}

// Resolve finds a photo for the query. When strictTerm is non-empty, a
// candidate only wins if its description contains the distinctive part of
// the term; otherwise the first candidate wins. Every failure path ends at
// the placeholder, so the returned URL is never empty and the error is
// only advisory.
func (s *Service) Resolve(ctx context.Context, query, strictTerm string) string {
	searchQuery := withFoodContext(query)
	needle := strictNeedle(strictTerm)

	for _, p := range s.providers {
		if !p.Configured() {
			continue
		}
		candidates, err := p.Search(ctx, searchQuery, candidateCount)
		if err != nil {
			common.LogWarn("image provider search failed",
				zap.String("provider", p.Name()), zap.Error(err))
			continue
		}
		if url := pick(candidates, needle); url != "" {
			common.LogDebug("image resolved",
				zap.String("provider", p.Name()), zap.String("query", searchQuery))
			return url
		}
	}
	return Placeholder(strictTerm)
}

// Placeholder builds the fallback image URL carrying the title as text.
func Placeholder(title string) string {
	if title == "" {
		title = "Tarif"
	}
	return placeholderBase + url.QueryEscape(title)
}

func withFoodContext(query string) string {
	folded := taxonomy.Fold(query)
	for _, w := range foodContextWords {
		if strings.Contains(folded, w) {
			return query
		}
	}
	return query + " food photography"
}

// strictNeedle folds the term and strips stop words. When stripping leaves
// fewer than three characters the unstripped folded term is used, so short
// titles still match strictly.
func strictNeedle(term string) string {
	folded := taxonomy.Fold(term)
	if folded == "" {
		return ""
	}
	var kept []string
	for _, w := range strings.Fields(folded) {
		if !isStopWord(w) {
			kept = append(kept, w)
		}
	}
	cleaned := strings.Join(kept, " ")
	if len(cleaned) < 3 {
		return folded
	}
	return cleaned
}

func isStopWord(w string) bool {
	for _, s := range stopWords {
		if w == s {
			return true
		}
	}
	return false
}

func pick(candidates []Candidate, needle string) string {
	if len(candidates) == 0 {
		return ""
	}
	if needle == "" {
		return candidates[0].URL
	}
	for _, c := range candidates {
		if strings.Contains(taxonomy.Fold(c.Description), needle) {
			return c.URL
		}
	}
	return ""
}
