// Package catalog supplies the allowed term vocabulary per taxonomy. The
// live vocabulary comes from the store; when a taxonomy has no used terms
// yet, a static Turkish fallback keeps generation working on an empty
// site.
package catalog

import (
	"context"

	"go.uber.org/zap"

	"tariften-backend/internal/core/store"
	"tariften-backend/internal/pkg/common"
)

// Fallback vocabularies, used when the store has no terms in use for a
// taxonomy.
var fallbacks = map[string][]string{
	store.TaxCuisine:    {"Türk Mutfağı", "İtalyan", "Meksika", "Dünya Mutfağı"},
	store.TaxDiet:       {"Normal", "Vegan", "Vejetaryen", "Glutensiz"},
	store.TaxMealType:   {"Kahvaltı", "Öğle Yemeği", "Akşam Yemeği", "Atıştırmalık", "Tatlı"},
	store.TaxDifficulty: {"Kolay", "Orta", "Zor", "Şef"},
}

// Catalog resolves allowed terms against the content store.
type Catalog struct {
	store store.ContentStore
}

// New creates a catalog backed by the given store.
func New(s store.ContentStore) *Catalog {
	return &Catalog{store: s}
}

// AllowedTerms returns the allowed term names for one taxonomy, most used
// first, falling back to the static vocabulary when the store has none.
func (c *Catalog) AllowedTerms(ctx context.Context, taxonomy string) ([]string, error) {
	names, err := c.store.GetTermNames(ctx, taxonomy)
	if err != nil {
		common.LogWarn("term lookup failed, using fallback vocabulary",
			zap.String("taxonomy", taxonomy), zap.Error(err))
		return fallbackTerms(taxonomy), nil
	}
	if len(names) == 0 {
		return fallbackTerms(taxonomy), nil
	}
	return names, nil
}

// AllowedSets returns the allowed term names for all four generated
// taxonomies.
func (c *Catalog) AllowedSets(ctx context.Context) (map[string][]string, error) {
	out := make(map[string][]string, len(store.Taxonomies))
	for _, tax := range store.Taxonomies {
		names, err := c.AllowedTerms(ctx, tax)
		if err != nil {
			return nil, err
		}
		out[tax] = names
	}
	return out, nil
}

// Fallback returns the static vocabulary for a taxonomy.
func Fallback(taxonomy string) []string {
	return fallbackTerms(taxonomy)
}

func fallbackTerms(taxonomy string) []string {
	src := fallbacks[taxonomy]
	out := make([]string, len(src))
	copy(out, src)
	return out
}
