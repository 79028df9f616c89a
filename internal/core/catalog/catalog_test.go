package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariften-backend/internal/core/store"
)

func TestAllowedTermsFallsBackOnEmptyStore(t *testing.T) {
	cat := New(store.NewMemoryStore())

	names, err := cat.AllowedTerms(context.Background(), store.TaxCuisine)
	require.NoError(t, err)
	assert.Equal(t, []string{"Türk Mutfağı", "İtalyan", "Meksika", "Dünya Mutfağı"}, names)

	names, err = cat.AllowedTerms(context.Background(), store.TaxDifficulty)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kolay", "Orta", "Zor", "Şef"}, names)
}

func TestAllowedTermsPrefersUsedTerms(t *testing.T) {
	ms := store.NewMemoryStore()
	ms.SeedTerms(store.TaxCuisine, "Türk Mutfağı", "İtalyan")
	require.NoError(t, ms.CreateRecipe(context.Background(), &store.Recipe{
		Title:   "Penne Arrabiata",
		Cuisine: []string{"italyan"},
	}))

	cat := New(ms)
	names, err := cat.AllowedTerms(context.Background(), store.TaxCuisine)
	require.NoError(t, err)
	// Only terms actually in use count; unused seeds stay out.
	assert.Equal(t, []string{"İtalyan"}, names)
}

func TestAllowedSetsCoversAllTaxonomies(t *testing.T) {
	cat := New(store.NewMemoryStore())

	sets, err := cat.AllowedSets(context.Background())
	require.NoError(t, err)
	for _, tax := range store.Taxonomies {
		assert.NotEmpty(t, sets[tax], tax)
	}
}

func TestFallbackReturnsCopy(t *testing.T) {
	a := Fallback(store.TaxDiet)
	a[0] = "mutated"
	assert.Equal(t, "Normal", Fallback(store.TaxDiet)[0])
}
