package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecipeAssignsSlugAndID(t *testing.T) {
	ms := NewMemoryStore()
	r := &Recipe{Title: "Mercimek Çorbası"}
	require.NoError(t, ms.CreateRecipe(context.Background(), r))

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "mercimek-corbasi", r.Slug)
	assert.False(t, r.CreatedAt.IsZero())
}

func TestCreateRecipeSlugCollision(t *testing.T) {
	ms := NewMemoryStore()
	a := &Recipe{Title: "Mercimek Çorbası"}
	b := &Recipe{Title: "Mercimek Corbasi"}
	require.NoError(t, ms.CreateRecipe(context.Background(), a))
	require.NoError(t, ms.CreateRecipe(context.Background(), b))

	assert.Equal(t, "mercimek-corbasi", a.Slug)
	assert.Equal(t, "mercimek-corbasi-2", b.Slug)
}

func TestGetRecipeLookups(t *testing.T) {
	ms := NewMemoryStore()
	r := &Recipe{Title: "Ev Usulü Menemen"}
	require.NoError(t, ms.CreateRecipe(context.Background(), r))

	byTitle, err := ms.GetRecipeByTitle(context.Background(), "ev usulü menemen")
	require.NoError(t, err)
	require.NotNil(t, byTitle)
	assert.Equal(t, r.ID, byTitle.ID)

	bySlug, err := ms.GetRecipeBySlug(context.Background(), "ev-usulu-menemen")
	require.NoError(t, err)
	require.NotNil(t, bySlug)

	missing, err := ms.GetRecipeByTitle(context.Background(), "yok böyle bir tarif")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSearchRecipesTextAndFilters(t *testing.T) {
	ms := NewMemoryStore()
	require.NoError(t, ms.CreateRecipe(context.Background(), &Recipe{
		Title:   "Mercimek Çorbası",
		Cuisine: []string{"turk-mutfagi"},
	}))
	require.NoError(t, ms.CreateRecipe(context.Background(), &Recipe{
		Title:   "Penne Arrabiata",
		Cuisine: []string{"italyan"},
	}))

	res, err := ms.SearchRecipes(context.Background(), SearchQuery{Text: "mercimek"})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "Mercimek Çorbası", res.Recipes[0].Title)

	res, err = ms.SearchRecipes(context.Background(), SearchQuery{
		Filters: map[string][]string{TaxCuisine: {"İtalyan"}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "Penne Arrabiata", res.Recipes[0].Title)
}

func TestSearchRecipesPaging(t *testing.T) {
	ms := NewMemoryStore()
	for i := 0; i < 25; i++ {
		require.NoError(t, ms.CreateRecipe(context.Background(), &Recipe{
			Title: "Tarif " + string(rune('A'+i)),
		}))
	}

	res, err := ms.SearchRecipes(context.Background(), SearchQuery{Page: 3})
	require.NoError(t, err)
	assert.Equal(t, 25, res.Total)
	assert.Equal(t, 3, res.Pages) // default page size 10
	assert.Len(t, res.Recipes, 5)
}

func TestGetOrCreateIngredient(t *testing.T) {
	ms := NewMemoryStore()

	first, err := ms.GetOrCreateIngredient(context.Background(), "Domates")
	require.NoError(t, err)
	second, err := ms.GetOrCreateIngredient(context.Background(), "domates")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestTermCountsAndOrdering(t *testing.T) {
	ms := NewMemoryStore()
	ms.SeedTerms(TaxCuisine, "Türk Mutfağı", "İtalyan", "Meksika")

	for i := 0; i < 3; i++ {
		require.NoError(t, ms.CreateRecipe(context.Background(), &Recipe{
			Title:   "İtalyan Tarif " + string(rune('A'+i)),
			Cuisine: []string{"italyan"},
		}))
	}
	require.NoError(t, ms.CreateRecipe(context.Background(), &Recipe{
		Title:   "Türk Tarifi",
		Cuisine: []string{"turk-mutfagi"},
	}))

	names, err := ms.GetTermNames(context.Background(), TaxCuisine)
	require.NoError(t, err)
	// Most used first; the unused term is excluded.
	assert.Equal(t, []string{"İtalyan", "Türk Mutfağı"}, names)

	terms, err := ms.GetTerms(context.Background(), TaxCuisine)
	require.NoError(t, err)
	require.Len(t, terms, 3)
	assert.Equal(t, 3, terms[0].Count)
	assert.Equal(t, "italyan", terms[0].Slug)
}

func TestMenuRoundTrip(t *testing.T) {
	ms := NewMemoryStore()
	m := &Menu{
		Title:     "Anadolu Akşamı",
		EventType: "dinner",
		Sections: []Section{
			{Type: "soup", Title: "Çorba", RecipeIDs: []string{"r1"}},
		},
	}
	require.NoError(t, ms.CreateMenu(context.Background(), m))
	assert.Equal(t, "anadolu-aksami", m.Slug)

	got, err := ms.GetMenuBySlug(context.Background(), "anadolu-aksami")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, m.ID, got.ID)
	require.Len(t, got.Sections, 1)
	assert.Equal(t, []string{"r1"}, got.Sections[0].RecipeIDs)
}
