package intent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariften-backend/internal/core/store"
)

func newClassifier(t *testing.T) (*Classifier, *store.MemoryStore) {
	t.Helper()
	ms := store.NewMemoryStore()
	return New(ms), ms
}

func TestClassifyIngredientList(t *testing.T) {
	c, _ := newClassifier(t)

	res := c.Classify(context.Background(), "domates, soğan, biber")
	assert.Equal(t, KindIngredients, res.Kind)
}

func TestClassifyQuantities(t *testing.T) {
	c, _ := newClassifier(t)

	assert.Equal(t, KindIngredients, c.Classify(context.Background(), "2 yumurta ve biraz un").Kind)
	assert.Equal(t, KindIngredients, c.Classify(context.Background(), "bir su bardağı pirinç").Kind)
	assert.Equal(t, KindIngredients, c.Classify(context.Background(), "500 gram kıyma").Kind)
}

func TestClassifyNeed(t *testing.T) {
	c, _ := newClassifier(t)

	assert.Equal(t, KindNeed, c.Classify(context.Background(), "akşama misafir geliyor").Kind)
	assert.Equal(t, KindNeed, c.Classify(context.Background(), "şık bir davet yemeği").Kind)
	assert.Equal(t, KindNeed, c.Classify(context.Background(), "hızlı ve pratik bir şeyler").Kind)
	assert.Equal(t, KindNeed, c.Classify(context.Background(), "protein ağırlıklı bir öneri").Kind)
}

func TestClassifyDishName(t *testing.T) {
	c, _ := newClassifier(t)

	res := c.Classify(context.Background(), "mercimek çorbası")
	assert.Equal(t, KindDish, res.Kind)

	assert.Equal(t, KindDish, c.Classify(context.Background(), "fırın makarna").Kind)
	assert.Equal(t, KindDish, c.Classify(context.Background(), "kıymalı börek").Kind)
}

func TestClassifyDishNounInLongPrompt(t *testing.T) {
	c, _ := newClassifier(t)

	res := c.Classify(context.Background(), "soğuk kış günlerinde içimizi ısıtacak bol baharatlı bir çorba istiyorum")
	assert.Equal(t, KindDish, res.Kind)
	assert.Equal(t, "dish-category noun", res.Reason)
}

func TestClassifyKnownRecipeTitle(t *testing.T) {
	c, ms := newClassifier(t)
	require.NoError(t, ms.CreateRecipe(context.Background(), &store.Recipe{Title: "Ev Usulü Menemen"}))

	res := c.Classify(context.Background(), "Ev Usulü Menemen")
	assert.Equal(t, KindDish, res.Kind)
}

func TestClassifyKnownIngredientTitle(t *testing.T) {
	c, ms := newClassifier(t)
	_, err := ms.GetOrCreateIngredient(context.Background(), "enginar")
	require.NoError(t, err)

	res := c.Classify(context.Background(), "enginar")
	assert.Equal(t, KindIngredients, res.Kind)
}

func TestClassifyDefaultsToIngredients(t *testing.T) {
	c, _ := newClassifier(t)

	res := c.Classify(context.Background(), "enginar")
	assert.Equal(t, KindIngredients, res.Kind)
	assert.Equal(t, "default", res.Reason)
}

func TestClassifyIdempotent(t *testing.T) {
	c, _ := newClassifier(t)

	for _, input := range []string{"mercimek çorbası", "domates, biber", "akşama misafir geliyor"} {
		first := c.Classify(context.Background(), input)
		second := c.Classify(context.Background(), input)
		assert.Equal(t, first.Kind, second.Kind, input)
	}
}
