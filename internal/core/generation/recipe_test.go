package generation

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariften-backend/internal/core/catalog"
	"tariften-backend/internal/core/imagesearch"
	"tariften-backend/internal/core/intent"
	"tariften-backend/internal/core/store"
	"tariften-backend/internal/pkg/common"
)

// fakeLLM answers each completion by calling respond. Every call is
// recorded for prompt and temperature assertions.
type fakeLLM struct {
	configured bool
	respond    func(call int, system, user string, temperature float64) (string, error)
	calls      []llmCall
}

type llmCall struct {
	system      string
	user        string
	temperature float64
}

func (f *fakeLLM) Configured() bool { return f.configured }

func (f *fakeLLM) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	call := len(f.calls)
	f.calls = append(f.calls, llmCall{system: system, user: user, temperature: temperature})
	return f.respond(call, system, user, temperature)
}

func validRecipeJSON(title string, steps, ingredients int) string {
	var stepList []string
	for i := 0; i < steps; i++ {
		stepList = append(stepList, fmt.Sprintf("%q", fmt.Sprintf("Adım %d", i+1)))
	}
	var ingList []string
	for i := 0; i < ingredients; i++ {
		ingList = append(ingList, fmt.Sprintf(`{"name":"malzeme %d","amount":"1","unit":"adet"}`, i+1))
	}
	return fmt.Sprintf(`{
		"title": %q,
		"excerpt": "Kısa açıklama.",
		"prep_time": 15,
		"cook_time": "25 dk",
		"calories": 320,
		"servings": 4,
		"ingredients": [%s],
		"steps": [%s],
		"cuisine": ["Türk Mutfağı"],
		"diet": ["Normal"],
		"meal_type": ["Akşam Yemeği"],
		"difficulty": ["Kolay"],
		"seo": {"title": "%s Tarifi (Tam Kıvamında)", "description": "Açıklama", "focus_keywords": "tarif"},
		"chef_tip": "Taze malzeme kullanın.",
		"image_query": "lentil soup"
	}`, title, strings.Join(ingList, ","), strings.Join(stepList, ","), title)
}

func newRecipeService(llm *fakeLLM) (*RecipeService, *store.MemoryStore) {
	ms := store.NewMemoryStore()
	cat := catalog.New(ms)
	cls := intent.New(ms)
	images := imagesearch.NewService()
	return NewRecipeService(llm, cat, cls, images), ms
}

func TestGenerateDish(t *testing.T) {
	llm := &fakeLLM{configured: true, respond: func(call int, system, user string, temp float64) (string, error) {
		return validRecipeJSON("Mercimek Çorbası", 6, 5), nil
	}}
	svc, _ := newRecipeService(llm)

	recipe, err := svc.Generate(context.Background(), "mercimek çorbası", PromptRescue, false)
	require.NoError(t, err)

	assert.Equal(t, "Mercimek Çorbası", recipe.Title)
	assert.Len(t, recipe.Steps, 6)
	assert.Len(t, recipe.Ingredients, 5)
	assert.Equal(t, 25, recipe.CookTime) // "25 dk" tolerated
	assert.Equal(t, []string{"turk-mutfagi"}, recipe.Cuisine)
	assert.Equal(t, []string{"kolay"}, recipe.Difficulty)
	assert.NotEmpty(t, recipe.Image)

	require.Len(t, llm.calls, 1)
	assert.InDelta(t, 0.30, llm.calls[0].temperature, 0.001)
	assert.Contains(t, llm.calls[0].user, "mercimek çorbası")
}

func TestGenerateNeedTemperature(t *testing.T) {
	llm := &fakeLLM{configured: true, respond: func(call int, system, user string, temp float64) (string, error) {
		return validRecipeJSON("Fırında Somon", 6, 5), nil
	}}
	svc, _ := newRecipeService(llm)

	_, err := svc.Generate(context.Background(), "akşama misafir geliyor", PromptRescue, false)
	require.NoError(t, err)
	require.Len(t, llm.calls, 1)
	assert.InDelta(t, 0.60, llm.calls[0].temperature, 0.001)
}

func TestGenerateIngredientSubModes(t *testing.T) {
	for _, tc := range []struct {
		pt   PromptType
		temp float64
	}{
		{PromptRescue, 0.40},
		{PromptPlan, 0.50},
		{PromptSuggest, 0.65},
	} {
		llm := &fakeLLM{configured: true, respond: func(call int, system, user string, temp float64) (string, error) {
			return validRecipeJSON("Sebzeli Güveç", 6, 5), nil
		}}
		svc, _ := newRecipeService(llm)

		_, err := svc.Generate(context.Background(), "patates, havuç, kabak", tc.pt, false)
		require.NoError(t, err)
		require.Len(t, llm.calls, 1)
		assert.InDelta(t, tc.temp, llm.calls[0].temperature, 0.001, string(tc.pt))
	}
}

func TestGenerateMissingKey(t *testing.T) {
	llm := &fakeLLM{configured: false}
	svc, _ := newRecipeService(llm)

	_, err := svc.Generate(context.Background(), "menemen", PromptRescue, false)
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.ErrCodeConfiguration))
}

func TestGenerateRepairSucceeds(t *testing.T) {
	llm := &fakeLLM{configured: true, respond: func(call int, system, user string, temp float64) (string, error) {
		if call == 0 {
			// Too few steps; flags the repair pass.
			return validRecipeJSON("Menemen", 2, 5), nil
		}
		return validRecipeJSON("Menemen", 4, 5), nil
	}}
	svc, _ := newRecipeService(llm)

	recipe, err := svc.Generate(context.Background(), "menemen tarifi yemek", PromptRescue, false)
	require.NoError(t, err)
	require.Len(t, llm.calls, 2)
	// Repair acceptance bar is relaxed to 3 steps.
	assert.Len(t, recipe.Steps, 4)
	assert.Contains(t, llm.calls[1].user, "kurallara uymuyor")
}

func TestGenerateMissingStepsAfterRepairFails(t *testing.T) {
	llm := &fakeLLM{configured: true, respond: func(call int, system, user string, temp float64) (string, error) {
		return `{"title":"Menemen","ingredients":[{"name":"a"},{"name":"b"},{"name":"c"},{"name":"d"}],"seo":{"title":"Menemen (Efsane)"}}`, nil
	}}
	svc, _ := newRecipeService(llm)

	_, err := svc.Generate(context.Background(), "menemen tarifi yemek", PromptRescue, false)
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.ErrCodeMalformedResponse))
	assert.Len(t, llm.calls, 2)
}

func TestGenerateSingleRepairOnly(t *testing.T) {
	llm := &fakeLLM{configured: true, respond: func(call int, system, user string, temp float64) (string, error) {
		return validRecipeJSON("Menemen", 2, 5), nil
	}}
	svc, _ := newRecipeService(llm)

	_, err := svc.Generate(context.Background(), "menemen tarifi yemek", PromptRescue, false)
	require.Error(t, err)
	assert.Len(t, llm.calls, 2)
}

func TestGenerateSingleWordIngredientBoundary(t *testing.T) {
	response := func(names []string) string {
		var ings []string
		for _, n := range names {
			ings = append(ings, fmt.Sprintf(`{"name":%q,"amount":"1","unit":"adet"}`, n))
		}
		return fmt.Sprintf(`{
			"title": "Ispanaklı Yemek",
			"ingredients": [%s],
			"steps": ["a","b","c","d","e","f"],
			"seo": {"title": "Ispanaklı Yemek (Nefis)"}
		}`, strings.Join(ings, ","))
	}

	// Input word inside the first five ingredient names passes outright.
	llm := &fakeLLM{configured: true, respond: func(call int, system, user string, temp float64) (string, error) {
		return response([]string{"taze ıspanak", "soğan", "yağ", "tuz"}), nil
	}}
	svc, _ := newRecipeService(llm)
	_, err := svc.Generate(context.Background(), "ıspanak", PromptRescue, false)
	require.NoError(t, err)
	assert.Len(t, llm.calls, 1)

	// Outside the first five, the draft is flagged and repaired.
	llm2 := &fakeLLM{configured: true, respond: func(call int, system, user string, temp float64) (string, error) {
		if call == 0 {
			return response([]string{"soğan", "yağ", "tuz", "un", "su", "taze ıspanak"}), nil
		}
		return response([]string{"taze ıspanak", "soğan", "yağ", "tuz"}), nil
	}}
	svc2, _ := newRecipeService(llm2)
	_, err = svc2.Generate(context.Background(), "ıspanak", PromptRescue, false)
	require.NoError(t, err)
	assert.Len(t, llm2.calls, 2)
}

func TestGenerateMenuModeForcesDish(t *testing.T) {
	llm := &fakeLLM{configured: true, respond: func(call int, system, user string, temp float64) (string, error) {
		return validRecipeJSON("Izgara Köfte", 6, 5), nil
	}}
	svc, _ := newRecipeService(llm)

	_, err := svc.Generate(context.Background(), "Izgara Köfte", PromptPlan, true)
	require.NoError(t, err)
	require.Len(t, llm.calls, 1)
	assert.Contains(t, llm.calls[0].user, "Şu yemeğin tarifini yaz")
	assert.InDelta(t, 0.30, llm.calls[0].temperature, 0.001)
}

func TestGenerateMenuModeKeepsIngredientWords(t *testing.T) {
	llm := &fakeLLM{configured: true, respond: func(call int, system, user string, temp float64) (string, error) {
		return validRecipeJSON("Şaraplı Risotto", 6, 5), nil
	}}
	svc, ms := newRecipeService(llm)
	_, err := ms.GetOrCreateIngredient(context.Background(), "şarap")
	require.NoError(t, err)

	// A lone ingredient word inside a menu section stays an ingredient
	// request instead of becoming a dish called "şarap".
	_, err = svc.Generate(context.Background(), "şarap", PromptPlan, true)
	require.NoError(t, err)
	require.Len(t, llm.calls, 1)
	assert.NotContains(t, llm.calls[0].user, "Şu yemeğin tarifini yaz")
	assert.InDelta(t, 0.50, llm.calls[0].temperature, 0.001)
}

func TestGenerateNeverInventsTerms(t *testing.T) {
	llm := &fakeLLM{configured: true, respond: func(call int, system, user string, temp float64) (string, error) {
		raw := validRecipeJSON("Taco", 6, 5)
		raw = strings.Replace(raw, `"cuisine": ["Türk Mutfağı"]`, `"cuisine": ["Uzay Mutfağı"]`, 1)
		return raw, nil
	}}
	svc, _ := newRecipeService(llm)

	recipe, err := svc.Generate(context.Background(), "taco tarifi yemek", PromptRescue, false)
	require.NoError(t, err)
	assert.Empty(t, recipe.Cuisine)
}
