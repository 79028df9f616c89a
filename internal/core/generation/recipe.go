// Package generation holds the recipe and menu generation engines: prompt
// construction, response validation with a single repair pass, category
// validation and image resolution.
package generation

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tariften-backend/internal/core/ai/openai"
	"tariften-backend/internal/core/catalog"
	"tariften-backend/internal/core/imagesearch"
	"tariften-backend/internal/core/intent"
	"tariften-backend/internal/core/store"
	"tariften-backend/internal/core/taxonomy"
	"tariften-backend/internal/pkg/common"
)

// RecipeService turns a free-text request into a validated recipe draft.
// It does not persist; callers decide what to do with the result.
type RecipeService struct {
	llm        openai.LLM
	catalog    *catalog.Catalog
	classifier *intent.Classifier
	images     *imagesearch.Service
}

// NewRecipeService wires the recipe engine.
func NewRecipeService(llm openai.LLM, cat *catalog.Catalog, cls *intent.Classifier, img *imagesearch.Service) *RecipeService {
	return &RecipeService{llm: llm, catalog: cat, classifier: cls, images: img}
}

// Generate runs the full pipeline: allowed-term lookup, intent
// classification, one completion, validation with at most one repair
// call, image resolution and term validation. In menu mode the input is a
// section recipe name, so anything not clearly an ingredient list or a
// need reads as a dish name taken verbatim.
func (s *RecipeService) Generate(ctx context.Context, inputText string, pt PromptType, isMenuMode bool) (*store.Recipe, error) {
	if !s.llm.Configured() {
		return nil, common.NewConfigurationError("language model API key is not configured")
	}

	allowed, err := s.catalog.AllowedSets(ctx)
	if err != nil {
		return nil, err
	}

	res := s.classifier.Classify(ctx, inputText)
	if isMenuMode && res.Kind != intent.KindIngredients && res.Kind != intent.KindNeed {
		res = intent.Result{Kind: intent.KindDish, Subject: inputText, Reason: "menu mode"}
	}
	common.LogInfo("recipe generation started",
		zap.String("intent", string(res.Kind)), zap.String("reason", res.Reason))

	system := buildRecipeSystemPrompt(res.Kind, allowed)
	user := buildRecipeUserPrompt(res.Kind, pt, res.Subject)
	temperature := temperatureFor(res.Kind, pt)

	raw, err := s.llm.Complete(ctx, system, user, temperature)
	if err != nil {
		return nil, err
	}
	draft, err := parseRecipeDraft(raw)
	if err != nil {
		return nil, err
	}

	singleWord := singleWordOf(res, inputText)
	reasons := validateDraft(draft, res.Kind, singleWord, 6)
	if len(reasons) > 0 {
		common.LogWarn("recipe draft flagged for repair", zap.Strings("reasons", reasons))
		draftJSON, _ := common.ToJSON(draft)
		repairUser := buildRepairPrompt(draftJSON, reasons)
		repairedRaw, repairErr := s.llm.Complete(ctx, system, repairUser, temperature)
		if repairErr == nil {
			if repaired, parseErr := parseRecipeDraft(repairedRaw); parseErr == nil &&
				strings.TrimSpace(repaired.Title) != "" {
				draft = repaired
			}
		}
		// Relaxed acceptance bar after the single repair attempt.
		if len(draft.Steps) < 3 || len(draft.Ingredients) < 4 {
			return nil, common.NewMalformedResponseError(
				"recipe draft failed validation after repair: " + strings.Join(reasons, "; "))
		}
	}
	if strings.TrimSpace(draft.Title) == "" {
		return nil, common.NewGenerationError("generated recipe has no title")
	}

	recipe := draftToRecipe(draft)

	query := draft.ImageQuery
	if strings.TrimSpace(query) == "" {
		query = recipe.Title
	}
	recipe.Image = s.images.Resolve(ctx, query, recipe.Title)

	recipe.Cuisine = taxonomy.SelectOne(store.TaxCuisine, draft.Cuisine, allowed[store.TaxCuisine])
	recipe.Diet = taxonomy.SelectOne(store.TaxDiet, draft.Diet, allowed[store.TaxDiet])
	recipe.MealType = taxonomy.SelectOne(store.TaxMealType, draft.MealType, allowed[store.TaxMealType])
	recipe.Difficulty = taxonomy.SelectOne(store.TaxDifficulty, draft.Difficulty, allowed[store.TaxDifficulty])

	common.LogInfo("recipe generation finished", zap.String("title", recipe.Title))
	return recipe, nil
}

// singleWordOf returns the input when it is a one-word ingredients-intent
// request, for the first-five-ingredients check.
func singleWordOf(res intent.Result, inputText string) string {
	if res.Kind != intent.KindIngredients {
		return ""
	}
	fields := strings.Fields(strings.TrimSpace(inputText))
	if len(fields) == 1 {
		return fields[0]
	}
	return ""
}

func draftToRecipe(d *recipeDraft) *store.Recipe {
	ingredients := make([]common.IngredientRef, 0, len(d.Ingredients))
	for _, ing := range d.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			continue
		}
		ingredients = append(ingredients, common.IngredientRef{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}
	return &store.Recipe{
		Title:         strings.TrimSpace(d.Title),
		Excerpt:       d.Excerpt,
		PrepTime:      d.PrepTime.Int(),
		CookTime:      d.CookTime.Int(),
		Calories:      d.Calories.Int(),
		Servings:      d.Servings.Int(),
		Steps:         d.Steps,
		Ingredients:   ingredients,
		SEO:           d.SEO,
		ChefTip:       d.ChefTip,
		ServingWeight: d.ServingWeight,
	}
}
