package generation

import (
	"fmt"
	"strings"

	"tariften-backend/internal/core/intent"
	"tariften-backend/internal/core/taxonomy"
	"tariften-backend/internal/pkg/common"
)

// recipeDraft is the model's raw recipe payload. Numeric fields tolerate
// strings like "25 dk", which the model produces now and then.
type recipeDraft struct {
	Title         string            `json:"title"`
	Excerpt       string            `json:"excerpt"`
	PrepTime      common.FlexInt    `json:"prep_time"`
	CookTime      common.FlexInt    `json:"cook_time"`
	Calories      common.FlexInt    `json:"calories"`
	Servings      common.FlexInt    `json:"servings"`
	Ingredients   []draftIngredient `json:"ingredients"`
	Steps         []string          `json:"steps"`
	Cuisine       []string          `json:"cuisine"`
	Diet          []string          `json:"diet"`
	MealType      []string          `json:"meal_type"`
	Difficulty    []string          `json:"difficulty"`
	SEO           common.SEO        `json:"seo"`
	ChefTip       string            `json:"chef_tip"`
	ServingWeight string            `json:"serving_weight"`
	ImageQuery    string            `json:"image_query"`
}

type draftIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// parseRecipeDraft extracts and decodes the draft from raw model output,
// retrying once with quoted keys when the payload is almost-JSON.
func parseRecipeDraft(raw string) (*recipeDraft, error) {
	payload := common.ExtractJSONObject(raw)
	if payload == "" {
		return nil, common.NewMalformedResponseError("response contains no JSON object")
	}
	var draft recipeDraft
	if err := common.ParseJSON(payload, &draft); err != nil {
		repaired := common.QuoteJSONKeys(payload)
		if err2 := common.ParseJSON(repaired, &draft); err2 != nil {
			return nil, common.NewMalformedResponseError("response JSON does not decode: " + err.Error())
		}
	}
	return &draft, nil
}

// validateDraft returns the repair reasons for a draft, empty when the
// draft passes. minSteps is 6 on the first pass and relaxes to 3 for the
// repair acceptance bar.
func validateDraft(d *recipeDraft, kind intent.Kind, singleWordInput string, minSteps int) []string {
	var reasons []string
	if strings.TrimSpace(d.Title) == "" {
		reasons = append(reasons, "başlık boş")
	}
	if len(d.Steps) < minSteps {
		reasons = append(reasons, fmt.Sprintf("adım sayısı %d, en az %d olmalı", len(d.Steps), minSteps))
	}
	if len(d.Ingredients) < 4 {
		reasons = append(reasons, fmt.Sprintf("malzeme sayısı %d, en az 4 olmalı", len(d.Ingredients)))
	}
	if !hasParentheticalHook(d.SEO.Title) {
		reasons = append(reasons, "seo.title parantez içi çekici ifade içermiyor")
	}
	if kind == intent.KindIngredients && singleWordInput != "" &&
		!inputInFirstIngredients(singleWordInput, d.Ingredients, 5) {
		reasons = append(reasons, fmt.Sprintf("%q ilk 5 malzeme arasında geçmiyor", singleWordInput))
	}
	return reasons
}

func hasParentheticalHook(seoTitle string) bool {
	open := strings.Index(seoTitle, "(")
	if open < 0 {
		return false
	}
	closing := strings.Index(seoTitle[open:], ")")
	return closing > 1
}

// inputInFirstIngredients checks the word against the first n ingredient
// names, substring in either direction after folding.
func inputInFirstIngredients(word string, ingredients []draftIngredient, n int) bool {
	needle := taxonomy.Fold(word)
	if needle == "" {
		return true
	}
	for i, ing := range ingredients {
		if i >= n {
			break
		}
		name := taxonomy.Fold(ing.Name)
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			return true
		}
	}
	return false
}

// menuMetaDraft is the model's menu metadata payload.
type menuMetaDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageQuery  string     `json:"image_query"`
	SEO         common.SEO `json:"seo"`
}

func parseMenuMetaDraft(raw string) (*menuMetaDraft, error) {
	payload := common.ExtractJSONObject(raw)
	if payload == "" {
		return nil, common.NewMalformedResponseError("response contains no JSON object")
	}
	var draft menuMetaDraft
	if err := common.ParseJSON(payload, &draft); err != nil {
		repaired := common.QuoteJSONKeys(payload)
		if err2 := common.ParseJSON(repaired, &draft); err2 != nil {
			return nil, common.NewMalformedResponseError("response JSON does not decode: " + err.Error())
		}
	}
	return &draft, nil
}

// parseSectionNames decodes the per-type recipe-name lists.
func parseSectionNames(raw string) (map[string][]string, error) {
	payload := common.ExtractJSONObject(raw)
	if payload == "" {
		return nil, common.NewMalformedResponseError("response contains no JSON object")
	}
	var names map[string][]string
	if err := common.ParseJSON(payload, &names); err != nil {
		repaired := common.QuoteJSONKeys(payload)
		if err2 := common.ParseJSON(repaired, &names); err2 != nil {
			return nil, common.NewMalformedResponseError("response JSON does not decode: " + err.Error())
		}
	}
	return names, nil
}
