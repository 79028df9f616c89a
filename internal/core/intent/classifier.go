// Package intent decides what a free-text prompt is asking for before any
// model call: a specific dish, a list of ingredients to cook from, or a
// looser need description.
package intent

import (
	"context"
	"regexp"
	"strings"

	"tariften-backend/internal/core/store"
	"tariften-backend/internal/core/taxonomy"
)

// Kind is the classified request type.
type Kind string

const (
	KindDish        Kind = "dish"
	KindIngredients Kind = "ingredients"
	KindNeed        Kind = "need"
)

// Result carries the classification and the text the downstream prompt
// should use.
type Result struct {
	Kind Kind
	// Subject is the cleaned prompt text: the dish name, the ingredient
	// list, or the need description as given.
	Subject string
	// Reason names the rule that fired, for logging.
	Reason string
}

var (
	listSeparators = regexp.MustCompile(`[,;]`)
	bareNumber     = regexp.MustCompile(`(^|\s)\d+([.,]\d+)?(\s|$)`)
)

// unitWords are quantity units, Turkish and English, folded. A prompt
// naming quantities is an ingredient list, not a dish name.
var unitWords = []string{
	"adet", "gram", "gr", "kg", "kilo", "ml", "litre", "lt",
	"su bardagi", "cay bardagi", "yemek kasigi", "cay kasigi", "tatli kasigi",
	"demet", "dilim", "paket", "tutam", "avuc", "diş", "dis",
	"piece", "pieces", "cup", "cups", "tablespoon", "teaspoon",
	"liter", "litre", "slice", "clove", "bunch", "pinch",
}

// needMarkers signal a situational request rather than a concrete dish.
var needMarkers = []string{
	"misafir", "davet", "konuk", "guests", "guest",
	"sik", "elegant", "fancy", "gosterisli",
	"diyet", "diet", "saglikli", "healthy", "hafif", "light",
	"protein", "proteinli",
	"hizli", "quick", "pratik", "practical", "kolay bir", "zahmetsiz",
	"aksama", "ogle icin", "kahvaltiya", "ne yapsam", "ne pisirsem",
	"oneri", "oner", "suggest", "idea", "fikir",
}

// dishWords are generic dish-category nouns. A short prompt ending in one
// of these reads as a dish name.
var dishWords = []string{
	"corba", "corbasi", "salata", "salatasi", "pilav", "pilavi",
	"makarna", "makarnasi", "kurabiye", "kurabiyesi", "borek", "boregi",
	"kofte", "koftesi", "kebap", "kebabi", "dolma", "dolmasi",
	"manti", "mantisi", "kek", "keki", "pasta", "pastasi",
	"tatli", "tatlisi", "yemek", "yemegi", "sote", "kavurma",
	"guvec", "kizartma", "haslama", "firin", "izgara", "sarma",
	"soup", "salad", "cake", "cookie", "pie", "stew", "roast",
}

// Classifier applies the rule chain. The store lookups let exact recipe
// and ingredient titles short-circuit the heuristics.
type Classifier struct {
	store store.ContentStore
}

func New(s store.ContentStore) *Classifier {
	return &Classifier{store: s}
}

// Classify runs the ordered rules over the prompt. Rules fire first match
// wins; an unmatched prompt defaults to an ingredient list, which degrades
// most gracefully when wrong.
func (c *Classifier) Classify(ctx context.Context, prompt string) Result {
	text := strings.TrimSpace(prompt)
	folded := taxonomy.Fold(text)

	// Rule 1: explicit list separators.
	if listSeparators.MatchString(text) {
		return Result{Kind: KindIngredients, Subject: text, Reason: "list separators"}
	}

	// Rule 2: bare quantities or unit words.
	if bareNumber.MatchString(folded) || containsAnyWord(folded, unitWords) {
		return Result{Kind: KindIngredients, Subject: text, Reason: "quantity wording"}
	}

	// Rule 3: situational need markers.
	if containsAnyWord(folded, needMarkers) {
		return Result{Kind: KindNeed, Subject: text, Reason: "need marker"}
	}

	// Rule 4: the prompt is an exact recipe title or slug.
	if c.store != nil {
		if r, err := c.store.GetRecipeByTitle(ctx, text); err == nil && r != nil {
			return Result{Kind: KindDish, Subject: text, Reason: "known recipe title"}
		}
		if r, err := c.store.GetRecipeBySlug(ctx, taxonomy.Slugify(text)); err == nil && r != nil {
			return Result{Kind: KindDish, Subject: text, Reason: "known recipe slug"}
		}

		// Rule 5: the prompt is an exact ingredient title.
		if ing, err := c.store.GetIngredientByTitle(ctx, text); err == nil && ing != nil {
			return Result{Kind: KindIngredients, Subject: text, Reason: "known ingredient title"}
		}
	}

	// Rule 6: prompts carrying a dish-category noun.
	if containsAnyWord(folded, dishWords) {
		return Result{Kind: KindDish, Subject: text, Reason: "dish-category noun"}
	}

	return Result{Kind: KindIngredients, Subject: text, Reason: "default"}
}

// containsAnyWord reports whether folded text contains any marker on word
// boundaries. Multi-word markers match as substrings.
func containsAnyWord(folded string, markers []string) bool {
	words := strings.Fields(folded)
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	for _, m := range markers {
		if strings.Contains(m, " ") {
			if strings.Contains(folded, m) {
				return true
			}
			continue
		}
		if set[m] {
			return true
		}
	}
	return false
}
