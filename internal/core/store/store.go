// Package store defines the content store the engines read and write:
// recipes, the ingredient vocabulary, menus, and taxonomy terms. The
// engines only ever see this interface; persistence lives behind it.
package store

import (
	"context"
	"time"

	"tariften-backend/internal/core/taxonomy"
	"tariften-backend/internal/pkg/common"
)

// Taxonomy names. Cuisine, meal type and difficulty are single-valued on a
// recipe in practice; collection is multi-valued.
const (
	TaxCuisine    = taxonomy.Cuisine
	TaxDiet       = taxonomy.Diet
	TaxMealType   = taxonomy.MealType
	TaxDifficulty = taxonomy.Difficulty
	TaxCollection = taxonomy.Collection
)

// Taxonomies lists the four AI-validated taxonomies.
var Taxonomies = []string{TaxCuisine, TaxDiet, TaxMealType, TaxDifficulty}

// Recipe is a published recipe record. Taxonomy fields hold term slugs.
type Recipe struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Slug          string                 `json:"slug"`
	Excerpt       string                 `json:"excerpt"`
	Image         string                 `json:"image"`
	PrepTime      int                    `json:"prep_time"`
	CookTime      int                    `json:"cook_time"`
	Calories      int                    `json:"calories"`
	Servings      int                    `json:"servings"`
	Steps         []string               `json:"steps"`
	Ingredients   []common.IngredientRef `json:"ingredients"`
	Cuisine       []string               `json:"cuisine"`
	Diet          []string               `json:"diet"`
	MealType      []string               `json:"meal_type"`
	Difficulty    []string               `json:"difficulty"`
	Collection    []string               `json:"collection"`
	SEO           common.SEO             `json:"seo"`
	ChefTip       string                 `json:"chef_tip,omitempty"`
	ServingWeight string                 `json:"serving_weight,omitempty"`
	AuthorID      string                 `json:"author_id"`
	CreatedAt     time.Time              `json:"created_at"`
}

// Ingredient is one entry of the controlled ingredient vocabulary.
type Ingredient struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Menu is a composed menu record.
type Menu struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Concept     string     `json:"concept"`
	GuestCount  int        `json:"guest_count"`
	EventType   string     `json:"event_type"`
	Image       string     `json:"image"`
	SEO         common.SEO `json:"seo"`
	Sections    []Section  `json:"sections"`
	AuthorID    string     `json:"author_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Section is one course of a menu. Title is derived from the section type
// by the plan, never AI-authored.
type Section struct {
	Type      string   `json:"type"`
	Title     string   `json:"title"`
	RecipeIDs []string `json:"recipe_ids"`
}

// Term is a taxonomy term with its usage count.
type Term struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// SearchQuery selects recipes. Slug and ID are exact selectors; Text is a
// free-text query over titles and ingredient names. Filters maps a taxonomy
// to the term names that must all be present.
type SearchQuery struct {
	Slug    string
	ID      string
	Text    string
	Filters map[string][]string
	OrderBy string // "newest" or "prep_time"
	Page    int
	PerPage int
}

// SearchResult is a page of recipes with paging totals.
type SearchResult struct {
	Total   int
	Pages   int
	Recipes []Recipe
}

// ContentStore is the persistence boundary for recipes, ingredients, menus
// and taxonomy terms.
type ContentStore interface {
	CreateRecipe(ctx context.Context, r *Recipe) error
	UpdateRecipe(ctx context.Context, r *Recipe) error
	GetRecipeByID(ctx context.Context, id string) (*Recipe, error)
	GetRecipeByTitle(ctx context.Context, title string) (*Recipe, error)
	GetRecipeBySlug(ctx context.Context, slug string) (*Recipe, error)
	SearchRecipes(ctx context.Context, q SearchQuery) (*SearchResult, error)

	// GetOrCreateIngredient looks an ingredient up by exact title and
	// creates it when unseen.
	GetOrCreateIngredient(ctx context.Context, title string) (*Ingredient, error)
	GetIngredientByTitle(ctx context.Context, title string) (*Ingredient, error)

	CreateMenu(ctx context.Context, m *Menu) error
	UpdateMenu(ctx context.Context, m *Menu) error
	GetMenuByID(ctx context.Context, id string) (*Menu, error)
	GetMenuBySlug(ctx context.Context, slug string) (*Menu, error)

	// GetTermNames returns the names of non-empty terms for a taxonomy,
	// most used first.
	GetTermNames(ctx context.Context, taxonomy string) ([]string, error)
	GetTerms(ctx context.Context, taxonomy string) ([]Term, error)

	Ping(ctx context.Context) error
}
