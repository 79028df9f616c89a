package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tariften-backend/internal/core/taxonomy"
)

// MemoryStore is an in-process ContentStore. It backs tests and runs the
// API without a database file.
type MemoryStore struct {
	mu          sync.RWMutex
	recipes     map[string]*Recipe
	menus       map[string]*Menu
	ingredients map[string]*Ingredient
	terms       map[string][]Term // taxonomy -> seeded vocabulary
	order       []string          // recipe IDs in insertion order
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		recipes:     make(map[string]*Recipe),
		menus:       make(map[string]*Menu),
		ingredients: make(map[string]*Ingredient),
		terms:       make(map[string][]Term),
	}
}

// SeedTerms registers taxonomy vocabulary. Counts are derived from recipe
// assignments, not from the seed.
func (s *MemoryStore) SeedTerms(taxonomy string, names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		s.terms[taxonomy] = append(s.terms[taxonomy], Term{
			Name: name,
			Slug: slugOf(name),
		})
	}
}

func slugOf(name string) string {
	return taxonomy.Slugify(name)
}

func (s *MemoryStore) uniqueRecipeSlug(title string) string {
	base := slugOf(title)
	if base == "" {
		base = "tarif"
	}
	slug := base
	for i := 2; ; i++ {
		taken := false
		for _, r := range s.recipes {
			if r.Slug == slug {
				taken = true
				break
			}
		}
		if !taken {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *MemoryStore) uniqueMenuSlug(title string) string {
	base := slugOf(title)
	if base == "" {
		base = "menu"
	}
	slug := base
	for i := 2; ; i++ {
		taken := false
		for _, m := range s.menus {
			if m.Slug == slug {
				taken = true
				break
			}
		}
		if !taken {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// CreateRecipe persists a new recipe, assigning ID, slug and timestamp.
func (s *MemoryStore) CreateRecipe(ctx context.Context, r *Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Slug == "" {
		r.Slug = s.uniqueRecipeSlug(r.Title)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	cp := *r
	s.recipes[r.ID] = &cp
	s.order = append(s.order, r.ID)
	return nil
}

// UpdateRecipe replaces an existing recipe.
func (s *MemoryStore) UpdateRecipe(ctx context.Context, r *Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[r.ID]; !ok {
		return fmt.Errorf("recipe %s not found", r.ID)
	}
	cp := *r
	s.recipes[r.ID] = &cp
	return nil
}

// GetRecipeByID returns the recipe with the given ID, or nil.
func (s *MemoryStore) GetRecipeByID(ctx context.Context, id string) (*Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.recipes[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

// GetRecipeByTitle returns the recipe with the exact title, or nil.
func (s *MemoryStore) GetRecipeByTitle(ctx context.Context, title string) (*Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.recipes {
		if strings.EqualFold(r.Title, title) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

// GetRecipeBySlug returns the recipe with the exact slug, or nil.
func (s *MemoryStore) GetRecipeBySlug(ctx context.Context, slug string) (*Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.recipes {
		if r.Slug == slug {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

// SearchRecipes selects recipes by slug, ID, free text and taxonomy filters.
func (s *MemoryStore) SearchRecipes(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perPage := q.PerPage
	if perPage <= 0 {
		perPage = 10
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	var matched []Recipe
	for _, id := range s.order {
		r := s.recipes[id]
		if q.Slug != "" && r.Slug != q.Slug {
			continue
		}
		if q.ID != "" && r.ID != q.ID {
			continue
		}
		if q.Text != "" && !recipeMatchesText(r, q.Text) {
			continue
		}
		if !recipeMatchesFilters(r, q.Filters) {
			continue
		}
		matched = append(matched, *r)
	}

	switch q.OrderBy {
	case "prep_time":
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].PrepTime < matched[j].PrepTime
		})
	default: // newest
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	}

	total := len(matched)
	pages := (total + perPage - 1) / perPage
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return &SearchResult{
		Total:   total,
		Pages:   pages,
		Recipes: matched[start:end],
	}, nil
}

// recipeMatchesText is word-based so that multi-word queries surface
// partial matches for downstream fuzzy scoring.
func recipeMatchesText(r *Recipe, text string) bool {
	title := taxonomy.Fold(r.Title)
	var ingredientNames []string
	for _, ing := range r.Ingredients {
		ingredientNames = append(ingredientNames, taxonomy.Fold(ing.Name))
	}
	for _, word := range strings.Fields(taxonomy.Fold(text)) {
		if strings.Contains(title, word) {
			return true
		}
		for _, name := range ingredientNames {
			if strings.Contains(name, word) {
				return true
			}
		}
	}
	return false
}

func recipeMatchesFilters(r *Recipe, filters map[string][]string) bool {
	for tax, values := range filters {
		if len(values) == 0 {
			continue
		}
		assigned := r.termSlugs(tax)
		hit := false
		for _, v := range values {
			want := slugOf(v)
			for _, have := range assigned {
				if have == want {
					hit = true
					break
				}
			}
			if hit {
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func (r *Recipe) termSlugs(tax string) []string {
	switch tax {
	case TaxCuisine:
		return r.Cuisine
	case TaxDiet:
		return r.Diet
	case TaxMealType:
		return r.MealType
	case TaxDifficulty:
		return r.Difficulty
	case TaxCollection:
		return r.Collection
	default:
		return nil
	}
}

// GetOrCreateIngredient looks an ingredient up by exact title, creating it
// when unseen.
func (s *MemoryStore) GetOrCreateIngredient(ctx context.Context, title string) (*Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ing := range s.ingredients {
		if strings.EqualFold(ing.Title, title) {
			cp := *ing
			return &cp, nil
		}
	}
	ing := &Ingredient{ID: uuid.New().String(), Title: title}
	s.ingredients[ing.ID] = ing
	cp := *ing
	return &cp, nil
}

// GetIngredientByTitle returns the ingredient with the exact title, or nil.
func (s *MemoryStore) GetIngredientByTitle(ctx context.Context, title string) (*Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ing := range s.ingredients {
		if strings.EqualFold(ing.Title, title) {
			cp := *ing
			return &cp, nil
		}
	}
	return nil, nil
}

// CreateMenu persists a new menu, assigning ID, slug and timestamp.
func (s *MemoryStore) CreateMenu(ctx context.Context, m *Menu) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Slug == "" {
		m.Slug = s.uniqueMenuSlug(m.Title)
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	cp := *m
	s.menus[m.ID] = &cp
	return nil
}

// UpdateMenu replaces an existing menu.
func (s *MemoryStore) UpdateMenu(ctx context.Context, m *Menu) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.menus[m.ID]; !ok {
		return fmt.Errorf("menu %s not found", m.ID)
	}
	cp := *m
	s.menus[m.ID] = &cp
	return nil
}

// GetMenuByID returns the menu with the given ID, or nil.
func (s *MemoryStore) GetMenuByID(ctx context.Context, id string) (*Menu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.menus[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

// GetMenuBySlug returns the menu with the exact slug, or nil.
func (s *MemoryStore) GetMenuBySlug(ctx context.Context, slug string) (*Menu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.menus {
		if m.Slug == slug {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

// GetTermNames returns non-empty term names for a taxonomy, most used first.
func (s *MemoryStore) GetTermNames(ctx context.Context, taxonomy string) ([]string, error) {
	terms, err := s.GetTerms(ctx, taxonomy)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(terms))
	for _, t := range terms {
		if t.Count > 0 {
			names = append(names, t.Name)
		}
	}
	return names, nil
}

// GetTerms returns the taxonomy vocabulary with derived usage counts,
// most used first.
func (s *MemoryStore) GetTerms(ctx context.Context, tax string) ([]Term, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, r := range s.recipes {
		for _, slug := range r.termSlugs(tax) {
			counts[slug]++
		}
	}

	out := make([]Term, 0, len(s.terms[tax]))
	for _, t := range s.terms[tax] {
		t.Count = counts[t.Slug]
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out, nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
