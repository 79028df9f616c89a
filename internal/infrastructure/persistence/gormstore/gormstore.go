// Package gormstore persists recipes, menus, ingredients and taxonomy
// terms in SQLite through GORM. Slice and struct fields are stored as JSON
// columns.
package gormstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tariften-backend/internal/core/store"
	"tariften-backend/internal/core/taxonomy"
	"tariften-backend/internal/pkg/common"
)

type recipeRow struct {
	ID            string `gorm:"primaryKey"`
	Title         string `gorm:"index"`
	Slug          string `gorm:"uniqueIndex"`
	Excerpt       string
	Image         string
	PrepTime      int
	CookTime      int
	Calories      int
	Servings      int
	Steps         string // JSON array
	Ingredients   string // JSON array
	Cuisine       string // JSON array of slugs
	Diet          string
	MealType      string
	Difficulty    string
	Collection    string
	SEO           string // JSON object
	ChefTip       string
	ServingWeight string
	AuthorID      string
	CreatedAt     time.Time
}

func (recipeRow) TableName() string { return "recipes" }

type menuRow struct {
	ID          string `gorm:"primaryKey"`
	Title       string
	Slug        string `gorm:"uniqueIndex"`
	Description string
	Concept     string
	GuestCount  int
	EventType   string
	Image       string
	SEO         string // JSON object
	Sections    string // JSON array
	AuthorID    string
	CreatedAt   time.Time
}

func (menuRow) TableName() string { return "menus" }

type ingredientRow struct {
	ID    string `gorm:"primaryKey"`
	Title string `gorm:"uniqueIndex"`
}

func (ingredientRow) TableName() string { return "ingredients" }

type termRow struct {
	Taxonomy string `gorm:"primaryKey"`
	Slug     string `gorm:"primaryKey"`
	Name     string
}

func (termRow) TableName() string { return "terms" }

// Store is the SQLite-backed ContentStore.
type Store struct {
	db *gorm.DB
}

// Open opens or creates the SQLite database at path and migrates the
// schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.AutoMigrate(&recipeRow{}, &menuRow{}, &ingredientRow{}, &termRow{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// SeedTerms inserts taxonomy vocabulary, skipping slugs already present.
func (s *Store) SeedTerms(tax string, names ...string) error {
	for _, name := range names {
		row := termRow{Taxonomy: tax, Slug: taxonomy.Slugify(name), Name: name}
		err := s.db.Where("taxonomy = ? AND slug = ?", row.Taxonomy, row.Slug).
			FirstOrCreate(&termRow{}, row).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func toRecipeRow(r *store.Recipe) *recipeRow {
	return &recipeRow{
		ID:            r.ID,
		Title:         r.Title,
		Slug:          r.Slug,
		Excerpt:       r.Excerpt,
		Image:         r.Image,
		PrepTime:      r.PrepTime,
		CookTime:      r.CookTime,
		Calories:      r.Calories,
		Servings:      r.Servings,
		Steps:         mustJSON(r.Steps),
		Ingredients:   mustJSON(r.Ingredients),
		Cuisine:       mustJSON(r.Cuisine),
		Diet:          mustJSON(r.Diet),
		MealType:      mustJSON(r.MealType),
		Difficulty:    mustJSON(r.Difficulty),
		Collection:    mustJSON(r.Collection),
		SEO:           mustJSON(r.SEO),
		ChefTip:       r.ChefTip,
		ServingWeight: r.ServingWeight,
		AuthorID:      r.AuthorID,
		CreatedAt:     r.CreatedAt,
	}
}

func fromRecipeRow(row *recipeRow) *store.Recipe {
	r := &store.Recipe{
		ID:            row.ID,
		Title:         row.Title,
		Slug:          row.Slug,
		Excerpt:       row.Excerpt,
		Image:         row.Image,
		PrepTime:      row.PrepTime,
		CookTime:      row.CookTime,
		Calories:      row.Calories,
		Servings:      row.Servings,
		ChefTip:       row.ChefTip,
		ServingWeight: row.ServingWeight,
		AuthorID:      row.AuthorID,
		CreatedAt:     row.CreatedAt,
	}
	_ = json.Unmarshal([]byte(row.Steps), &r.Steps)
	_ = json.Unmarshal([]byte(row.Ingredients), &r.Ingredients)
	_ = json.Unmarshal([]byte(row.Cuisine), &r.Cuisine)
	_ = json.Unmarshal([]byte(row.Diet), &r.Diet)
	_ = json.Unmarshal([]byte(row.MealType), &r.MealType)
	_ = json.Unmarshal([]byte(row.Difficulty), &r.Difficulty)
	_ = json.Unmarshal([]byte(row.Collection), &r.Collection)
	_ = json.Unmarshal([]byte(row.SEO), &r.SEO)
	return r
}

func toMenuRow(m *store.Menu) *menuRow {
	return &menuRow{
		ID:          m.ID,
		Title:       m.Title,
		Slug:        m.Slug,
		Description: m.Description,
		Concept:     m.Concept,
		GuestCount:  m.GuestCount,
		EventType:   m.EventType,
		Image:       m.Image,
		SEO:         mustJSON(m.SEO),
		Sections:    mustJSON(m.Sections),
		AuthorID:    m.AuthorID,
		CreatedAt:   m.CreatedAt,
	}
}

func fromMenuRow(row *menuRow) *store.Menu {
	m := &store.Menu{
		ID:          row.ID,
		Title:       row.Title,
		Slug:        row.Slug,
		Description: row.Description,
		Concept:     row.Concept,
		GuestCount:  row.GuestCount,
		EventType:   row.EventType,
		Image:       row.Image,
		AuthorID:    row.AuthorID,
		CreatedAt:   row.CreatedAt,
	}
	_ = json.Unmarshal([]byte(row.SEO), &m.SEO)
	_ = json.Unmarshal([]byte(row.Sections), &m.Sections)
	return m
}

func (s *Store) uniqueSlug(table, title, fallback string) (string, error) {
	base := taxonomy.Slugify(title)
	if base == "" {
		base = fallback
	}
	slug := base
	for i := 2; ; i++ {
		var count int64
		if err := s.db.Table(table).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// CreateRecipe persists a new recipe, assigning ID, slug and timestamp.
func (s *Store) CreateRecipe(ctx context.Context, r *store.Recipe) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Slug == "" {
		slug, err := s.uniqueSlug("recipes", r.Title, "tarif")
		if err != nil {
			return err
		}
		r.Slug = slug
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(toRecipeRow(r)).Error
}

// UpdateRecipe replaces an existing recipe row.
func (s *Store) UpdateRecipe(ctx context.Context, r *store.Recipe) error {
	res := s.db.WithContext(ctx).Where("id = ?", r.ID).Save(toRecipeRow(r))
	if res.Error != nil {
		return res.Error
	}
	return nil
}

func (s *Store) findRecipe(ctx context.Context, query string, args ...interface{}) (*store.Recipe, error) {
	var row recipeRow
	err := s.db.WithContext(ctx).Where(query, args...).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fromRecipeRow(&row), nil
}

func (s *Store) GetRecipeByID(ctx context.Context, id string) (*store.Recipe, error) {
	return s.findRecipe(ctx, "id = ?", id)
}

func (s *Store) GetRecipeByTitle(ctx context.Context, title string) (*store.Recipe, error) {
	return s.findRecipe(ctx, "title = ? COLLATE NOCASE", title)
}

func (s *Store) GetRecipeBySlug(ctx context.Context, slug string) (*store.Recipe, error) {
	return s.findRecipe(ctx, "slug = ?", slug)
}

// SearchRecipes selects recipes by slug, ID, free text and taxonomy
// filters. Taxonomy filters match against the JSON slug columns.
func (s *Store) SearchRecipes(ctx context.Context, q store.SearchQuery) (*store.SearchResult, error) {
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = 10
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	tx := s.db.WithContext(ctx).Model(&recipeRow{})
	if q.Slug != "" {
		tx = tx.Where("slug = ?", q.Slug)
	}
	if q.ID != "" {
		tx = tx.Where("id = ?", q.ID)
	}
	if q.Text != "" {
		// Word-based so multi-word queries surface partial matches for
		// downstream fuzzy scoring.
		var clauses []string
		var args []interface{}
		for _, word := range strings.Fields(taxonomy.Fold(q.Text)) {
			like := "%" + word + "%"
			clauses = append(clauses, "lower(title) LIKE ? OR lower(ingredients) LIKE ?")
			args = append(args, like, like)
		}
		if len(clauses) > 0 {
			tx = tx.Where(strings.Join(clauses, " OR "), args...)
		}
	}
	for tax, values := range q.Filters {
		if len(values) == 0 {
			continue
		}
		col, ok := taxonomyColumn(tax)
		if !ok {
			continue
		}
		var clauses []string
		var args []interface{}
		for _, v := range values {
			clauses = append(clauses, col+" LIKE ?")
			args = append(args, `%"`+taxonomy.Slugify(v)+`"%`)
		}
		tx = tx.Where(strings.Join(clauses, " OR "), args...)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	switch q.OrderBy {
	case "prep_time":
		tx = tx.Order("prep_time ASC")
	default:
		tx = tx.Order("created_at DESC")
	}

	var rows []recipeRow
	if err := tx.Offset((page - 1) * perPage).Limit(perPage).Find(&rows).Error; err != nil {
		return nil, err
	}

	recipes := make([]store.Recipe, 0, len(rows))
	for i := range rows {
		recipes = append(recipes, *fromRecipeRow(&rows[i]))
	}
	return &store.SearchResult{
		Total:   int(total),
		Pages:   int((total + int64(perPage) - 1) / int64(perPage)),
		Recipes: recipes,
	}, nil
}

func taxonomyColumn(tax string) (string, bool) {
	switch tax {
	case store.TaxCuisine:
		return "cuisine", true
	case store.TaxDiet:
		return "diet", true
	case store.TaxMealType:
		return "meal_type", true
	case store.TaxDifficulty:
		return "difficulty", true
	case store.TaxCollection:
		return "collection", true
	default:
		return "", false
	}
}

// GetOrCreateIngredient looks an ingredient up by exact title, creating it
// when unseen.
func (s *Store) GetOrCreateIngredient(ctx context.Context, title string) (*store.Ingredient, error) {
	ing, err := s.GetIngredientByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if ing != nil {
		return ing, nil
	}
	row := ingredientRow{ID: uuid.New().String(), Title: title}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &store.Ingredient{ID: row.ID, Title: row.Title}, nil
}

func (s *Store) GetIngredientByTitle(ctx context.Context, title string) (*store.Ingredient, error) {
	var row ingredientRow
	err := s.db.WithContext(ctx).Where("title = ? COLLATE NOCASE", title).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &store.Ingredient{ID: row.ID, Title: row.Title}, nil
}

// CreateMenu persists a new menu, assigning ID, slug and timestamp.
func (s *Store) CreateMenu(ctx context.Context, m *store.Menu) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Slug == "" {
		slug, err := s.uniqueSlug("menus", m.Title, "menu")
		if err != nil {
			return err
		}
		m.Slug = slug
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(toMenuRow(m)).Error
}

// UpdateMenu replaces an existing menu row.
func (s *Store) UpdateMenu(ctx context.Context, m *store.Menu) error {
	return s.db.WithContext(ctx).Where("id = ?", m.ID).Save(toMenuRow(m)).Error
}

func (s *Store) GetMenuByID(ctx context.Context, id string) (*store.Menu, error) {
	var row menuRow
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fromMenuRow(&row), nil
}

func (s *Store) GetMenuBySlug(ctx context.Context, slug string) (*store.Menu, error) {
	var row menuRow
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fromMenuRow(&row), nil
}

// GetTermNames returns non-empty term names for a taxonomy, most used
// first.
func (s *Store) GetTermNames(ctx context.Context, tax string) ([]string, error) {
	terms, err := s.GetTerms(ctx, tax)
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

// GetTerms returns the taxonomy vocabulary with usage counts derived from
// recipe assignments, most used first.
func (s *Store) GetTerms(ctx context.Context, tax string) ([]store.Term, error) {
	var rows []termRow
	if err := s.db.WithContext(ctx).Where("taxonomy = ?", tax).Find(&rows).Error; err != nil {
		return nil, err
	}
	col, ok := taxonomyColumn(tax)
	if !ok {
		return nil, common.NewValidationError(fmt.Sprintf("unknown taxonomy %q", tax))
	}

	out := make([]store.Term, 0, len(rows))
	for _, row := range rows {
		var count int64
		err := s.db.WithContext(ctx).Model(&recipeRow{}).
			Where(col+" LIKE ?", `%"`+row.Slug+`"%`).Count(&count).Error
		if err != nil {
			return nil, err
		}
		out = append(out, store.Term{Name: row.Name, Slug: row.Slug, Count: int(count)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

// Ping checks the underlying database connection.
func (s *Store) Ping(ctx context.Context) error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}
