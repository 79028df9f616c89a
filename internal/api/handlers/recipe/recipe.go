package recipe

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tariften-backend/internal/api/middleware"
	"tariften-backend/internal/core/imagesearch"
	"tariften-backend/internal/core/store"
	"tariften-backend/internal/pkg/common"
)

// Handler serves recipe CRUD and search.
type Handler struct {
	store store.ContentStore
}

func NewHandler(st store.ContentStore) *Handler {
	return &Handler{store: st}
}

// RecipeRequest is the authoring payload for create and update.
type RecipeRequest struct {
	Title         string                 `json:"title" binding:"required"`
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
	ChefTip       string                 `json:"chef_tip"`
	ServingWeight string                 `json:"serving_weight"`
}

// Search handles GET /recipes with slug, id, free-text and taxonomy
// filters.
func (h *Handler) Search(c *gin.Context) {
	q := store.SearchQuery{
		Slug:    c.Query("slug"),
		ID:      c.Query("id"),
		Text:    c.Query("search"),
		OrderBy: c.Query("orderby"),
		Filters: map[string][]string{},
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		q.Page = page
	}
	if perPage, err := strconv.Atoi(c.Query("per_page")); err == nil {
		q.PerPage = perPage
	}
	for _, tax := range store.Taxonomies {
		if v := c.Query(tax); v != "" {
			q.Filters[tax] = strings.Split(v, ",")
		}
	}

	result, err := h.store.SearchRecipes(c.Request.Context(), q)
	if err != nil {
		common.LogError("recipe search failed", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":   result.Total,
		"pages":   result.Pages,
		"recipes": result.Recipes,
	})
}

// Get handles GET /recipes/:id, accepting an ID or a slug.
func (h *Handler) Get(c *gin.Context) {
	key := c.Param("id")
	r, err := h.store.GetRecipeByID(c.Request.Context(), key)
	if err == nil && r == nil {
		r, err = h.store.GetRecipeBySlug(c.Request.Context(), key)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if r == nil {
		respondError(c, common.NewNotFoundError("recipe not found: "+key))
		return
	}
	c.JSON(http.StatusOK, r)
}

// Create handles POST /recipes. The authenticated caller becomes the
// author; every ingredient name is registered in the ingredient
// vocabulary.
func (h *Handler) Create(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.ErrInvalidRequest)
		return
	}
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		respondError(c, common.ErrUnauthorized)
		return
	}

	recipe := requestToRecipe(&req)
	recipe.AuthorID = identity.UserID
	applySEOFallback(recipe)
	h.registerIngredients(c, recipe)

	if err := h.store.CreateRecipe(c.Request.Context(), recipe); err != nil {
		common.LogError("recipe create failed", zap.Error(err))
		respondError(c, err)
		return
	}
	common.LogInfo("recipe created",
		zap.String("id", recipe.ID), zap.String("slug", recipe.Slug))
	c.JSON(http.StatusCreated, recipe)
}

// Update handles PUT /recipes/:id. Only the author or an admin may
// mutate.
func (h *Handler) Update(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.ErrInvalidRequest)
		return
	}
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		respondError(c, common.ErrUnauthorized)
		return
	}

	existing, err := h.store.GetRecipeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if existing == nil {
		respondError(c, common.NewNotFoundError("recipe not found: "+c.Param("id")))
		return
	}
	if existing.AuthorID != identity.UserID && !identity.IsAdmin() {
		respondError(c, common.NewAuthorizationError("only the author or an admin may update this recipe"))
		return
	}

	updated := requestToRecipe(&req)
	updated.ID = existing.ID
	updated.Slug = existing.Slug
	updated.AuthorID = existing.AuthorID
	updated.CreatedAt = existing.CreatedAt
	applySEOFallback(updated)
	h.registerIngredients(c, updated)

	if err := h.store.UpdateRecipe(c.Request.Context(), updated); err != nil {
		common.LogError("recipe update failed", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func requestToRecipe(req *RecipeRequest) *store.Recipe {
	image := strings.TrimSpace(req.Image)
	if image == "" {
		image = imagesearch.Placeholder(req.Title)
	}
	return &store.Recipe{
		Title:         strings.TrimSpace(req.Title),
		Excerpt:       req.Excerpt,
		Image:         image,
		PrepTime:      req.PrepTime,
		CookTime:      req.CookTime,
		Calories:      req.Calories,
		Servings:      req.Servings,
		Steps:         req.Steps,
		Ingredients:   req.Ingredients,
		Cuisine:       req.Cuisine,
		Diet:          req.Diet,
		MealType:      req.MealType,
		Difficulty:    req.Difficulty,
		Collection:    req.Collection,
		SEO:           req.SEO,
		ChefTip:       req.ChefTip,
		ServingWeight: req.ServingWeight,
	}
}

// applySEOFallback derives SEO metadata from the recipe body when the
// author supplied none.
func applySEOFallback(r *store.Recipe) {
	if r.SEO.Title == "" {
		r.SEO.Title = r.Title + " Tarifi"
	}
	if r.SEO.Description == "" && r.Excerpt != "" {
		r.SEO.Description = r.Excerpt
	}
	if r.SEO.FocusKeywords == "" {
		r.SEO.FocusKeywords = strings.ToLower(r.Title)
	}
}

// registerIngredients get-or-creates every named ingredient and links its
// ID on the reference.
func (h *Handler) registerIngredients(c *gin.Context, r *store.Recipe) {
	for i := range r.Ingredients {
		name := strings.TrimSpace(r.Ingredients[i].Name)
		if name == "" {
			continue
		}
		ing, err := h.store.GetOrCreateIngredient(c.Request.Context(), name)
		if err != nil {
			common.LogWarn("ingredient registration failed",
				zap.String("name", name), zap.Error(err))
			continue
		}
		r.Ingredients[i].IngredientID = ing.ID
	}
}

// respondError maps a CustomError to its HTTP status, defaulting to 500.
func respondError(c *gin.Context, err error) {
	var ce *common.CustomError
	if errors.As(err, &ce) {
		c.JSON(ce.Status, common.ErrorResponse{Code: ce.Code, Message: ce.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Code:    common.ErrCodeInternalError,
		Message: "internal server error",
	})
}
