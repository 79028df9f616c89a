package menu

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tariften-backend/internal/api/middleware"
	"tariften-backend/internal/core/generation"
	"tariften-backend/internal/core/store"
	"tariften-backend/internal/pkg/common"
)

// Handler serves menu composition and lookup.
type Handler struct {
	menus *generation.MenuService
	store store.ContentStore
}

func NewHandler(svc *generation.MenuService, st store.ContentStore) *Handler {
	return &Handler{menus: svc, store: st}
}

// ComposeRequest is the menu composition payload.
type ComposeRequest struct {
	Concept        string `json:"concept" binding:"required"`
	GuestCount     int    `json:"guest_count"`
	EventType      string `json:"event_type" binding:"required"`
	DietPreference string `json:"diet_preference"`
}

// Compose handles POST /ai/menu. The composed menu is persisted with its
// section recipes before being returned.
func (h *Handler) Compose(c *gin.Context) {
	var req ComposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.ErrInvalidRequest)
		return
	}
	identity, _ := middleware.IdentityFrom(c)

	menu, err := h.menus.ComposeMenu(c.Request.Context(), generation.MenuRequest{
		Concept:        req.Concept,
		GuestCount:     req.GuestCount,
		EventType:      req.EventType,
		DietPreference: req.DietPreference,
		AuthorID:       identity.UserID,
	})
	if err != nil {
		common.LogError("menu composition failed",
			zap.String("event_type", req.EventType), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"menu":    menu,
	})
}

// UpdateRequest is the menu editing payload.
type UpdateRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Concept     string          `json:"concept"`
	GuestCount  int             `json:"guest_count"`
	Image       string          `json:"image"`
	SEO         common.SEO      `json:"seo"`
	Sections    []store.Section `json:"sections"`
}

// Update handles PUT /menus/:id. Only the author or an admin may mutate.
// The event type is fixed at composition time; the sections may be
// retitled or have recipes swapped, but their types stay as composed.
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.ErrInvalidRequest)
		return
	}
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		respondError(c, common.ErrUnauthorized)
		return
	}

	existing, err := h.store.GetMenuByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if existing == nil {
		respondError(c, common.NewNotFoundError("menu not found: "+c.Param("id")))
		return
	}
	if existing.AuthorID != identity.UserID && !identity.IsAdmin() {
		respondError(c, common.NewAuthorizationError("only the author or an admin may update this menu"))
		return
	}

	updated := *existing
	updated.Title = req.Title
	updated.Description = req.Description
	updated.Concept = req.Concept
	updated.GuestCount = req.GuestCount
	updated.Image = req.Image
	updated.SEO = req.SEO
	if req.Sections != nil {
		updated.Sections = req.Sections
	}

	if err := h.store.UpdateMenu(c.Request.Context(), &updated); err != nil {
		common.LogError("menu update failed", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, &updated)
}

// Get handles GET /menus/:id, accepting an ID or a slug.
func (h *Handler) Get(c *gin.Context) {
	key := c.Param("id")
	m, err := h.store.GetMenuByID(c.Request.Context(), key)
	if err == nil && m == nil {
		m, err = h.store.GetMenuBySlug(c.Request.Context(), key)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if m == nil {
		respondError(c, common.NewNotFoundError("menu not found: "+key))
		return
	}
	c.JSON(http.StatusOK, m)
}

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
