package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tariften-backend/internal/core/generation"
	"tariften-backend/internal/pkg/common"
)

// GenerateHandler serves AI recipe generation.
type GenerateHandler struct {
	recipes *generation.RecipeService
}

func NewGenerateHandler(svc *generation.RecipeService) *GenerateHandler {
	return &GenerateHandler{recipes: svc}
}

// GenerateRequest is the AI generation payload. PromptType selects the
// ingredient-intent sub-mode and defaults to rescue.
type GenerateRequest struct {
	Input      string `json:"input" binding:"required"`
	PromptType string `json:"prompt_type"`
}

// Generate handles POST /ai/recipe. The result is a draft; the caller
// decides whether to persist it through the authoring endpoint.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.ErrInvalidRequest)
		return
	}

	pt := generation.PromptType(req.PromptType)
	switch pt {
	case generation.PromptRescue, generation.PromptPlan, generation.PromptSuggest:
	default:
		pt = generation.PromptRescue
	}

	recipe, err := h.recipes.Generate(c.Request.Context(), req.Input, pt, false)
	if err != nil {
		common.LogError("recipe generation failed",
			zap.String("input", req.Input), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"recipe":  recipe,
	})
}
