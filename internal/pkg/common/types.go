package common

// SEO is the search metadata block carried by recipes and menus.
type SEO struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	FocusKeywords string `json:"focus_keywords,omitempty"`
}

// IngredientRef is one line of a recipe's ingredient list. IngredientID
// points into the ingredient vocabulary once the recipe is persisted.
type IngredientRef struct {
	IngredientID string `json:"ingredient_id,omitempty"`
	Name         string `json:"name"`
	Amount       string `json:"amount"`
	Unit         string `json:"unit"`
}

// Identity is the authenticated caller, extracted from the bearer token.
type Identity struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the caller holds the administrator role.
func (id Identity) IsAdmin() bool {
	return id.Role == "admin"
}
