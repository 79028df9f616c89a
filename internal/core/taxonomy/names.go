// Package taxonomy folds and slugifies term names and validates
// model-proposed terms against an allowed vocabulary.
package taxonomy

// Taxonomy names shared by the store and the validation tables.
const (
	Cuisine    = "cuisine"
	Diet       = "diet"
	MealType   = "meal_type"
	Difficulty = "difficulty"
	Collection = "collection"
)
