package nutrition

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidLoggedItem is returned when a meal log references neither or both
// of a food and a recipe.
var ErrInvalidLoggedItem = errors.New("exactly one of food_id or recipe_id must be provided")

type itemKind int

const (
	itemFood itemKind = iota + 1
	itemRecipe
)

// LoggedItem is what a meal log refers to: either a food or a recipe. The zero
// value is not a valid item; use FoodItem or RecipeItem.
type LoggedItem struct {
	kind itemKind
	id   uuid.UUID
}

// FoodItem refers to a food.
func FoodItem(id uuid.UUID) LoggedItem {
	return LoggedItem{kind: itemFood, id: id}
}

// RecipeItem refers to a recipe; the logged quantity counts servings.
func RecipeItem(id uuid.UUID) LoggedItem {
	return LoggedItem{kind: itemRecipe, id: id}
}

// ItemFromRefs builds a LoggedItem out of the two optional references used on
// the wire and in storage.
func ItemFromRefs(foodID, recipeID *uuid.UUID) (LoggedItem, error) {
	switch {
	case foodID != nil && recipeID != nil:
		return LoggedItem{}, ErrInvalidLoggedItem
	case foodID != nil:
		return FoodItem(*foodID), nil
	case recipeID != nil:
		return RecipeItem(*recipeID), nil
	default:
		return LoggedItem{}, ErrInvalidLoggedItem
	}
}

// IsFood reports whether the item is a food.
func (i LoggedItem) IsFood() bool { return i.kind == itemFood }

// IsRecipe reports whether the item is a recipe.
func (i LoggedItem) IsRecipe() bool { return i.kind == itemRecipe }

// ID returns the referenced food or recipe id.
func (i LoggedItem) ID() uuid.UUID { return i.id }

// Refs splits the item back into the optional references.
func (i LoggedItem) Refs() (foodID, recipeID *uuid.UUID) {
	id := i.id
	switch i.kind {
	case itemFood:
		return &id, nil
	case itemRecipe:
		return nil, &id
	}
	return nil, nil
}
