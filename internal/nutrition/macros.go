// Package nutrition holds the meal planner's nutrition model: daily summaries
// against targets, recipe nutrition, serving scaling and the display rules
// used for progress bars. Everything here is pure and performs no I/O.
package nutrition

import (
	"fmt"
	"strings"
)

// MealType represents the type of meal.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// MealTypeOrder is the fixed display order of meal types.
var MealTypeOrder = []MealType{
	MealTypeBreakfast,
	MealTypeLunch,
	MealTypeDinner,
	MealTypeSnack,
}

// Valid reports whether m is one of the known meal types.
func (m MealType) Valid() bool {
	return m.rank() >= 0
}

func (m MealType) rank() int {
	for i, t := range MealTypeOrder {
		if t == m {
			return i
		}
	}
	return -1
}

// ParseMealType parses a meal type case-insensitively.
func ParseMealType(s string) (MealType, error) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("invalid meal type %q: must be one of breakfast, lunch, dinner, snack", s)
	}
	return m, nil
}

// Macros is the four-metric nutrition snapshot carried by a meal log.
type Macros struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
}

// Add returns the field-wise sum of m and o.
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		ProteinG: m.ProteinG + o.ProteinG,
		CarbsG:   m.CarbsG + o.CarbsG,
		FatsG:    m.FatsG + o.FatsG,
	}
}

// Scale multiplies every field by factor.
func (m Macros) Scale(factor float64) Macros {
	return Macros{
		Calories: m.Calories * factor,
		ProteinG: m.ProteinG * factor,
		CarbsG:   m.CarbsG * factor,
		FatsG:    m.FatsG * factor,
	}
}

// Contribution lets a bare snapshot be summed like a logged meal.
func (m Macros) Contribution() Macros { return m }

// Contributor is anything that contributes a macro snapshot to a daily total,
// typically a logged meal.
type Contributor interface {
	Contribution() Macros
}

// MealTyped is anything that belongs to a meal type section.
type MealTyped interface {
	Meal() MealType
}
