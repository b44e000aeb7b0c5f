package nutrition

import (
	"fmt"
	"math"
)

// Percent is the progress bar fill for total against target, capped at 100.
func Percent(total, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Min(total/target*100, 100)
}

// Progress is one metric's row in a rendered summary.
type Progress struct {
	Name      string
	Unit      string
	Total     float64
	Target    float64
	Remaining float64
	Percent   float64
	Over      bool
}

// Label renders the remaining amount, e.g. "800 remaining" or "35g over".
// Amounts that round to zero read as "0 remaining".
func (p Progress) Label() string {
	r := math.Round(p.Remaining)
	if r >= 0 {
		return fmt.Sprintf("%.0f%s remaining", math.Abs(r), p.Unit)
	}
	return fmt.Sprintf("%.0f%s over", -r, p.Unit)
}

// Progress returns display rows for calories, protein, carbs and fats.
func (s DailySummary) Progress() []Progress {
	row := func(name, unit string, total, target, remaining float64) Progress {
		return Progress{
			Name:      name,
			Unit:      unit,
			Total:     total,
			Target:    target,
			Remaining: remaining,
			Percent:   Percent(total, target),
			Over:      remaining < 0,
		}
	}
	return []Progress{
		row("Calories", "", s.TotalCalories, s.CalorieTarget, s.CalorieRemaining),
		row("Protein", "g", s.TotalProteinG, s.ProteinTargetG, s.ProteinRemainingG),
		row("Carbs", "g", s.TotalCarbsG, s.CarbsTargetG, s.CarbsRemainingG),
		row("Fats", "g", s.TotalFatsG, s.FatsTargetG, s.FatsRemainingG),
	}
}

// MealGroup is one section of the grouped meal view.
type MealGroup[L any] struct {
	MealType MealType
	Entries  []L
}

// GroupByMealType buckets logs by meal type in breakfast, lunch, dinner,
// snack order. Meal types with no logs are left out and entries keep their
// input order. Logs with an unknown meal type are dropped.
func GroupByMealType[L MealTyped](logs []L) []MealGroup[L] {
	buckets := make([][]L, len(MealTypeOrder))
	for _, l := range logs {
		if r := l.Meal().rank(); r >= 0 {
			buckets[r] = append(buckets[r], l)
		}
	}

	groups := make([]MealGroup[L], 0, len(MealTypeOrder))
	for i, entries := range buckets {
		if len(entries) == 0 {
			continue
		}
		groups = append(groups, MealGroup[L]{MealType: MealTypeOrder[i], Entries: entries})
	}
	return groups
}
