package nutrition

import "sort"

// Default daily targets used when a user has not set their own.
const (
	DefaultCalorieTarget = 2000.0
	DefaultProteinTarget = 150.0
	DefaultCarbsTarget   = 200.0
	DefaultFatsTarget    = 65.0
)

// Targets holds a user's daily goal for each metric.
type Targets struct {
	Calories float64 `json:"calorie_target"`
	ProteinG float64 `json:"protein_target_g"`
	CarbsG   float64 `json:"carbs_target_g"`
	FatsG    float64 `json:"fats_target_g"`
}

// DefaultTargets returns the targets used for a profile with nothing set.
func DefaultTargets() Targets {
	return Targets{
		Calories: DefaultCalorieTarget,
		ProteinG: DefaultProteinTarget,
		CarbsG:   DefaultCarbsTarget,
		FatsG:    DefaultFatsTarget,
	}
}

// ResolveTargets fills each unset target with its default individually.
// A nil or non-positive value counts as unset.
func ResolveTargets(calories, protein, carbs, fats *float64) Targets {
	return Targets{
		Calories: orDefault(calories, DefaultCalorieTarget),
		ProteinG: orDefault(protein, DefaultProteinTarget),
		CarbsG:   orDefault(carbs, DefaultCarbsTarget),
		FatsG:    orDefault(fats, DefaultFatsTarget),
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil || *v <= 0 {
		return def
	}
	return *v
}

// DailySummary contains a summary of one day's nutrition for one user.
// Remaining values are target minus total and go negative once a target is
// exceeded.
type DailySummary struct {
	TotalCalories float64 `json:"total_calories"`
	TotalProteinG float64 `json:"total_protein_g"`
	TotalCarbsG   float64 `json:"total_carbs_g"`
	TotalFatsG    float64 `json:"total_fats_g"`

	CalorieTarget  float64 `json:"calorie_target"`
	ProteinTargetG float64 `json:"protein_target_g"`
	CarbsTargetG   float64 `json:"carbs_target_g"`
	FatsTargetG    float64 `json:"fats_target_g"`

	CalorieRemaining  float64 `json:"calorie_remaining"`
	ProteinRemainingG float64 `json:"protein_remaining_g"`
	CarbsRemainingG   float64 `json:"carbs_remaining_g"`
	FatsRemainingG    float64 `json:"fats_remaining_g"`
}

// Totals returns the summed macros.
func (s DailySummary) Totals() Macros {
	return Macros{
		Calories: s.TotalCalories,
		ProteinG: s.TotalProteinG,
		CarbsG:   s.TotalCarbsG,
		FatsG:    s.TotalFatsG,
	}
}

// Targets returns the targets echoed into the summary.
func (s DailySummary) Targets() Targets {
	return Targets{
		Calories: s.CalorieTarget,
		ProteinG: s.ProteinTargetG,
		CarbsG:   s.CarbsTargetG,
		FatsG:    s.FatsTargetG,
	}
}

// ComputeDailySummary sums the contributions of logs and compares them with
// targets. The logs are assumed to already belong to a single date.
func ComputeDailySummary[C Contributor](logs []C, targets Targets) DailySummary {
	total := SumMacros(logs)

	return DailySummary{
		TotalCalories: total.Calories,
		TotalProteinG: total.ProteinG,
		TotalCarbsG:   total.CarbsG,
		TotalFatsG:    total.FatsG,

		CalorieTarget:  targets.Calories,
		ProteinTargetG: targets.ProteinG,
		CarbsTargetG:   targets.CarbsG,
		FatsTargetG:    targets.FatsG,

		CalorieRemaining:  targets.Calories - total.Calories,
		ProteinRemainingG: targets.ProteinG - total.ProteinG,
		CarbsRemainingG:   targets.CarbsG - total.CarbsG,
		FatsRemainingG:    targets.FatsG - total.FatsG,
	}
}

// SumMacros adds up the contributions of logs using compensated summation, so
// the result does not drift with the order of the input.
func SumMacros[C Contributor](logs []C) Macros {
	var cal, protein, carbs, fats kahan
	for _, l := range logs {
		m := l.Contribution()
		cal.add(m.Calories)
		protein.add(m.ProteinG)
		carbs.add(m.CarbsG)
		fats.add(m.FatsG)
	}
	return Macros{
		Calories: cal.sum(),
		ProteinG: protein.sum(),
		CarbsG:   carbs.sum(),
		FatsG:    fats.sum(),
	}
}

// kahan is a Neumaier compensated accumulator.
type kahan struct {
	s, c float64
}

func (k *kahan) add(v float64) {
	t := k.s + v
	if abs(k.s) >= abs(v) {
		k.c += (k.s - t) + v
	} else {
		k.c += (v - t) + k.s
	}
	k.s = t
}

func (k *kahan) sum() float64 {
	return k.s + k.c
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// DayTotals is one row of a range summary.
type DayTotals struct {
	Date          string  `json:"date"`
	TotalCalories float64 `json:"total_calories"`
	TotalProteinG float64 `json:"total_protein_g"`
	TotalCarbsG   float64 `json:"total_carbs_g"`
	TotalFatsG    float64 `json:"total_fats_g"`
	MealCount     int     `json:"meal_count"`
}

// RangeSummary holds per-day totals and their averages.
type RangeSummary struct {
	DailySummaries []DayTotals         `json:"daily_summaries"`
	Averages       map[string]float64 `json:"averages"`
}

// Dated is a contribution bound to a calendar date (YYYY-MM-DD).
type Dated interface {
	Contributor
	Day() string
}

// ComputeRangeSummary groups logs by date, sorted ascending, and averages the
// totals over the days that have at least one log.
func ComputeRangeSummary[D Dated](logs []D) RangeSummary {
	byDay := make(map[string][]D)
	for _, l := range logs {
		byDay[l.Day()] = append(byDay[l.Day()], l)
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)

	out := RangeSummary{
		DailySummaries: make([]DayTotals, 0, len(days)),
		Averages: map[string]float64{
			"calories":  0,
			"protein_g": 0,
			"carbs_g":   0,
			"fats_g":    0,
		},
	}

	var sum Macros
	for _, d := range days {
		t := SumMacros(byDay[d])
		sum = sum.Add(t)
		out.DailySummaries = append(out.DailySummaries, DayTotals{
			Date:          d,
			TotalCalories: t.Calories,
			TotalProteinG: t.ProteinG,
			TotalCarbsG:   t.CarbsG,
			TotalFatsG:    t.FatsG,
			MealCount:     len(byDay[d]),
		})
	}

	if n := float64(len(days)); n > 0 {
		out.Averages["calories"] = sum.Calories / n
		out.Averages["protein_g"] = sum.ProteinG / n
		out.Averages["carbs_g"] = sum.CarbsG / n
		out.Averages["fats_g"] = sum.FatsG / n
	}
	return out
}
