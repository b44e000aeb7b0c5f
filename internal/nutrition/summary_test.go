package nutrition

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	m    Macros
	meal MealType
	day  string
}

func (e entry) Contribution() Macros { return e.m }
func (e entry) Meal() MealType       { return e.meal }
func (e entry) Day() string          { return e.day }

func TestComputeDailySummaryScenario(t *testing.T) {
	logs := []entry{
		{m: Macros{Calories: 500, ProteinG: 30, CarbsG: 50, FatsG: 10}},
		{m: Macros{Calories: 700, ProteinG: 40, CarbsG: 80, FatsG: 20}},
	}
	targets := Targets{Calories: 2000, ProteinG: 150, CarbsG: 200, FatsG: 65}

	got := ComputeDailySummary(logs, targets)

	assert.Equal(t, DailySummary{
		TotalCalories:     1200,
		TotalProteinG:     70,
		TotalCarbsG:       130,
		TotalFatsG:        30,
		CalorieTarget:     2000,
		ProteinTargetG:    150,
		CarbsTargetG:      200,
		FatsTargetG:       65,
		CalorieRemaining:  800,
		ProteinRemainingG: 80,
		CarbsRemainingG:   70,
		FatsRemainingG:    35,
	}, got)
}

func TestComputeDailySummaryEmpty(t *testing.T) {
	targets := DefaultTargets()
	got := ComputeDailySummary([]entry{}, targets)

	assert.Zero(t, got.TotalCalories)
	assert.Zero(t, got.TotalProteinG)
	assert.Zero(t, got.TotalCarbsG)
	assert.Zero(t, got.TotalFatsG)
	assert.Equal(t, targets, got.Targets())
	assert.Equal(t, 2000.0, got.CalorieRemaining)
	assert.Equal(t, 150.0, got.ProteinRemainingG)
	assert.Equal(t, 200.0, got.CarbsRemainingG)
	assert.Equal(t, 65.0, got.FatsRemainingG)
}

func TestComputeDailySummaryOverTargetIsNegative(t *testing.T) {
	logs := []entry{{m: Macros{Calories: 2500, ProteinG: 160, CarbsG: 90, FatsG: 100}}}
	got := ComputeDailySummary(logs, DefaultTargets())

	assert.Equal(t, -500.0, got.CalorieRemaining)
	assert.Equal(t, -10.0, got.ProteinRemainingG)
	assert.Equal(t, 110.0, got.CarbsRemainingG)
	assert.Equal(t, -35.0, got.FatsRemainingG)
}

func TestComputeDailySummaryProperties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 0; n < 50; n++ {
		logs := make([]entry, r.Intn(40))
		var want Macros
		for i := range logs {
			m := Macros{
				Calories: r.Float64() * 900,
				ProteinG: r.Float64() * 60,
				CarbsG:   r.Float64() * 120,
				FatsG:    r.Float64() * 40,
			}
			logs[i] = entry{m: m}
			want = want.Add(m)
		}
		targets := Targets{
			Calories: r.Float64() * 3000,
			ProteinG: r.Float64() * 200,
			CarbsG:   r.Float64() * 300,
			FatsG:    r.Float64() * 90,
		}

		got := ComputeDailySummary(logs, targets)
		assert.InDelta(t, want.Calories, got.TotalCalories, 1e-6)
		assert.InDelta(t, want.ProteinG, got.TotalProteinG, 1e-6)
		assert.InDelta(t, want.CarbsG, got.TotalCarbsG, 1e-6)
		assert.InDelta(t, want.FatsG, got.TotalFatsG, 1e-6)

		assert.Equal(t, targets.Calories-got.TotalCalories, got.CalorieRemaining)
		assert.Equal(t, targets.ProteinG-got.TotalProteinG, got.ProteinRemainingG)
		assert.Equal(t, targets.CarbsG-got.TotalCarbsG, got.CarbsRemainingG)
		assert.Equal(t, targets.FatsG-got.TotalFatsG, got.FatsRemainingG)

		assert.Equal(t, got, ComputeDailySummary(logs, targets))

		shuffled := append([]entry(nil), logs...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.InDelta(t, got.TotalCalories, ComputeDailySummary(shuffled, targets).TotalCalories, 1e-9)
	}
}

func TestResolveTargets(t *testing.T) {
	cal := 1800.0
	zero := 0.0
	got := ResolveTargets(&cal, nil, &zero, nil)

	assert.Equal(t, Targets{Calories: 1800, ProteinG: 150, CarbsG: 200, FatsG: 65}, got)
	assert.Equal(t, DefaultTargets(), ResolveTargets(nil, nil, nil, nil))
}

func TestComputeRangeSummary(t *testing.T) {
	logs := []entry{
		{m: Macros{Calories: 300, ProteinG: 10}, day: "2024-03-02"},
		{m: Macros{Calories: 500, ProteinG: 20}, day: "2024-03-01"},
		{m: Macros{Calories: 100, ProteinG: 30}, day: "2024-03-02"},
	}

	got := ComputeRangeSummary(logs)

	require.Len(t, got.DailySummaries, 2)
	assert.Equal(t, "2024-03-01", got.DailySummaries[0].Date)
	assert.Equal(t, 1, got.DailySummaries[0].MealCount)
	assert.Equal(t, "2024-03-02", got.DailySummaries[1].Date)
	assert.Equal(t, 400.0, got.DailySummaries[1].TotalCalories)
	assert.Equal(t, 2, got.DailySummaries[1].MealCount)
	assert.Equal(t, 450.0, got.Averages["calories"])
	assert.Equal(t, 30.0, got.Averages["protein_g"])
}

func TestComputeRangeSummaryEmpty(t *testing.T) {
	got := ComputeRangeSummary([]entry{})
	assert.Empty(t, got.DailySummaries)
	assert.Zero(t, got.Averages["calories"])
}

func TestParseMealType(t *testing.T) {
	m, err := ParseMealType(" Dinner ")
	require.NoError(t, err)
	assert.Equal(t, MealTypeDinner, m)

	_, err = ParseMealType("brunch")
	assert.Error(t, err)
}
