package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByMealType(t *testing.T) {
	logs := []entry{
		{meal: MealTypeSnack, m: Macros{Calories: 1}},
		{meal: MealTypeBreakfast, m: Macros{Calories: 2}},
		{meal: MealTypeSnack, m: Macros{Calories: 3}},
		{meal: MealTypeDinner, m: Macros{Calories: 4}},
	}

	groups := GroupByMealType(logs)

	require.Len(t, groups, 3)
	assert.Equal(t, MealTypeBreakfast, groups[0].MealType)
	assert.Len(t, groups[0].Entries, 1)
	assert.Equal(t, MealTypeDinner, groups[1].MealType)
	assert.Len(t, groups[1].Entries, 1)
	assert.Equal(t, MealTypeSnack, groups[2].MealType)
	require.Len(t, groups[2].Entries, 2)
	assert.Equal(t, 1.0, groups[2].Entries[0].m.Calories)
	assert.Equal(t, 3.0, groups[2].Entries[1].m.Calories)
}

func TestGroupByMealTypeEmpty(t *testing.T) {
	assert.Empty(t, GroupByMealType([]entry{}))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 60.0, Percent(1200, 2000))
	assert.Equal(t, 100.0, Percent(2500, 2000))
	assert.Equal(t, 0.0, Percent(100, 0))
	assert.Equal(t, 0.0, Percent(0, 2000))
}

func TestProgressLabels(t *testing.T) {
	s := ComputeDailySummary([]entry{{m: Macros{Calories: 1200, ProteinG: 160, CarbsG: 130, FatsG: 30}}}, DefaultTargets())

	rows := s.Progress()
	require.Len(t, rows, 4)

	assert.Equal(t, "Calories", rows[0].Name)
	assert.Equal(t, 60.0, rows[0].Percent)
	assert.False(t, rows[0].Over)
	assert.Equal(t, "800 remaining", rows[0].Label())

	assert.Equal(t, "Protein", rows[1].Name)
	assert.True(t, rows[1].Over)
	assert.Equal(t, 100.0, rows[1].Percent)
	assert.Equal(t, "10g over", rows[1].Label())
	assert.Equal(t, -10.0, s.ProteinRemainingG)
}

func TestProgressLabelRounding(t *testing.T) {
	cases := []struct {
		remaining float64
		want      string
	}{
		{-0.3, "0g remaining"},
		{-0.5, "1g over"},
		{-0.6, "1g over"},
		{0.4, "0g remaining"},
		{12.5, "13g remaining"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Progress{Unit: "g", Remaining: tc.remaining}.Label(), "remaining %v", tc.remaining)
	}
}
