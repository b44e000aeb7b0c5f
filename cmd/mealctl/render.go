package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/snedea/meal-planner-app/internal/nutrition"
	"github.com/snedea/meal-planner-app/pkg/client"
)

const barWidth = 30

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// progressBar draws a fixed width bar; overflow is marked with '!'.
func progressBar(p nutrition.Progress) string {
	filled := int(math.Round(p.Percent / 100 * barWidth))
	fill := "#"
	if p.Over {
		fill = "!"
	}
	return "[" + strings.Repeat(fill, filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func remainingLine(s nutrition.DailySummary) string {
	p := s.Progress()[0]
	return fmt.Sprintf("Calories: %.0f / %.0f (%s)", p.Total, p.Target, p.Label())
}

func printFoods(w io.Writer, foods []client.Food) {
	if len(foods) == 0 {
		fmt.Fprintln(w, "No foods found")
		return
	}

	fmt.Fprintf(w, "%-36s %-34s %-14s %8s\n", "ID", "NAME", "SERVING", "KCAL")
	fmt.Fprintln(w, strings.Repeat("-", 95))
	for _, f := range foods {
		name := f.Name
		if f.Brand != "" {
			name += " (" + f.Brand + ")"
		}
		if f.IsVerified {
			name = "✓ " + name
		}
		serving, kcal := "-", "-"
		if f.Nutrition != nil {
			serving = fmt.Sprintf("%g %s", f.Nutrition.ServingSize, f.Nutrition.ServingUnit)
			kcal = fmt.Sprintf("%.0f", f.Nutrition.Calories)
		}
		fmt.Fprintf(w, "%-36s %-34s %-14s %8s\n", f.ID, truncate(name, 34), serving, kcal)
	}
}

func printFacts(w io.Writer, n nutrition.Facts) {
	fmt.Fprintf(w, "  Calories: %.0f\n", n.Calories)
	fmt.Fprintf(w, "  Protein:  %.1fg\n", n.ProteinG)
	fmt.Fprintf(w, "  Carbs:    %.1fg\n", n.CarbsG)
	fmt.Fprintf(w, "  Fats:     %.1fg\n", n.FatsG)
	optional := []struct {
		name string
		unit string
		v    *float64
	}{
		{"Fiber", "g", n.FiberG},
		{"Sugar", "g", n.SugarG},
		{"Sat. fat", "g", n.SaturatedFatG},
		{"Trans fat", "g", n.TransFatG},
		{"Cholest.", "mg", n.CholesterolMg},
		{"Sodium", "mg", n.SodiumMg},
	}
	for _, o := range optional {
		if o.v != nil {
			fmt.Fprintf(w, "  %-9s %.1f%s\n", o.name+":", *o.v, o.unit)
		}
	}
}

func printFood(w io.Writer, f client.Food) {
	fmt.Fprintf(w, "%s\n", f.Name)
	if f.Brand != "" {
		fmt.Fprintf(w, "Brand: %s\n", f.Brand)
	}
	if f.Barcode != "" {
		fmt.Fprintf(w, "Barcode: %s\n", f.Barcode)
	}
	fmt.Fprintf(w, "Source: %s\n", f.Source)
	if f.Nutrition != nil {
		fmt.Fprintf(w, "Per %g %s:\n", f.Nutrition.ServingSize, f.Nutrition.ServingUnit)
		printFacts(w, *f.Nutrition)
	}
}

func printDay(w io.Writer, date string, groups []nutrition.MealGroup[client.MealLog], s nutrition.DailySummary) {
	fmt.Fprintf(w, "Meals for %s\n\n", date)

	if len(groups) == 0 {
		fmt.Fprintln(w, "Nothing logged yet")
	}
	for _, g := range groups {
		var kcal float64
		for _, l := range g.Entries {
			kcal += l.Calories
		}
		fmt.Fprintf(w, "%s (%.0f kcal)\n", strings.ToUpper(string(g.MealType)), kcal)
		for _, l := range g.Entries {
			at := "     "
			if l.LoggedTime != nil {
				at = *l.LoggedTime
			}
			fmt.Fprintf(w, "  %s  %-28s %6g %-8s %6.0f kcal  %s\n",
				at, truncate(l.Title(), 28), l.Quantity, l.Unit, l.Calories, l.ID)
		}
		fmt.Fprintln(w)
	}

	for _, p := range s.Progress() {
		fmt.Fprintf(w, "%-9s %s %5.0f / %-5.0f %s\n", p.Name, progressBar(p), p.Total, p.Target, p.Label())
	}
}

func printRange(w io.Writer, rs nutrition.RangeSummary) {
	if len(rs.DailySummaries) == 0 {
		fmt.Fprintln(w, "No meals logged in range")
		return
	}

	fmt.Fprintf(w, "%-10s %8s %9s %9s %9s %6s\n", "DATE", "KCAL", "PROTEIN", "CARBS", "FATS", "MEALS")
	fmt.Fprintln(w, strings.Repeat("-", 56))
	for _, d := range rs.DailySummaries {
		fmt.Fprintf(w, "%-10s %8.0f %8.1fg %8.1fg %8.1fg %6d\n",
			d.Date, d.TotalCalories, d.TotalProteinG, d.TotalCarbsG, d.TotalFatsG, d.MealCount)
	}
	a := rs.Averages
	fmt.Fprintln(w, strings.Repeat("-", 56))
	fmt.Fprintf(w, "%-10s %8.0f %8.1fg %8.1fg %8.1fg\n",
		"AVERAGE", a["calories"], a["protein_g"], a["carbs_g"], a["fats_g"])
}

func printRecipe(w io.Writer, r client.Recipe) {
	fmt.Fprintf(w, "%s (%d servings)\n", r.Name, r.Servings)
	if r.Description != "" {
		fmt.Fprintln(w, r.Description)
	}
	if len(r.Ingredients) > 0 {
		fmt.Fprintln(w, "\nIngredients:")
		for _, ing := range r.Ingredients {
			name := ing.FoodID.String()
			if ing.Food != nil {
				name = ing.Food.Name
			}
			fmt.Fprintf(w, "  %g %s %s\n", ing.Quantity, ing.Unit, name)
		}
	}
	fmt.Fprintln(w, "\nPer serving:")
	printFacts(w, r.PerServing)
	if r.Instructions != "" {
		fmt.Fprintf(w, "\nInstructions:\n%s\n", r.Instructions)
	}
}

func printEvent(w io.Writer, ev client.Event) {
	switch ev.Type {
	case "summary":
		if ev.Summary != nil {
			fmt.Fprintf(w, "[%s] %s\n", ev.Date, remainingLine(*ev.Summary))
		}
	case "reminder":
		fmt.Fprintf(w, "Reminder: %s\n", ev.Message)
	default:
		msg := ev.Message
		if msg == "" && ev.Summary != nil {
			msg = remainingLine(*ev.Summary)
		}
		fmt.Fprintf(w, "[%s] %s %s\n", ev.Type, ev.Date, msg)
	}
}
