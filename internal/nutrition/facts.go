package nutrition

import (
	"math"
	"strings"
)

// Facts is the per-serving nutrition label of a food. Optional fields are nil
// when the source did not report them.
type Facts struct {
	ServingSize          float64  `json:"serving_size"`
	ServingUnit          string   `json:"serving_unit"`
	ServingsPerContainer *float64 `json:"servings_per_container,omitempty"`

	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`

	FiberG        *float64 `json:"fiber_g,omitempty"`
	SugarG        *float64 `json:"sugar_g,omitempty"`
	SaturatedFatG *float64 `json:"saturated_fat_g,omitempty"`
	TransFatG     *float64 `json:"trans_fat_g,omitempty"`
	CholesterolMg *float64 `json:"cholesterol_mg,omitempty"`
	SodiumMg      *float64 `json:"sodium_mg,omitempty"`

	Micronutrients map[string]float64 `json:"micronutrients,omitempty"`
}

// Macros returns the four core metrics of the label.
func (f Facts) Macros() Macros {
	return Macros{
		Calories: f.Calories,
		ProteinG: f.ProteinG,
		CarbsG:   f.CarbsG,
		FatsG:    f.FatsG,
	}
}

// optionals lists accessors for every optional scalar field so scaling and
// summing treat them uniformly.
var optionals = []func(*Facts) **float64{
	func(f *Facts) **float64 { return &f.FiberG },
	func(f *Facts) **float64 { return &f.SugarG },
	func(f *Facts) **float64 { return &f.SaturatedFatG },
	func(f *Facts) **float64 { return &f.TransFatG },
	func(f *Facts) **float64 { return &f.CholesterolMg },
	func(f *Facts) **float64 { return &f.SodiumMg },
}

// scaled returns a copy of f with every nutrient multiplied by factor. The
// serving description is left untouched.
func (f Facts) scaled(factor float64) Facts {
	return f.mapped(func(v float64) float64 { return v * factor })
}

// divided returns a copy of f with every nutrient divided by n.
func (f Facts) divided(n float64) Facts {
	return f.mapped(func(v float64) float64 { return v / n })
}

func (f Facts) mapped(op func(float64) float64) Facts {
	out := f
	out.Calories = op(f.Calories)
	out.ProteinG = op(f.ProteinG)
	out.CarbsG = op(f.CarbsG)
	out.FatsG = op(f.FatsG)
	out.ServingsPerContainer = nil

	for _, field := range optionals {
		if p := *field(&f); p != nil {
			v := op(*p)
			*field(&out) = &v
		}
	}

	if f.Micronutrients != nil {
		out.Micronutrients = make(map[string]float64, len(f.Micronutrients))
		for k, v := range f.Micronutrients {
			out.Micronutrients[k] = op(v)
		}
	}
	return out
}

// ScaleFactor returns how many servings of a food with the given serving
// description a logged quantity represents.
func ScaleFactor(quantity float64, unit string, servingSize float64, servingUnit string) (float64, error) {
	if servingSize <= 0 || math.IsNaN(servingSize) {
		return 0, ErrInvalidServingSize
	}

	u := normalizeUnit(unit)
	if u == "serving" || u == "servings" {
		return quantity, nil
	}

	su := normalizeUnit(servingUnit)
	if u != su {
		if converted, ok := convertUnit(quantity, u, su); ok {
			quantity = converted
		}
	}
	return quantity / servingSize, nil
}

// ScaleFacts returns the nutrition of quantity/unit of a food whose label is f.
func ScaleFacts(f Facts, quantity float64, unit string) (Facts, error) {
	factor, err := ScaleFactor(quantity, unit, f.ServingSize, f.ServingUnit)
	if err != nil {
		return Facts{}, err
	}
	out := f.scaled(factor)
	out.ServingSize = quantity
	out.ServingUnit = unit
	return out, nil
}

type unitKind int

const (
	unitMass unitKind = iota + 1
	unitVolume
)

type unitDef struct {
	kind   unitKind
	toBase float64
}

// Mass units convert to grams, volume units to millilitres.
var unitTable = map[string]unitDef{
	"mg":    {unitMass, 0.001},
	"g":     {unitMass, 1},
	"kg":    {unitMass, 1000},
	"oz":    {unitMass, 28.349523125},
	"lb":    {unitMass, 453.59237},
	"ml":    {unitVolume, 1},
	"l":     {unitVolume, 1000},
	"tsp":   {unitVolume, 4.92892159375},
	"tbsp":  {unitVolume, 14.78676478125},
	"cup":   {unitVolume, 236.5882365},
	"fl-oz": {unitVolume, 29.5735295625},
}

var unitAliases = map[string]string{
	"gram":        "g",
	"grams":       "g",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"milligram":   "mg",
	"milligrams":  "mg",
	"ounce":       "oz",
	"ounces":      "oz",
	"lbs":         "lb",
	"pound":       "lb",
	"pounds":      "lb",
	"milliliter":  "ml",
	"milliliters": "ml",
	"millilitre":  "ml",
	"liter":       "l",
	"liters":      "l",
	"litre":       "l",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"cups":        "cup",
	"floz":        "fl-oz",
	"fl oz":       "fl-oz",
}

func normalizeUnit(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	if alias, ok := unitAliases[u]; ok {
		return alias
	}
	return u
}

func convertUnit(qty float64, from, to string) (float64, bool) {
	f, ok := unitTable[from]
	if !ok {
		return 0, false
	}
	t, ok := unitTable[to]
	if !ok || f.kind != t.kind {
		return 0, false
	}
	return qty * f.toBase / t.toBase, true
}
