package nutrition

import "errors"

var (
	ErrInvalidServings    = errors.New("servings must be greater than zero")
	ErrInvalidServingSize = errors.New("serving size must be greater than zero")
)

// Ingredient is a quantity of a food inside a recipe.
type Ingredient struct {
	Facts    Facts
	Quantity float64
	Unit     string
}

// RecipeNutrition is the nutrition of a whole recipe and of one serving.
type RecipeNutrition struct {
	Total      Facts `json:"nutrition_total"`
	PerServing Facts `json:"nutrition_per_serving"`
}

// ComputeRecipeNutrition sums the serving-scaled nutrition of every
// ingredient and divides it by servings. An optional nutrient, or a
// micronutrient key, appears in the result only when every ingredient
// reports it.
func ComputeRecipeNutrition(ingredients []Ingredient, servings int) (RecipeNutrition, error) {
	if servings <= 0 {
		return RecipeNutrition{}, ErrInvalidServings
	}

	total := Facts{
		ServingSize: float64(servings),
		ServingUnit: "serving",
	}

	scaled := make([]Facts, 0, len(ingredients))
	for _, ing := range ingredients {
		f, err := ScaleFacts(ing.Facts, ing.Quantity, ing.Unit)
		if err != nil {
			return RecipeNutrition{}, err
		}
		scaled = append(scaled, f)
		total.Calories += f.Calories
		total.ProteinG += f.ProteinG
		total.CarbsG += f.CarbsG
		total.FatsG += f.FatsG
	}

	if len(scaled) > 0 {
		for _, field := range optionals {
			total.setOptional(field, scaled)
		}
		total.Micronutrients = sharedMicronutrients(scaled)
	}

	per := total.divided(float64(servings))
	per.ServingSize = 1
	per.ServingUnit = "serving"

	return RecipeNutrition{Total: total, PerServing: per}, nil
}

func (f *Facts) setOptional(field func(*Facts) **float64, parts []Facts) {
	var sum float64
	for i := range parts {
		p := *field(&parts[i])
		if p == nil {
			return
		}
		sum += *p
	}
	*field(f) = &sum
}

func sharedMicronutrients(parts []Facts) map[string]float64 {
	out := make(map[string]float64)
	for k := range parts[0].Micronutrients {
		var sum float64
		shared := true
		for _, p := range parts {
			v, ok := p.Micronutrients[k]
			if !ok {
				shared = false
				break
			}
			sum += v
		}
		if shared {
			out[k] = sum
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
