package external

import (
	"context"
	"strings"

	"github.com/snedea/meal-planner-app/internal/nutrition"
)

// Catalog is a small built-in set of common USDA foods. It needs no network
// and is the default provider.
type Catalog struct {
	foods []Food
}

// NewCatalog returns the built-in catalog.
func NewCatalog() *Catalog {
	return &Catalog{foods: catalogFoods}
}

// Name implements Provider.
func (c *Catalog) Name() string { return "catalog" }

// Search returns catalog foods whose name contains query.
func (c *Catalog) Search(_ context.Context, query string, limit int) ([]Food, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Food
	for _, f := range c.foods {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(f.Name), q) {
			out = append(out, f)
		}
	}
	return out, nil
}

// Barcode implements Provider. Catalog foods carry no barcodes.
func (c *Catalog) Barcode(_ context.Context, _ string) (*Food, error) {
	return nil, ErrNotFound
}

var catalogFoods = []Food{
	{
		Name: "Chicken Breast, Raw", Brand: "Generic", Source: "usda", SourceID: "171077",
		Description: "Raw chicken breast without skin",
		Facts: nutrition.Facts{
			ServingSize: 100, ServingUnit: "g",
			Calories: 165, ProteinG: 31, CarbsG: 0, FatsG: 3.6,
			SaturatedFatG: ptr(1), CholesterolMg: ptr(85), SodiumMg: ptr(74),
		},
	},
	{
		Name: "Brown Rice, Cooked", Brand: "Generic", Source: "usda", SourceID: "168878",
		Description: "Cooked brown rice",
		Facts: nutrition.Facts{
			ServingSize: 100, ServingUnit: "g",
			Calories: 112, ProteinG: 2.6, CarbsG: 23.5, FatsG: 0.9,
			FiberG: ptr(1.8), SodiumMg: ptr(5),
		},
	},
	{
		Name: "Broccoli, Raw", Source: "usda", SourceID: "170379",
		Description: "Raw broccoli florets",
		Facts: nutrition.Facts{
			ServingSize: 100, ServingUnit: "g",
			Calories: 34, ProteinG: 2.8, CarbsG: 6.6, FatsG: 0.4,
			FiberG: ptr(2.6), SugarG: ptr(1.7), SodiumMg: ptr(33),
		},
	},
	{
		Name: "Salmon, Atlantic, Raw", Brand: "Generic", Source: "usda", SourceID: "175167",
		Description: "Raw Atlantic salmon",
		Facts: nutrition.Facts{
			ServingSize: 100, ServingUnit: "g",
			Calories: 208, ProteinG: 20.4, CarbsG: 0, FatsG: 13.4,
			SaturatedFatG: ptr(3.1), CholesterolMg: ptr(55), SodiumMg: ptr(59),
		},
	},
	{
		Name: "Oatmeal, Dry", Brand: "Generic", Source: "usda", SourceID: "173904",
		Description: "Dry rolled oats",
		Facts: nutrition.Facts{
			ServingSize: 50, ServingUnit: "g",
			Calories: 190, ProteinG: 6.8, CarbsG: 32, FatsG: 3.4,
			FiberG: ptr(5), SugarG: ptr(1), SodiumMg: ptr(5),
		},
	},
	{
		Name: "Eggs, Whole, Raw", Brand: "Generic", Source: "usda", SourceID: "173424",
		Description: "Whole raw eggs",
		Facts: nutrition.Facts{
			ServingSize: 50, ServingUnit: "g",
			Calories: 72, ProteinG: 6.3, CarbsG: 0.4, FatsG: 4.8,
			SaturatedFatG: ptr(1.6), CholesterolMg: ptr(186), SodiumMg: ptr(71),
		},
	},
	{
		Name: "Banana, Raw", Source: "usda", SourceID: "173944",
		Description: "Fresh banana",
		Facts: nutrition.Facts{
			ServingSize: 100, ServingUnit: "g",
			Calories: 89, ProteinG: 1.1, CarbsG: 22.8, FatsG: 0.3,
			FiberG: ptr(2.6), SugarG: ptr(12.2), SodiumMg: ptr(1),
		},
	},
	{
		Name: "Greek Yogurt, Plain, Nonfat", Brand: "Generic", Source: "usda", SourceID: "170903",
		Description: "Plain nonfat Greek yogurt",
		Facts: nutrition.Facts{
			ServingSize: 100, ServingUnit: "g",
			Calories: 59, ProteinG: 10.2, CarbsG: 3.6, FatsG: 0.4,
			SugarG: ptr(3.2), SodiumMg: ptr(36),
		},
	},
}
